package model

// DashboardStats aggregates the counts shown on the dashboard.
type DashboardStats struct {
	TotalPatients        int            `json:"totalPatients"`
	TotalDoctors         int            `json:"totalDoctors"`
	AppointmentsToday    int            `json:"appointmentsToday"`
	AppointmentsByStatus map[string]int `json:"appointmentsByStatus"`
}
