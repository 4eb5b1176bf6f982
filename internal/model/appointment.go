package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled  AppointmentStatus = "scheduled"
	AppointmentStatusInProgress AppointmentStatus = "in-progress"
	AppointmentStatusCompleted  AppointmentStatus = "completed"
	AppointmentStatusCancelled  AppointmentStatus = "cancelled"
)

// ValidStatus reports whether s is one of the appointment status values.
// Any valid status may follow any other; there is no transition machine.
func ValidStatus(s AppointmentStatus) bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusInProgress,
		AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// Appointment references its doctor by id. The patient reference is
// optional: bookings made with only a free-text patient name are kept.
// Date and time are plain strings ("2006-01-02", "15:04"); the calendar
// has no timezone semantics.
type Appointment struct {
	ID          uuid.UUID         `db:"id" json:"id"`
	PatientID   *uuid.UUID        `db:"patient_id" json:"patientId,omitempty"`
	PatientName string            `db:"patient_name" json:"patientName"`
	DoctorID    uuid.UUID         `db:"doctor_id" json:"doctorId"`
	DoctorName  string            `db:"doctor_name" json:"doctorName,omitempty"`
	Date        string            `db:"date" json:"date"`
	Time        string            `db:"time" json:"time"`
	Status      AppointmentStatus `db:"status" json:"status"`
	Reason      string            `db:"reason" json:"reason,omitempty"`
	Notes       string            `db:"notes" json:"notes,omitempty"`
	CreatedAt   time.Time         `db:"created_at" json:"createdAt"`
}

type CreateAppointmentRequest struct {
	PatientID   *uuid.UUID        `json:"patientId"`
	PatientName string            `json:"patientName" binding:"required"`
	DoctorID    uuid.UUID         `json:"doctorId" binding:"required"`
	DoctorName  string            `json:"doctorName"`
	Date        string            `json:"date" binding:"required,calendardate"`
	Time        string            `json:"time" binding:"required,clocktime"`
	Status      AppointmentStatus `json:"status" binding:"omitempty,oneof=scheduled in-progress completed cancelled"`
	Reason      string            `json:"reason"`
	Notes       string            `json:"notes"`
}

type UpdateAppointmentRequest struct {
	PatientID   *uuid.UUID         `json:"patientId"`
	PatientName *string            `json:"patientName" binding:"omitempty,min=1"`
	DoctorID    *uuid.UUID         `json:"doctorId"`
	DoctorName  *string            `json:"doctorName"`
	Date        *string            `json:"date" binding:"omitempty,calendardate"`
	Time        *string            `json:"time" binding:"omitempty,clocktime"`
	Status      *AppointmentStatus `json:"status" binding:"omitempty,oneof=scheduled in-progress completed cancelled"`
	Reason      *string            `json:"reason"`
	Notes       *string            `json:"notes"`
}

// AppointmentFilters narrows a listing. Zero-value fields are ignored.
type AppointmentFilters struct {
	DoctorID  uuid.UUID
	PatientID uuid.UUID
	Status    AppointmentStatus
	Date      string
}
