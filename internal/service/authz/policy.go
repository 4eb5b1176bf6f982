// Package authz holds the authorization policy: a single table keyed by
// (role, resource, action) instead of conditionals scattered through
// handlers.
package authz

import (
	"github.com/careops/clinic-api/internal/model"
)

type Resource string

const (
	ResourcePatient     Resource = "patient"
	ResourceDoctor      Resource = "doctor"
	ResourceAppointment Resource = "appointment"
	ResourceStats       Resource = "stats"
)

type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

var allActions = []Action{ActionRead, ActionCreate, ActionUpdate, ActionDelete}

// policy grants actions per role and resource. Admin and staff run the
// front desk and get everything; doctors manage patients and their own
// appointments; the patient role is read-mostly.
var policy = map[string]map[Resource][]Action{
	model.RoleAdmin: {
		ResourcePatient:     allActions,
		ResourceDoctor:      {ActionRead},
		ResourceAppointment: allActions,
		ResourceStats:       {ActionRead},
	},
	model.RoleStaff: {
		ResourcePatient:     allActions,
		ResourceDoctor:      {ActionRead},
		ResourceAppointment: allActions,
		ResourceStats:       {ActionRead},
	},
	model.RoleDoctor: {
		ResourcePatient:     allActions,
		ResourceDoctor:      {ActionRead},
		ResourceAppointment: allActions,
		ResourceStats:       {ActionRead},
	},
	model.RolePatient: {
		ResourcePatient:     {ActionRead},
		ResourceDoctor:      {ActionRead},
		ResourceAppointment: {ActionRead, ActionCreate},
		ResourceStats:       {ActionRead},
	},
}

// Can reports whether role may perform action on resource.
func Can(role string, resource Resource, action Action) bool {
	grants, ok := policy[role]
	if !ok {
		return false
	}
	for _, a := range grants[resource] {
		if a == action {
			return true
		}
	}
	return false
}

// AppointmentScope returns the listing filter for the requester. Admin
// and staff see every appointment; a doctor sees appointments assigned
// to them; a patient-role user sees appointments referencing their id.
func AppointmentScope(claims *model.TokenClaims) *model.AppointmentFilters {
	switch claims.Role {
	case model.RoleDoctor:
		return &model.AppointmentFilters{DoctorID: claims.UserID}
	case model.RolePatient:
		return &model.AppointmentFilters{PatientID: claims.UserID}
	default:
		return &model.AppointmentFilters{}
	}
}

// Scoped reports whether the requester may see a single appointment
// under the same rules AppointmentScope applies to listings.
func Scoped(claims *model.TokenClaims, appointment *model.Appointment) bool {
	switch claims.Role {
	case model.RoleDoctor:
		return appointment.DoctorID == claims.UserID
	case model.RolePatient:
		return appointment.PatientID != nil && *appointment.PatientID == claims.UserID
	default:
		return true
	}
}
