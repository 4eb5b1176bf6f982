package model

import (
	"time"

	"github.com/google/uuid"
)

// User roles. "patient" is accepted at registration for parity with the
// web client but carries the most restricted appointment scope.
const (
	RoleAdmin   = "admin"
	RoleDoctor  = "doctor"
	RoleStaff   = "staff"
	RolePatient = "patient"
)

// User represents a staff account. Doctors are users with role "doctor";
// there is no dedicated doctor entity.
type User struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Email          string    `db:"email" json:"email"`
	PasswordHash   string    `db:"password_hash" json:"-"`
	Role           string    `db:"role" json:"role"`
	Specialization string    `db:"specialization" json:"specialization,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}
