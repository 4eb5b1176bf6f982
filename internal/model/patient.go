package model

import (
	"time"

	"github.com/google/uuid"
)

// Patient genders
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

type Patient struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Email          string    `db:"email" json:"email,omitempty"`
	Phone          string    `db:"phone" json:"phone,omitempty"`
	DateOfBirth    string    `db:"date_of_birth" json:"dateOfBirth,omitempty"`
	Gender         string    `db:"gender" json:"gender,omitempty"`
	Address        string    `db:"address" json:"address,omitempty"`
	BloodGroup     string    `db:"blood_group" json:"bloodGroup,omitempty"`
	MedicalHistory string    `db:"medical_history" json:"medicalHistory,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}

type CreatePatientRequest struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"omitempty,email"`
	Phone          string `json:"phone"`
	DateOfBirth    string `json:"dateOfBirth" binding:"omitempty,calendardate"`
	Gender         string `json:"gender" binding:"omitempty,oneof=male female other"`
	Address        string `json:"address"`
	BloodGroup     string `json:"bloodGroup"`
	MedicalHistory string `json:"medicalHistory"`
}

// UpdatePatientRequest merges the set fields into the stored record.
// Nil pointers leave the existing value untouched.
type UpdatePatientRequest struct {
	Name           *string `json:"name" binding:"omitempty,min=1"`
	Email          *string `json:"email" binding:"omitempty,email"`
	Phone          *string `json:"phone"`
	DateOfBirth    *string `json:"dateOfBirth" binding:"omitempty,calendardate"`
	Gender         *string `json:"gender" binding:"omitempty,oneof=male female other"`
	Address        *string `json:"address"`
	BloodGroup     *string `json:"bloodGroup"`
	MedicalHistory *string `json:"medicalHistory"`
}
