// Package memory holds map-backed implementations of the repository
// interfaces. They power the test suite and local development without
// a database; semantics mirror the postgres implementations, including
// not-found errors.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/careops/clinic-api/internal/model"
	apperrors "github.com/careops/clinic-api/pkg/errors"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*model.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[uuid.UUID]*model.User)}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *UserRepository) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.NewNotFound("user")
	}
	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperrors.NewNotFound("user")
}

func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return apperrors.NewNotFound("user")
	}
	r.users[user.ID] = user
	return nil
}

func (r *UserRepository) ListByRole(ctx context.Context, role string) ([]*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := []*model.User{}
	for _, user := range r.users {
		if user.Role == role {
			users = append(users, user)
		}
	}
	return users, nil
}

func (r *UserRepository) CountByRole(ctx context.Context, role string) (int, error) {
	users, _ := r.ListByRole(ctx, role)
	return len(users), nil
}

type PatientRepository struct {
	mu       sync.RWMutex
	patients map[uuid.UUID]*model.Patient
}

func NewPatientRepository() *PatientRepository {
	return &PatientRepository{patients: make(map[uuid.UUID]*model.Patient)}
}

func (r *PatientRepository) Create(ctx context.Context, patient *model.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.patients[patient.ID] = patient
	return nil
}

func (r *PatientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	patient, ok := r.patients[id]
	if !ok {
		return nil, apperrors.NewNotFound("patient")
	}
	return patient, nil
}

func (r *PatientRepository) Update(ctx context.Context, patient *model.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.patients[patient.ID]; !ok {
		return apperrors.NewNotFound("patient")
	}
	r.patients[patient.ID] = patient
	return nil
}

func (r *PatientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.patients[id]; !ok {
		return apperrors.NewNotFound("patient")
	}
	delete(r.patients, id)
	return nil
}

func (r *PatientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	patients := []*model.Patient{}
	for _, patient := range r.patients {
		patients = append(patients, patient)
	}
	return patients, nil
}

func (r *PatientRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.patients), nil
}

type AppointmentRepository struct {
	mu           sync.RWMutex
	appointments map[uuid.UUID]*model.Appointment
}

func NewAppointmentRepository() *AppointmentRepository {
	return &AppointmentRepository{appointments: make(map[uuid.UUID]*model.Appointment)}
}

func (r *AppointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appointments[appointment.ID] = appointment
	return nil
}

func (r *AppointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	appointment, ok := r.appointments[id]
	if !ok {
		return nil, apperrors.NewNotFound("appointment")
	}
	return appointment, nil
}

func (r *AppointmentRepository) Update(ctx context.Context, appointment *model.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.appointments[appointment.ID]; !ok {
		return apperrors.NewNotFound("appointment")
	}
	r.appointments[appointment.ID] = appointment
	return nil
}

func (r *AppointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.appointments[id]; !ok {
		return apperrors.NewNotFound("appointment")
	}
	delete(r.appointments, id)
	return nil
}

func (r *AppointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	appointments := []*model.Appointment{}
	for _, appointment := range r.appointments {
		if filters != nil {
			if filters.DoctorID != uuid.Nil && appointment.DoctorID != filters.DoctorID {
				continue
			}
			if filters.PatientID != uuid.Nil &&
				(appointment.PatientID == nil || *appointment.PatientID != filters.PatientID) {
				continue
			}
			if filters.Status != "" && appointment.Status != filters.Status {
				continue
			}
			if filters.Date != "" && appointment.Date != filters.Date {
				continue
			}
		}
		appointments = append(appointments, appointment)
	}
	return appointments, nil
}

func (r *AppointmentRepository) CountForDate(ctx context.Context, date string) (int, error) {
	appointments, _ := r.List(ctx, &model.AppointmentFilters{Date: date})
	return len(appointments), nil
}

func (r *AppointmentRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := make(map[string]int)
	for _, appointment := range r.appointments {
		counts[string(appointment.Status)]++
	}
	return counts, nil
}

type resetToken struct {
	userID    uuid.UUID
	expiresAt time.Time
}

type TokenRepository struct {
	mu     sync.Mutex
	tokens map[string]resetToken
}

func NewTokenRepository() *TokenRepository {
	return &TokenRepository{tokens: make(map[string]resetToken)}
}

func (r *TokenRepository) StoreResetToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = resetToken{userID: userID, expiresAt: expiresAt}
	return nil
}

func (r *TokenRepository) ValidateResetToken(ctx context.Context, token string) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rt, ok := r.tokens[token]
	if !ok || time.Now().After(rt.expiresAt) {
		return uuid.Nil, fmt.Errorf("invalid or expired reset token")
	}
	return rt.userID, nil
}

func (r *TokenRepository) InvalidateResetToken(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, token)
	return nil
}
