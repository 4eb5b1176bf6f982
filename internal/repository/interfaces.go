package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/careops/clinic-api/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	ListByRole(ctx context.Context, role string) ([]*model.User, error)
	CountByRole(ctx context.Context, role string) (int, error)
}

type PatientRepository interface {
	Create(ctx context.Context, patient *model.Patient) error
	Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	Update(ctx context.Context, patient *model.Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*model.Patient, error)
	Count(ctx context.Context) (int, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *model.Appointment) error
	Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	Update(ctx context.Context, appointment *model.Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
	CountForDate(ctx context.Context, date string) (int, error)
	CountByStatus(ctx context.Context) (map[string]int, error)
}

// TokenRepository persists password-reset tokens. These are one-shot
// credentials, separate from the stateless bearer tokens.
type TokenRepository interface {
	StoreResetToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error
	ValidateResetToken(ctx context.Context, token string) (uuid.UUID, error)
	InvalidateResetToken(ctx context.Context, token string) error
}
