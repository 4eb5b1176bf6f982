package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/careops/clinic-api/internal/model"
	"github.com/careops/clinic-api/internal/repository"
	"github.com/careops/clinic-api/internal/service/authz"
)

type Service struct {
	repo     repository.AppointmentRepository
	userRepo repository.UserRepository
}

func NewService(repo repository.AppointmentRepository, userRepo repository.UserRepository) *Service {
	return &Service{repo: repo, userRepo: userRepo}
}

// CreateAppointment books a slot. The doctor reference is required but
// its existence is not checked against the user store; the doctor name
// is denormalized for display, looked up best-effort when the client
// omits it.
func (s *Service) CreateAppointment(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	status := req.Status
	if status == "" {
		status = model.AppointmentStatusScheduled
	}

	doctorName := req.DoctorName
	if doctorName == "" {
		if doctor, err := s.userRepo.Get(ctx, req.DoctorID); err == nil {
			doctorName = doctor.Name
		}
	}

	appointment := &model.Appointment{
		ID:          uuid.New(),
		PatientID:   req.PatientID,
		PatientName: req.PatientName,
		DoctorID:    req.DoctorID,
		DoctorName:  doctorName,
		Date:        req.Date,
		Time:        req.Time,
		Status:      status,
		Reason:      req.Reason,
		Notes:       req.Notes,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// ListAppointments returns the ledger scoped to the requester: all
// records for admin and staff, own records for doctor and patient roles.
func (s *Service) ListAppointments(ctx context.Context, claims *model.TokenClaims) ([]*model.Appointment, error) {
	return s.repo.List(ctx, authz.AppointmentScope(claims))
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return s.repo.Get(ctx, id)
}

// UpdateAppointment merges the set fields, most commonly just the
// status. Any status value may replace any other; there is no
// transition machine at this scope.
func (s *Service) UpdateAppointment(ctx context.Context, id uuid.UUID, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.PatientID != nil {
		appointment.PatientID = req.PatientID
	}
	if req.PatientName != nil {
		appointment.PatientName = *req.PatientName
	}
	if req.DoctorID != nil {
		appointment.DoctorID = *req.DoctorID
	}
	if req.DoctorName != nil {
		appointment.DoctorName = *req.DoctorName
	}
	if req.Date != nil {
		appointment.Date = *req.Date
	}
	if req.Time != nil {
		appointment.Time = *req.Time
	}
	if req.Status != nil {
		appointment.Status = *req.Status
	}
	if req.Reason != nil {
		appointment.Reason = *req.Reason
	}
	if req.Notes != nil {
		appointment.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

func (s *Service) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
