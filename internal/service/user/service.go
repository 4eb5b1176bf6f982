package user

import (
	"context"

	"github.com/careops/clinic-api/internal/model"
	"github.com/careops/clinic-api/internal/repository"
)

type Service struct {
	repo repository.UserRepository
}

func NewService(repo repository.UserRepository) *Service {
	return &Service{repo: repo}
}

// ListDoctors returns every user with the doctor role. Password hashes
// never leave the model's JSON representation.
func (s *Service) ListDoctors(ctx context.Context) ([]*model.User, error) {
	return s.repo.ListByRole(ctx, model.RoleDoctor)
}
