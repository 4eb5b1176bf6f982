package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/careops/clinic-api/internal/email"
	"github.com/careops/clinic-api/internal/model"
	"github.com/careops/clinic-api/internal/repository"
	"github.com/careops/clinic-api/pkg/auth"
	apperrors "github.com/careops/clinic-api/pkg/errors"
	"github.com/careops/clinic-api/pkg/security"
)

const resetTokenExpiry = 1 * time.Hour

type Service struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	jwtSvc    auth.JWTService
	hasher    security.PasswordHasher
	emailSvc  email.Service
}

func NewService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository,
	jwtSvc auth.JWTService, hasher security.PasswordHasher, emailSvc email.Service) *Service {
	return &Service{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		jwtSvc:    jwtSvc,
		hasher:    hasher,
		emailSvc:  emailSvc,
	}
}

// Register creates an account and signs a token for it. Doctors are
// created here too; there is no separate doctor-creation endpoint.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	if existing, _ := s.userRepo.GetByEmail(ctx, req.Email); existing != nil {
		return nil, apperrors.NewValidation("email already registered")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.NewValidation("password too short")
	}

	user := &model.User{
		ID:             uuid.New(),
		Name:           req.Name,
		Email:          req.Email,
		PasswordHash:   hash,
		Role:           req.Role,
		Specialization: req.Specialization,
		CreatedAt:      time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, apperrors.NewInternal(err)
	}

	token, err := s.jwtSvc.Generate(user)
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}

	return &model.AuthResponse{User: user, Token: token}, nil
}

// Login verifies the password and signs a fresh token. Unknown email
// and bad password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*model.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.NewAuth("invalid credentials")
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewAuth("invalid credentials")
	}

	token, err := s.jwtSvc.Generate(user)
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}

	return &model.AuthResponse{User: user, Token: token}, nil
}

// ValidateToken verifies a bearer token and returns the identity it
// encodes. No server-side session state is consulted.
func (s *Service) ValidateToken(ctx context.Context, token string) (*model.TokenClaims, error) {
	claims, err := s.jwtSvc.Validate(token)
	if err != nil {
		return nil, apperrors.NewAuth("not authorized")
	}
	return claims, nil
}

// ForgotPassword issues a reset token and mails it. Unknown emails are
// ignored so the endpoint cannot be used to enumerate accounts.
func (s *Service) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return nil
	}

	token := uuid.New().String()
	if err := s.tokenRepo.StoreResetToken(ctx, user.ID, token, time.Now().Add(resetTokenExpiry)); err != nil {
		return apperrors.NewInternal(err)
	}

	if err := s.emailSvc.SendPasswordReset(user.Email, token); err != nil {
		log.Error().Err(err).Str("email", user.Email).Msg("failed to send reset email")
		return apperrors.NewInternal(err)
	}
	return nil
}

func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	userID, err := s.tokenRepo.ValidateResetToken(ctx, token)
	if err != nil {
		return apperrors.NewValidation("invalid or expired reset token")
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return apperrors.NewValidation("password too short")
	}

	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return apperrors.NewValidation("invalid or expired reset token")
	}

	user.PasswordHash = hash
	if err := s.userRepo.Update(ctx, user); err != nil {
		return apperrors.NewInternal(err)
	}

	return s.tokenRepo.InvalidateResetToken(ctx, token)
}
