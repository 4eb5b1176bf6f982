package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/careops/clinic-api/internal/model"
	"github.com/careops/clinic-api/internal/repository/memory"
	"github.com/careops/clinic-api/pkg/auth"
	apperrors "github.com/careops/clinic-api/pkg/errors"
	"github.com/careops/clinic-api/pkg/security"
)

type fakeEmail struct {
	sentTo     []string
	sentTokens []string
}

func (f *fakeEmail) SendPasswordReset(to, token string) error {
	f.sentTo = append(f.sentTo, to)
	f.sentTokens = append(f.sentTokens, token)
	return nil
}

func newService(t *testing.T) (*Service, *fakeEmail) {
	t.Helper()
	mail := &fakeEmail{}
	svc := NewService(
		memory.NewUserRepository(),
		memory.NewTokenRepository(),
		auth.NewJWTService("test-secret", time.Hour),
		security.NewBcryptHasher(bcrypt.MinCost),
		mail,
	)
	return svc, mail
}

func registerDoctor(t *testing.T, svc *Service) *model.AuthResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), &model.RegisterRequest{
		Name:           "Dr. Sarah Chen",
		Email:          "sarah@clinic.test",
		Password:       "secret123",
		Role:           model.RoleDoctor,
		Specialization: "cardiology",
	})
	require.NoError(t, err)
	return resp
}

func TestRegisterIssuesUsableToken(t *testing.T) {
	svc, _ := newService(t)

	resp := registerDoctor(t, svc)
	assert.Equal(t, model.RoleDoctor, resp.User.Role)
	assert.NotEmpty(t, resp.Token)

	claims, err := svc.ValidateToken(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, model.RoleDoctor, claims.Role)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newService(t)
	registerDoctor(t, svc)

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Name:     "Impostor",
		Email:    "sarah@clinic.test",
		Password: "secret456",
		Role:     model.RoleStaff,
	})
	assert.True(t, apperrors.IsValidation(err))
}

func TestLogin(t *testing.T) {
	svc, _ := newService(t)
	registerDoctor(t, svc)
	ctx := context.Background()

	resp, err := svc.Login(ctx, "sarah@clinic.test", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	// Wrong password and unknown email produce the same error.
	_, badPass := svc.Login(ctx, "sarah@clinic.test", "wrong")
	_, badEmail := svc.Login(ctx, "nobody@clinic.test", "secret123")
	require.Error(t, badPass)
	require.Error(t, badEmail)
	assert.Equal(t, badPass.Error(), badEmail.Error())
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	svc, _ := newService(t)
	resp := registerDoctor(t, svc)

	_, err := svc.ValidateToken(context.Background(), resp.Token+"x")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrAuth, appErr.Code)
}

func TestPasswordResetFlow(t *testing.T) {
	svc, mail := newService(t)
	registerDoctor(t, svc)
	ctx := context.Background()

	require.NoError(t, svc.ForgotPassword(ctx, "sarah@clinic.test"))
	require.Len(t, mail.sentTokens, 1)

	require.NoError(t, svc.ResetPassword(ctx, mail.sentTokens[0], "newsecret1"))

	_, err := svc.Login(ctx, "sarah@clinic.test", "secret123")
	assert.Error(t, err)
	_, err = svc.Login(ctx, "sarah@clinic.test", "newsecret1")
	assert.NoError(t, err)

	// Tokens are single use.
	assert.Error(t, svc.ResetPassword(ctx, mail.sentTokens[0], "another1"))
}

func TestForgotPasswordSilentOnUnknownEmail(t *testing.T) {
	svc, mail := newService(t)

	assert.NoError(t, svc.ForgotPassword(context.Background(), "ghost@clinic.test"))
	assert.Empty(t, mail.sentTo)
}
