package patient

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careops/clinic-api/internal/model"
	"github.com/careops/clinic-api/internal/repository/memory"
	apperrors "github.com/careops/clinic-api/pkg/errors"
)

func newService() *Service {
	return NewService(memory.NewPatientRepository())
}

func TestCreateAndGetPatient(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.CreatePatient(ctx, &model.CreatePatientRequest{
		Name:        "Jane Doe",
		Email:       "jane@example.com",
		DateOfBirth: "1990-04-12",
		Gender:      model.GenderFemale,
		BloodGroup:  "O+",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := svc.GetPatient(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestGetPatientNotFound(t *testing.T) {
	svc := newService()

	_, err := svc.GetPatient(context.Background(), uuid.New())
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdatePatientMergesSetFields(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.CreatePatient(ctx, &model.CreatePatientRequest{
		Name:  "Jane Doe",
		Phone: "555-0100",
	})
	require.NoError(t, err)

	phone := "555-0199"
	updated, err := svc.UpdatePatient(ctx, created.ID, &model.UpdatePatientRequest{Phone: &phone})
	require.NoError(t, err)

	assert.Equal(t, "555-0199", updated.Phone)
	assert.Equal(t, "Jane Doe", updated.Name)
}

func TestUpdatePatientNotFound(t *testing.T) {
	svc := newService()

	name := "Nobody"
	_, err := svc.UpdatePatient(context.Background(), uuid.New(), &model.UpdatePatientRequest{Name: &name})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDeletePatientIsNotIdempotent(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.CreatePatient(ctx, &model.CreatePatientRequest{Name: "Jane Doe"})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePatient(ctx, created.ID))

	_, err = svc.GetPatient(ctx, created.ID)
	assert.True(t, apperrors.IsNotFound(err))

	// Second delete reports not found rather than succeeding silently.
	assert.True(t, apperrors.IsNotFound(svc.DeletePatient(ctx, created.ID)))
}

func TestListPatients(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	list, err := svc.ListPatients(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.CreatePatient(ctx, &model.CreatePatientRequest{Name: "Jane Doe"})
	require.NoError(t, err)
	_, err = svc.CreatePatient(ctx, &model.CreatePatientRequest{Name: "John Roe"})
	require.NoError(t, err)

	list, err = svc.ListPatients(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
