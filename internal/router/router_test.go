package router_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/careops/clinic-api/internal/handler"
	appointmenthandler "github.com/careops/clinic-api/internal/handler/appointment"
	authhandler "github.com/careops/clinic-api/internal/handler/auth"
	doctorhandler "github.com/careops/clinic-api/internal/handler/doctor"
	patienthandler "github.com/careops/clinic-api/internal/handler/patient"
	statshandler "github.com/careops/clinic-api/internal/handler/stats"
	"github.com/careops/clinic-api/internal/middleware"
	"github.com/careops/clinic-api/internal/repository/memory"
	"github.com/careops/clinic-api/internal/router"
	appointmentservice "github.com/careops/clinic-api/internal/service/appointment"
	authservice "github.com/careops/clinic-api/internal/service/auth"
	patientservice "github.com/careops/clinic-api/internal/service/patient"
	statsservice "github.com/careops/clinic-api/internal/service/stats"
	userservice "github.com/careops/clinic-api/internal/service/user"
	"github.com/careops/clinic-api/pkg/auth"
	"github.com/careops/clinic-api/pkg/security"
)

type noopEmail struct{}

func (noopEmail) SendPasswordReset(to, token string) error { return nil }

type server struct {
	t      *testing.T
	engine *gin.Engine
}

func newServer(t *testing.T) *server {
	t.Helper()

	users := memory.NewUserRepository()
	patients := memory.NewPatientRepository()
	appointments := memory.NewAppointmentRepository()
	tokens := memory.NewTokenRepository()

	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	hasher := security.NewBcryptHasher(bcrypt.MinCost)

	authSvc := authservice.NewService(users, tokens, jwtSvc, hasher, noopEmail{})
	patientSvc := patientservice.NewService(patients)
	appointmentSvc := appointmentservice.NewService(appointments, users)
	userSvc := userservice.NewService(users)
	statsSvc := statsservice.NewService(patients, users, appointments, nil, nil)

	r := router.NewRouter(
		middleware.NewAuthMiddleware(authSvc),
		authhandler.NewHandler(authSvc),
		[]router.Handler{
			patienthandler.NewHandler(patientSvc),
			doctorhandler.NewHandler(userSvc),
			appointmenthandler.NewHandler(appointmentSvc),
			statshandler.NewHandler(statsSvc),
		},
		handler.NewHandler(nil),
		nil,
		router.Config{},
	)
	r.Setup()

	return &server{t: t, engine: r.Engine()}
}

func (s *server) request(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *server) register(name, email, role string) (id, token string) {
	s.t.Helper()

	w := s.request(http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     name,
		"email":    email,
		"password": "secret123",
		"role":     role,
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
		Token string `json:"token"`
	}
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.User.ID, resp.Token
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func TestHealthEndpoints(t *testing.T) {
	s := newServer(t)

	assert.Equal(t, http.StatusOK, s.request(http.MethodGet, "/api/health/live", "", nil).Code)
	assert.Equal(t, http.StatusOK, s.request(http.MethodGet, "/api/health/ready", "", nil).Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newServer(t)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/patients"},
		{http.MethodPost, "/api/patients"},
		{http.MethodGet, "/api/doctors"},
		{http.MethodGet, "/api/appointments"},
		{http.MethodPost, "/api/appointments"},
		{http.MethodGet, "/api/stats/dashboard"},
	}

	for _, r := range routes {
		w := s.request(r.method, r.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", r.method, r.path)

		var resp handler.ErrorResponse
		decode(t, w, &resp)
		assert.Equal(t, "not authorized", resp.Message)
	}
}

func TestMalformedBearerTokenRejected(t *testing.T) {
	s := newServer(t)

	w := s.request(http.MethodGet, "/api/patients", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPatientRoleCannotMutatePatients(t *testing.T) {
	s := newServer(t)
	_, token := s.register("Pat Member", "pat@clinic.test", "patient")

	w := s.request(http.MethodPost, "/api/patients", token, gin.H{"name": "Someone"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Reads are still allowed.
	assert.Equal(t, http.StatusOK, s.request(http.MethodGet, "/api/patients", token, nil).Code)
}

// TestClinicWorkflow walks the primary flow end to end: register a
// doctor, log in, admit a patient, book an appointment, then read it
// back through the doctor's scoped listing.
func TestClinicWorkflow(t *testing.T) {
	s := newServer(t)

	doctorID, _ := s.register("Dr. Sarah Chen", "sarah@clinic.test", "doctor")

	w := s.request(http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "sarah@clinic.test",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		Token string `json:"token"`
	}
	decode(t, w, &login)
	require.NotEmpty(t, login.Token)

	w = s.request(http.MethodPost, "/api/patients", login.Token, gin.H{
		"name":        "Jane Doe",
		"dateOfBirth": "1990-04-12",
		"gender":      "female",
		"bloodGroup":  "O+",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var patient struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	decode(t, w, &patient)
	assert.Equal(t, "Jane Doe", patient.Name)

	w = s.request(http.MethodPost, "/api/appointments", login.Token, gin.H{
		"patientId":   patient.ID,
		"patientName": "Jane Doe",
		"doctorId":    doctorID,
		"date":        "2026-09-01",
		"time":        "10:30",
		"reason":      "checkup",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID         string `json:"id"`
		Status     string `json:"status"`
		DoctorName string `json:"doctorName"`
	}
	decode(t, w, &created)
	assert.Equal(t, "scheduled", created.Status)
	assert.Equal(t, "Dr. Sarah Chen", created.DoctorName)

	w = s.request(http.MethodGet, "/api/appointments", login.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed []struct {
		ID       string `json:"id"`
		DoctorID string `json:"doctorId"`
	}
	decode(t, w, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
	assert.Equal(t, doctorID, listed[0].DoctorID)

	w = s.request(http.MethodGet, "/api/stats/dashboard", login.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats struct {
		TotalPatients int `json:"totalPatients"`
		TotalDoctors  int `json:"totalDoctors"`
	}
	decode(t, w, &stats)
	assert.Equal(t, 1, stats.TotalPatients)
	assert.Equal(t, 1, stats.TotalDoctors)
}

func TestDoctorListingHidesPasswordHash(t *testing.T) {
	s := newServer(t)
	_, token := s.register("Dr. Sarah Chen", "sarah@clinic.test", "doctor")

	w := s.request(http.MethodGet, "/api/doctors", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listed []map[string]interface{}
	decode(t, w, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, "Dr. Sarah Chen", listed[0]["name"])
	assert.NotContains(t, listed[0], "passwordHash")
	assert.NotContains(t, listed[0], "password_hash")
}
