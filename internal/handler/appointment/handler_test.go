package appointment_test

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
	"github.com/careops/clinic-api/internal/middleware"
	"github.com/careops/clinic-api/internal/repository/memory"
	"github.com/careops/clinic-api/internal/router"
	appointmentservice "github.com/careops/clinic-api/internal/service/appointment"
	authservice "github.com/careops/clinic-api/internal/service/auth"
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
	authSvc := authservice.NewService(
		users,
		memory.NewTokenRepository(),
		auth.NewJWTService("test-secret", time.Hour),
		security.NewBcryptHasher(bcrypt.MinCost),
		noopEmail{},
	)
	appointmentSvc := appointmentservice.NewService(memory.NewAppointmentRepository(), users)

	r := router.NewRouter(
		middleware.NewAuthMiddleware(authSvc),
		authhandler.NewHandler(authSvc),
		[]router.Handler{appointmenthandler.NewHandler(appointmentSvc)},
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

func (s *server) book(token, doctorID string) string {
	s.t.Helper()

	w := s.request(http.MethodPost, "/api/appointments", token, gin.H{
		"patientName": "Jane Doe",
		"doctorId":    doctorID,
		"date":        "2026-09-01",
		"time":        "10:30",
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &created))
	return created.ID
}

func TestCreateAppointmentDefaultsStatus(t *testing.T) {
	s := newServer(t)
	doctorID, token := s.register("Dr. Sarah Chen", "sarah@clinic.test", "doctor")

	w := s.request(http.MethodPost, "/api/appointments", token, gin.H{
		"patientName": "Jane Doe",
		"doctorId":    doctorID,
		"date":        "2026-09-01",
		"time":        "10:30",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "scheduled", created["status"])
	assert.Equal(t, "Dr. Sarah Chen", created["doctorName"])
}

func TestCreateAppointmentValidation(t *testing.T) {
	s := newServer(t)
	doctorID, token := s.register("Dr. Sarah Chen", "sarah@clinic.test", "doctor")

	tests := []struct {
		name string
		body gin.H
	}{
		{"missing patient name", gin.H{"doctorId": doctorID, "date": "2026-09-01", "time": "10:30"}},
		{"missing doctor", gin.H{"patientName": "Jane", "date": "2026-09-01", "time": "10:30"}},
		{"bad date", gin.H{"patientName": "Jane", "doctorId": doctorID, "date": "01-09-2026", "time": "10:30"}},
		{"bad time", gin.H{"patientName": "Jane", "doctorId": doctorID, "date": "2026-09-01", "time": "10:30pm"}},
		{"bad status", gin.H{"patientName": "Jane", "doctorId": doctorID, "date": "2026-09-01", "time": "10:30", "status": "done"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.request(http.MethodPost, "/api/appointments", token, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestListScopedToDoctor(t *testing.T) {
	s := newServer(t)
	chenID, chenToken := s.register("Dr. Chen", "chen@clinic.test", "doctor")
	patelID, patelToken := s.register("Dr. Patel", "patel@clinic.test", "doctor")
	_, staffToken := s.register("Front Desk", "desk@clinic.test", "staff")

	s.book(staffToken, chenID)
	s.book(staffToken, chenID)
	s.book(staffToken, patelID)

	var listed []map[string]interface{}

	w := s.request(http.MethodGet, "/api/appointments", staffToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Len(t, listed, 3)

	w = s.request(http.MethodGet, "/api/appointments", chenToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Len(t, listed, 2)

	w = s.request(http.MethodGet, "/api/appointments", patelToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Len(t, listed, 1)
}

func TestGetAppointmentOutOfScopeIsHidden(t *testing.T) {
	s := newServer(t)
	chenID, chenToken := s.register("Dr. Chen", "chen@clinic.test", "doctor")
	_, patelToken := s.register("Dr. Patel", "patel@clinic.test", "doctor")

	id := s.book(chenToken, chenID)

	assert.Equal(t, http.StatusOK, s.request(http.MethodGet, "/api/appointments/"+id, chenToken, nil).Code)

	// Another doctor gets a 404, not a 403, so the record's existence
	// is not disclosed.
	assert.Equal(t, http.StatusNotFound, s.request(http.MethodGet, "/api/appointments/"+id, patelToken, nil).Code)
}

func TestUpdateAppointmentStatusOnly(t *testing.T) {
	s := newServer(t)
	doctorID, token := s.register("Dr. Chen", "chen@clinic.test", "doctor")
	id := s.book(token, doctorID)

	w := s.request(http.MethodPut, "/api/appointments/"+id, token, gin.H{"status": "completed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "completed", updated["status"])
	assert.Equal(t, "Jane Doe", updated["patientName"])
	assert.Equal(t, "2026-09-01", updated["date"])
}

func TestDeleteAppointment(t *testing.T) {
	s := newServer(t)
	doctorID, token := s.register("Dr. Chen", "chen@clinic.test", "doctor")
	id := s.book(token, doctorID)

	w := s.request(http.MethodDelete, "/api/appointments/"+id, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp handler.MessageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "appointment removed", resp.Message)

	assert.Equal(t, http.StatusNotFound, s.request(http.MethodDelete, "/api/appointments/"+id, token, nil).Code)
}

func TestPatientRoleCannotDeleteAppointments(t *testing.T) {
	s := newServer(t)
	doctorID, doctorToken := s.register("Dr. Chen", "chen@clinic.test", "doctor")
	_, patientToken := s.register("Pat Member", "pat@clinic.test", "patient")

	id := s.book(doctorToken, doctorID)

	assert.Equal(t, http.StatusForbidden, s.request(http.MethodDelete, "/api/appointments/"+id, patientToken, nil).Code)
}
