package stats

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/careops/clinic-api/internal/model"
	"github.com/careops/clinic-api/internal/repository"
	"github.com/careops/clinic-api/pkg/metrics"
)

const (
	cacheKey = "stats:dashboard"
	cacheTTL = 30 * time.Second
)

// Service aggregates the dashboard counters. Results are cached in
// redis for a short window; with no redis client every request hits
// the store. Both cache and metrics may be nil.
type Service struct {
	patientRepo     repository.PatientRepository
	userRepo        repository.UserRepository
	appointmentRepo repository.AppointmentRepository
	cache           *redis.Client
	metrics         *metrics.Metrics
}

func NewService(patientRepo repository.PatientRepository, userRepo repository.UserRepository,
	appointmentRepo repository.AppointmentRepository, cache *redis.Client, m *metrics.Metrics) *Service {
	return &Service{
		patientRepo:     patientRepo,
		userRepo:        userRepo,
		appointmentRepo: appointmentRepo,
		cache:           cache,
		metrics:         m,
	}
}

func (s *Service) DashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	if cached := s.fromCache(ctx); cached != nil {
		if s.metrics != nil {
			s.metrics.StatsCacheHits.Inc()
		}
		return cached, nil
	}
	if s.metrics != nil {
		s.metrics.StatsCacheMisses.Inc()
	}

	patients, err := s.patientRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	doctors, err := s.userRepo.CountByRole(ctx, model.RoleDoctor)
	if err != nil {
		return nil, err
	}

	today := time.Now().Format("2006-01-02")
	todayCount, err := s.appointmentRepo.CountForDate(ctx, today)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.appointmentRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	stats := &model.DashboardStats{
		TotalPatients:        patients,
		TotalDoctors:         doctors,
		AppointmentsToday:    todayCount,
		AppointmentsByStatus: byStatus,
	}

	s.toCache(ctx, stats)
	return stats, nil
}

func (s *Service) fromCache(ctx context.Context) *model.DashboardStats {
	if s.cache == nil {
		return nil
	}

	payload, err := s.cache.Get(ctx, cacheKey).Bytes()
	if err != nil {
		return nil
	}

	var stats model.DashboardStats
	if err := json.Unmarshal(payload, &stats); err != nil {
		return nil
	}
	return &stats
}

func (s *Service) toCache(ctx context.Context, stats *model.DashboardStats) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(stats)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, cacheKey, payload, cacheTTL).Err(); err != nil {
		log.Warn().Err(err).Msg("failed to cache dashboard stats")
	}
}
