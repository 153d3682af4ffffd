package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"shuletrack/internal/domain/dashboard"
	"shuletrack/internal/store/repositories"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	statsKey = "shuletrack:dashboard:stats"
	kpisKey  = "shuletrack:dashboard:kpis"
)

// Service computes dashboard stats and KPIs with a short-TTL redis
// cache in front of the aggregate queries. The cache is optional: with
// a nil client every call hits Postgres directly, and a failing redis
// degrades to the same behavior.
type Service struct {
	repo repositories.DashboardRepository
	rdb  *redis.Client
	ttl  time.Duration
}

// NewService creates a dashboard service. rdb may be nil.
func NewService(repo repositories.DashboardRepository, rdb *redis.Client, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Service{repo: repo, rdb: rdb, ttl: ttl}
}

// Stats returns the dashboard stats, served from cache when fresh.
func (s *Service) Stats(ctx context.Context) (*dashboard.Stats, error) {
	var st dashboard.Stats
	if s.cacheGet(ctx, statsKey, &st) {
		return &st, nil
	}
	fresh, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, &ServiceError{Op: "stats", Err: err}
	}
	s.cacheSet(ctx, statsKey, fresh)
	return fresh, nil
}

// KPIs returns the KPI metrics, served from cache when fresh.
func (s *Service) KPIs(ctx context.Context) (*dashboard.KPIs, error) {
	var k dashboard.KPIs
	if s.cacheGet(ctx, kpisKey, &k) {
		return &k, nil
	}
	fresh, err := s.repo.KPIs(ctx)
	if err != nil {
		return nil, &ServiceError{Op: "kpis", Err: err}
	}
	s.cacheSet(ctx, kpisKey, fresh)
	return fresh, nil
}

// cacheGet loads and unmarshals a cached payload. Any redis or decode
// problem reads as a miss.
func (s *Service) cacheGet(ctx context.Context, key string, out any) bool {
	if s.rdb == nil {
		return false
	}
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Debug().Err(err).Str("key", key).Msg("dashboard cache read failed")
		}
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("dashboard cache decode failed")
		return false
	}
	return true
}

// cacheSet stores a payload with the service TTL. Failures are logged
// and otherwise ignored; serving is never blocked on the cache.
func (s *Service) cacheSet(ctx context.Context, key string, v any) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("dashboard cache write failed")
	}
}

// ServiceError represents a dashboard service error.
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return "dashboard service " + e.Op + ": " + e.Err.Error()
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
