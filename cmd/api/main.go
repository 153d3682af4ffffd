package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shuletrack/internal/config"
	httpx "shuletrack/internal/http"
	"shuletrack/internal/metrics"
	"shuletrack/internal/services/data"
	dashsvc "shuletrack/internal/services/dashboard"
	"shuletrack/internal/store/postgres"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	startedAt := time.Now()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init DB
	pool := postgres.MustOpen(ctx, cfg.DB.DSN)
	defer pool.Close()
	repo := postgres.NewRepo(pool)

	// Optional redis for the dashboard response cache
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis unreachable, dashboard cache disabled")
			rdb = nil
		}
	}

	dataService := data.NewService(repo.Schools, repo.Students)
	dashService := dashsvc.NewService(repo.Dashboard, rdb, cfg.Cache.StatsTTL)

	r := httpx.NewRouter(httpx.RouterDependencies{
		Config:           cfg,
		DataService:      dataService,
		DashboardService: dashService,
		Metrics:          metrics.New(),
		StartedAt:        startedAt,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Msgf("ShuleTrack API listening on :%s", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	cancel()
	ctx2, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	log.Info().Msg("server stopped")
}
