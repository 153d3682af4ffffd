package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Pool limits. Requests share one bounded pool; timeouts are enforced
// here, not in request logic.
const (
	maxConns        = 20
	connIdleTimeout = 5 * time.Minute
	connectTimeout  = 10 * time.Second
)

// MustOpen connects to Postgres or exits the process.
func MustOpen(ctx context.Context, dsn string) *pgxpool.Pool {
	pc, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("db dsn parse fail")
	}
	pc.MaxConns = maxConns
	pc.MaxConnIdleTime = connIdleTimeout
	pc.ConnConfig.ConnectTimeout = connectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect fail")
	}
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("db ping fail")
	}
	return pool
}
