// Command st_partitions runs the attendance partition maintenance
// functions. Scheduled from cron; never called from the request path.
//
//	go run tools/st_partitions.go -ahead 2 -retain 24
package main

import (
	"context"
	"flag"
	"time"

	"shuletrack/internal/config"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

func main() {
	ahead := flag.Int("ahead", 2, "months of future partitions to ensure")
	retain := flag.Int("retain", 24, "months of attendance history to keep")
	flag.Parse()

	cfg := config.Load() // reads DB_DSN from env
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	conn, err := pgx.Connect(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect fail")
	}
	defer conn.Close(ctx)

	var created int
	if err := conn.QueryRow(ctx,
		`SELECT ensure_attendance_partitions($1)`, *ahead).Scan(&created); err != nil {
		log.Fatal().Err(err).Msg("ensure partitions failed")
	}

	var dropped int
	if err := conn.QueryRow(ctx,
		`SELECT drop_expired_attendance_partitions($1)`, *retain).Scan(&dropped); err != nil {
		log.Fatal().Err(err).Msg("drop partitions failed")
	}

	log.Info().Int("created", created).Int("dropped", dropped).Msg("partition maintenance done")
}
