package main

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/jose-valero/bullet-bot/internal/infra/config"
)

// borra historial de bullets terminados más viejo que RUN_RETENTION_DAYS
func handler(ctx context.Context) (string, error) {
	cfg, err := config.LoadJanitor()
	if err != nil {
		return err.Error(), nil
	}
	if cfg.DatabaseURL == "" {
		return "no DATABASE_URL", nil
	}

	pcfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return fmt.Sprintf("parse: %v", err), nil
	}
	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return fmt.Sprintf("pool: %v", err), nil
	}
	defer pool.Close()

	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := pool.Exec(cctx, `
DELETE FROM tournament_runs
WHERE ended_at IS NOT NULL
  AND ended_at < now() - make_interval(days => $1);`, cfg.RunRetentionDays)
	if err != nil {
		log.Error().Err(err).Str("component", "janitor").Msg("prune runs")
		return "", err
	}
	log.Info().Str("component", "janitor").Int64("deleted", tag.RowsAffected()).Int("days", cfg.RunRetentionDays).Msg("prune runs")
	return fmt.Sprintf("ok: %d runs deleted", tag.RowsAffected()), nil
}

func main() { lambda.Start(handler) }
