package postgres

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// MustOpen connects to postgres, retrying transient failures so the API can
// come up before the database during deploys. A bad DSN fails immediately.
func MustOpen(ctx context.Context, dsn string) *pgxpool.Pool {
	var pool *pgxpool.Pool

	connect := func() error {
		p, err := pgxpool.New(ctx, dsn)
		if err != nil {
			return backoff.Permanent(err)
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			log.Warn().Err(err).Msg("db ping failed, retrying")
			return err
		}
		pool = p
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 30 * time.Second

	if err := backoff.Retry(connect, backoff.WithContext(bo, ctx)); err != nil {
		log.Fatal().Err(err).Msg("db connect fail")
	}
	return pool
}
