package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"resume-analyzer/internal/config"
)

// NewPool construye y devuelve un pool de conexiones configurado.
func NewPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	poolCfg.MaxConns = 10
	poolCfg.MinConns = 1
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.HealthCheckPeriod = 30 * time.Second
	poolCfg.ConnConfig.ConnectTimeout = 5 * time.Second

	return pgxpool.NewWithConfig(ctx, poolCfg)
}

// Ping verifica conectividad con la base de datos.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	return pool.Ping(ctx)
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS resume_analyses (
	id               BIGSERIAL PRIMARY KEY,
	resume_text      TEXT        NOT NULL,
	job_role         TEXT        NOT NULL,
	custom_job_role  TEXT        NOT NULL DEFAULT '',
	experience_level TEXT        NOT NULL,
	overall_score    INTEGER     NOT NULL,
	grammar_score    INTEGER     NOT NULL,
	ats_score        INTEGER     NOT NULL,
	keyword_score    INTEGER     NOT NULL,
	format_score     INTEGER     NOT NULL,
	level            TEXT        NOT NULL DEFAULT '',
	earned_badges    JSONB       NOT NULL,
	grammar_feedback JSONB       NOT NULL,
	ats_feedback     JSONB       NOT NULL,
	keyword_feedback JSONB       NOT NULL,
	recommendations  JSONB       NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL
)`

// EnsureSchema crea la tabla de análisis si no existe.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schemaSQL)
	return err
}
