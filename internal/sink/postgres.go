// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// postgres.go — Postgres sink: append-only snapshot history. Each cycle
// inserts one (recorded_at, payload) row, leaving retention and analysis
// to the operator.

package sink

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres appends marshaled snapshots to a history table.
type Postgres struct {
	pool  *pgxpool.Pool
	table string
}

// NewPostgres creates a Postgres sink writing to table over pool.
func NewPostgres(pool *pgxpool.Pool, table string) *Postgres {
	return &Postgres{pool: pool, table: table}
}

// Init creates the history table if it does not already exist.
func (s *Postgres) Init(ctx context.Context) error {
	sql := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id BIGSERIAL PRIMARY KEY,
		recorded_at TIMESTAMPTZ NOT NULL,
		payload BYTEA NOT NULL
	)`, s.table)
	if _, err := s.pool.Exec(ctx, sql); err != nil {
		return fmt.Errorf("sink: postgres init: %w", err)
	}
	return nil
}

// Ping verifies the pool is reachable.
func (s *Postgres) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Write inserts one history row.
func (s *Postgres) Write(ctx context.Context, recordedAt time.Time, payload []byte) error {
	sql := fmt.Sprintf("INSERT INTO %s (recorded_at, payload) VALUES ($1, $2)", s.table)
	if _, err := s.pool.Exec(ctx, sql, recordedAt, payload); err != nil {
		return fmt.Errorf("sink: postgres insert: %w", err)
	}
	return nil
}

// Close closes the underlying pool.
func (s *Postgres) Close() error {
	s.pool.Close()
	return nil
}
