// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// sink.go — Sink interface implemented by snapshot destinations; built-in
// file, Redis, and Postgres sinks live in internal/sink and are wired from
// Config, custom sinks are passed through Config.Sinks.

package vitals

import (
	"context"
	"time"
)

// Sink receives the marshaled snapshot once per reduction cycle. A failed
// Write is reported through the diagnostic logger and never affects
// recorder state; the next cycle proceeds unaffected.
type Sink interface {
	// Write delivers one marshaled snapshot. recordedAt is the cycle time.
	Write(ctx context.Context, recordedAt time.Time, payload []byte) error
	// Close releases any resources held by the sink.
	Close() error
}
