package vitals

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/AndrewDonelson/vitals/internal/clock"
	"github.com/AndrewDonelson/vitals/internal/codec"
	"github.com/AndrewDonelson/vitals/internal/sink"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Re-export types so callers only import this package.
type Codec = codec.Codec
type Clock = clock.Clock

// JSONCodec returns the default human-readable snapshot codec.
func JSONCodec() Codec { return codec.JSON{} }

// MsgPackCodec returns the compact binary snapshot codec.
func MsgPackCodec() Codec { return codec.MsgPack{} }

// ────────────────────────────────────────────────────────────────────────────
// Config
// ────────────────────────────────────────────────────────────────────────────

// Config contains all Recorder configuration.
type Config struct {
	// Cycle timing
	Freq  time.Duration // reduction period
	Delay time.Duration // warm-up before the first timed cycle

	// Bounds
	DiscLen   int // published discrete-history length per key
	MaxBuffer int // max pending samples per key between cycles

	// HeartbeatKey is the Last-typed key stamped with the current Unix
	// timestamp at the start of every cycle.
	HeartbeatKey string

	// Built-in sink wiring. Zero values leave a sink disabled.
	HealthFilePath string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisKey       string
	RedisChannel   string
	RedisTTL       time.Duration
	PostgresDSN    string
	PostgresTable  string

	// Sinks are additional destinations beyond the built-ins.
	Sinks []Sink

	// Optional overrideable components
	Clock  clock.Clock
	Codec  codec.Codec
	Logger Logger
}

func (c *Config) defaults() {
	if c.Freq == 0 {
		c.Freq = 5 * time.Second
	}
	if c.Delay == 0 {
		c.Delay = 5 * time.Second
	}
	if c.DiscLen == 0 {
		c.DiscLen = 5
	}
	if c.MaxBuffer == 0 {
		c.MaxBuffer = 1000
	}
	if c.HeartbeatKey == "" {
		c.HeartbeatKey = "heartbeat"
	}
	if c.RedisKey == "" {
		c.RedisKey = "vitals:snapshot"
	}
	if c.RedisChannel == "" {
		c.RedisChannel = "vitals:updates"
	}
	if c.RedisTTL == 0 {
		c.RedisTTL = time.Minute
	}
	if c.PostgresTable == "" {
		c.PostgresTable = "vitals_snapshots"
	}
	if c.Clock == nil {
		c.Clock = clock.Real{}
	}
	if c.Codec == nil {
		c.Codec = codec.JSON{}
	}
	if c.Logger == nil {
		c.Logger = noopLogger{}
	}
}

func (c *Config) validate() error {
	if c.Freq < 0 || c.Delay < 0 {
		return fmt.Errorf("%w: negative cycle timing", ErrInvalidConfig)
	}
	if c.DiscLen < 0 || c.MaxBuffer < 0 {
		return fmt.Errorf("%w: negative buffer bound", ErrInvalidConfig)
	}
	return nil
}

// ────────────────────────────────────────────────────────────────────────────
// Stats
// ────────────────────────────────────────────────────────────────────────────

type recorderStats struct {
	Samples    atomic.Int64
	Mismatches atomic.Int64
	Cycles     atomic.Int64
	SinkErrors atomic.Int64
}

// Stats is the snapshot returned by Recorder.Stats().
type Stats struct {
	Samples    int64 // samples accepted by Record
	Mismatches int64 // samples dropped on type mismatch or unknown type
	Cycles     int64 // reduction cycles completed
	SinkErrors int64 // failed sink writes
	Keys       int   // keys with a bound type
}

// ────────────────────────────────────────────────────────────────────────────
// Recorder
// ────────────────────────────────────────────────────────────────────────────

// Recorder owns all per-key metric state. Producers call Record from any
// goroutine; a periodic engine reduces pending samples into published
// values and fans the snapshot out to the configured sinks.
type Recorder struct {
	cfg    Config
	clock  clock.Clock
	logger Logger
	decay  [3]float64

	mu     sync.Mutex
	series map[string]*series

	sinks  []Sink
	engine *engine
	stats  recorderStats
	closed atomic.Bool
}

// New creates and starts a Recorder from the provided Config.
func New(cfg Config) (*Recorder, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.defaults()

	r := &Recorder{
		cfg:    cfg,
		clock:  cfg.Clock,
		logger: cfg.Logger,
		decay:  deriveDecay(cfg.Freq),
		series: make(map[string]*series),
	}

	// Health file
	if cfg.HealthFilePath != "" {
		r.sinks = append(r.sinks, sink.NewFile(cfg.HealthFilePath))
	}

	// Redis
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		r.sinks = append(r.sinks, sink.NewRedis(sink.RedisOptions{
			Client:  client,
			Key:     cfg.RedisKey,
			Channel: cfg.RedisChannel,
			TTL:     cfg.RedisTTL,
		}))
	}

	// Postgres
	if cfg.PostgresDSN != "" {
		pool, err := pgxpool.New(context.Background(), cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("vitals: postgres pool: %w", err)
		}
		pg := sink.NewPostgres(pool, cfg.PostgresTable)
		if err := pg.Init(context.Background()); err != nil {
			pool.Close()
			return nil, fmt.Errorf("vitals: postgres sink: %w", err)
		}
		r.sinks = append(r.sinks, pg)
	}

	r.sinks = append(r.sinks, cfg.Sinks...)

	r.engine = newEngine(r)
	r.engine.start()

	return r, nil
}

// ────────────────────────────────────────────────────────────────────────────
// Ingestion
// ────────────────────────────────────────────────────────────────────────────

// Record buffers a sample for key as a Continuous metric.
func (r *Recorder) Record(key string, value float64) {
	r.RecordType(key, Continuous, value)
}

// RecordType buffers a sample for key under the given metric type. The
// first call for a key binds its type permanently; later calls with a
// different type leave all state untouched and are reported through the
// diagnostic logger. RecordType never fails hard and performs no I/O.
func (r *Recorder) RecordType(key string, typ MetricType, value float64) {
	if r.closed.Load() {
		return
	}
	r.record(key, typ, value)
}

func (r *Recorder) record(key string, typ MetricType, value float64) {
	if !typ.valid() {
		r.stats.Mismatches.Add(1)
		r.logger.Warn("vitals: unknown metric type", "key", key, "type", int(typ))
		return
	}
	now := r.clock.Now()

	r.mu.Lock()
	s, ok := r.series[key]
	if !ok {
		s = &series{typ: typ}
		r.series[key] = s
	} else if s.typ != typ {
		r.mu.Unlock()
		r.stats.Mismatches.Add(1)
		r.logger.Warn("vitals: metric type mismatch",
			"key", key, "bound", s.typ.String(), "got", typ.String())
		return
	}
	s.ingest(value, now, r.cfg.MaxBuffer)
	r.mu.Unlock()

	r.stats.Samples.Add(1)
}

// ────────────────────────────────────────────────────────────────────────────
// Reduction
// ────────────────────────────────────────────────────────────────────────────

// Cycle runs one reduction immediately and returns the resulting snapshot.
// It stamps the heartbeat key, folds every key's pending buffer into its
// published state, and clears all pending buffers. The timed engine calls
// this once per Freq; tests and shutdown paths may call it directly.
func (r *Recorder) Cycle() Snapshot {
	r.record(r.cfg.HeartbeatKey, Last, float64(r.clock.Now().Unix()))

	r.mu.Lock()
	freq := r.cfg.Freq.Seconds()
	for _, s := range r.series {
		s.reduce(r.decay, freq, r.cfg.DiscLen)
	}
	snap := r.snapshotLocked()
	r.mu.Unlock()

	r.stats.Cycles.Add(1)
	return snap
}

// Flush forces one reduction cycle and delivers the snapshot to every
// configured sink without waiting for the timer. It returns the first sink
// error encountered; recorder state is valid regardless.
func (r *Recorder) Flush(ctx context.Context) error {
	snap := r.Cycle()
	return r.deliver(ctx, snap)
}

// deliver marshals snap once and hands it to each sink in order.
func (r *Recorder) deliver(ctx context.Context, snap Snapshot) error {
	if len(r.sinks) == 0 {
		return nil
	}
	payload, err := r.cfg.Codec.Marshal(snap.Export())
	if err != nil {
		r.logger.Error("vitals: snapshot encode failed",
			"codec", r.cfg.Codec.Name(), "err", err)
		return fmt.Errorf("%w: %v", ErrEncodeFailed, err)
	}
	recordedAt := r.clock.Now()
	var firstErr error
	for _, s := range r.sinks {
		if err := s.Write(ctx, recordedAt, payload); err != nil {
			r.stats.SinkErrors.Add(1)
			r.logger.Error("vitals: sink write failed", "err", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// ────────────────────────────────────────────────────────────────────────────
// Read side
// ────────────────────────────────────────────────────────────────────────────

// Snapshot returns the published state as of the most recent cycle. The
// returned map is a deep copy and safe to retain.
func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *Recorder) snapshotLocked() Snapshot {
	snap := make(Snapshot, len(r.series))
	for key, s := range r.series {
		switch s.typ {
		case Discrete:
			if len(s.events) == 0 {
				continue
			}
			events := make([]Point, len(s.events))
			copy(events, s.events)
			snap[key] = Published{Type: Discrete, Events: events}
		case Last:
			if !s.published {
				continue
			}
			snap[key] = Published{Type: Last, Scalar: s.scalar}
		case Continuous, ContinuousMax, ContinuousSum:
			if !s.published {
				continue
			}
			snap[key] = Published{Type: s.typ, Smoothed: s.smoothed}
		}
	}
	return snap
}

// Stats returns a snapshot of operational counters.
func (r *Recorder) Stats() Stats {
	r.mu.Lock()
	keys := len(r.series)
	r.mu.Unlock()
	return Stats{
		Samples:    r.stats.Samples.Load(),
		Mismatches: r.stats.Mismatches.Load(),
		Cycles:     r.stats.Cycles.Load(),
		SinkErrors: r.stats.SinkErrors.Load(),
		Keys:       keys,
	}
}

// ────────────────────────────────────────────────────────────────────────────
// Close
// ────────────────────────────────────────────────────────────────────────────

// Close stops the reduction timer, runs one final cycle with sink
// delivery, and closes every sink. Close is idempotent.
func (r *Recorder) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}
	r.engine.stop()
	var firstErr error
	for _, s := range r.sinks {
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
