package vitals_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/AndrewDonelson/vitals"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureSink records every payload it receives.
type captureSink struct {
	mu     sync.Mutex
	writes [][]byte
	closed bool
}

func (s *captureSink) Write(_ context.Context, _ time.Time, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(payload))
	copy(cp, payload)
	s.writes = append(s.writes, cp)
	return nil
}

func (s *captureSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *captureSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.writes)
}

func (s *captureSink) last() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.writes) == 0 {
		return nil
	}
	return s.writes[len(s.writes)-1]
}

// failSink always fails; the engine must log, count, and carry on.
type failSink struct{}

func (failSink) Write(_ context.Context, _ time.Time, _ []byte) error {
	return errors.New("boom")
}
func (failSink) Close() error { return nil }

func TestEngine_PeriodicCycleDeliversToSinks(t *testing.T) {
	cs := &captureSink{}
	r, err := vitals.New(vitals.Config{
		Freq:  20 * time.Millisecond,
		Delay: 10 * time.Millisecond,
		Sinks: []vitals.Sink{cs},
	})
	require.NoError(t, err)
	defer r.Close()

	r.Record("cpu", 42)

	require.Eventually(t, func() bool { return cs.count() >= 2 },
		2*time.Second, 5*time.Millisecond)

	var out map[string]any
	require.NoError(t, json.Unmarshal(cs.last(), &out))
	assert.Contains(t, out, "cpu")
	assert.Contains(t, out, "heartbeat")
}

func TestEngine_CloseRunsFinalCycle(t *testing.T) {
	cs := &captureSink{}
	r, err := vitals.New(vitals.Config{
		Freq:  time.Hour,
		Delay: time.Hour, // timer never fires; only Close produces output
		Sinks: []vitals.Sink{cs},
	})
	require.NoError(t, err)

	r.Record("cpu", 7)
	require.NoError(t, r.Close())

	require.Equal(t, 1, cs.count())
	assert.True(t, cs.closed)

	var out map[string]any
	require.NoError(t, json.Unmarshal(cs.last(), &out))
	assert.Contains(t, out, "cpu")
}

func TestEngine_SinkFailureDoesNotDisturbState(t *testing.T) {
	r, err := vitals.New(vitals.Config{
		Freq:  5 * time.Second,
		Delay: time.Hour,
		Sinks: []vitals.Sink{failSink{}},
	})
	require.NoError(t, err)
	defer r.Close()

	r.Record("cpu", 10)
	err = r.Flush(context.Background())
	assert.Error(t, err)

	// State stayed valid and the next cycle proceeds normally.
	assert.Equal(t, [4]float64{10, 10, 10, 10}, r.Snapshot()["cpu"].Smoothed)
	assert.GreaterOrEqual(t, r.Stats().SinkErrors, int64(1))
}

func TestFlush_DeliversOnDemand(t *testing.T) {
	cs := &captureSink{}
	r, err := vitals.New(vitals.Config{
		Freq:  time.Hour,
		Delay: time.Hour,
		Sinks: []vitals.Sink{cs},
	})
	require.NoError(t, err)
	defer r.Close()

	r.RecordType("mode", vitals.Last, 3)
	require.NoError(t, r.Flush(context.Background()))
	require.Equal(t, 1, cs.count())

	var out map[string]any
	require.NoError(t, json.Unmarshal(cs.last(), &out))
	assert.Equal(t, 3.0, out["mode"])
}
