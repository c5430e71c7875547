// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// metric.go — metric type tags and per-key series state: the pending
// buffer filled by Record between cycles, and the published state produced
// by the reduction cycle.

package vitals

import "time"

// MetricType determines how samples for a key are buffered and reduced.
// The first Record call for a key binds its type permanently.
type MetricType int

const (
	// Last keeps only the most recent raw value.
	Last MetricType = iota
	// Discrete keeps a bounded, timestamped event log.
	Discrete
	// Continuous is a smoothed scalar; within one cycle only the largest
	// sample survives into the reduction step.
	Continuous
	// ContinuousMax reduces identically to Continuous. It exists as a
	// distinct tag so producers can label a signal as an explicit maximum.
	ContinuousMax
	// ContinuousSum is a smoothed rate: buffered samples are summed and
	// divided by the cycle period to yield a per-second value.
	ContinuousSum
)

// String returns the lowercase name of the metric type.
func (t MetricType) String() string {
	switch t {
	case Last:
		return "last"
	case Discrete:
		return "discrete"
	case Continuous:
		return "continuous"
	case ContinuousMax:
		return "continuous_max"
	case ContinuousSum:
		return "continuous_sum"
	default:
		return "unknown"
	}
}

func (t MetricType) valid() bool {
	return t >= Last && t <= ContinuousSum
}

// Point is one timestamped discrete event.
type Point struct {
	Timestamp int64   `json:"ts" msgpack:"ts"`
	Value     float64 `json:"value" msgpack:"value"`
}

// series holds all state for one metric key. All access is guarded by the
// owning Recorder's mutex.
type series struct {
	typ MetricType

	// Pending buffer, cleared after every reduction cycle.
	hasPending    bool    // Last, Continuous, ContinuousMax
	pendingScalar float64 // overwritten (Last) or running max (Continuous*)
	pendingSums   []float64
	pendingEvents []Point

	// Published state, exposed through Snapshot.
	published bool       // a Last or continuous value has been published
	scalar    float64    // Last
	smoothed  [4]float64 // continuous family: raw, s1, s2, s3
	events    []Point    // Discrete, oldest first, len <= DiscLen
}

// ingest buffers one raw sample according to the series type.
func (s *series) ingest(value float64, now time.Time, maxBuffer int) {
	switch s.typ {
	case Last:
		s.pendingScalar = value
		s.hasPending = true
	case Continuous, ContinuousMax:
		if !s.hasPending || value > s.pendingScalar {
			s.pendingScalar = value
		}
		s.hasPending = true
	case ContinuousSum:
		s.pendingSums = append(s.pendingSums, value)
		if len(s.pendingSums) > maxBuffer {
			s.pendingSums = s.pendingSums[len(s.pendingSums)-maxBuffer:]
		}
	case Discrete:
		s.pendingEvents = append(s.pendingEvents, Point{Timestamp: now.Unix(), Value: value})
		if len(s.pendingEvents) > maxBuffer {
			s.pendingEvents = s.pendingEvents[len(s.pendingEvents)-maxBuffer:]
		}
	}
}

// reduce folds the pending buffer into the published state and clears it.
// freqSeconds is the cycle period used to normalise ContinuousSum rates.
func (s *series) reduce(decay [3]float64, freqSeconds float64, discLen int) {
	switch s.typ {
	case Continuous, ContinuousMax:
		if s.hasPending {
			s.smooth(decay, s.pendingScalar)
		} else if s.published {
			// No sample this cycle: re-smooth the previous raw value so
			// the slower horizons keep advancing toward steady state.
			s.smooth(decay, s.smoothed[0])
		}
	case ContinuousSum:
		if len(s.pendingSums) > 0 {
			var sum float64
			for _, v := range s.pendingSums {
				sum += v
			}
			s.smooth(decay, sum/freqSeconds)
		} else if s.published {
			s.smooth(decay, s.smoothed[0])
		}
	case Discrete:
		if len(s.pendingEvents) > 0 {
			s.events = append(s.events, s.pendingEvents...)
			if len(s.events) > discLen {
				s.events = append(s.events[:0:0], s.events[len(s.events)-discLen:]...)
			}
		}
	case Last:
		if s.hasPending {
			s.scalar = s.pendingScalar
			s.published = true
		}
	}
	s.clearPending()
}

func (s *series) clearPending() {
	s.hasPending = false
	s.pendingScalar = 0
	s.pendingSums = s.pendingSums[:0]
	s.pendingEvents = s.pendingEvents[:0]
}
