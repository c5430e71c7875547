// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// smooth.go — decay-constant derivation and the exponential smoothing
// update applied to the continuous metric family each reduction cycle.

package vitals

import (
	"math"
	"time"
)

// deriveDecay computes the three smoothing constants for a cycle period.
// The base constant approximates a one-minute load-average decay at that
// period; the second and third are its 5th and 15th powers, producing the
// familiar 1/5/15-minute horizon family.
func deriveDecay(freq time.Duration) [3]float64 {
	d := 1 - math.Exp(-freq.Seconds()/60)
	return [3]float64{d, math.Pow(d, 5), math.Pow(d, 15)}
}

// smooth folds a freshly reduced scalar into the 4-slot published state.
// Slot 0 holds the raw value; slots 1..3 hold the progressively slower
// horizons. Every slot starts at v on first use.
func (s *series) smooth(decay [3]float64, v float64) {
	if !s.published {
		s.smoothed = [4]float64{v, v, v, v}
		s.published = true
		return
	}
	s.smoothed[0] = v
	for i, d := range decay {
		s.smoothed[i+1] = d*v + (1-d)*s.smoothed[i+1]
	}
}
