// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// snapshot.go — Snapshot and Published value types: the read side of the
// recorder, handed to sinks and served by the HTTP handler.

package vitals

// Published is the reduced value for one key as of the last cycle.
// Exactly one of the value fields is meaningful, selected by Type.
type Published struct {
	Type     MetricType
	Scalar   float64    // Last
	Smoothed [4]float64 // continuous family: raw, 1m, 5m, 15m horizons
	Events   []Point    // Discrete, oldest first
}

// Snapshot maps metric keys to their most recent published values.
// Keys that have not yet published anything are absent.
type Snapshot map[string]Published

// Export flattens the snapshot into the nested form serialised for sinks:
// a bare scalar for Last keys, a 4-element array for the continuous
// family, and an ordered list of timestamp/value pairs for Discrete keys.
func (s Snapshot) Export() map[string]any {
	out := make(map[string]any, len(s))
	for key, p := range s {
		switch p.Type {
		case Last:
			out[key] = p.Scalar
		case Discrete:
			out[key] = p.Events
		case Continuous, ContinuousMax, ContinuousSum:
			out[key] = p.Smoothed
		}
	}
	return out
}
