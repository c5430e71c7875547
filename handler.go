// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// handler.go — http.Handler serving the current exported snapshot; mount
// it on a /health or /vitals route of the host's mux.

package vitals

import "net/http"

// Handler returns an http.Handler that serves the most recent exported
// snapshot, marshaled by the configured codec.
func (r *Recorder) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		payload, err := r.cfg.Codec.Marshal(r.Snapshot().Export())
		if err != nil {
			http.Error(w, "vitals: snapshot encode failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", contentType(r.cfg.Codec.Name()))
		_, _ = w.Write(payload)
	})
}

func contentType(codecName string) string {
	switch codecName {
	case "json":
		return "application/json"
	case "msgpack":
		return "application/x-msgpack"
	default:
		return "application/octet-stream"
	}
}
