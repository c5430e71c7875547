// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// file.go — health-file sink: writes each marshaled snapshot to a fixed
// path using write-temp-then-rename so readers never observe a partial
// file.

// Package sink provides the built-in snapshot destinations: health file,
// Redis key/channel, and a Postgres history table.
package sink

import (
	"context"
	"fmt"
	"os"
	"time"
)

// File replaces the file at Path with each snapshot it receives.
type File struct {
	path string
	perm os.FileMode
}

// NewFile creates a file sink writing to path with 0644 permissions.
func NewFile(path string) *File {
	return &File{path: path, perm: 0o644}
}

// Write atomically replaces the health file with payload.
func (f *File) Write(_ context.Context, _ time.Time, payload []byte) error {
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, payload, f.perm); err != nil {
		return fmt.Errorf("sink: write health file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("sink: replace health file: %w", err)
	}
	return nil
}

// Close is a no-op; the file sink holds no resources between writes.
func (f *File) Close() error { return nil }
