// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// errors.go — sentinel error variables returned by the public Vitals API,
// covering configuration validation, lifecycle, and snapshot delivery.

// Package vitals provides a lightweight, in-process metrics recorder:
// producers publish raw key/value samples at arbitrary rates, and the
// recorder periodically reduces each key's accumulated samples into a
// smoothed, bounded representation suitable for health files, monitoring
// endpoints, and dashboards.
package vitals

import "errors"

// Config errors
var (
	ErrInvalidConfig = errors.New("vitals: invalid configuration")
)

// Lifecycle errors
var (
	ErrClosed = errors.New("vitals: recorder closed")
)

// Delivery errors
var (
	ErrEncodeFailed = errors.New("vitals: failed to encode snapshot")
)
