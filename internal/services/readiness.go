package services

import "sync/atomic"

// Readiness tracks whether the server accepts traffic.
// The zero value is not ready.
type Readiness struct {
	ready atomic.Bool
}

// NewReadiness creates a Readiness in the not ready state.
func NewReadiness() *Readiness {
	return &Readiness{}
}

// SetReady marks the server ready or not ready.
func (r *Readiness) SetReady(ready bool) {
	r.ready.Store(ready)
}

// IsReady reports whether the server accepts traffic.
func (r *Readiness) IsReady() bool {
	return r.ready.Load()
}
