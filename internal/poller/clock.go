package poller

import "time"

// Clock is an interface for time-related functions to allow for mocking.
type Clock interface {
	NewTimer(d time.Duration) Timer
}

// Timer is the part of *time.Timer the worker needs.
type Timer interface {
	C() <-chan time.Time
	Stop() bool
}

// RealClock is a real implementation of the Clock interface.
type RealClock struct{}

func (c *RealClock) NewTimer(d time.Duration) Timer {
	return &realTimer{t: time.NewTimer(d)}
}

type realTimer struct {
	t *time.Timer
}

func (r *realTimer) C() <-chan time.Time {
	return r.t.C
}

func (r *realTimer) Stop() bool {
	return r.t.Stop()
}
