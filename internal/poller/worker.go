// Package poller runs the background loop that probes for pending upgrades
// and hands each result to the UI.
package poller

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mblarsen/update-notifier-tray/internal/probe"
)

// State is the phase the worker is in.
type State int32

const (
	Idle State = iota
	Probing
	Publishing
	Waiting
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Probing:
		return "probing"
	case Publishing:
		return "publishing"
	case Waiting:
		return "waiting"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// ProbeFunc performs one blocking probe.
type ProbeFunc func(ctx context.Context) probe.Result

// Worker repeatedly probes, publishes the result and sleeps for the interval.
// The sleep can be cut short by Rescan or Stop. A probe that has started
// always runs to completion and its result is published before the worker
// stops.
type Worker struct {
	probe    ProbeFunc
	interval time.Duration
	clock    Clock

	results chan probe.Result
	rescan  chan struct{}
	stop    chan struct{}
	done    chan struct{}

	startOnce sync.Once
	stopOnce  sync.Once
	state     atomic.Int32
}

// NewWorker creates a worker. It does nothing until Start is called.
func NewWorker(fn ProbeFunc, interval time.Duration, clock Clock) *Worker {
	if clock == nil {
		clock = &RealClock{}
	}
	return &Worker{
		probe:    fn,
		interval: interval,
		clock:    clock,
		results:  make(chan probe.Result, 1),
		rescan:   make(chan struct{}, 1),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Results delivers one result per probe. It is closed once the worker stops.
func (w *Worker) Results() <-chan probe.Result {
	return w.results
}

// Start launches the worker goroutine. Cancelling ctx stops the worker like
// Stop does. Probes get ctx's values but not its cancellation, so a running
// probe is never killed by it.
func (w *Worker) Start(ctx context.Context) {
	w.startOnce.Do(func() {
		go w.run(ctx)
	})
}

// Rescan asks for a probe right away, skipping the rest of the current wait.
// Requests made while a probe is running are coalesced into one.
func (w *Worker) Rescan() {
	select {
	case w.rescan <- struct{}{}:
	default:
	}
}

// Stop asks the worker to finish. It is safe to call more than once and does
// not wait; use Wait to join the worker.
func (w *Worker) Stop() {
	w.stopOnce.Do(func() {
		close(w.stop)
	})
}

// Wait blocks until the worker has stopped. A worker that was never started
// counts as stopped.
func (w *Worker) Wait() {
	w.startOnce.Do(func() {
		w.state.Store(int32(Stopped))
		close(w.results)
		close(w.done)
	})
	<-w.done
}

// Done is closed once the worker has stopped.
func (w *Worker) Done() <-chan struct{} {
	return w.done
}

// State returns the current phase.
func (w *Worker) State() State {
	return State(w.state.Load())
}

func (w *Worker) setState(s State) {
	w.state.Store(int32(s))
	slog.Debug("Poller state", "state", s)
}

func (w *Worker) run(ctx context.Context) {
	defer close(w.done)
	defer close(w.results)
	defer w.setState(Stopped)

	probeCtx := context.WithoutCancel(ctx)
	for {
		if w.stopping(ctx) {
			return
		}

		w.setState(Probing)
		res := w.runProbe(probeCtx)
		if res.OK() {
			slog.Info("Probe finished", "updates", res.Count)
		} else {
			slog.Warn("Probe failed", "err", res.Err)
		}

		w.setState(Publishing)
		w.publish(res)

		if !w.wait(ctx) {
			return
		}
	}
}

func (w *Worker) stopping(ctx context.Context) bool {
	select {
	case <-w.stop:
		return true
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// runProbe turns a panicking probe into an error result so the loop survives.
func (w *Worker) runProbe(ctx context.Context) (res probe.Result) {
	defer func() {
		if r := recover(); r != nil {
			res = probe.Failed(fmt.Errorf("probe panicked: %v", r))
		}
	}()
	return w.probe(ctx)
}

func (w *Worker) publish(res probe.Result) {
	select {
	case w.results <- res:
	case <-w.stop:
		// Nobody may be draining any more; keep the result only if there is room.
		select {
		case w.results <- res:
		default:
			slog.Debug("Dropping probe result after stop", "result", res)
		}
	}
}

// wait sleeps for the interval and reports whether to probe again.
func (w *Worker) wait(ctx context.Context) bool {
	timer := w.clock.NewTimer(w.interval)
	defer timer.Stop()
	w.setState(Waiting)

	slog.Debug("Waiting for next probe", "interval", w.interval)
	select {
	case <-timer.C():
		return true
	case <-w.rescan:
		slog.Info("Rescan requested")
		return true
	case <-w.stop:
		return false
	case <-ctx.Done():
		return false
	}
}
