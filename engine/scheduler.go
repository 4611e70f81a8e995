// Package engine drives the per-frame task at a fixed rate.
package engine

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// ErrStop is returned by a Task to end the loop without reporting an error
var ErrStop = errors.New("engine: stop requested")

// Task is invoked once per frame from the scheduler goroutine
// dt is the wall time since the previous frame, zero for the first
type Task interface {
	Frame(ctx context.Context, frame uint64, dt time.Duration) error
}

// TaskFunc adapts a function to Task
type TaskFunc func(ctx context.Context, frame uint64, dt time.Duration) error

func (f TaskFunc) Frame(ctx context.Context, frame uint64, dt time.Duration) error {
	return f(ctx, frame, dt)
}

// Scheduler runs a task on a fixed interval with drift correction
// Deadlines advance by the interval rather than from the end of the previous frame, so a slow
// frame is absorbed by shorter sleeps afterwards. Falling more than two intervals behind resets
// the deadline instead of bursting to catch up.
type Scheduler struct {
	task     Task
	interval atomic.Int64 // nanoseconds

	frames  atomic.Uint64
	running atomic.Bool

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewScheduler creates a scheduler; non-positive interval panics
func NewScheduler(interval time.Duration, task Task) *Scheduler {
	if interval <= 0 {
		panic("engine: non-positive scheduler interval")
	}
	s := &Scheduler{
		task:   task,
		stopCh: make(chan struct{}),
	}
	s.interval.Store(int64(interval))
	return s
}

// Interval returns the current frame interval
func (s *Scheduler) Interval() time.Duration {
	return time.Duration(s.interval.Load())
}

// SetInterval changes the frame interval from the next deadline on; non-positive is ignored
func (s *Scheduler) SetInterval(d time.Duration) {
	if d > 0 {
		s.interval.Store(int64(d))
	}
}

// Frames returns the number of completed frames
func (s *Scheduler) Frames() uint64 {
	return s.frames.Load()
}

// Running reports whether Run is active
func (s *Scheduler) Running() bool {
	return s.running.Load()
}

// Stop ends the loop after the current frame; safe to call repeatedly and from the task
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
}

// Run blocks, invoking the task every interval until Stop, context cancellation, or a task
// error. ErrStop from the task ends the loop with a nil result, as do Stop and cancellation.
// The first frame runs immediately.
func (s *Scheduler) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return errors.New("engine: scheduler already running")
	}
	defer s.running.Store(false)

	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	var last time.Time
	next := time.Now()

	for {
		select {
		case <-s.stopCh:
			return nil
		case <-ctx.Done():
			return nil
		default:
		}

		now := time.Now()
		var dt time.Duration
		if !last.IsZero() {
			dt = now.Sub(last)
		}
		last = now

		frame := s.frames.Load()
		if err := s.task.Frame(ctx, frame, dt); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}
		s.frames.Add(1)

		interval := s.Interval()
		next = next.Add(interval)
		now = time.Now()
		if now.Sub(next) > 2*interval {
			next = now.Add(interval)
		}

		sleep := next.Sub(now)
		if sleep <= 0 {
			continue
		}
		timer.Reset(sleep)
		select {
		case <-timer.C:
		case <-s.stopCh:
			return nil
		case <-ctx.Done():
			return nil
		}
	}
}
