// Package polling implements the wait-for-terminal-state loop used by
// long-running API operations. A poll repeatedly invokes an idempotent
// fetch with growing delay until a terminal value, a failure value, or a
// timeout is observed.
package polling

import (
	"context"
	"fmt"
	"time"
)

// Default polling configuration values.
const (
	DefaultInitialDelay  = 2 * time.Second
	DefaultMaxDelay      = 30 * time.Second
	DefaultBackoffFactor = 1.5
	DefaultTimeout       = 3 * time.Minute
	DefaultMaxAttempts   = 60
)

// Spec describes one polled operation. A Spec is created fresh per
// operation and holds no state between Wait calls.
type Spec[T any] struct {
	// Fetch retrieves the current value. It must be idempotent.
	Fetch func(ctx context.Context) (T, error)

	// Done reports whether the value is terminal. Required.
	Done func(T) bool

	// Failed reports whether the value is an explicit remote failure.
	// Optional; evaluated before Done on every cycle.
	Failed func(T) bool

	// InitialDelay is the delay after the first non-terminal fetch.
	InitialDelay time.Duration

	// MaxDelay caps the growing delay between fetches.
	MaxDelay time.Duration

	// BackoffFactor multiplies the delay after each cycle.
	BackoffFactor float64

	// Timeout is the overall wall-clock budget for the poll.
	Timeout time.Duration

	// MaxAttempts bounds the number of fetch calls.
	MaxAttempts int

	// OnPoll, when set, fires after every fetch (including the first),
	// before the predicates are evaluated. A panicking callback never
	// aborts the poll.
	OnPoll func(attempt int, value T)
}

func (s *Spec[T]) normalize() {
	if s.InitialDelay <= 0 {
		s.InitialDelay = DefaultInitialDelay
	}
	if s.MaxDelay <= 0 {
		s.MaxDelay = DefaultMaxDelay
	}
	if s.BackoffFactor <= 1 {
		s.BackoffFactor = DefaultBackoffFactor
	}
	if s.Timeout <= 0 {
		s.Timeout = DefaultTimeout
	}
	if s.MaxAttempts <= 0 {
		s.MaxAttempts = DefaultMaxAttempts
	}
}

// Outcome is the terminal state of a poll.
type Outcome int

const (
	// OutcomeCompleted means the Done predicate matched.
	OutcomeCompleted Outcome = iota + 1
	// OutcomeFailed means the Failed predicate matched, or the fetch
	// itself failed on the last allowed attempt.
	OutcomeFailed
	// OutcomeTimedOut means the time or attempt budget ran out before a
	// terminal value was observed. The remote operation may still
	// complete afterwards; a timed-out poll is "unknown", not "failed".
	OutcomeTimedOut
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeFailed:
		return "failed"
	case OutcomeTimedOut:
		return "timed_out"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result is the outcome of one Wait call. Value is set for Completed and
// for predicate-matched Failed results; Err is set when the fetch itself
// failed or the caller's context was cancelled.
type Result[T any] struct {
	Outcome  Outcome
	Value    T
	Err      error
	Attempts int
	Elapsed  time.Duration
}

// Wait drives the poll to one of its three terminal outcomes. There is no
// transition back out of a terminal outcome: the first match wins.
func Wait[T any](ctx context.Context, spec Spec[T]) Result[T] {
	spec.normalize()

	start := time.Now()
	delay := spec.InitialDelay

	for attempt := 1; ; attempt++ {
		value, err := spec.Fetch(ctx)
		if err != nil {
			// Transient fetch failures are tolerated mid-poll; only the
			// last allowed attempt surfaces them.
			if attempt >= spec.MaxAttempts {
				return Result[T]{
					Outcome:  OutcomeFailed,
					Err:      err,
					Attempts: attempt,
					Elapsed:  time.Since(start),
				}
			}
		} else {
			notify(spec.OnPoll, attempt, value)

			if spec.Failed != nil && spec.Failed(value) {
				return Result[T]{
					Outcome:  OutcomeFailed,
					Value:    value,
					Attempts: attempt,
					Elapsed:  time.Since(start),
				}
			}
			if spec.Done(value) {
				return Result[T]{
					Outcome:  OutcomeCompleted,
					Value:    value,
					Attempts: attempt,
					Elapsed:  time.Since(start),
				}
			}
		}

		elapsed := time.Since(start)
		if elapsed >= spec.Timeout || attempt >= spec.MaxAttempts {
			return Result[T]{
				Outcome:  OutcomeTimedOut,
				Attempts: attempt,
				Elapsed:  elapsed,
			}
		}

		sleep := delay
		if remaining := spec.Timeout - elapsed; sleep > remaining {
			sleep = remaining
		}

		timer := time.NewTimer(sleep)
		select {
		case <-ctx.Done():
			timer.Stop()
			return Result[T]{
				Outcome:  OutcomeFailed,
				Err:      ctx.Err(),
				Attempts: attempt,
				Elapsed:  time.Since(start),
			}
		case <-timer.C:
		}

		delay = time.Duration(float64(delay) * spec.BackoffFactor)
		if delay > spec.MaxDelay {
			delay = spec.MaxDelay
		}
	}
}

// notify invokes the progress callback, swallowing panics so a broken
// callback cannot abort the poll.
func notify[T any](fn func(int, T), attempt int, value T) {
	if fn == nil {
		return
	}
	defer func() {
		_ = recover()
	}()
	fn(attempt, value)
}
