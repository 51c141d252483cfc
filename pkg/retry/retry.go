// Package retry implements the bounded, fixed-delay retry loop that
// drives staging transitions against the remote repository manager.
//
// The loop itself is deliberately dumb: it invokes an Operation until
// the operation reports success or aborts, or the attempt budget is
// spent. All classification of results, in particular whether a
// transport error is worth another attempt, is the operation's
// responsibility rather than the retrier's.
package retry

import (
	"context"
	"fmt"
)

type outcomeKind int

const (
	outcomeSuccess outcomeKind = iota
	outcomeRetryable
	outcomeFatal
)

// Outcome is the result of a single attempt, as classified by the
// operation itself.
type Outcome struct {
	kind   outcomeKind
	reason string
	err    error
}

// Done reports a successful attempt. The loop stops and Run returns
// nil; operations deliver values by closing over a result variable.
func Done() Outcome {
	return Outcome{kind: outcomeSuccess}
}

// Retry reports a failed attempt that is worth repeating. The reason
// is kept verbatim and surfaced if the attempt budget runs out.
func Retry(reason string) Outcome {
	return Outcome{kind: outcomeRetryable, reason: reason}
}

// Abort reports an attempt that failed in a way another attempt cannot
// fix. Run stops immediately and returns err unchanged.
func Abort(err error) Outcome {
	return Outcome{kind: outcomeFatal, err: err}
}

// Operation performs one attempt of some remote action and classifies
// the result. It receives the context given to Run so in-flight calls
// can honour cancellation themselves if they wish.
type Operation func(ctx context.Context) Outcome

// Retrier runs operations under a fixed policy. It holds no per-run
// state, so a single Retrier may be shared by concurrent callers;
// attempts within one Run are strictly sequential and never overlap.
type Retrier struct {
	policy Policy
	clock  Clock
}

// Option configures a Retrier beyond its policy.
type Option func(*Retrier)

// WithClock substitutes the clock used for inter-attempt delays.
// Tests use this to avoid real sleeps.
func WithClock(c Clock) Option {
	return func(r *Retrier) { r.clock = c }
}

// New returns a Retrier governed by the given policy. A policy with
// MaxAttempts below one behaves as a single attempt.
func New(policy Policy, opts ...Option) *Retrier {
	r := &Retrier{policy: policy, clock: systemClock{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run invokes op until it reports Done or Abort, or the policy's
// attempt budget is spent, in which case it returns an
// *ExhaustedError carrying the last retryable reason. The policy
// delay is slept between attempts, never before the first nor after
// the last. Cancelling ctx stops the loop between attempts and during
// delays with a *CanceledError; an attempt already in flight is not
// interrupted.
func (r *Retrier) Run(ctx context.Context, op Operation) error {
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return &CanceledError{Attempts: attempt - 1, Err: err}
		}
		outcome := op(ctx)
		switch outcome.kind {
		case outcomeSuccess:
			return nil
		case outcomeFatal:
			return outcome.err
		}
		if attempt >= r.policy.MaxAttempts {
			return &ExhaustedError{Attempts: attempt, LastReason: outcome.reason}
		}
		if r.policy.Delay > 0 {
			select {
			case <-ctx.Done():
				return &CanceledError{Attempts: attempt, Err: ctx.Err()}
			case <-r.clock.After(r.policy.Delay):
			}
		}
	}
}

// ExhaustedError is returned by Run when every attempt the policy
// allows has been spent and the outcome was still retryable.
type ExhaustedError struct {
	Attempts   int
	LastReason string
}

func (e *ExhaustedError) Error() string {
	if e.LastReason == "" {
		return fmt.Sprintf("gave up after %d attempts", e.Attempts)
	}
	return fmt.Sprintf("gave up after %d attempts: %s", e.Attempts, e.LastReason)
}

// IsExhausted reports whether err is an ExhaustedError.
func IsExhausted(err error) bool {
	switch err.(type) {
	case *ExhaustedError:
		return true
	}
	return false
}

// CanceledError is returned by Run when the context is cancelled
// between attempts or during an inter-attempt delay. Attempts counts
// the attempts that completed before cancellation was observed.
type CanceledError struct {
	Attempts int
	Err      error
}

func (e *CanceledError) Error() string {
	return fmt.Sprintf("canceled after %d attempts: %v", e.Attempts, e.Err)
}

func (e *CanceledError) Unwrap() error { return e.Err }

// IsCanceled reports whether err is a CanceledError.
func IsCanceled(err error) bool {
	switch err.(type) {
	case *CanceledError:
		return true
	}
	return false
}
