package staging

import (
	"context"
	"fmt"

	"github.com/stagecraft/stagectl/pkg/retry"
)

// FetchState reports the current state of a staging repository,
// normally by asking the remote service. Implementations decide for
// themselves what to do with transport errors; the poller only
// classifies the errors it is handed via Retryable.
type FetchState func(ctx context.Context, repositoryID string) (State, error)

// Observation is handed to a poller's observer after every successful
// state fetch, so callers can show progress without the poller
// knowing anything about terminals or logs.
type Observation struct {
	RepositoryID string
	Attempt      int
	State        State
}

// Poller watches a single repository until it arrives at an expected
// state, the server reports a failure state, or the retry policy's
// attempt budget runs out. It never mutates anything remotely; each
// attempt re-queries the source of truth through Fetch.
type Poller struct {
	Fetch  FetchState
	Policy retry.Policy

	// Retryable classifies errors returned by Fetch. Errors it
	// reports true for count as one spent attempt and the poll
	// continues; everything else aborts the poll. A nil Retryable
	// aborts on any error.
	Retryable func(error) bool

	// Observer, if set, is called after each state observation.
	Observer func(Observation)

	// Clock is substituted by tests; nil means the system clock.
	Clock retry.Clock
}

// Await polls until the repository reaches the expect state. If no
// failure states are given, StateFailed is assumed. Reaching a
// failure state returns a *TransitionFailedError; spending the whole
// attempt budget returns a *TransitionTimedOutError.
func (p *Poller) Await(ctx context.Context, repositoryID string, expect State, failures ...State) error {
	if len(failures) == 0 {
		failures = []State{StateFailed}
	}

	var (
		attempt int
		last    State
	)
	var opts []retry.Option
	if p.Clock != nil {
		opts = append(opts, retry.WithClock(p.Clock))
	}
	err := retry.New(p.Policy, opts...).Run(ctx, func(ctx context.Context) retry.Outcome {
		attempt++
		state, err := p.Fetch(ctx, repositoryID)
		if err != nil {
			if p.Retryable != nil && p.Retryable(err) {
				return retry.Retry(fmt.Sprintf("fetching state of %s: %v", repositoryID, err))
			}
			return retry.Abort(err)
		}
		last = state
		if p.Observer != nil {
			p.Observer(Observation{RepositoryID: repositoryID, Attempt: attempt, State: state})
		}
		switch {
		case state == expect:
			return retry.Done()
		case stateIn(state, failures):
			return retry.Abort(&TransitionFailedError{RepositoryID: repositoryID, State: state})
		}
		return retry.Retry(fmt.Sprintf("repository %s is %s, waiting for %s", repositoryID, state, expect))
	})

	if exhausted, ok := err.(*retry.ExhaustedError); ok {
		return &TransitionTimedOutError{
			RepositoryID: repositoryID,
			Expect:       expect,
			Attempts:     exhausted.Attempts,
			LastState:    last,
		}
	}
	return err
}

func stateIn(s State, set []State) bool {
	for _, member := range set {
		if s == member {
			return true
		}
	}
	return false
}

// TransitionFailedError is returned when the server reports a
// terminal failure state instead of the expected one.
type TransitionFailedError struct {
	RepositoryID string
	State        State
}

func (e *TransitionFailedError) Error() string {
	return fmt.Sprintf("repository %s entered failure state %q", e.RepositoryID, e.State)
}

// IsTransitionFailed reports whether err is a TransitionFailedError.
func IsTransitionFailed(err error) bool {
	switch err.(type) {
	case *TransitionFailedError:
		return true
	}
	return false
}

// TransitionTimedOutError is returned when the poll budget is spent
// without the repository reaching the expected state or any failure
// state. LastState is the most recent observation, empty if no fetch
// ever succeeded.
type TransitionTimedOutError struct {
	RepositoryID string
	Expect       State
	Attempts     int
	LastState    State
}

func (e *TransitionTimedOutError) Error() string {
	if e.LastState == "" {
		return fmt.Sprintf("repository %s did not reach %q after %d polls", e.RepositoryID, e.Expect, e.Attempts)
	}
	return fmt.Sprintf("repository %s did not reach %q after %d polls (last seen %q)", e.RepositoryID, e.Expect, e.Attempts, e.LastState)
}

// IsTransitionTimedOut reports whether err is a TransitionTimedOutError.
func IsTransitionTimedOut(err error) bool {
	switch err.(type) {
	case *TransitionTimedOutError:
		return true
	}
	return false
}
