// Package staging implements the retry/poll orchestration that drives
// a repository through the staging workflow: close an open repository,
// promote (release) a closed one, or drop one that is no longer
// wanted. The remote repository manager performs each transition
// asynchronously, so every operation is two-phase: issue the command
// once, then poll the repository's state until the server confirms
// the transition or reports that it failed.
package staging

import (
	"context"
	"fmt"
	"time"

	"github.com/stagecraft/stagectl/pkg/metrics"
	"github.com/stagecraft/stagectl/pkg/retry"

	stagerr "github.com/stagecraft/stagectl/pkg/errors"
)

// Transitioner is the slice of the remote repository manager's API
// that staging operations drive. The full client satisfies it; tests
// substitute doubles.
type Transitioner interface {
	CloseRepositories(ctx context.Context, req TransitionRequest) error
	PromoteRepositories(ctx context.Context, req TransitionRequest) error
	DropRepositories(ctx context.Context, req TransitionRequest) error
	Repository(ctx context.Context, id string) (Repository, error)
}

// Operator runs the two-phase staging operations against a remote
// service. The command phase is issued exactly once; the server
// executes transitions asynchronously and non-idempotently, so
// re-issuing a command that may already be in progress is unsafe and
// a command-phase failure is reported rather than retried. The
// confirmation phase then polls under Policy until the server
// confirms the transition.
type Operator struct {
	Remote Transitioner
	Policy retry.Policy

	// Retryable classifies transport errors seen while polling; see
	// Poller.Retryable. Command-phase errors are never retried here
	// regardless of classification.
	Retryable func(error) bool

	// Observer, if set, receives every state observation made during
	// confirmation polling.
	Observer func(Observation)

	// Clock is substituted by tests; nil means the system clock.
	Clock retry.Clock
}

// Close asks the server to close the staged repositories, then waits
// until every one of them reports closed. Closing runs the server's
// rule evaluation, so this routinely takes many polls.
func (o *Operator) Close(ctx context.Context, req TransitionRequest) error {
	return o.transition(ctx, "close", req, o.Remote.CloseRepositories, o.fetchState, StateClosed)
}

// Promote releases closed repositories to their promotion target,
// waiting until every one of them reports released.
func (o *Operator) Promote(ctx context.Context, req TransitionRequest) error {
	return o.transition(ctx, "promote", req, o.Remote.PromoteRepositories, o.fetchState, StateReleased)
}

// Drop discards the staged repositories. The server deletes the
// repository record once a drop completes, so a repository it no
// longer knows about counts as dropped rather than as an error.
func (o *Operator) Drop(ctx context.Context, req TransitionRequest) error {
	return o.transition(ctx, "drop", req, o.Remote.DropRepositories, o.fetchDropped, StateDropped)
}

// CloseAndPromote performs a full release: close, confirm, then
// promote. The promote command is not issued until every repository
// has confirmed closed, and a failed close aborts the whole
// composite.
func (o *Operator) CloseAndPromote(ctx context.Context, req TransitionRequest) error {
	if err := o.Close(ctx, req); err != nil {
		return err
	}
	return o.Promote(ctx, req)
}

func (o *Operator) transition(ctx context.Context, operation string, req TransitionRequest, command func(context.Context, TransitionRequest) error, fetch FetchState, expect State) (err error) {
	defer func(begin time.Time) {
		transitionDuration.With(
			metrics.LabelOperation, operation,
			metrics.LabelSuccess, fmt.Sprint(err == nil),
		).Observe(time.Since(begin).Seconds())
	}(time.Now())

	if err = req.Validate(); err != nil {
		return err
	}

	// Command phase. Even a repository already in the expected state
	// gets the command; only the server has authoritative state, so
	// it is the one to no-op or reject.
	if err = command(ctx, req); err != nil {
		return err
	}

	// Confirmation phase, one repository at a time. Attempts are
	// strictly sequential; no two polls are ever in flight at once.
	for _, id := range req.RepositoryIDs {
		polls := 0
		poller := &Poller{
			Fetch:     fetch,
			Policy:    o.Policy,
			Retryable: o.Retryable,
			Clock:     o.Clock,
			Observer: func(obs Observation) {
				polls = obs.Attempt
				if o.Observer != nil {
					o.Observer(obs)
				}
			},
		}
		err = poller.Await(ctx, id, expect, StateFailed)
		pollCount.With(metrics.LabelOperation, operation).Observe(float64(polls))
		if err != nil {
			return err
		}
	}
	return nil
}

func (o *Operator) fetchState(ctx context.Context, id string) (State, error) {
	repo, err := o.Remote.Repository(ctx, id)
	if err != nil {
		return "", err
	}
	return repo.State, nil
}

// fetchDropped translates "repository not found" into StateDropped:
// once the server finishes a drop it forgets the repository entirely.
func (o *Operator) fetchDropped(ctx context.Context, id string) (State, error) {
	repo, err := o.Remote.Repository(ctx, id)
	if err != nil {
		if stagerr.IsMissing(err) {
			return StateDropped, nil
		}
		return "", err
	}
	return repo.State, nil
}
