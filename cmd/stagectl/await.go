package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cheggaaa/pb/v3"

	"github.com/stagecraft/stagectl/pkg/http/client"
	"github.com/stagecraft/stagectl/pkg/staging"
)

// newOperator builds the staging operator the transition commands
// share, with confirmation progress drawn on stderr as a bar across
// the attempt budget. Call finish once the operation returns.
func (opts *rootOpts) newOperator() (op *staging.Operator, finish func()) {
	bar := pb.New(opts.Policy.MaxAttempts)
	bar.SetTemplateString(`polling {{counters . }} {{bar . }} {{string . "state"}}`)
	bar.SetWriter(os.Stderr)
	bar.Start()

	op = &staging.Operator{
		Remote:    opts.API,
		Policy:    opts.Policy,
		Retryable: client.Retryable,
		Observer: func(obs staging.Observation) {
			bar.SetCurrent(int64(obs.Attempt))
			bar.Set("state", string(obs.State))
		},
	}
	return op, func() { bar.Finish() }
}

// resolveRepository returns the repository a transition command should
// operate on: the one named explicitly, or the profile's only
// repository in the state the command starts from.
func (opts *rootOpts) resolveRepository(ctx context.Context, explicit string, from staging.State) (staging.Repository, error) {
	if explicit != "" {
		return opts.API.Repository(ctx, explicit)
	}
	if opts.Profile == "" {
		return staging.Repository{}, newUsageError(fmt.Sprintf(
			"please supply --repository, or a profile to search with --profile (or %s)", EnvVariableProfile))
	}
	return staging.FindRepository(ctx, opts.API, opts.Profile, from)
}

// printRuleFailures asks the server why a transition failed and prints
// the rule failures it reports (missing signatures and the like).
// Fetching the activity is best-effort; the original error stays the
// command's outcome either way.
func (opts *rootOpts) printRuleFailures(ctx context.Context, out io.Writer, repositoryID string, err error) {
	if !staging.IsTransitionFailed(err) {
		return
	}
	timeline, aerr := opts.API.Activity(ctx, repositoryID)
	if aerr != nil {
		return
	}
	failures := staging.RuleFailures(timeline)
	if len(failures) == 0 {
		return
	}
	fmt.Fprintln(out, "The server rejected the repository:")
	for _, msg := range failures {
		fmt.Fprintf(out, "  - %s\n", msg)
	}
}
