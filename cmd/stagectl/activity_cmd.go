package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stagecraft/stagectl/pkg/staging"
)

type activityOpts struct {
	*rootOpts
	repository string
}

func newActivity(parent *rootOpts) *activityOpts {
	return &activityOpts{rootOpts: parent}
}

func (opts *activityOpts) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show a repository's transition history, with rule failures called out.",
		Example: makeExample(
			"stagectl activity -r comexample-1000",
		),
		RunE: opts.RunE,
	}
	cmd.Flags().StringVarP(&opts.repository, "repository", "r", "", "repository to show activity for")
	return cmd
}

func (opts *activityOpts) RunE(cmd *cobra.Command, args []string) error {
	if len(args) != 0 {
		return errorWantedNoArgs
	}
	if opts.repository == "" {
		return newUsageError("please supply -r, --repository")
	}
	ctx := context.Background()

	timeline, err := opts.API.Activity(ctx, opts.repository)
	if err != nil {
		return err
	}

	w := newTabwriter()
	fmt.Fprintf(w, "ACTIVITY\tSTARTED\tSTOPPED\n")
	for _, entry := range timeline {
		fmt.Fprintf(w, "%s\t%s\t%s\n", entry.Name, formatTime(entry.Started), formatTime(entry.Stopped))
	}
	w.Flush()

	if failures := staging.RuleFailures(timeline); len(failures) > 0 {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "")
		fmt.Fprintln(out, "Rule failures:")
		for _, msg := range failures {
			fmt.Fprintf(out, "  - %s\n", msg)
		}
	}
	return nil
}
