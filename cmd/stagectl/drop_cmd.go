package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stagecraft/stagectl/pkg/staging"
)

type dropOpts struct {
	*rootOpts
	repository  string
	description string
	state       string
}

func newDrop(parent *rootOpts) *dropOpts {
	return &dropOpts{rootOpts: parent}
}

func (opts *dropOpts) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drop",
		Short: "Discard a staging repository and everything staged in it.",
		Example: makeExample(
			"stagectl drop",
			"stagectl drop -r comexample-1000",
			"stagectl drop --state closed",
		),
		RunE: opts.RunE,
	}
	cmd.Flags().StringVarP(&opts.repository, "repository", "r", "",
		"repository to drop; defaults to the profile's only repository in --state")
	cmd.Flags().StringVarP(&opts.description, "description", "d", "",
		"description recorded with the drop")
	cmd.Flags().StringVar(&opts.state, "state", string(staging.StateOpen),
		"which state to look for when discovering the repository to drop")
	return cmd
}

func (opts *dropOpts) RunE(cmd *cobra.Command, args []string) error {
	if len(args) != 0 {
		return errorWantedNoArgs
	}
	ctx := context.Background()

	repo, err := opts.resolveRepository(ctx, opts.repository, staging.State(strings.ToLower(opts.state)))
	if err != nil {
		return err
	}

	op, finish := opts.newOperator()
	err = op.Drop(ctx, staging.TransitionRequest{
		RepositoryIDs: []string{repo.ID},
		ProfileID:     repo.ProfileID,
		Description:   opts.description,
	})
	finish()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Repository %s dropped\n", repo.ID)
	return nil
}
