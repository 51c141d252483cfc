package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stagecraft/stagectl/pkg/staging"
)

type closeOpts struct {
	*rootOpts
	repository  string
	description string
}

func newClose(parent *rootOpts) *closeOpts {
	return &closeOpts{rootOpts: parent}
}

func (opts *closeOpts) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "close",
		Short: "Close a staging repository and wait for the server to confirm it.",
		Long: `Close a staging repository. Closing runs the server's rule evaluation
(signatures, checksums, required jars); the command waits until the
repository reports closed, or reports why the rules rejected it.`,
		Example: makeExample(
			"stagectl close",
			"stagectl close -r comexample-1000 -d 'frob 1.2.3'",
		),
		RunE: opts.RunE,
	}
	cmd.Flags().StringVarP(&opts.repository, "repository", "r", "",
		"repository to close; defaults to the profile's only open repository")
	cmd.Flags().StringVarP(&opts.description, "description", "d", "",
		"description recorded with the close")
	return cmd
}

func (opts *closeOpts) RunE(cmd *cobra.Command, args []string) error {
	if len(args) != 0 {
		return errorWantedNoArgs
	}
	ctx := context.Background()

	repo, err := opts.resolveRepository(ctx, opts.repository, staging.StateOpen)
	if err != nil {
		return err
	}

	op, finish := opts.newOperator()
	err = op.Close(ctx, staging.TransitionRequest{
		RepositoryIDs: []string{repo.ID},
		ProfileID:     repo.ProfileID,
		Description:   opts.description,
	})
	finish()
	if err != nil {
		opts.printRuleFailures(ctx, cmd.OutOrStdout(), repo.ID, err)
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Repository %s closed\n", repo.ID)
	return nil
}
