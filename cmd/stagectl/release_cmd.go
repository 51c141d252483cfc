package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stagecraft/stagectl/pkg/staging"
)

type releaseOpts struct {
	*rootOpts
	repository  string
	description string
	autoDrop    bool
}

func newRelease(parent *rootOpts) *releaseOpts {
	return &releaseOpts{rootOpts: parent}
}

func (opts *releaseOpts) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "release",
		Short: "Close and promote a staging repository in one go.",
		Long: `Close the open staging repository, wait for the server to confirm it,
then promote it to its release target. A close rejected by the server's
rules stops the release; nothing is promoted.`,
		Example: makeExample(
			"stagectl release",
			"stagectl release -r comexample-1000 -d 'frob 1.2.3'",
		),
		RunE: opts.RunE,
	}
	cmd.Flags().StringVarP(&opts.repository, "repository", "r", "",
		"repository to release; defaults to the profile's only open repository")
	cmd.Flags().StringVarP(&opts.description, "description", "d", "",
		"description recorded with the close and the promotion")
	cmd.Flags().BoolVar(&opts.autoDrop, "auto-drop", true,
		"have the server drop the staging repository once it is released")
	return cmd
}

func (opts *releaseOpts) RunE(cmd *cobra.Command, args []string) error {
	if len(args) != 0 {
		return errorWantedNoArgs
	}
	ctx := context.Background()

	repo, err := opts.resolveRepository(ctx, opts.repository, staging.StateOpen)
	if err != nil {
		return err
	}

	op, finish := opts.newOperator()
	err = op.CloseAndPromote(ctx, staging.TransitionRequest{
		RepositoryIDs: []string{repo.ID},
		ProfileID:     repo.ProfileID,
		Description:   opts.description,
		AutoDrop:      opts.autoDrop,
	})
	finish()
	if err != nil {
		opts.printRuleFailures(ctx, cmd.OutOrStdout(), repo.ID, err)
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Repository %s released\n", repo.ID)
	return nil
}
