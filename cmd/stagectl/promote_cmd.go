package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stagecraft/stagectl/pkg/staging"
)

type promoteOpts struct {
	*rootOpts
	repository  string
	description string
	autoDrop    bool
}

func newPromote(parent *rootOpts) *promoteOpts {
	return &promoteOpts{rootOpts: parent}
}

func (opts *promoteOpts) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "promote",
		Short: "Release a closed staging repository to its promotion target.",
		Example: makeExample(
			"stagectl promote",
			"stagectl promote -r comexample-1000",
		),
		RunE: opts.RunE,
	}
	cmd.Flags().StringVarP(&opts.repository, "repository", "r", "",
		"repository to promote; defaults to the profile's only closed repository")
	cmd.Flags().StringVarP(&opts.description, "description", "d", "",
		"description recorded with the promotion")
	cmd.Flags().BoolVar(&opts.autoDrop, "auto-drop", true,
		"have the server drop the staging repository once it is released")
	return cmd
}

func (opts *promoteOpts) RunE(cmd *cobra.Command, args []string) error {
	if len(args) != 0 {
		return errorWantedNoArgs
	}
	ctx := context.Background()

	repo, err := opts.resolveRepository(ctx, opts.repository, staging.StateClosed)
	if err != nil {
		return err
	}

	op, finish := opts.newOperator()
	err = op.Promote(ctx, staging.TransitionRequest{
		RepositoryIDs: []string{repo.ID},
		ProfileID:     repo.ProfileID,
		Description:   opts.description,
		AutoDrop:      opts.autoDrop,
	})
	finish()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Repository %s released\n", repo.ID)
	return nil
}
