package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

type reposOpts struct {
	*rootOpts
}

func newRepos(parent *rootOpts) *reposOpts {
	return &reposOpts{rootOpts: parent}
}

func (opts *reposOpts) Command() *cobra.Command {
	return &cobra.Command{
		Use:   "repos",
		Short: "List the staging repositories a profile currently holds.",
		Example: makeExample(
			"stagectl repos",
			"stagectl repos -p 2bbd4ac61cb82f",
		),
		RunE: opts.RunE,
	}
}

func (opts *reposOpts) RunE(cmd *cobra.Command, args []string) error {
	if len(args) != 0 {
		return errorWantedNoArgs
	}
	if opts.Profile == "" {
		return newUsageError(fmt.Sprintf("please supply --profile (or set %s)", EnvVariableProfile))
	}
	ctx := context.Background()

	repos, err := opts.API.ProfileRepositories(ctx, opts.Profile)
	if err != nil {
		return err
	}
	sort.Slice(repos, func(i, j int) bool { return repos[i].ID < repos[j].ID })

	w := newTabwriter()
	fmt.Fprintf(w, "REPOSITORY\tSTATE\tUPDATED\tDESCRIPTION\n")
	for _, r := range repos {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.ID, r.State, formatTime(r.Updated), r.Description)
	}
	w.Flush()
	return nil
}
