package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

type statusOpts struct {
	*rootOpts
	repository string
	output     string
}

func newStatus(parent *rootOpts) *statusOpts {
	return &statusOpts{rootOpts: parent}
}

func (opts *statusOpts) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current record of one staging repository.",
		Example: makeExample(
			"stagectl status -r comexample-1000",
			"stagectl status -r comexample-1000 -o json",
		),
		RunE: opts.RunE,
	}
	cmd.Flags().StringVarP(&opts.repository, "repository", "r", "", "repository to show")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "tab", "output format: tab, json or yaml")
	return cmd
}

func (opts *statusOpts) RunE(cmd *cobra.Command, args []string) error {
	if len(args) != 0 {
		return errorWantedNoArgs
	}
	if opts.repository == "" {
		return newUsageError("please supply -r, --repository")
	}
	ctx := context.Background()

	repo, err := opts.API.Repository(ctx, opts.repository)
	if err != nil {
		return err
	}

	switch opts.output {
	case "tab":
		w := newTabwriter()
		fmt.Fprintf(w, "REPOSITORY\tSTATE\tPROFILE\tUPDATED\tDESCRIPTION\n")
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", repo.ID, repo.State, repo.ProfileID, formatTime(repo.Updated), repo.Description)
		w.Flush()
	case "json":
		buf, err := json.MarshalIndent(repo, "", "    ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(buf))
	case "yaml":
		buf, err := yaml.Marshal(repo)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(buf))
	default:
		return errorInvalidOutputFormat
	}
	return nil
}
