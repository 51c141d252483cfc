package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	stagerr "github.com/stagecraft/stagectl/pkg/errors"
)

type profilesOpts struct {
	*rootOpts
	name string
}

func newProfiles(parent *rootOpts) *profilesOpts {
	return &profilesOpts{rootOpts: parent}
}

func (opts *profilesOpts) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List the staging profiles visible to you.",
		Example: makeExample(
			"stagectl profiles",
			"stagectl profiles --name com.example",
		),
		RunE: opts.RunE,
	}
	cmd.Flags().StringVar(&opts.name, "name", "",
		"print only the ID of the profile with this exact name (handy in scripts)")
	return cmd
}

func (opts *profilesOpts) RunE(cmd *cobra.Command, args []string) error {
	if len(args) != 0 {
		return errorWantedNoArgs
	}
	ctx := context.Background()

	profiles, err := opts.API.Profiles(ctx)
	if err != nil {
		return err
	}

	if opts.name != "" {
		for _, p := range profiles {
			if p.Name == opts.name {
				fmt.Fprintln(cmd.OutOrStdout(), p.ID)
				return nil
			}
		}
		return &stagerr.Error{
			Type: stagerr.Missing,
			Err:  fmt.Errorf("no profile named %q", opts.name),
			Help: `No staging profile by that name is visible with these credentials.
Run

    stagectl profiles

to see the ones that are.
`,
		}
	}

	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Name < profiles[j].Name })

	w := newTabwriter()
	fmt.Fprintf(w, "ID\tNAME\tMODE\tTARGET\n")
	for _, p := range profiles {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Mode, p.TargetRepo)
	}
	w.Flush()
	return nil
}
