package main

import (
	"context"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/stagecraft/stagectl/pkg/http/client"
	"github.com/stagecraft/stagectl/pkg/remote"
)

type checkOpts struct {
	*rootOpts
	constraint string
}

func newCheck(parent *rootOpts) *checkOpts {
	return &checkOpts{rootOpts: parent}
}

func (opts *checkOpts) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the repository manager is reachable, and optionally that its version is acceptable.",
		Example: makeExample(
			"stagectl check",
			`stagectl check --constraint ">= 2.14.0"`,
		),
		RunE: opts.RunE,
	}
	cmd.Flags().StringVarP(&opts.constraint, "constraint", "c", "",
		"semver range the server version must satisfy")
	return cmd
}

func (opts *checkOpts) RunE(cmd *cobra.Command, args []string) error {
	if len(args) != 0 {
		return errorWantedNoArgs
	}
	ctx := context.Background()

	status, err := opts.API.ServerStatus(ctx)
	if err != nil {
		if client.Retryable(err) {
			return remote.UnavailableError(err)
		}
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Server version %s", status.Version)
	if status.Edition != "" {
		fmt.Fprintf(out, " (%s)", status.Edition)
	}
	if status.State != "" {
		fmt.Fprintf(out, ", state %s", status.State)
	}
	fmt.Fprintln(out)

	if opts.constraint == "" {
		return nil
	}

	c, err := semver.NewConstraint(opts.constraint)
	if err != nil {
		return newUsageError(fmt.Sprintf("invalid version constraint %q: %v", opts.constraint, err))
	}
	v, err := semver.NewVersion(status.Version)
	if err != nil {
		return errors.Wrapf(err, "parsing server version %q", status.Version)
	}
	if !c.Check(v) {
		return remote.IncompatibleVersionError(
			fmt.Errorf("server version %s does not satisfy %q", status.Version, opts.constraint))
	}

	fmt.Fprintf(out, "Version satisfies %q\n", opts.constraint)
	return nil
}
