package main

import (
	"io"
	"os"

	"github.com/pkg/errors"

	stagerr "github.com/stagecraft/stagectl/pkg/errors"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	rootCmd := newRoot().Command()
	rootCmd.SetArgs(args)
	rootCmd.SetOutput(stderr)

	if cmd, err := rootCmd.ExecuteC(); err != nil {
		switch err := errors.Cause(err).(type) {
		case usageError:
			cmd.Println("")
			cmd.Println(cmd.UsageString())
		case *stagerr.Error:
			cmd.Println("== Error ==\n\n" + err.Help)
		}
		return 1
	}
	return 0
}
