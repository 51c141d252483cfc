package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stagecraft/stagectl/pkg/remote"
	"github.com/stagecraft/stagectl/pkg/staging"
)

func TestReposCommand_RequiresProfile(t *testing.T) {
	opts := mockRootOpts(&remote.MockService{})
	opts.Profile = ""

	cmd := newRepos(opts).Command()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.IsType(t, usageError{}, err)
}

func TestReposCommand_Lists(t *testing.T) {
	mock := &remote.MockService{
		ProfileRepositoriesAnswer: []staging.Repository{
			stagedRepo("comexample-1001", staging.StateClosed),
			stagedRepo("comexample-1000", staging.StateOpen),
		},
	}

	cmd := newRepos(mockRootOpts(mock)).Command()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{})

	assert.NoError(t, cmd.Execute())
}
