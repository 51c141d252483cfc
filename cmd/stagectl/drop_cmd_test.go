package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stagecraft/stagectl/pkg/remote"
	"github.com/stagecraft/stagectl/pkg/staging"
)

func TestDropCommand_DropsExplicitRepository(t *testing.T) {
	var got staging.TransitionRequest
	mock := &remote.MockService{
		RepositoryAnswers: []staging.Repository{
			stagedRepo("comexample-1000", staging.StateOpen),
			stagedRepo("comexample-1000", staging.StateDropping),
			stagedRepo("comexample-1000", staging.StateDropped),
		},
		DropArgTest: func(req staging.TransitionRequest) error {
			got = req
			return nil
		},
	}

	buf := new(bytes.Buffer)
	cmd := newDrop(mockRootOpts(mock)).Command()
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"-r", "comexample-1000"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, 1, mock.DropCount)
	assert.Equal(t, []string{"comexample-1000"}, got.RepositoryIDs)
	assert.Contains(t, buf.String(), "dropped")
}

// --state widens discovery beyond open repositories, for cleaning up
// after a close that will never be promoted.
func TestDropCommand_DiscoversByState(t *testing.T) {
	mock := &remote.MockService{
		ProfileRepositoriesAnswer: []staging.Repository{
			stagedRepo("comexample-1000", staging.StateClosed),
		},
		RepositoryAnswers: []staging.Repository{
			stagedRepo("comexample-1000", staging.StateDropped),
		},
	}

	cmd := newDrop(mockRootOpts(mock)).Command()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"--state", "closed"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, 1, mock.DropCount)
	assert.Equal(t, 1, mock.ProfileRepositoriesCount)
}
