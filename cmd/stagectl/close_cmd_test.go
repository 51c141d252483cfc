package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stagecraft/stagectl/pkg/remote"
	"github.com/stagecraft/stagectl/pkg/staging"
)

func TestCloseCommand_DiscoversAndCloses(t *testing.T) {
	var got staging.TransitionRequest
	mock := &remote.MockService{
		ProfileRepositoriesAnswer: []staging.Repository{
			stagedRepo("comexample-1000", staging.StateOpen),
		},
		RepositoryAnswers: []staging.Repository{
			stagedRepo("comexample-1000", staging.StateClosing),
			stagedRepo("comexample-1000", staging.StateClosed),
		},
		CloseArgTest: func(req staging.TransitionRequest) error {
			got = req
			return nil
		},
	}

	buf := new(bytes.Buffer)
	cmd := newClose(mockRootOpts(mock)).Command()
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"-d", "frob 1.2.3"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, 1, mock.CloseCount)
	assert.Equal(t, 2, mock.RepositoryCount)
	assert.Equal(t, []string{"comexample-1000"}, got.RepositoryIDs)
	assert.Equal(t, "2bbd4ac61cb82f", got.ProfileID)
	assert.Equal(t, "frob 1.2.3", got.Description)
	assert.Contains(t, buf.String(), "closed")
}

func TestCloseCommand_ExplicitRepository(t *testing.T) {
	// -r skips discovery; the named repository is fetched directly
	mock := &remote.MockService{
		RepositoryAnswers: []staging.Repository{
			stagedRepo("comexample-1000", staging.StateOpen),
			stagedRepo("comexample-1000", staging.StateClosed),
		},
	}

	cmd := newClose(mockRootOpts(mock)).Command()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"-r", "comexample-1000"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, 1, mock.CloseCount)
	assert.Equal(t, 2, mock.RepositoryCount)
}

func TestCloseCommand_WantsNoArgs(t *testing.T) {
	cmd := newClose(mockRootOpts(&remote.MockService{})).Command()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"bogus"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.IsType(t, usageError{}, err)
}

func TestCloseCommand_PrintsRuleFailures(t *testing.T) {
	events := []interface{}{
		map[string]interface{}{
			"name": "ruleFailed",
			"properties": []interface{}{
				map[string]interface{}{
					"name":  "failureMessage",
					"value": "Missing Signature: frob-1.2.3.jar.asc does not exist",
				},
			},
		},
	}
	mock := &remote.MockService{
		ProfileRepositoriesAnswer: []staging.Repository{
			stagedRepo("comexample-1000", staging.StateOpen),
		},
		RepositoryAnswers: []staging.Repository{
			stagedRepo("comexample-1000", staging.StateFailed),
		},
		ActivityAnswer: []staging.Activity{{Name: "close", Events: events}},
	}

	buf := new(bytes.Buffer)
	cmd := newClose(mockRootOpts(mock)).Command()
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t, staging.IsTransitionFailed(err), "want *TransitionFailedError, got %T", err)
	assert.Contains(t, buf.String(), "Missing Signature")
}
