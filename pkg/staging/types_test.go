package staging

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Sonatype's OSS service reports states in lower case but other
// deployments shout them; either way they must compare equal to the
// State constants.
func TestStateFoldsCase(t *testing.T) {
	var repo Repository
	err := json.Unmarshal([]byte(`{"repositoryId":"comexample-1000","state":"CLOSED"}`), &repo)
	require.NoError(t, err)
	assert.Equal(t, StateClosed, repo.State)
}

func TestTransitionalStates(t *testing.T) {
	for _, s := range []State{StateClosing, StateReleasing, StateDropping} {
		assert.True(t, s.Transitional(), "%s should be transitional", s)
	}
	for _, s := range []State{StateOpen, StateClosed, StateReleased, StateDropped, StateFailed} {
		assert.False(t, s.Transitional(), "%s should not be transitional", s)
	}
}

func TestTransitionRequestValidate(t *testing.T) {
	assert.Equal(t, ErrNoRepositories, TransitionRequest{}.Validate())
	assert.Error(t, TransitionRequest{RepositoryIDs: []string{"comexample-1000", ""}}.Validate())
	assert.NoError(t, TransitionRequest{RepositoryIDs: []string{"comexample-1000"}}.Validate())
}

// The field names are the protocol; the server silently ignores
// anything it doesn't recognise, so a rename here would turn every
// transition into a no-op.
func TestTransitionRequestWireNames(t *testing.T) {
	req := TransitionRequest{
		RepositoryIDs: []string{"comexample-1000"},
		ProfileID:     "2bbd4ac61cb82f",
		Description:   "release v1.2.3",
		AutoDrop:      true,
	}
	buf, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"stagedRepositoryIds": ["comexample-1000"],
		"stagingProfileId": "2bbd4ac61cb82f",
		"description": "release v1.2.3",
		"autoDropAfterRelease": true
	}`, string(buf))
}
