// Shared main test code
package main

import (
	"github.com/stagecraft/stagectl/pkg/remote"
	"github.com/stagecraft/stagectl/pkg/retry"
	"github.com/stagecraft/stagectl/pkg/staging"
)

// mockRootOpts wires a command to a scripted remote the way the real
// root command wires it to the HTTP client. Polling runs with no delay
// so tests never sleep.
func mockRootOpts(mock *remote.MockService) *rootOpts {
	return &rootOpts{
		Profile: "2bbd4ac61cb82f",
		API:     mock,
		Policy:  retry.Policy{MaxAttempts: 5},
	}
}

func stagedRepo(id string, state staging.State) staging.Repository {
	return staging.Repository{ID: id, ProfileID: "2bbd4ac61cb82f", State: state}
}
