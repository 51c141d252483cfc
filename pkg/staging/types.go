package staging

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// State is the lifecycle state of a staging repository, as reported
// by the remote repository manager. The engine never sets a state
// locally; it only observes what the server reports.
type State string

const (
	StateOpen      State = "open"
	StateClosing   State = "closing"
	StateClosed    State = "closed"
	StateReleasing State = "releasing"
	StateReleased  State = "released"
	StateDropping  State = "dropping"
	StateDropped   State = "dropped"
	StateFailed    State = "failed"
)

// Transitional reports whether the state is one the server moves
// through on its own, i.e. polling again may observe progress.
func (s State) Transitional() bool {
	switch s {
	case StateClosing, StateReleasing, StateDropping:
		return true
	}
	return false
}

// Servers are not consistent about case, so states are folded to
// lower case on the way in.
func (s *State) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = State(strings.ToLower(raw))
	return nil
}

// Repository is a staging repository as reported by the server: a
// container of uploaded artifacts progressing through open, closed
// and released (or dropped) states.
type Repository struct {
	ID          string    `json:"repositoryId"`
	ProfileID   string    `json:"profileId"`
	ProfileName string    `json:"profileName,omitempty"`
	State       State     `json:"state"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"repositoryURI,omitempty"`
	Created     time.Time `json:"created,omitempty"`
	Updated     time.Time `json:"updated,omitempty"`
}

// Profile is a staging profile: the server-side policy grouping that
// owns staging repositories.
type Profile struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Mode       string `json:"mode,omitempty"`
	TargetRepo string `json:"promotionTargetRepository,omitempty"`
}

// ServerStatus is what the repository manager reports about itself.
type ServerStatus struct {
	Version string `json:"version"`
	State   string `json:"state,omitempty"`
	Edition string `json:"edition,omitempty"`
}

// TransitionRequest names the repositories a close, promote or drop
// command applies to. Requests are value records built per call; the
// engine holds no state across operations.
type TransitionRequest struct {
	RepositoryIDs []string `json:"stagedRepositoryIds"`
	ProfileID     string   `json:"stagingProfileId,omitempty"`
	Description   string   `json:"description,omitempty"`
	AutoDrop      bool     `json:"autoDropAfterRelease,omitempty"`
}

// ErrNoRepositories is returned when a transition request names no
// repositories at all.
var ErrNoRepositories = errors.New("transition request contains no repository ids")

func (r TransitionRequest) Validate() error {
	if len(r.RepositoryIDs) == 0 {
		return ErrNoRepositories
	}
	for _, id := range r.RepositoryIDs {
		if id == "" {
			return errors.New("transition request contains an empty repository id")
		}
	}
	return nil
}
