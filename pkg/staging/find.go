package staging

import (
	"context"
	"fmt"
	"strings"

	stagerr "github.com/stagecraft/stagectl/pkg/errors"
)

// RepositoryLister is the part of the remote API needed to discover
// repositories within a profile.
type RepositoryLister interface {
	ProfileRepositories(ctx context.Context, profileID string) ([]Repository, error)
}

// FindRepository returns the sole repository of the profile that is in
// the given state. It refuses to guess: zero matches and more than one
// match are both errors, since operating on the wrong repository would
// stage the wrong artifacts.
func FindRepository(ctx context.Context, remote RepositoryLister, profileID string, state State) (Repository, error) {
	repos, err := remote.ProfileRepositories(ctx, profileID)
	if err != nil {
		return Repository{}, err
	}

	var matches []Repository
	for _, r := range repos {
		if r.State == state {
			matches = append(matches, r)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return Repository{}, &stagerr.Error{
			Type: stagerr.Missing,
			Err:  fmt.Errorf("no %s repository in profile %s", state, profileID),
			Help: `The profile has no staging repository in the state this command
operates on. Either nothing has been staged yet, or the repository has
already moved on. Use

    stagectl repos

to see what the profile currently holds.
`,
		}
	default:
		ids := make([]string, len(matches))
		for i, r := range matches {
			ids[i] = r.ID
		}
		return Repository{}, &stagerr.Error{
			Type: stagerr.User,
			Err:  fmt.Errorf("profile %s has %d %s repositories: %s", profileID, len(matches), state, strings.Join(ids, ", ")),
			Help: `More than one staging repository is in the state this command
operates on, so it won't pick one for you. Re-run with an explicit

    --repository=<id>

naming the repository you mean.
`,
		}
	}
}
