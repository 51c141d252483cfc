// Package api defines the contract between stagectl and the remote
// repository manager. The HTTP client implements Service; everything
// above it (the staging operations, the CLI) programs against the
// interface so tests can substitute doubles.
package api

import (
	"context"

	"github.com/stagecraft/stagectl/pkg/staging"
)

// Service is the slice of the repository manager's staging API that
// stagectl uses. Close, promote and drop return as soon as the server
// has accepted the command; the transition itself completes
// asynchronously and is observed by re-fetching the repository.
type Service interface {
	// ServerStatus reports the server's version and edition, mostly
	// for connectivity and compatibility checks.
	ServerStatus(ctx context.Context) (staging.ServerStatus, error)

	// Profiles lists the staging profiles visible to the caller.
	Profiles(ctx context.Context) ([]staging.Profile, error)

	// ProfileRepositories lists the staging repositories currently
	// held by a profile.
	ProfileRepositories(ctx context.Context, profileID string) ([]staging.Repository, error)

	// Repository fetches one repository's current record. This is the
	// poll primitive: the state it reports is authoritative.
	Repository(ctx context.Context, repositoryID string) (staging.Repository, error)

	// CloseRepositories asks the server to close the named open
	// repositories, which runs rule evaluation server-side.
	CloseRepositories(ctx context.Context, req staging.TransitionRequest) error

	// PromoteRepositories releases the named closed repositories to
	// their promotion target.
	PromoteRepositories(ctx context.Context, req staging.TransitionRequest) error

	// DropRepositories discards the named repositories and their
	// contents.
	DropRepositories(ctx context.Context, req staging.TransitionRequest) error

	// Activity returns a repository's activity timeline, which carries
	// rule failure details after an unsuccessful close.
	Activity(ctx context.Context, repositoryID string) ([]staging.Activity, error)
}
