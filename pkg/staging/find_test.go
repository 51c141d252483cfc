package staging

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stagerr "github.com/stagecraft/stagectl/pkg/errors"
)

type listerFunc func(ctx context.Context, profileID string) ([]Repository, error)

func (f listerFunc) ProfileRepositories(ctx context.Context, profileID string) ([]Repository, error) {
	return f(ctx, profileID)
}

func fixedRepos(repos ...Repository) listerFunc {
	return func(context.Context, string) ([]Repository, error) { return repos, nil }
}

func TestFindRepositoryPicksTheOnlyMatch(t *testing.T) {
	lister := fixedRepos(
		repoIn("comexample-0999", StateClosed),
		repoIn("comexample-1000", StateOpen),
	)

	repo, err := FindRepository(context.Background(), lister, "2bbd4ac61cb82f", StateOpen)
	require.NoError(t, err)
	assert.Equal(t, "comexample-1000", repo.ID)
}

func TestFindRepositoryNothingStaged(t *testing.T) {
	lister := fixedRepos(repoIn("comexample-0999", StateClosed))

	_, err := FindRepository(context.Background(), lister, "2bbd4ac61cb82f", StateOpen)
	require.Error(t, err)
	assert.True(t, stagerr.IsMissing(err), "want a missing-type error, got %v", err)
}

func TestFindRepositoryRefusesToGuess(t *testing.T) {
	lister := fixedRepos(
		repoIn("comexample-1000", StateOpen),
		repoIn("comexample-1001", StateOpen),
	)

	_, err := FindRepository(context.Background(), lister, "2bbd4ac61cb82f", StateOpen)
	require.Error(t, err)
	assert.True(t, stagerr.IsUser(err), "want a user-type error, got %v", err)
	assert.Contains(t, err.Error(), "comexample-1000")
	assert.Contains(t, err.Error(), "comexample-1001")
}

func TestFindRepositoryPropagatesListErrors(t *testing.T) {
	boom := errors.New("boom")
	lister := listerFunc(func(context.Context, string) ([]Repository, error) { return nil, boom })

	_, err := FindRepository(context.Background(), lister, "2bbd4ac61cb82f", StateOpen)
	assert.Equal(t, boom, err)
}
