package remote

import (
	"context"

	"github.com/stagecraft/stagectl/pkg/api"
	"github.com/stagecraft/stagectl/pkg/staging"
)

// MockService is a scriptable stand-in for the repository manager.
// Each method returns its Answer/Error pair; the ArgTest hooks let a
// test reject or inspect the request a command was issued with, and
// the counts record how often each command ran.
//
// Repository consumes RepositoryAnswers in order when it is non-empty,
// repeating the final answer once the script runs out. That is how
// tests stage a poll sequence such as closing, closing, closed.
type MockService struct {
	ServerStatusAnswer staging.ServerStatus
	ServerStatusError  error

	ProfilesAnswer []staging.Profile
	ProfilesError  error

	ProfileRepositoriesAnswer []staging.Repository
	ProfileRepositoriesError  error
	ProfileRepositoriesCount  int

	RepositoryAnswer  staging.Repository
	RepositoryAnswers []staging.Repository
	RepositoryError   error
	RepositoryCount   int

	CloseArgTest func(staging.TransitionRequest) error
	CloseError   error
	CloseCount   int

	PromoteArgTest func(staging.TransitionRequest) error
	PromoteError   error
	PromoteCount   int

	DropArgTest func(staging.TransitionRequest) error
	DropError    error
	DropCount    int

	ActivityAnswer []staging.Activity
	ActivityError  error
}

func (p *MockService) ServerStatus(ctx context.Context) (staging.ServerStatus, error) {
	return p.ServerStatusAnswer, p.ServerStatusError
}

func (p *MockService) Profiles(ctx context.Context) ([]staging.Profile, error) {
	return p.ProfilesAnswer, p.ProfilesError
}

func (p *MockService) ProfileRepositories(ctx context.Context, profileID string) ([]staging.Repository, error) {
	p.ProfileRepositoriesCount++
	return p.ProfileRepositoriesAnswer, p.ProfileRepositoriesError
}

func (p *MockService) Repository(ctx context.Context, repositoryID string) (staging.Repository, error) {
	p.RepositoryCount++
	if len(p.RepositoryAnswers) > 0 {
		i := p.RepositoryCount - 1
		if i >= len(p.RepositoryAnswers) {
			i = len(p.RepositoryAnswers) - 1
		}
		return p.RepositoryAnswers[i], p.RepositoryError
	}
	return p.RepositoryAnswer, p.RepositoryError
}

func (p *MockService) CloseRepositories(ctx context.Context, req staging.TransitionRequest) error {
	p.CloseCount++
	if p.CloseArgTest != nil {
		if err := p.CloseArgTest(req); err != nil {
			return err
		}
	}
	return p.CloseError
}

func (p *MockService) PromoteRepositories(ctx context.Context, req staging.TransitionRequest) error {
	p.PromoteCount++
	if p.PromoteArgTest != nil {
		if err := p.PromoteArgTest(req); err != nil {
			return err
		}
	}
	return p.PromoteError
}

func (p *MockService) DropRepositories(ctx context.Context, req staging.TransitionRequest) error {
	p.DropCount++
	if p.DropArgTest != nil {
		if err := p.DropArgTest(req); err != nil {
			return err
		}
	}
	return p.DropError
}

func (p *MockService) Activity(ctx context.Context, repositoryID string) ([]staging.Activity, error) {
	return p.ActivityAnswer, p.ActivityError
}

var _ api.Service = &MockService{}
