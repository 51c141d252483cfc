// Package remote decorates api.Service implementations with the
// cross-cutting concerns the CLI wants around every call: error
// logging and request metrics. The decorators hold no state of their
// own and pass every result through unchanged.
package remote

import (
	"context"

	"github.com/go-kit/kit/log"

	"github.com/stagecraft/stagectl/pkg/api"
	"github.com/stagecraft/stagectl/pkg/staging"
)

var _ api.Service = &ErrorLoggingService{}

// ErrorLoggingService logs every failed call with the method name and
// error, and stays quiet about successes. Errors pass through
// unchanged; this is observation, not handling.
type ErrorLoggingService struct {
	service api.Service
	logger  log.Logger
}

func NewErrorLoggingService(s api.Service, l log.Logger) *ErrorLoggingService {
	return &ErrorLoggingService{s, l}
}

func (p *ErrorLoggingService) logIfErr(method string, err error) {
	if err != nil {
		p.logger.Log("method", method, "err", err)
	}
}

func (p *ErrorLoggingService) ServerStatus(ctx context.Context) (_ staging.ServerStatus, err error) {
	defer func() { p.logIfErr("ServerStatus", err) }()
	return p.service.ServerStatus(ctx)
}

func (p *ErrorLoggingService) Profiles(ctx context.Context) (_ []staging.Profile, err error) {
	defer func() { p.logIfErr("Profiles", err) }()
	return p.service.Profiles(ctx)
}

func (p *ErrorLoggingService) ProfileRepositories(ctx context.Context, profileID string) (_ []staging.Repository, err error) {
	defer func() { p.logIfErr("ProfileRepositories", err) }()
	return p.service.ProfileRepositories(ctx, profileID)
}

func (p *ErrorLoggingService) Repository(ctx context.Context, repositoryID string) (_ staging.Repository, err error) {
	defer func() { p.logIfErr("Repository", err) }()
	return p.service.Repository(ctx, repositoryID)
}

func (p *ErrorLoggingService) CloseRepositories(ctx context.Context, req staging.TransitionRequest) (err error) {
	defer func() { p.logIfErr("CloseRepositories", err) }()
	return p.service.CloseRepositories(ctx, req)
}

func (p *ErrorLoggingService) PromoteRepositories(ctx context.Context, req staging.TransitionRequest) (err error) {
	defer func() { p.logIfErr("PromoteRepositories", err) }()
	return p.service.PromoteRepositories(ctx, req)
}

func (p *ErrorLoggingService) DropRepositories(ctx context.Context, req staging.TransitionRequest) (err error) {
	defer func() { p.logIfErr("DropRepositories", err) }()
	return p.service.DropRepositories(ctx, req)
}

func (p *ErrorLoggingService) Activity(ctx context.Context, repositoryID string) (_ []staging.Activity, err error) {
	defer func() { p.logIfErr("Activity", err) }()
	return p.service.Activity(ctx, repositoryID)
}
