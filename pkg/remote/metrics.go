package remote

import (
	"context"
	"fmt"
	"time"

	"github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"

	"github.com/stagecraft/stagectl/pkg/api"
	"github.com/stagecraft/stagectl/pkg/metrics"
	"github.com/stagecraft/stagectl/pkg/staging"
)

var (
	requestDuration = prometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
		Namespace: "stagectl",
		Subsystem: "remote",
		Name:      "request_duration_seconds",
		Help:      "Duration of requests to the repository manager, in seconds.",
		Buckets:   stdprometheus.DefBuckets,
	}, []string{metrics.LabelMethod, metrics.LabelSuccess})
)

var _ api.Service = &instrumentedService{}

type instrumentedService struct {
	s api.Service
}

// Instrument records a duration histogram, labelled by method and
// success, around every call to the wrapped service.
func Instrument(s api.Service) *instrumentedService {
	return &instrumentedService{s}
}

func (i *instrumentedService) observe(method string, begin time.Time, err error) {
	requestDuration.With(
		metrics.LabelMethod, method,
		metrics.LabelSuccess, fmt.Sprint(err == nil),
	).Observe(time.Since(begin).Seconds())
}

func (i *instrumentedService) ServerStatus(ctx context.Context) (_ staging.ServerStatus, err error) {
	defer func(begin time.Time) { i.observe("ServerStatus", begin, err) }(time.Now())
	return i.s.ServerStatus(ctx)
}

func (i *instrumentedService) Profiles(ctx context.Context) (_ []staging.Profile, err error) {
	defer func(begin time.Time) { i.observe("Profiles", begin, err) }(time.Now())
	return i.s.Profiles(ctx)
}

func (i *instrumentedService) ProfileRepositories(ctx context.Context, profileID string) (_ []staging.Repository, err error) {
	defer func(begin time.Time) { i.observe("ProfileRepositories", begin, err) }(time.Now())
	return i.s.ProfileRepositories(ctx, profileID)
}

func (i *instrumentedService) Repository(ctx context.Context, repositoryID string) (_ staging.Repository, err error) {
	defer func(begin time.Time) { i.observe("Repository", begin, err) }(time.Now())
	return i.s.Repository(ctx, repositoryID)
}

func (i *instrumentedService) CloseRepositories(ctx context.Context, req staging.TransitionRequest) (err error) {
	defer func(begin time.Time) { i.observe("CloseRepositories", begin, err) }(time.Now())
	return i.s.CloseRepositories(ctx, req)
}

func (i *instrumentedService) PromoteRepositories(ctx context.Context, req staging.TransitionRequest) (err error) {
	defer func(begin time.Time) { i.observe("PromoteRepositories", begin, err) }(time.Now())
	return i.s.PromoteRepositories(ctx, req)
}

func (i *instrumentedService) DropRepositories(ctx context.Context, req staging.TransitionRequest) (err error) {
	defer func(begin time.Time) { i.observe("DropRepositories", begin, err) }(time.Now())
	return i.s.DropRepositories(ctx, req)
}

func (i *instrumentedService) Activity(ctx context.Context, repositoryID string) (_ []staging.Activity, err error) {
	defer func(begin time.Time) { i.observe("Activity", begin, err) }(time.Now())
	return i.s.Activity(ctx, repositoryID)
}
