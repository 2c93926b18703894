package app

import (
	"context"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"container-os/internal/core"
)

const DefaultRepository = "miget/container-os"

// TagAliases re-points every channel alias at the tag built for the
// current release.
func (s Service) TagAliases(ctx context.Context, req TagAliasesRequest) (TagAliasesResult, error) {
	manifestPath := strings.TrimSpace(req.ManifestPath)
	if manifestPath == "" {
		return TagAliasesResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest path is required")
	}
	repository := strings.TrimSpace(req.Repository)
	if repository == "" {
		repository = DefaultRepository
	}
	if s.Aliases == nil {
		return TagAliasesResult{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("no tag alias backend configured")
	}
	doc, err := s.Manifest.LoadTargets(manifestPath)
	if err != nil {
		return TagAliasesResult{}, err
	}

	retryDelay := core.DefaultRetryDelay
	if req.RetryDelaySec > 0 {
		retryDelay = time.Duration(req.RetryDelaySec) * time.Second
	}
	throttle := core.DefaultThrottle
	if req.ThrottleSec > 0 {
		throttle = time.Duration(req.ThrottleSec) * time.Second
	}
	if req.DryRun {
		throttle = 0
	}
	policy := core.NewRetryPolicy(req.MaxRetries, retryDelay)
	if s.Sleep != nil {
		policy.Sleep = s.Sleep
	}
	publisher := core.NewPublisher(s.Aliases, policy, throttle)
	result, err := publisher.Publish(ctx, repository, doc)
	return TagAliasesResult{Result: result}, err
}
