package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"container-os/internal/core"
	"container-os/internal/types"
)

// Update reconciles the manifest against upstream sources and saves both
// documents once at the end. Missing documents abort before any query.
func (s Service) Update(ctx context.Context, req UpdateRequest) (UpdateResult, error) {
	manifestPath := strings.TrimSpace(req.ManifestPath)
	versionsPath := strings.TrimSpace(req.PackageVersionsPath)
	if manifestPath == "" || versionsPath == "" {
		return UpdateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest and package versions paths are required")
	}
	targets, err := s.Manifest.LoadTargets(manifestPath)
	if err != nil {
		return UpdateResult{}, err
	}
	versions, err := s.Manifest.LoadPackageVersions(versionsPath)
	if err != nil {
		return UpdateResult{}, err
	}

	reconciler := core.Reconciler{Source: s.Source, Clock: s.clock()}
	state, result := reconciler.Reconcile(ctx, types.ManifestState{Targets: targets, Versions: versions})
	if req.Bump {
		state.Targets, result, err = core.BumpRelease(state.Targets, result)
		if err != nil {
			return UpdateResult{}, err
		}
	}

	if err := s.Manifest.SaveTargets(manifestPath, state.Targets); err != nil {
		return UpdateResult{}, err
	}
	if err := s.Manifest.SavePackageVersions(versionsPath, state.Versions); err != nil {
		return UpdateResult{}, err
	}
	return UpdateResult{Result: result}, nil
}
