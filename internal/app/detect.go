package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"container-os/internal/core"
)

// Detect classifies the working documents against the committed baseline.
func (s Service) Detect(ctx context.Context, req DetectRequest) (DetectResult, error) {
	if err := ctx.Err(); err != nil {
		return DetectResult{}, err
	}
	manifestPath := strings.TrimSpace(req.ManifestPath)
	versionsPath := strings.TrimSpace(req.PackageVersionsPath)
	if manifestPath == "" || versionsPath == "" {
		return DetectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest and package versions paths are required")
	}
	targets, err := s.Manifest.LoadTargets(manifestPath)
	if err != nil {
		return DetectResult{}, err
	}
	versions, err := s.Manifest.LoadPackageVersions(versionsPath)
	if err != nil {
		return DetectResult{}, err
	}

	baseline := core.Snapshot{}
	if s.Baseline != nil {
		baseline.Targets = s.Baseline.ReadTargets(manifestPath)
		baseline.Versions = s.Baseline.ReadPackageVersions(versionsPath)
	}
	report := core.NewClassifier().Classify(core.Snapshot{Targets: &targets, Versions: versions}, baseline)
	return DetectResult{Report: report}, nil
}
