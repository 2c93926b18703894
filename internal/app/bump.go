package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"container-os/internal/core"
)

func (s Service) Bump(ctx context.Context, req BumpRequest) (BumpResult, error) {
	if err := ctx.Err(); err != nil {
		return BumpResult{}, err
	}
	manifestPath := strings.TrimSpace(req.ManifestPath)
	if manifestPath == "" {
		return BumpResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest path is required")
	}
	doc, err := s.Manifest.LoadTargets(manifestPath)
	if err != nil {
		return BumpResult{}, err
	}
	previous := doc.Version
	bumped, err := core.BumpVersion(doc)
	if err != nil {
		return BumpResult{}, err
	}
	if err := s.Manifest.SaveTargets(manifestPath, bumped); err != nil {
		return BumpResult{}, err
	}
	return BumpResult{Previous: previous, Current: bumped.Version}, nil
}
