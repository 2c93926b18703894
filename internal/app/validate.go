package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"container-os/internal/core"
)

func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	if err := ctx.Err(); err != nil {
		return ValidateResult{}, err
	}
	manifestPath := strings.TrimSpace(req.ManifestPath)
	if manifestPath == "" {
		return ValidateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest path is required")
	}
	doc, err := s.Manifest.LoadTargets(manifestPath)
	if err != nil {
		return ValidateResult{}, err
	}
	if versionsPath := strings.TrimSpace(req.PackageVersionsPath); versionsPath != "" {
		if _, err := s.Manifest.LoadPackageVersions(versionsPath); err != nil {
			return ValidateResult{}, err
		}
	}
	_, skipped := core.PlanAliases(doc)
	unknown := make([]string, 0, len(skipped))
	for _, skip := range skipped {
		log.Warn().Str("alias", skip.Alias).Str("reason", skip.Reason).Msg("channel points at an unknown target")
		unknown = append(unknown, skip.Alias)
	}
	count := 0
	for _, osName := range doc.OSNames() {
		count += len(doc.Targets[osName])
	}
	return ValidateResult{
		Release:         doc.Version,
		Targets:         count,
		Channels:        len(doc.Channels),
		UnknownChannels: unknown,
	}, nil
}
