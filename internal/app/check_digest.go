package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"container-os/internal/core"
)

const DefaultDigestRepository = "library/ubuntu"

// CheckDigest compares the registry digest of a base image tag with the
// recorded one, optionally recording the new digest.
func (s Service) CheckDigest(ctx context.Context, req CheckDigestRequest) (CheckDigestResult, error) {
	tag := strings.TrimSpace(req.Tag)
	if tag == "" {
		return CheckDigestResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("tag is required")
	}
	digestsPath := strings.TrimSpace(req.DigestsPath)
	if digestsPath == "" {
		return CheckDigestResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("digests path is required")
	}
	repository := strings.TrimSpace(req.Repository)
	if repository == "" {
		repository = DefaultDigestRepository
	}
	platform := strings.TrimSpace(req.Platform)
	if platform == "" {
		platform = core.DefaultPlatform
	}

	state, err := s.Manifest.LoadDigests(digestsPath)
	if err != nil {
		return CheckDigestResult{}, err
	}
	tags, err := s.Tags.ListTags(ctx, repository, tag)
	if err != nil {
		return CheckDigestResult{}, err
	}
	digest, ok := core.PlatformDigest(tags, tag, platform)
	if !ok {
		return CheckDigestResult{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("digest not found for %s:%s (%s)", repository, tag, platform))
	}
	next, check := core.CheckDigest(state, tag, digest, req.Record)
	if check.Changed {
		event := log.Info().
			Str("tag", tag).
			Str("previous", check.Previous).
			Str("current", check.Current)
		for _, candidate := range tags {
			if candidate.Name == tag && !candidate.LastUpdated.IsZero() {
				event = event.Time("tag_updated", candidate.LastUpdated)
			}
		}
		event.Msg("base image digest changed")
	}
	if check.Changed && req.Record {
		if err := s.Manifest.SaveDigests(digestsPath, next); err != nil {
			return CheckDigestResult{}, err
		}
	}
	return CheckDigestResult{Check: check}, nil
}
