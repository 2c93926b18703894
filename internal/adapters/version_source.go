package adapters

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"container-os/internal/core"
	"container-os/internal/ports"
	"container-os/internal/types"
)

// DefaultHubRepositories maps OS names to the registry repository whose
// tags back their base alias. OS names without an entry are pinned.
var DefaultHubRepositories = map[string]string{
	"alpine": "library/alpine",
}

// VersionSourceAdapter resolves base aliases from a tag listing and
// package versions by querying the package database inside the OS image.
type VersionSourceAdapter struct {
	Runner       ports.ContainerRunnerPort
	Tags         ports.TagListerPort
	Repositories map[string]string
	Batch        bool
}

func NewVersionSourceAdapter(runner ports.ContainerRunnerPort, tags ports.TagListerPort, repositories map[string]string, batch bool) VersionSourceAdapter {
	if len(repositories) == 0 {
		repositories = DefaultHubRepositories
	}
	return VersionSourceAdapter{
		Runner:       runner,
		Tags:         tags,
		Repositories: repositories,
		Batch:        batch,
	}
}

func (a VersionSourceAdapter) ResolveBaseAlias(ctx context.Context, osName string, prefix string) (string, error) {
	repository := strings.TrimSpace(a.Repositories[osName])
	if repository == "" || a.Tags == nil {
		return prefix, nil
	}
	tags, err := a.Tags.ListTags(ctx, repository, prefix)
	if err != nil {
		return "", &types.ResolutionError{Target: fmt.Sprintf("%s:%s tags", osName, prefix), Cause: err}
	}
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	return core.LatestTag(prefix, names), nil
}

// ResolvePackageVersions returns the candidate version of each package
// that the image's package manager knows. Batched mode queries every
// package in one container run; otherwise each package gets its own run
// and a failed run only loses that package: the packages that did resolve
// come back together with a *types.ResolutionError naming the failed ones.
func (a VersionSourceAdapter) ResolvePackageVersions(ctx context.Context, osName string, imageVersion string, packages []string) (map[string]string, error) {
	if len(packages) == 0 {
		return map[string]string{}, nil
	}
	query, ok := core.QueryFor(osName)
	if !ok {
		log.Debug().
			Str("os", osName).
			Msg("no package query for os; versions stay unresolved")
		return map[string]string{}, nil
	}
	image := fmt.Sprintf("%s:%s", osName, imageVersion)
	if a.Batch {
		return a.query(ctx, query, osName, image, packages)
	}

	results := map[string]string{}
	var failed []string
	var lastErr error
	for _, pkg := range packages {
		resolved, err := a.query(ctx, query, osName, image, []string{pkg})
		if err != nil {
			failed = append(failed, pkg)
			lastErr = err
			log.Warn().
				Err(err).
				Str("image", image).
				Str("package", pkg).
				Msg("package query failed")
			continue
		}
		if value, ok := resolved[pkg]; ok {
			results[pkg] = value
		}
	}
	if len(failed) == 0 {
		return results, nil
	}
	cause := lastErr
	var resolution *types.ResolutionError
	if errors.As(lastErr, &resolution) {
		cause = resolution.Cause
	}
	err := &types.ResolutionError{Target: image, Packages: failed, Cause: cause}
	if len(failed) == len(packages) {
		return nil, err
	}
	return results, err
}

// ResolvePackageVersion resolves a single package. The boolean is false
// when the package is unknown to the image.
func (a VersionSourceAdapter) ResolvePackageVersion(ctx context.Context, osName string, imageVersion string, pkg string) (string, bool, error) {
	resolved, err := a.ResolvePackageVersions(ctx, osName, imageVersion, []string{pkg})
	if err != nil {
		return "", false, err
	}
	value, ok := resolved[pkg]
	return value, ok, nil
}

func (a VersionSourceAdapter) query(ctx context.Context, query core.PackageQuery, osName string, image string, packages []string) (map[string]string, error) {
	output, err := a.Runner.Run(ctx, image, query.Script(osName, packages))
	if err != nil {
		return nil, &types.ResolutionError{Target: image, Cause: err}
	}
	if output.ExitCode != 0 {
		return nil, &types.ResolutionError{
			Target: image,
			Cause: fmt.Errorf("query exited with code %d: %s",
				output.ExitCode, strings.TrimSpace(output.Stderr)),
		}
	}
	return query.Parse(output.Stdout, packages), nil
}

var _ ports.VersionSourcePort = VersionSourceAdapter{}
