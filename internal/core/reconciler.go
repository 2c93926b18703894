package core

import (
	"context"
	"time"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/rs/zerolog/log"

	"container-os/internal/ports"
	"container-os/internal/types"
)

// TimestampLayout is the format of metadata.last_updated.
const TimestampLayout = "2006-01-02T15:04:05Z"

// Reconciler refreshes alias patches and package versions of a manifest
// state from upstream sources.
type Reconciler struct {
	Source ports.VersionSourcePort
	Clock  func() time.Time
}

func NewReconciler(source ports.VersionSourcePort) Reconciler {
	return Reconciler{Source: source, Clock: time.Now}
}

// Reconcile walks every target and returns the updated state together with
// the updates it applied. The input state is not modified. Resolution
// failures are recorded and skipped so that one broken target never blocks
// the others.
func (r Reconciler) Reconcile(ctx context.Context, state types.ManifestState) (types.ManifestState, types.ReconcileResult) {
	next := state.Clone()
	result := types.ReconcileResult{ReleaseVersion: next.Targets.Version}

	for _, osName := range next.Targets.OSNames() {
		for _, versionKey := range next.Targets.VersionKeys(osName) {
			if ctx.Err() != nil {
				result.Failures = append(result.Failures, types.ResolutionFailure{
					OS: osName, Version: versionKey, Scope: "packages", Reason: ctx.Err().Error(),
				})
				continue
			}
			meta := next.Targets.Targets[osName][versionKey]
			assert.NotEmpty(ctx, meta.Base, "target base must be set")
			meta = r.reconcileAlias(ctx, osName, versionKey, meta, &result)
			next.Targets.Targets[osName][versionKey] = meta
			r.reconcilePackages(ctx, osName, versionKey, meta, next.Versions, &result)
		}
	}

	result.Changed = len(result.AliasUpdates) > 0 || len(result.PackageUpdates) > 0
	if result.Changed {
		result.LastUpdated = r.now().UTC().Format(TimestampLayout)
		if next.Targets.Metadata == nil {
			next.Targets.Metadata = &types.DocumentMetadata{}
		}
		next.Targets.Metadata.LastUpdated = result.LastUpdated
	}
	return next, result
}

func (r Reconciler) reconcileAlias(ctx context.Context, osName string, versionKey string, meta types.TargetMetadata, result *types.ReconcileResult) types.TargetMetadata {
	latest, err := r.Source.ResolveBaseAlias(ctx, osName, meta.Base)
	if err != nil {
		log.Warn().
			Err(err).
			Str("os", osName).
			Str("version", versionKey).
			Msg("base alias resolution failed; keeping stored alias patch")
		result.Failures = append(result.Failures, types.ResolutionFailure{
			OS: osName, Version: versionKey, Scope: "alias", Reason: err.Error(),
		})
		return meta
	}
	if latest == meta.AliasPatch {
		return meta
	}
	result.AliasUpdates = append(result.AliasUpdates, types.AliasUpdate{
		OS:       osName,
		Version:  versionKey,
		Previous: meta.AliasPatch,
		Tag:      latest,
	})
	log.Info().
		Str("os", osName).
		Str("version", versionKey).
		Str("from", meta.AliasPatch).
		Str("to", latest).
		Msg("alias patch updated")
	meta.AliasPatch = latest
	return meta
}

func (r Reconciler) reconcilePackages(ctx context.Context, osName string, versionKey string, meta types.TargetMetadata, versions types.PackageVersions, result *types.ReconcileResult) {
	buckets := meta.BucketNames()
	queried := make([]string, 0)
	seen := map[string]bool{}
	for _, bucket := range buckets {
		for _, pkg := range meta.Packages[bucket] {
			if !seen[pkg] {
				seen[pkg] = true
				queried = append(queried, pkg)
			}
		}
	}
	if len(queried) == 0 {
		return
	}

	log.Info().
		Str("os", osName).
		Str("version", versionKey).
		Int("packages", len(queried)).
		Msg("fetching package versions")
	resolved, err := r.Source.ResolvePackageVersions(ctx, osName, meta.Base, queried)
	if err != nil {
		log.Warn().
			Err(err).
			Str("os", osName).
			Str("version", versionKey).
			Int("resolved", len(resolved)).
			Msg("package resolution failed; keeping stored versions of failed packages")
		result.Failures = append(result.Failures, types.ResolutionFailure{
			OS: osName, Version: versionKey, Scope: "packages", Reason: err.Error(),
		})
		// Partial results still apply.
		if len(resolved) == 0 {
			return
		}
	}

	for _, bucket := range buckets {
		for _, pkg := range meta.Packages[bucket] {
			value, ok := resolved[pkg]
			if !ok || value == "" {
				continue
			}
			previous, _ := versions.Get(osName, versionKey, bucket, pkg)
			if previous == value {
				continue
			}
			versions.Set(osName, versionKey, bucket, pkg, value)
			result.PackageUpdates = append(result.PackageUpdates, types.PackageUpdate{
				OS:       osName,
				Version:  versionKey,
				Bucket:   bucket,
				Package:  pkg,
				Previous: previous,
				Current:  value,
			})
		}
	}
}

func (r Reconciler) now() time.Time {
	if r.Clock == nil {
		return time.Now()
	}
	return r.Clock()
}
