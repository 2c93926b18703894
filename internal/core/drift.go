package core

import (
	debversion "github.com/knqyf263/go-deb-version"

	"container-os/internal/types"
)

// SignificantPackages are the engine packages and their companions whose
// version changes warrant a release.
var SignificantPackages = []string{
	"docker-ce",
	"docker",
	"podman",
	"containerd.io",
	"containerd",
	"docker-compose-plugin",
	"docker-cli-compose",
}

// Snapshot is one version of the two persisted documents.
type Snapshot struct {
	Targets  *types.TargetsDocument
	Versions types.PackageVersions
}

type Classifier struct {
	Significant map[string]bool
}

func NewClassifier() Classifier {
	significant := make(map[string]bool, len(SignificantPackages))
	for _, name := range SignificantPackages {
		significant[name] = true
	}
	return Classifier{Significant: significant}
}

// Classify compares working against baseline. Missing baseline documents
// (nil Targets or nil Versions) mean every present value is new.
func (c Classifier) Classify(working Snapshot, baseline Snapshot) types.DriftReport {
	changes := make([]types.ChangeRecord, 0)
	changes = append(changes, c.composeChanges(working.Targets, baseline.Targets)...)
	changes = append(changes, c.aliasChanges(working.Targets, baseline.Targets)...)
	changes = append(changes, c.packageChanges(working.Versions, baseline.Versions)...)
	return types.DriftReport{Changes: changes, HasChanges: len(changes) > 0}
}

func (c Classifier) composeChanges(working *types.TargetsDocument, baseline *types.TargetsDocument) []types.ChangeRecord {
	if working == nil || working.DockerComposeVersion == "" {
		return nil
	}
	previous := ""
	if baseline != nil {
		previous = baseline.DockerComposeVersion
	}
	if working.DockerComposeVersion == previous {
		return nil
	}
	return []types.ChangeRecord{{
		Type:     types.ChangeTypeCompose,
		OldValue: previous,
		NewValue: working.DockerComposeVersion,
	}}
}

func (c Classifier) aliasChanges(working *types.TargetsDocument, baseline *types.TargetsDocument) []types.ChangeRecord {
	if working == nil {
		return nil
	}
	var changes []types.ChangeRecord
	for _, osName := range working.OSNames() {
		for _, versionKey := range working.VersionKeys(osName) {
			current := working.Targets[osName][versionKey].AliasPatch
			if current == "" {
				continue
			}
			previous := ""
			if baseline != nil {
				if meta, ok := baseline.Target(osName, versionKey); ok {
					previous = meta.AliasPatch
				}
			}
			if current == previous {
				continue
			}
			changes = append(changes, types.ChangeRecord{
				Type:     types.ChangeTypeAliasPatch,
				OS:       osName,
				Version:  versionKey,
				OldValue: previous,
				NewValue: current,
			})
		}
	}
	return changes
}

func (c Classifier) packageChanges(working types.PackageVersions, baseline types.PackageVersions) []types.ChangeRecord {
	var changes []types.ChangeRecord
	for _, osName := range working.OSNames() {
		for _, versionKey := range working.VersionKeys(osName) {
			for _, bucket := range working.BucketNames(osName, versionKey) {
				for _, pkg := range working.PackageNames(osName, versionKey, bucket) {
					if !c.Significant[pkg] {
						continue
					}
					current, _ := working.Get(osName, versionKey, bucket, pkg)
					previous, _ := baseline.Get(osName, versionKey, bucket, pkg)
					if current == previous {
						continue
					}
					changes = append(changes, types.ChangeRecord{
						Type:      types.ChangeTypePackage,
						OS:        osName,
						Version:   versionKey,
						Bucket:    bucket,
						Package:   pkg,
						OldValue:  previous,
						NewValue:  current,
						Direction: versionDirection(previous, current),
					})
				}
			}
		}
	}
	return changes
}

// versionDirection orders two package versions with Debian semantics. Apk
// versions such as 27.3.1-r0 parse the same way; anything unparseable has
// no direction.
func versionDirection(previous string, current string) types.Direction {
	if previous == "" {
		return types.DirectionNew
	}
	if current == "" {
		return types.DirectionNone
	}
	oldVersion, err := debversion.NewVersion(previous)
	if err != nil {
		return types.DirectionNone
	}
	newVersion, err := debversion.NewVersion(current)
	if err != nil {
		return types.DirectionNone
	}
	switch {
	case newVersion.GreaterThan(oldVersion):
		return types.DirectionUpgrade
	case newVersion.LessThan(oldVersion):
		return types.DirectionDowngrade
	default:
		return types.DirectionNone
	}
}
