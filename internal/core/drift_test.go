package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"container-os/internal/types"
)

func snapshotOf(state types.ManifestState) Snapshot {
	doc := state.Targets
	return Snapshot{Targets: &doc, Versions: state.Versions}
}

func TestClassifySingleEngineUpgrade(t *testing.T) {
	baseline := sampleState()
	working := baseline.Clone()
	working.Versions.Set("ubuntu", "24.04", "dockerd", "docker-ce", "5:27.4.0-1~ubuntu.24.04~noble")

	report := NewClassifier().Classify(snapshotOf(working), snapshotOf(baseline))
	want := types.DriftReport{
		HasChanges: true,
		Changes: []types.ChangeRecord{{
			Type:      types.ChangeTypePackage,
			OS:        "ubuntu",
			Version:   "24.04",
			Bucket:    "dockerd",
			Package:   "docker-ce",
			OldValue:  "5:27.3.1-1~ubuntu.24.04~noble",
			NewValue:  "5:27.4.0-1~ubuntu.24.04~noble",
			Direction: types.DirectionUpgrade,
		}},
	}
	if diff := cmp.Diff(want, report); diff != "" {
		t.Fatalf("unexpected report (-want +got):\n%s", diff)
	}
}

func TestClassifyIgnoresPackagesOutsideAllowList(t *testing.T) {
	baseline := sampleState()
	working := baseline.Clone()
	working.Versions.Set("alpine", "3.19", "common", "curl", "8.9.0-r0")

	report := NewClassifier().Classify(snapshotOf(working), snapshotOf(baseline))
	assert.False(t, report.HasChanges)
	assert.Empty(t, report.Changes)
}

func TestClassifyComposeAndAliasChanges(t *testing.T) {
	baseline := sampleState()
	working := baseline.Clone()
	working.Targets.DockerComposeVersion = "2.30.0"
	meta := working.Targets.Targets["alpine"]["3.19"]
	meta.AliasPatch = "3.19.9"
	working.Targets.Targets["alpine"]["3.19"] = meta

	report := NewClassifier().Classify(snapshotOf(working), snapshotOf(baseline))
	require.Len(t, report.Changes, 2)
	assert.Equal(t, types.ChangeRecord{Type: types.ChangeTypeCompose, OldValue: "2.29.7", NewValue: "2.30.0"}, report.Changes[0])
	assert.Equal(t, types.ChangeRecord{
		Type: types.ChangeTypeAliasPatch, OS: "alpine", Version: "3.19", OldValue: "3.19.8", NewValue: "3.19.9",
	}, report.Changes[1])
}

func TestClassifyMissingBaselineTreatsEverythingAsNew(t *testing.T) {
	working := sampleState()
	report := NewClassifier().Classify(snapshotOf(working), Snapshot{})
	require.True(t, report.HasChanges)

	var packages []string
	for _, change := range report.Changes {
		if change.Type == types.ChangeTypePackage {
			assert.Equal(t, types.DirectionNew, change.Direction)
			packages = append(packages, change.Package)
		}
	}
	assert.Equal(t, []string{"containerd", "docker", "containerd.io", "docker-ce"}, packages)
	assert.Equal(t, types.ChangeTypeCompose, report.Changes[0].Type)
}

func TestClassifyIgnoresClearedAliasPatch(t *testing.T) {
	baseline := sampleState()
	working := baseline.Clone()
	meta := working.Targets.Targets["ubuntu"]["24.04"]
	meta.AliasPatch = ""
	working.Targets.Targets["ubuntu"]["24.04"] = meta

	report := NewClassifier().Classify(snapshotOf(working), snapshotOf(baseline))
	assert.False(t, report.HasChanges)
}

func TestVersionDirection(t *testing.T) {
	cases := []struct {
		previous string
		current  string
		want     types.Direction
	}{
		{"", "1.0.0", types.DirectionNew},
		{"27.3.1-r0", "27.3.1-r1", types.DirectionUpgrade},
		{"1.7.22-1", "1.7.13-1", types.DirectionDowngrade},
		{"5:27.3.1-1", "27.9.0-1", types.DirectionDowngrade},
		{"1.0.0", "", types.DirectionNone},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, versionDirection(tc.previous, tc.current), "%s -> %s", tc.previous, tc.current)
	}
}
