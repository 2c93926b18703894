package adapters

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"container-os/internal/types"
)

// fakeRunner answers package queries from a table and fails for packages
// listed in broken.
type fakeRunner struct {
	versions map[string]string
	broken   map[string]bool
	images   []string
}

func (f *fakeRunner) Run(_ context.Context, image string, command string) (types.RunOutput, error) {
	f.images = append(f.images, image)
	var out strings.Builder
	for name, version := range f.versions {
		if !strings.Contains(command, fmt.Sprintf(`echo "%s=`, name)) {
			continue
		}
		if f.broken[name] {
			return types.RunOutput{ExitCode: 100, Stderr: "E: broken mirror"}, nil
		}
		fmt.Fprintf(&out, "%s=%s\n", name, version)
	}
	return types.RunOutput{Stdout: out.String()}, nil
}

type fakeTagLister struct {
	tags []types.Tag
	err  error
}

func (f fakeTagLister) ListTags(_ context.Context, _ string, _ string) ([]types.Tag, error) {
	return f.tags, f.err
}

func TestResolvePackageVersionsBatchedMatchesUnbatched(t *testing.T) {
	versions := map[string]string{
		"docker-ce":     "5:27.3.1-1~ubuntu.24.04~noble",
		"containerd.io": "1.7.22-1",
		"podman":        "(none)",
	}
	packages := []string{"docker-ce", "containerd.io", "podman", "missing"}

	batchedRunner := &fakeRunner{versions: versions}
	batched, err := NewVersionSourceAdapter(batchedRunner, nil, nil, true).
		ResolvePackageVersions(context.Background(), "ubuntu", "24.04", packages)
	require.NoError(t, err)

	singleRunner := &fakeRunner{versions: versions}
	single, err := NewVersionSourceAdapter(singleRunner, nil, nil, false).
		ResolvePackageVersions(context.Background(), "ubuntu", "24.04", packages)
	require.NoError(t, err)

	assert.Equal(t, batched, single)
	assert.Equal(t, map[string]string{
		"docker-ce":     "5:27.3.1-1~ubuntu.24.04~noble",
		"containerd.io": "1.7.22-1",
	}, batched)
	assert.Equal(t, []string{"ubuntu:24.04"}, batchedRunner.images)
	assert.Len(t, singleRunner.images, 4)
}

func TestResolvePackageVersionsBatchFailureIsResolutionError(t *testing.T) {
	runner := &fakeRunner{
		versions: map[string]string{"curl": "8.5.0-r0"},
		broken:   map[string]bool{"curl": true},
	}
	_, err := NewVersionSourceAdapter(runner, nil, nil, true).
		ResolvePackageVersions(context.Background(), "alpine", "3.19", []string{"curl"})
	var resolution *types.ResolutionError
	require.ErrorAs(t, err, &resolution)
	assert.Equal(t, "alpine:3.19", resolution.Target)
}

func TestResolvePackageVersionsUnbatchedKeepsPartialResults(t *testing.T) {
	runner := &fakeRunner{
		versions: map[string]string{"curl": "8.5.0-r0", "podman": "4.8.3-r0"},
		broken:   map[string]bool{"podman": true},
	}
	resolved, err := NewVersionSourceAdapter(runner, nil, nil, false).
		ResolvePackageVersions(context.Background(), "alpine", "3.19", []string{"curl", "podman"})
	assert.Equal(t, map[string]string{"curl": "8.5.0-r0"}, resolved)
	var resolution *types.ResolutionError
	require.ErrorAs(t, err, &resolution)
	assert.Equal(t, "alpine:3.19", resolution.Target)
	assert.Equal(t, []string{"podman"}, resolution.Packages)
	assert.EqualError(t, err, "resolve alpine:3.19 (podman): query exited with code 100: E: broken mirror")
}

func TestResolvePackageVersionsUnbatchedAllFailed(t *testing.T) {
	runner := &fakeRunner{
		versions: map[string]string{"curl": "8.5.0-r0", "podman": "4.8.3-r0"},
		broken:   map[string]bool{"curl": true, "podman": true},
	}
	resolved, err := NewVersionSourceAdapter(runner, nil, nil, false).
		ResolvePackageVersions(context.Background(), "alpine", "3.19", []string{"curl", "podman"})
	assert.Nil(t, resolved)
	var resolution *types.ResolutionError
	require.ErrorAs(t, err, &resolution)
	assert.Equal(t, []string{"curl", "podman"}, resolution.Packages)
}

func TestResolvePackageVersionsUnknownOS(t *testing.T) {
	runner := &fakeRunner{}
	resolved, err := NewVersionSourceAdapter(runner, nil, nil, true).
		ResolvePackageVersions(context.Background(), "fedora", "41", []string{"podman"})
	require.NoError(t, err)
	assert.Empty(t, resolved)
	assert.Empty(t, runner.images)
}

func TestResolvePackageVersion(t *testing.T) {
	runner := &fakeRunner{versions: map[string]string{"podman": "4.8.3-r0"}}
	adapter := NewVersionSourceAdapter(runner, nil, nil, true)
	value, ok, err := adapter.ResolvePackageVersion(context.Background(), "alpine", "3.19", "podman")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "4.8.3-r0", value)

	_, ok, err = adapter.ResolvePackageVersion(context.Background(), "alpine", "3.19", "nerdctl")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResolveBaseAlias(t *testing.T) {
	tags := fakeTagLister{tags: []types.Tag{{Name: "3.19.8"}, {Name: "3.19.9"}, {Name: "3.19-rc"}}}
	adapter := NewVersionSourceAdapter(&fakeRunner{}, tags, nil, true)

	alias, err := adapter.ResolveBaseAlias(context.Background(), "alpine", "3.19")
	require.NoError(t, err)
	assert.Equal(t, "3.19.9", alias)

	alias, err = adapter.ResolveBaseAlias(context.Background(), "ubuntu", "24.04")
	require.NoError(t, err)
	assert.Equal(t, "24.04", alias)
}

func TestResolveBaseAliasListingFailure(t *testing.T) {
	adapter := NewVersionSourceAdapter(&fakeRunner{}, fakeTagLister{err: errors.New("timeout")}, nil, true)
	_, err := adapter.ResolveBaseAlias(context.Background(), "alpine", "3.19")
	var resolution *types.ResolutionError
	require.ErrorAs(t, err, &resolution)
}
