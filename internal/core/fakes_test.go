package core

import (
	"context"
	"errors"
	"time"

	"container-os/internal/types"
)

type fakeVersionSource struct {
	aliases     map[string]string
	aliasErr    map[string]error
	packages    map[string]map[string]string
	packagesErr map[string]error
	partialErr  map[string]error
	calls       []string
}

func (f *fakeVersionSource) ResolveBaseAlias(_ context.Context, osName string, prefix string) (string, error) {
	if err := f.aliasErr[osName+":"+prefix]; err != nil {
		return "", err
	}
	if alias, ok := f.aliases[osName+":"+prefix]; ok {
		return alias, nil
	}
	return prefix, nil
}

func (f *fakeVersionSource) ResolvePackageVersions(_ context.Context, osName string, imageVersion string, packages []string) (map[string]string, error) {
	key := osName + ":" + imageVersion
	f.calls = append(f.calls, key)
	if err := f.packagesErr[key]; err != nil {
		return nil, err
	}
	out := map[string]string{}
	for _, pkg := range packages {
		if value, ok := f.packages[key][pkg]; ok {
			out[pkg] = value
		}
	}
	if err := f.partialErr[key]; err != nil {
		return out, err
	}
	return out, nil
}

type aliasCall struct {
	Alias     string
	SourceTag string
}

type fakeTagAliases struct {
	failures map[string][]error
	calls    []aliasCall
}

func (f *fakeTagAliases) CreateTagAlias(_ context.Context, _ string, alias string, sourceTag string) error {
	f.calls = append(f.calls, aliasCall{Alias: alias, SourceTag: sourceTag})
	queue := f.failures[alias]
	if len(queue) == 0 {
		return nil
	}
	err := queue[0]
	f.failures[alias] = queue[1:]
	return err
}

type recordingSleep struct {
	waits []time.Duration
}

func (r *recordingSleep) Sleep(_ context.Context, d time.Duration) error {
	r.waits = append(r.waits, d)
	return nil
}

var errRegistryDown = errors.New("registry unavailable")

func versionOf(versions types.PackageVersions, osName string, versionKey string, bucket string, pkg string) string {
	value, _ := versions.Get(osName, versionKey, bucket, pkg)
	return value
}

func fixedClock() time.Time {
	return time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
}

func sampleState() types.ManifestState {
	return types.ManifestState{
		Targets: types.TargetsDocument{
			Version:              "1.4.2",
			DockerComposeVersion: "2.29.7",
			Channels: map[string]types.ChannelEntry{
				"alpine-3.19-dockerd": {OS: "alpine", Version: "3.19", Engine: types.EngineDockerd},
			},
			Targets: map[string]map[string]types.TargetMetadata{
				"alpine": {
					"3.19": {
						AliasPatch: "3.19.8",
						Base:       "3.19",
						Packages: map[string][]string{
							"dockerd": {"docker", "containerd"},
							"common":  {"curl"},
						},
					},
				},
				"ubuntu": {
					"24.04": {
						AliasPatch: "24.04",
						Base:       "24.04",
						Packages: map[string][]string{
							"dockerd": {"docker-ce", "containerd.io"},
						},
					},
				},
			},
		},
		Versions: types.PackageVersions{
			"alpine": {"3.19": {
				"dockerd": {"docker": types.StringPtr("25.0.5-r0"), "containerd": types.StringPtr("1.7.13-r0")},
				"common":  {"curl": types.StringPtr("8.5.0-r0")},
			}},
			"ubuntu": {"24.04": {
				"dockerd": {
					"docker-ce":     types.StringPtr("5:27.3.1-1~ubuntu.24.04~noble"),
					"containerd.io": types.StringPtr("1.7.22-1"),
				},
			}},
		},
	}
}
