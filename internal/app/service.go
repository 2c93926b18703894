package app

import (
	"strings"
	"time"

	"container-os/internal/adapters"
	"container-os/internal/core"
	"container-os/internal/ports"
)

const (
	RunnerCLI            = "cli"
	RunnerTestcontainers = "testcontainers"
)

// Config selects and tunes the adapters behind the service.
type Config struct {
	Runner              string
	Engine              string
	Batch               bool
	HubURL              string
	HubRepositories     map[string]string
	HTTPTimeoutSec      int
	ContainerTimeoutSec int
	BaselineRef         string
	BaselineDir         string
	DryRun              bool
}

type Service struct {
	Manifest ports.ManifestStorePort
	Baseline ports.BaselinePort
	Source   ports.VersionSourcePort
	Tags     ports.TagListerPort
	Aliases  ports.TagAliasPort
	Clock    func() time.Time
	Sleep    core.SleepFunc
}

func NewService(cfg Config) Service {
	tags := adapters.NewDockerHubTagsAdapter(cfg.HubURL, cfg.HTTPTimeoutSec)
	return Service{
		Manifest: adapters.NewManifestFileAdapter(),
		Baseline: adapters.NewGitBaselineAdapter(cfg.BaselineRef, cfg.BaselineDir),
		Source:   adapters.NewVersionSourceAdapter(newRunner(cfg), tags, cfg.HubRepositories, cfg.Batch),
		Tags:     tags,
		Aliases:  adapters.NewImagetoolsAliasAdapter(engineBinary(cfg.Engine), cfg.DryRun),
		Clock:    time.Now,
		Sleep:    core.Sleep,
	}
}

func newRunner(cfg Config) ports.ContainerRunnerPort {
	if strings.EqualFold(strings.TrimSpace(cfg.Runner), RunnerTestcontainers) {
		return adapters.NewTestcontainersRunnerAdapter(time.Duration(cfg.ContainerTimeoutSec) * time.Second)
	}
	return adapters.NewContainerCLIAdapter(engineBinary(cfg.Engine))
}

func engineBinary(engine string) string {
	if strings.TrimSpace(engine) == "" {
		return "docker"
	}
	return strings.TrimSpace(engine)
}

func (s Service) clock() func() time.Time {
	if s.Clock == nil {
		return time.Now
	}
	return s.Clock
}
