package app

import (
	"container-os/internal/core"
	"container-os/internal/types"
)

type UpdateRequest struct {
	ManifestPath        string
	PackageVersionsPath string
	Bump                bool
}

type UpdateResult struct {
	Result types.ReconcileResult
}

type BumpRequest struct {
	ManifestPath string
}

type BumpResult struct {
	Previous string
	Current  string
}

type DetectRequest struct {
	ManifestPath        string
	PackageVersionsPath string
}

type DetectResult struct {
	Report types.DriftReport
}

type TagAliasesRequest struct {
	ManifestPath  string
	Repository    string
	MaxRetries    int
	RetryDelaySec int
	ThrottleSec   int
	DryRun        bool
}

type TagAliasesResult struct {
	Result types.PublishResult
}

type CheckDigestRequest struct {
	Tag         string
	Repository  string
	Platform    string
	DigestsPath string
	Record      bool
}

type CheckDigestResult struct {
	Check core.DigestCheck
}

type ValidateRequest struct {
	ManifestPath        string
	PackageVersionsPath string
}

type ValidateResult struct {
	Release         string
	Targets         int
	Channels        int
	UnknownChannels []string
}
