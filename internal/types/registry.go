package types

import "time"

// Tag is one entry of a registry tag listing. Digests maps "os/arch"
// (with an optional "/variant") to the platform image digest.
type Tag struct {
	Name        string
	Digests     map[string]string
	LastUpdated time.Time
}

// RunOutput is the captured result of a command run inside an image.
type RunOutput struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// DigestState maps an image tag to its last recorded platform digest.
type DigestState map[string]string

// AliasPlan is one alias re-point computed from the channels.
type AliasPlan struct {
	Alias     string `json:"alias" yaml:"alias"`
	SourceTag string `json:"source_tag" yaml:"source_tag"`
}

// SkippedChannel is a channel whose target does not exist.
type SkippedChannel struct {
	Alias  string `json:"alias" yaml:"alias"`
	Reason string `json:"reason" yaml:"reason"`
}

type PublishResult struct {
	Applied []AliasPlan      `json:"applied" yaml:"applied"`
	Skipped []SkippedChannel `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}
