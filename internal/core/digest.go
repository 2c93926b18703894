package core

import "container-os/internal/types"

// DefaultPlatform is the platform whose digest is tracked for base images.
const DefaultPlatform = "linux/amd64"

// DigestCheck is the outcome of comparing a live digest with the recorded one.
type DigestCheck struct {
	Tag      string `json:"tag" yaml:"tag"`
	Previous string `json:"previous" yaml:"previous"`
	Current  string `json:"current" yaml:"current"`
	Changed  bool   `json:"changed" yaml:"changed"`
}

// CheckDigest compares current with the state entry for tag. When record
// is set and the digest changed, the returned state holds the new digest;
// the input state is never modified.
func CheckDigest(state types.DigestState, tag string, current string, record bool) (types.DigestState, DigestCheck) {
	previous := state[tag]
	check := DigestCheck{Tag: tag, Previous: previous, Current: current, Changed: previous != current}
	next := make(types.DigestState, len(state)+1)
	for key, value := range state {
		next[key] = value
	}
	if check.Changed && record {
		next[tag] = current
	}
	return next, check
}

// PlatformDigest finds the digest of platform among tags named exactly tag.
func PlatformDigest(tags []types.Tag, tag string, platform string) (string, bool) {
	for _, candidate := range tags {
		if candidate.Name != tag {
			continue
		}
		digest, ok := candidate.Digests[platform]
		return digest, ok && digest != ""
	}
	return "", false
}
