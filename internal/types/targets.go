package types

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Engine names used by channel entries and published tags.
const (
	EngineDockerd = "dockerd"
	EnginePodman  = "podman"
)

// TargetsDocument is the persisted release manifest (targets.json).
// Field order follows the JSON key order so encoded output is sorted.
type TargetsDocument struct {
	Channels             map[string]ChannelEntry              `json:"channels,omitempty"`
	DockerComposeVersion string                               `json:"docker_compose_version"`
	Metadata             *DocumentMetadata                    `json:"metadata,omitempty"`
	Targets              map[string]map[string]TargetMetadata `json:"targets"`
	Version              string                               `json:"version"`
}

type DocumentMetadata struct {
	LastUpdated string `json:"last_updated,omitempty"`
}

// targetsDocumentJSON mirrors TargetsDocument but always writes channels.
type targetsDocumentJSON struct {
	Channels             map[string]ChannelEntry              `json:"channels"`
	DockerComposeVersion string                               `json:"docker_compose_version"`
	Metadata             *DocumentMetadata                    `json:"metadata,omitempty"`
	Targets              map[string]map[string]TargetMetadata `json:"targets"`
	Version              string                               `json:"version"`
}

// MarshalJSON omits channels only when the key was absent, so an empty
// channels object is written back as read.
func (d TargetsDocument) MarshalJSON() ([]byte, error) {
	type plain TargetsDocument
	var v any = plain(d)
	if d.Channels != nil {
		v = targetsDocumentJSON(d)
	}
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// TargetMetadata describes one OS/version combination. Packages maps a
// bucket name to the ordered set of package names tracked in it.
type TargetMetadata struct {
	AliasPatch string              `json:"alias_patch"`
	Base       string              `json:"base"`
	Packages   map[string][]string `json:"packages"`
}

// ChannelEntry identifies the concrete target and engine an alias points to.
type ChannelEntry struct {
	Engine  string `json:"engine"`
	OS      string `json:"os"`
	Version string `json:"version"`
}

// Target returns the metadata for (osName, versionKey).
func (d TargetsDocument) Target(osName string, versionKey string) (TargetMetadata, bool) {
	versions, ok := d.Targets[osName]
	if !ok {
		return TargetMetadata{}, false
	}
	meta, ok := versions[versionKey]
	return meta, ok
}

// OSNames returns the OS names in persisted (sorted) order.
func (d TargetsDocument) OSNames() []string {
	return sortedKeys(d.Targets)
}

// VersionKeys returns the version keys of osName in persisted order.
func (d TargetsDocument) VersionKeys(osName string) []string {
	return sortedKeys(d.Targets[osName])
}

// ChannelNames returns the channel aliases in persisted order.
func (d TargetsDocument) ChannelNames() []string {
	return sortedKeys(d.Channels)
}

// BucketNames returns the bucket names of the target in persisted order.
func (m TargetMetadata) BucketNames() []string {
	return sortedKeys(m.Packages)
}

// Clone returns a deep copy of the document.
func (d TargetsDocument) Clone() TargetsDocument {
	out := d
	if d.Metadata != nil {
		meta := *d.Metadata
		out.Metadata = &meta
	}
	if d.Channels != nil {
		out.Channels = make(map[string]ChannelEntry, len(d.Channels))
		for alias, entry := range d.Channels {
			out.Channels[alias] = entry
		}
	}
	if d.Targets != nil {
		out.Targets = make(map[string]map[string]TargetMetadata, len(d.Targets))
		for osName, versions := range d.Targets {
			if versions == nil {
				out.Targets[osName] = nil
				continue
			}
			copied := make(map[string]TargetMetadata, len(versions))
			for key, meta := range versions {
				copied[key] = meta.Clone()
			}
			out.Targets[osName] = copied
		}
	}
	return out
}

func (m TargetMetadata) Clone() TargetMetadata {
	out := m
	if m.Packages != nil {
		out.Packages = make(map[string][]string, len(m.Packages))
		for bucket, names := range m.Packages {
			if names == nil {
				out.Packages[bucket] = nil
				continue
			}
			copied := make([]string, len(names))
			copy(copied, names)
			out.Packages[bucket] = copied
		}
	}
	return out
}

func sortedKeys[V any](values map[string]V) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
