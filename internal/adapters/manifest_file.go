package adapters

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"container-os/internal/ports"
	"container-os/internal/types"
)

// packageNamePattern keeps package names safe to embed in query scripts.
var packageNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9.+_-]*$`)

// ManifestFileAdapter stores the manifest documents as JSON files.
type ManifestFileAdapter struct{}

func NewManifestFileAdapter() ManifestFileAdapter {
	return ManifestFileAdapter{}
}

func (a ManifestFileAdapter) LoadTargets(path string) (types.TargetsDocument, error) {
	data, err := readDocument(path)
	if err != nil {
		return types.TargetsDocument{}, err
	}
	return ParseTargets(data)
}

func (a ManifestFileAdapter) SaveTargets(path string, doc types.TargetsDocument) error {
	return writeDocument(path, doc)
}

func (a ManifestFileAdapter) LoadPackageVersions(path string) (types.PackageVersions, error) {
	data, err := readDocument(path)
	if err != nil {
		return nil, err
	}
	return ParsePackageVersions(data)
}

func (a ManifestFileAdapter) SavePackageVersions(path string, versions types.PackageVersions) error {
	if versions == nil {
		versions = types.PackageVersions{}
	}
	return writeDocument(path, versions)
}

// LoadDigests returns an empty state when the file does not exist yet.
func (a ManifestFileAdapter) LoadDigests(path string) (types.DigestState, error) {
	data, err := readDocument(path)
	if err != nil {
		var missing *types.MissingDocumentError
		if errors.As(err, &missing) {
			return types.DigestState{}, nil
		}
		return nil, err
	}
	state := types.DigestState{}
	if err := decodeStrict(data, &state); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid digest state format").
			WithCause(err)
	}
	return state, nil
}

func (a ManifestFileAdapter) SaveDigests(path string, state types.DigestState) error {
	if state == nil {
		state = types.DigestState{}
	}
	return writeDocument(path, state)
}

// ParseTargets decodes and validates a targets document.
func ParseTargets(data []byte) (types.TargetsDocument, error) {
	var doc types.TargetsDocument
	if err := decodeStrict(data, &doc); err != nil {
		return types.TargetsDocument{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid targets document format").
			WithCause(err)
	}
	if err := ValidateTargets(doc); err != nil {
		return types.TargetsDocument{}, err
	}
	return doc, nil
}

// ParsePackageVersions decodes a package versions document.
func ParsePackageVersions(data []byte) (types.PackageVersions, error) {
	versions := types.PackageVersions{}
	if err := decodeStrict(data, &versions); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid package versions document format").
			WithCause(err)
	}
	return versions, nil
}

// ValidateTargets checks the structure the reconciler relies on. Channels
// pointing at unknown targets are allowed here; publishing skips them.
func ValidateTargets(doc types.TargetsDocument) error {
	if _, err := types.ParseReleaseVersion(doc.Version); err != nil {
		return err
	}
	if doc.Metadata != nil && doc.Metadata.LastUpdated != "" && parseTimestamp(doc.Metadata.LastUpdated).IsZero() {
		return invalidDocument(fmt.Sprintf("invalid metadata.last_updated %q", doc.Metadata.LastUpdated))
	}
	if doc.Targets == nil {
		return invalidDocument("targets document has no targets")
	}
	for _, osName := range doc.OSNames() {
		if strings.TrimSpace(osName) == "" {
			return invalidDocument("target os name is empty")
		}
		for _, versionKey := range doc.VersionKeys(osName) {
			meta := doc.Targets[osName][versionKey]
			where := fmt.Sprintf("%s %s", osName, versionKey)
			if strings.TrimSpace(versionKey) == "" {
				return invalidDocument(fmt.Sprintf("target %s has an empty version key", osName))
			}
			if strings.TrimSpace(meta.Base) == "" {
				return invalidDocument(fmt.Sprintf("target %s has no base", where))
			}
			for _, bucket := range meta.BucketNames() {
				if strings.TrimSpace(bucket) == "" {
					return invalidDocument(fmt.Sprintf("target %s has an empty bucket name", where))
				}
				seen := map[string]bool{}
				for _, pkg := range meta.Packages[bucket] {
					if !packageNamePattern.MatchString(pkg) {
						return invalidDocument(fmt.Sprintf("target %s bucket %s has invalid package name %q", where, bucket, pkg))
					}
					if seen[pkg] {
						return invalidDocument(fmt.Sprintf("target %s bucket %s lists %s twice", where, bucket, pkg))
					}
					seen[pkg] = true
				}
			}
		}
	}
	for _, alias := range doc.ChannelNames() {
		entry := doc.Channels[alias]
		if entry.OS == "" || entry.Version == "" || entry.Engine == "" {
			return invalidDocument(fmt.Sprintf("channel %s must set os, version and engine", alias))
		}
	}
	return nil
}

// EncodeDocument renders v the way every document is persisted: sorted
// keys, two-space indentation, no HTML escaping and a trailing newline.
func EncodeDocument(v any) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeStrict(data []byte, v any) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return err
	}
	if decoder.More() {
		return errors.New("trailing data after document")
	}
	return nil
}

func readDocument(path string) ([]byte, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("document path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &types.MissingDocumentError{Path: path}
		}
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read document").
			WithCause(err)
	}
	return data, nil
}

// writeDocument replaces path atomically through a temporary file in the
// same directory.
func writeDocument(path string, v any) error {
	if strings.TrimSpace(path) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("document path is empty")
	}
	data, err := EncodeDocument(v)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode document").
			WithCause(err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create document directory").
			WithCause(err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create temporary document").
			WithCause(err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write document").
			WithCause(err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write document").
			WithCause(err)
	}
	if err := tmp.Close(); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write document").
			WithCause(err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to replace document").
			WithCause(err)
	}
	return nil
}

func invalidDocument(message string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(message)
}

var _ ports.ManifestStorePort = ManifestFileAdapter{}
