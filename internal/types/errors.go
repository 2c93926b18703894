package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRateLimited marks a registry response asking the caller to slow down.
var ErrRateLimited = errors.New("rate limited")

// ResolutionError means a version query could not be answered because the
// registry or the container environment failed. It never describes a
// package that simply does not exist. Packages names the queries that
// failed when only some of them did.
type ResolutionError struct {
	Target   string
	Packages []string
	Cause    error
}

func (e *ResolutionError) Error() string {
	if len(e.Packages) > 0 {
		return fmt.Sprintf("resolve %s (%s): %v", e.Target, strings.Join(e.Packages, ", "), e.Cause)
	}
	return fmt.Sprintf("resolve %s: %v", e.Target, e.Cause)
}

func (e *ResolutionError) Unwrap() error { return e.Cause }

// MissingDocumentError means a required persisted document does not exist.
type MissingDocumentError struct {
	Path string
}

func (e *MissingDocumentError) Error() string {
	return fmt.Sprintf("required document missing: %s", e.Path)
}

// PublishError means re-pointing an alias failed permanently.
type PublishError struct {
	Alias     string
	SourceTag string
	Attempts  int
	Cause     error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("tag alias %s -> %s failed after %d attempt(s): %v", e.Alias, e.SourceTag, e.Attempts, e.Cause)
}

func (e *PublishError) Unwrap() error { return e.Cause }
