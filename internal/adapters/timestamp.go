package adapters

import (
	"strings"
	"time"

	"container-os/internal/core"
)

// parseTimestamp reads registry and manifest timestamps. Docker Hub uses
// RFC 3339 with fractional seconds; manifests use whole seconds in UTC.
// Anything else yields the zero time.
func parseTimestamp(value string) time.Time {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, core.TimestampLayout, "2006-01-02 15:04:05"} {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}
