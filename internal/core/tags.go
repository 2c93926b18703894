package core

import (
	"regexp"
	"strings"

	pep440 "github.com/aquasecurity/go-pep440-version"
)

// numericTag accepts plain dotted numeric tags only, so pre-releases,
// variants and build suffixes never become alias patches.
var numericTag = regexp.MustCompile(`^\d+(\.\d+)*$`)

// LatestTag returns the highest numeric tag that starts with prefix. When
// nothing qualifies the prefix itself is returned, so an unresolvable
// prefix is treated as already pinned.
func LatestTag(prefix string, candidates []string) string {
	best := ""
	var bestVersion pep440.Version
	for _, name := range candidates {
		if !strings.HasPrefix(name, prefix) || !numericTag.MatchString(name) {
			continue
		}
		parsed, err := pep440.Parse(name)
		if err != nil {
			continue
		}
		if best == "" {
			best, bestVersion = name, parsed
			continue
		}
		cmp := parsed.Compare(bestVersion)
		// 3.19 and 3.19.0 compare equal; keep the more specific spelling.
		if cmp > 0 || (cmp == 0 && len(name) > len(best)) {
			best, bestVersion = name, parsed
		}
	}
	if best == "" {
		return prefix
	}
	return best
}
