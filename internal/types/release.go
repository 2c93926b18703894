package types

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

var releasePattern = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)$`)

// ReleaseVersion is the major.minor.patch release counter of the manifest.
type ReleaseVersion struct {
	Major int
	Minor int
	Patch int
}

func ParseReleaseVersion(value string) (ReleaseVersion, error) {
	match := releasePattern.FindStringSubmatch(value)
	if match == nil {
		return ReleaseVersion{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid release version %q", value))
	}
	var parts [3]int
	for i := range parts {
		n, err := strconv.Atoi(match[i+1])
		if err != nil {
			return ReleaseVersion{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid release version %q", value)).
				WithCause(err)
		}
		parts[i] = n
	}
	return ReleaseVersion{Major: parts[0], Minor: parts[1], Patch: parts[2]}, nil
}

func (v ReleaseVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// BumpPatch advances the patch component by one.
func (v ReleaseVersion) BumpPatch() ReleaseVersion {
	v.Patch++
	return v
}

// Compare returns -1, 0, or 1.
func (v ReleaseVersion) Compare(other ReleaseVersion) int {
	for _, pair := range [][2]int{{v.Major, other.Major}, {v.Minor, other.Minor}, {v.Patch, other.Patch}} {
		if pair[0] < pair[1] {
			return -1
		}
		if pair[0] > pair[1] {
			return 1
		}
	}
	return 0
}
