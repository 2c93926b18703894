package types

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReleaseVersion(t *testing.T) {
	version, err := ParseReleaseVersion("1.2.9")
	require.NoError(t, err)
	assert.Equal(t, ReleaseVersion{Major: 1, Minor: 2, Patch: 9}, version)
	assert.Equal(t, "1.2.9", version.String())
}

func TestParseReleaseVersionRejectsMalformed(t *testing.T) {
	for _, value := range []string{"", "1.2", "1.2.3.4", "v1.2.3", "1.2.x", " 1.2.3"} {
		_, err := ParseReleaseVersion(value)
		require.Error(t, err, value)
		assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err), value)
	}
}

func TestReleaseVersionBumpPatch(t *testing.T) {
	version, err := ParseReleaseVersion("1.0.9")
	require.NoError(t, err)
	bumped := version.BumpPatch()
	assert.Equal(t, "1.0.10", bumped.String())
	assert.Equal(t, 1, bumped.Compare(version))
	assert.Equal(t, "1.0.9", version.String())
}

func TestReleaseVersionCompare(t *testing.T) {
	a := ReleaseVersion{Major: 1, Minor: 10, Patch: 0}
	b := ReleaseVersion{Major: 1, Minor: 9, Patch: 30}
	assert.Equal(t, 1, a.Compare(b))
	assert.Equal(t, -1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))
}
