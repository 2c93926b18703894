package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"container-os/internal/types"
)

func TestBumpReleaseOnlyWhenChanged(t *testing.T) {
	doc := types.TargetsDocument{Version: "1.4.2"}

	same, result, err := BumpRelease(doc, types.ReconcileResult{ReleaseVersion: "1.4.2"})
	require.NoError(t, err)
	assert.Equal(t, "1.4.2", same.Version)
	assert.False(t, result.Bumped)

	bumped, result, err := BumpRelease(doc, types.ReconcileResult{Changed: true, ReleaseVersion: "1.4.2"})
	require.NoError(t, err)
	assert.Equal(t, "1.4.3", bumped.Version)
	assert.True(t, result.Bumped)
	assert.Equal(t, "1.4.3", result.ReleaseVersion)
	assert.Equal(t, "1.4.2", doc.Version)
}

func TestBumpVersionIsMonotonic(t *testing.T) {
	doc := types.TargetsDocument{Version: "2.0.99"}
	previous, err := types.ParseReleaseVersion(doc.Version)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		doc, err = BumpVersion(doc)
		require.NoError(t, err)
		current, err := types.ParseReleaseVersion(doc.Version)
		require.NoError(t, err)
		assert.Equal(t, 1, current.Compare(previous))
		previous = current
	}
	assert.Equal(t, "2.0.102", doc.Version)
}

func TestBumpVersionRejectsMalformed(t *testing.T) {
	_, err := BumpVersion(types.TargetsDocument{Version: "1.4"})
	require.Error(t, err)
}
