package e2e

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"container-os/tests/testutil"
)

func TestValidateCommandE2E(t *testing.T) {
	root := testutil.RepoRoot(t)

	cmd := exec.Command("go", "run", "./cmd/container-os", "validate",
		"--manifest", "fixtures/targets.json",
		"--package-versions", "fixtures/package_versions.json",
	)
	cmd.Dir = root
	cmd.Env = append(os.Environ(), "GO111MODULE=on")
	out, err := cmd.Output()
	require.NoError(t, err, string(out))
	assert.Equal(t, "validated: release 1.4.2, 2 targets, 2 channels\n", string(out))
}

func TestBumpCommandE2E(t *testing.T) {
	root := testutil.RepoRoot(t)
	dir := t.TempDir()
	targets := testutil.CopyFixture(t, dir, "targets.json")

	cmd := exec.Command("go", "run", "./cmd/container-os", "bump", "--manifest", targets, "--format", "json")
	cmd.Dir = root
	cmd.Env = append(os.Environ(), "GO111MODULE=on")
	out, err := cmd.Output()
	require.NoError(t, err, string(out))
	assert.JSONEq(t, `{"previous": "1.4.2", "current": "1.4.3"}`, string(out))

	data, err := os.ReadFile(filepath.Join(dir, "targets.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version": "1.4.3"`)
}

func TestMissingManifestExitCodeE2E(t *testing.T) {
	root := testutil.RepoRoot(t)
	cmd := exec.Command("go", "run", "./cmd/container-os", "bump",
		"--manifest", filepath.Join(t.TempDir(), "targets.json"))
	cmd.Dir = root
	cmd.Env = append(os.Environ(), "GO111MODULE=on")
	err := cmd.Run()
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	// go run reports a non-zero child exit as its own exit status 1.
	assert.NotZero(t, exitErr.ExitCode())
}
