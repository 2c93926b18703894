package adapters

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGitPathSpec(t *testing.T) {
	dir, spec := gitPathSpec("", "manifests/targets.json")
	assert.Equal(t, "", dir)
	assert.Equal(t, "./manifests/targets.json", spec)

	dir, spec = gitPathSpec("/repo", "./manifests/../manifests/targets.json")
	assert.Equal(t, "/repo", dir)
	assert.Equal(t, "./manifests/targets.json", spec)

	abs := filepath.Join(t.TempDir(), "targets.json")
	dir, spec = gitPathSpec("", abs)
	assert.Equal(t, filepath.Dir(abs), dir)
	assert.Equal(t, "./targets.json", spec)
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", append([]string{
		"-c", "user.name=ci", "-c", "user.email=ci@example.com", "-c", "commit.gpgsign=false",
	}, args...)...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, string(output))
}

func TestGitBaselineReadsCommittedDocument(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	repo := t.TempDir()
	runGit(t, repo, "init", "-q")
	fixture, err := os.ReadFile("../../fixtures/targets.json")
	require.NoError(t, err)
	path := filepath.Join(repo, "targets.json")
	require.NoError(t, os.WriteFile(path, fixture, 0644))
	runGit(t, repo, "add", "targets.json")
	runGit(t, repo, "commit", "-q", "-m", "baseline")

	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

	baseline := NewGitBaselineAdapter("", "")
	doc := baseline.ReadTargets(path)
	require.NotNil(t, doc)
	assert.Equal(t, "1.4.2", doc.Version)

	assert.Nil(t, baseline.ReadPackageVersions(filepath.Join(repo, "package_versions.json")))
}

func TestGitBaselineOutsideRepositoryIsAbsent(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	dir := t.TempDir()
	baseline := NewGitBaselineAdapter("HEAD", dir)
	assert.Nil(t, baseline.ReadTargets("targets.json"))
}
