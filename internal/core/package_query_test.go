package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryForKnownFamilies(t *testing.T) {
	for osName, family := range map[string]string{"ubuntu": "debian", "Debian": "debian", "alpine": "alpine"} {
		query, ok := QueryFor(osName)
		require.True(t, ok, osName)
		assert.Equal(t, family, query.Family())
	}
	_, ok := QueryFor("fedora")
	assert.False(t, ok)
}

func TestAptScriptAddsDockerRepositoryOnlyWhenNeeded(t *testing.T) {
	query, _ := QueryFor("debian")
	plain := query.Script("debian", []string{"curl"})
	assert.NotContains(t, plain, "download.docker.com")
	assert.Contains(t, plain, "apt-cache policy curl")

	docker := query.Script("debian", []string{"curl", "docker-ce"})
	assert.Contains(t, docker, "https://download.docker.com/linux/debian/gpg")
	assert.Contains(t, docker, `echo "docker-ce=$(apt-cache policy docker-ce`)
}

func TestApkScriptStripsPackagePrefix(t *testing.T) {
	query, _ := QueryFor("alpine")
	script := query.Script("alpine", []string{"podman"})
	assert.Contains(t, script, "apk search -e podman")
	assert.Contains(t, script, `s/^podman-//p`)
}

func TestParseVersionLines(t *testing.T) {
	output := "Reading package lists...\n" +
		"docker-ce=5:27.3.1-1~ubuntu.24.04~noble\n" +
		"podman=(none)\n" +
		"curl=\n" +
		"unrequested=1.0\n" +
		"  containerd.io=1.7.22-1  \n"
	got := parseVersionLines(output, []string{"docker-ce", "podman", "curl", "containerd.io"})
	assert.Equal(t, map[string]string{
		"docker-ce":     "5:27.3.1-1~ubuntu.24.04~noble",
		"containerd.io": "1.7.22-1",
	}, got)
}
