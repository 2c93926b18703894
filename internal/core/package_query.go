package core

import (
	"fmt"
	"strings"
)

// PackageQuery builds the read-only shell script that reports candidate
// versions for a set of packages inside an OS image, and parses its
// output. Every implementation prints one "name=version" line per package.
type PackageQuery interface {
	Family() string
	Script(osName string, packages []string) string
	Parse(output string, packages []string) map[string]string
}

// dockerAptPackages need Docker's apt repository before apt can see them.
var dockerAptPackages = map[string]bool{
	"docker-ce":             true,
	"docker-ce-cli":         true,
	"containerd.io":         true,
	"docker-buildx-plugin":  true,
	"docker-compose-plugin": true,
}

var osFamilies = map[string]PackageQuery{
	"ubuntu": aptQuery{},
	"debian": aptQuery{},
	"alpine": apkQuery{},
}

// QueryFor returns the package query for osName, or false for OS names
// without a known package manager.
func QueryFor(osName string) (PackageQuery, bool) {
	query, ok := osFamilies[strings.ToLower(strings.TrimSpace(osName))]
	return query, ok
}

type aptQuery struct{}

func (aptQuery) Family() string { return "debian" }

func (aptQuery) Script(osName string, packages []string) string {
	setup := "apt-get update >/dev/null 2>&1"
	if needsDockerRepository(packages) {
		setup += " && " + dockerAptSetup(osName)
	}
	queries := make([]string, 0, len(packages))
	for _, pkg := range packages {
		queries = append(queries, fmt.Sprintf(
			`echo "%s=$(apt-cache policy %s 2>/dev/null | awk '/Candidate:/{print $2}')"`, pkg, pkg))
	}
	return setup + " && " + strings.Join(queries, " && ")
}

func (aptQuery) Parse(output string, packages []string) map[string]string {
	return parseVersionLines(output, packages)
}

type apkQuery struct{}

func (apkQuery) Family() string { return "alpine" }

func (apkQuery) Script(_ string, packages []string) string {
	queries := make([]string, 0, len(packages))
	for _, pkg := range packages {
		queries = append(queries, fmt.Sprintf(
			`echo "%s=$(apk search -e %s 2>/dev/null | sed -n "s/^%s-//p" | head -n 1)"`, pkg, pkg, pkg))
	}
	return "apk update >/dev/null 2>&1 && " + strings.Join(queries, " && ")
}

func (apkQuery) Parse(output string, packages []string) map[string]string {
	return parseVersionLines(output, packages)
}

func needsDockerRepository(packages []string) bool {
	for _, pkg := range packages {
		if dockerAptPackages[pkg] {
			return true
		}
	}
	return false
}

func dockerAptSetup(osName string) string {
	distro := strings.ToLower(strings.TrimSpace(osName))
	return strings.Join([]string{
		"apt-get install -y ca-certificates curl gnupg lsb-release >/dev/null 2>&1",
		"install -m 0755 -d /etc/apt/keyrings",
		fmt.Sprintf("curl -fsSL https://download.docker.com/linux/%s/gpg | gpg --dearmor -o /etc/apt/keyrings/docker.gpg", distro),
		"chmod a+r /etc/apt/keyrings/docker.gpg",
		fmt.Sprintf(`echo "deb [arch=$(dpkg --print-architecture) signed-by=/etc/apt/keyrings/docker.gpg] https://download.docker.com/linux/%s $(lsb_release -cs) stable" > /etc/apt/sources.list.d/docker.list`, distro),
		"apt-get update >/dev/null 2>&1",
	}, " && ")
}

// parseVersionLines reads "name=version" lines. Names that were not
// requested are ignored, and empty or "(none)" versions stay absent.
func parseVersionLines(output string, packages []string) map[string]string {
	wanted := make(map[string]bool, len(packages))
	for _, pkg := range packages {
		wanted[pkg] = true
	}
	results := map[string]string{}
	for _, line := range strings.Split(output, "\n") {
		name, value, ok := strings.Cut(strings.TrimSpace(line), "=")
		if !ok || !wanted[name] {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" || value == "(none)" {
			continue
		}
		results[name] = value
	}
	return results
}
