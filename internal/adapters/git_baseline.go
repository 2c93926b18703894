package adapters

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"container-os/internal/ports"
	"container-os/internal/types"
)

const gitShowTimeout = 30 * time.Second

// GitBaselineAdapter reads committed documents with `git show ref:path`.
// Every failure is reported as an absent baseline.
type GitBaselineAdapter struct {
	Ref string
	Dir string
}

func NewGitBaselineAdapter(ref string, dir string) GitBaselineAdapter {
	if strings.TrimSpace(ref) == "" {
		ref = "HEAD"
	}
	return GitBaselineAdapter{Ref: ref, Dir: dir}
}

func (a GitBaselineAdapter) ReadTargets(path string) *types.TargetsDocument {
	data, ok := a.show(path)
	if !ok {
		return nil
	}
	doc, err := ParseTargets(data)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("baseline targets unreadable; treating as absent")
		return nil
	}
	return &doc
}

func (a GitBaselineAdapter) ReadPackageVersions(path string) types.PackageVersions {
	data, ok := a.show(path)
	if !ok {
		return nil
	}
	versions, err := ParsePackageVersions(data)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("baseline package versions unreadable; treating as absent")
		return nil
	}
	return versions
}

func (a GitBaselineAdapter) show(path string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), gitShowTimeout)
	defer cancel()
	dir, spec := gitPathSpec(a.Dir, path)
	cmd := exec.CommandContext(ctx, "git", "show", fmt.Sprintf("%s:%s", a.Ref, spec))
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		log.Debug().Err(err).Str("path", path).Str("ref", a.Ref).Msg("no baseline document")
		return nil, false
	}
	return output, true
}

// gitPathSpec returns the directory to run git in and a "./"-relative path
// for the ref:path syntax, which does not accept absolute paths.
func gitPathSpec(dir string, path string) (string, string) {
	if filepath.IsAbs(path) {
		return filepath.Dir(path), "./" + filepath.Base(path)
	}
	return dir, "./" + filepath.ToSlash(filepath.Clean(path))
}

var _ ports.BaselinePort = GitBaselineAdapter{}
