package adapters

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"container-os/internal/ports"
	"container-os/internal/shared"
	"container-os/internal/types"
)

// ImagetoolsAliasAdapter re-points tags with `docker buildx imagetools
// create`, which copies a multi-platform manifest list under a new tag.
type ImagetoolsAliasAdapter struct {
	Binary string
	DryRun bool
}

func NewImagetoolsAliasAdapter(binary string, dryRun bool) ImagetoolsAliasAdapter {
	if strings.TrimSpace(binary) == "" {
		binary = "docker"
	}
	return ImagetoolsAliasAdapter{Binary: binary, DryRun: dryRun}
}

func (a ImagetoolsAliasAdapter) CreateTagAlias(ctx context.Context, repository string, alias string, sourceTag string) error {
	if strings.TrimSpace(repository) == "" || strings.TrimSpace(alias) == "" || strings.TrimSpace(sourceTag) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("repository, alias and source tag are required")
	}
	args := a.args(repository, alias, sourceTag)
	if a.DryRun {
		log.Info().
			Str("command", a.Binary+" "+strings.Join(args, " ")).
			Msg("dry-run")
		return nil
	}
	cmd := exec.CommandContext(ctx, a.Binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		message := stderr.String()
		if isRateLimitMessage(message) {
			return fmt.Errorf("%w: %s", types.ErrRateLimited, strings.TrimSpace(message))
		}
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("imagetools create failed").
			WithCause(shared.CommandError(stderr.Bytes(), err))
	}
	return nil
}

func (a ImagetoolsAliasAdapter) args(repository string, alias string, sourceTag string) []string {
	return []string{
		"buildx", "imagetools", "create",
		"--tag", fmt.Sprintf("%s:%s", repository, alias),
		fmt.Sprintf("%s:%s", repository, sourceTag),
	}
}

func isRateLimitMessage(message string) bool {
	return strings.Contains(message, "429") || strings.Contains(message, "Too Many Requests")
}

var _ ports.TagAliasPort = ImagetoolsAliasAdapter{}
