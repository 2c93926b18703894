package ports

import (
	"context"

	"container-os/internal/types"
)

// ContainerRunnerPort runs a shell command inside an ephemeral instance of
// an image. A non-nil error means the environment could not be started;
// the command's own exit status is reported in RunOutput.
type ContainerRunnerPort interface {
	Run(ctx context.Context, image string, command string) (types.RunOutput, error)
}
