package adapters

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"container-os/internal/ports"
	"container-os/internal/shared"
	"container-os/internal/types"
)

// ContainerCLIAdapter runs commands through the docker or podman CLI.
type ContainerCLIAdapter struct {
	Binary string
}

func NewContainerCLIAdapter(engine string) ContainerCLIAdapter {
	binary := strings.TrimSpace(engine)
	if binary == "" {
		binary = "docker"
	}
	return ContainerCLIAdapter{Binary: binary}
}

func (a ContainerCLIAdapter) Run(ctx context.Context, image string, command string) (types.RunOutput, error) {
	if strings.TrimSpace(image) == "" {
		return types.RunOutput{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("image is empty")
	}
	cmd := exec.CommandContext(ctx, a.Binary, "run", "--rm", image, "/bin/sh", "-c", command)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	output := types.RunOutput{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return output, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		output.ExitCode = exitErr.ExitCode()
		return output, nil
	}
	return output, errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(a.Binary + " run failed").
		WithCause(shared.CommandError(stderr.Bytes(), err))
}

var _ ports.ContainerRunnerPort = ContainerCLIAdapter{}
