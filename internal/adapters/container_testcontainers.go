package adapters

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"container-os/internal/ports"
	"container-os/internal/types"
)

const defaultContainerExitTimeout = 10 * time.Minute

// TestcontainersRunnerAdapter runs commands through the Docker API using
// testcontainers-go instead of shelling out to a CLI. Output is the
// container log, which interleaves stdout and stderr.
type TestcontainersRunnerAdapter struct {
	ExitTimeout time.Duration
}

func NewTestcontainersRunnerAdapter(exitTimeout time.Duration) TestcontainersRunnerAdapter {
	if exitTimeout <= 0 {
		exitTimeout = defaultContainerExitTimeout
	}
	return TestcontainersRunnerAdapter{ExitTimeout: exitTimeout}
}

func (a TestcontainersRunnerAdapter) Run(ctx context.Context, image string, command string) (types.RunOutput, error) {
	if strings.TrimSpace(image) == "" {
		return types.RunOutput{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("image is empty")
	}
	req := testcontainers.ContainerRequest{
		Image:      image,
		Entrypoint: []string{"/bin/sh", "-c"},
		Cmd:        []string{command},
		WaitingFor: wait.ForExit().WithExitTimeout(a.ExitTimeout),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if container != nil {
		defer func() {
			_ = container.Terminate(context.Background())
		}()
	}
	if err != nil {
		return types.RunOutput{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to start container").
			WithCause(err)
	}

	state, err := container.State(ctx)
	if err != nil {
		return types.RunOutput{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to inspect container").
			WithCause(err)
	}
	logs, err := container.Logs(ctx)
	if err != nil {
		return types.RunOutput{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read container logs").
			WithCause(err)
	}
	defer logs.Close()
	data, err := io.ReadAll(logs)
	if err != nil {
		return types.RunOutput{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read container logs").
			WithCause(err)
	}
	output := types.RunOutput{ExitCode: state.ExitCode, Stdout: string(data)}
	if state.ExitCode != 0 {
		output.Stderr = output.Stdout
	}
	return output, nil
}

var _ ports.ContainerRunnerPort = TestcontainersRunnerAdapter{}
