package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"container-os/internal/app"
)

type updateOptions struct {
	Bump                bool
	Batch               bool
	Runner              string
	Engine              string
	HubURL              string
	HTTPTimeoutSec      int
	ContainerTimeoutSec int
}

func newUpdateCommand() *cobra.Command {
	opts := updateOptions{}
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Refresh alias patches and package versions from upstream sources",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUpdate(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.Bump, "bump", false, "Advance the release patch version when anything changed")
	cmd.Flags().BoolVar(&opts.Batch, "batch", true, "Query all packages of a target in one container run")
	cmd.Flags().StringVar(&opts.Runner, "runner", app.RunnerCLI, "Container runner (cli or testcontainers)")
	cmd.Flags().StringVar(&opts.Engine, "engine", "docker", "Container engine binary for the cli runner")
	cmd.Flags().StringVar(&opts.HubURL, "hub-url", "https://hub.docker.com", "Registry API base URL for tag listings")
	cmd.Flags().IntVar(&opts.HTTPTimeoutSec, "http-timeout", 30, "Registry HTTP timeout in seconds")
	cmd.Flags().IntVar(&opts.ContainerTimeoutSec, "container-timeout", 600, "Per-query container timeout in seconds (testcontainers runner)")
	_ = viper.BindPFlag("bump", cmd.Flags().Lookup("bump"))
	_ = viper.BindPFlag("batch", cmd.Flags().Lookup("batch"))
	_ = viper.BindPFlag("runner", cmd.Flags().Lookup("runner"))
	_ = viper.BindPFlag("engine", cmd.Flags().Lookup("engine"))
	_ = viper.BindPFlag("hub_url", cmd.Flags().Lookup("hub-url"))
	_ = viper.BindPFlag("http_timeout_sec", cmd.Flags().Lookup("http-timeout"))
	_ = viper.BindPFlag("container_timeout_sec", cmd.Flags().Lookup("container-timeout"))
	return cmd
}

func runUpdate(ctx context.Context, cmd *cobra.Command, opts updateOptions) error {
	report, err := newReportWriter(cmd)
	if err != nil {
		return err
	}
	service := newAppService()
	result, err := service.Update(ctx, app.UpdateRequest{
		ManifestPath:        viper.GetString("manifest"),
		PackageVersionsPath: viper.GetString("package_versions"),
		Bump:                resolveBool(cmd, opts.Bump, "bump", "bump"),
	})
	if err != nil {
		return err
	}
	return report.WriteUpdate(result.Result)
}
