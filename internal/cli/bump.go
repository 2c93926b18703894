package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"container-os/internal/app"
)

func newBumpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "bump",
		Short: "Advance the release patch version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBump(cmd.Context(), cmd)
		},
	}
}

func runBump(ctx context.Context, cmd *cobra.Command) error {
	report, err := newReportWriter(cmd)
	if err != nil {
		return err
	}
	service := newAppService()
	result, err := service.Bump(ctx, app.BumpRequest{
		ManifestPath: viper.GetString("manifest"),
	})
	if err != nil {
		return err
	}
	return report.WriteValue(
		fmt.Sprintf("version bumped: %s -> %s\n", result.Previous, result.Current),
		map[string]string{"previous": result.Previous, "current": result.Current},
	)
}
