package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"container-os/internal/app"
)

type detectOptions struct {
	BaselineRef string
}

func newDetectCommand() *cobra.Command {
	opts := detectOptions{}
	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Report significant changes against the committed manifests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDetect(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.BaselineRef, "baseline-ref", "HEAD", "Git revision holding the baseline documents")
	_ = viper.BindPFlag("baseline_ref", cmd.Flags().Lookup("baseline-ref"))
	return cmd
}

func runDetect(ctx context.Context, cmd *cobra.Command, _ detectOptions) error {
	report, err := newReportWriter(cmd)
	if err != nil {
		return err
	}
	service := newAppService()
	result, err := service.Detect(ctx, app.DetectRequest{
		ManifestPath:        viper.GetString("manifest"),
		PackageVersionsPath: viper.GetString("package_versions"),
	})
	if err != nil {
		return err
	}
	return report.WriteDrift(result.Report)
}
