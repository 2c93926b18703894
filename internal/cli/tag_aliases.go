package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"container-os/internal/app"
)

type tagAliasesOptions struct {
	Repository    string
	DryRun        bool
	Engine        string
	MaxRetries    int
	RetryDelaySec int
	ThrottleSec   int
}

func newTagAliasesCommand() *cobra.Command {
	opts := tagAliasesOptions{}
	cmd := &cobra.Command{
		Use:   "tag-aliases",
		Short: "Re-point channel alias tags at the current release",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTagAliases(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Repository, "repo", app.DefaultRepository, "Image repository holding the release tags")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Print the re-tag commands without running them")
	cmd.Flags().StringVar(&opts.Engine, "engine", "docker", "Docker-compatible binary providing buildx imagetools")
	cmd.Flags().IntVar(&opts.MaxRetries, "max-retries", 3, "Attempts per alias when rate limited")
	cmd.Flags().IntVar(&opts.RetryDelaySec, "retry-delay", 30, "Base retry delay in seconds, multiplied by the attempt number")
	cmd.Flags().IntVar(&opts.ThrottleSec, "throttle", 2, "Delay in seconds between successive aliases")
	_ = viper.BindPFlag("repo", cmd.Flags().Lookup("repo"))
	_ = viper.BindPFlag("dry_run", cmd.Flags().Lookup("dry-run"))
	_ = viper.BindPFlag("max_retries", cmd.Flags().Lookup("max-retries"))
	_ = viper.BindPFlag("retry_delay_sec", cmd.Flags().Lookup("retry-delay"))
	_ = viper.BindPFlag("throttle_sec", cmd.Flags().Lookup("throttle"))
	return cmd
}

func runTagAliases(ctx context.Context, cmd *cobra.Command, opts tagAliasesOptions) error {
	report, err := newReportWriter(cmd)
	if err != nil {
		return err
	}
	if flagChanged(cmd, "engine") {
		viper.Set("engine", opts.Engine)
	}
	service := newAppService()
	result, err := service.TagAliases(ctx, app.TagAliasesRequest{
		ManifestPath:  viper.GetString("manifest"),
		Repository:    resolveString(cmd, opts.Repository, "repo", "repo"),
		MaxRetries:    resolveInt(cmd, opts.MaxRetries, "max_retries", "max-retries"),
		RetryDelaySec: resolveInt(cmd, opts.RetryDelaySec, "retry_delay_sec", "retry-delay"),
		ThrottleSec:   resolveInt(cmd, opts.ThrottleSec, "throttle_sec", "throttle"),
		DryRun:        resolveBool(cmd, opts.DryRun, "dry_run", "dry-run"),
	})
	if err != nil && len(result.Result.Applied) == 0 {
		return err
	}
	if writeErr := report.WritePublish(result.Result); writeErr != nil && err == nil {
		return writeErr
	}
	return err
}
