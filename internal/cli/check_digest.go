package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"container-os/internal/app"
)

type checkDigestOptions struct {
	DigestsPath string
	Repository  string
	Platform    string
	Record      bool
}

func newCheckDigestCommand() *cobra.Command {
	opts := checkDigestOptions{}
	cmd := &cobra.Command{
		Use:   "check-digest <tag>",
		Short: "Detect a changed base image digest for a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheckDigest(cmd.Context(), cmd, args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.DigestsPath, "digests", defaultDigestsPath, "Recorded digest state path")
	cmd.Flags().StringVar(&opts.Repository, "repository", app.DefaultDigestRepository, "Registry repository of the base image")
	cmd.Flags().StringVar(&opts.Platform, "platform", "linux/amd64", "Platform whose digest is tracked")
	cmd.Flags().BoolVar(&opts.Record, "record", false, "Record the current digest when it changed")
	_ = viper.BindPFlag("digests", cmd.Flags().Lookup("digests"))
	return cmd
}

func runCheckDigest(ctx context.Context, cmd *cobra.Command, tag string, opts checkDigestOptions) error {
	report, err := newReportWriter(cmd)
	if err != nil {
		return err
	}
	service := newAppService()
	result, err := service.CheckDigest(ctx, app.CheckDigestRequest{
		Tag:         tag,
		Repository:  opts.Repository,
		Platform:    opts.Platform,
		DigestsPath: resolveString(cmd, opts.DigestsPath, "digests", "digests"),
		Record:      opts.Record,
	})
	if err != nil {
		return err
	}
	check := result.Check
	text := fmt.Sprintf("No digest change for %s\ndigest_changed=false\n", check.Tag)
	if check.Changed {
		text = fmt.Sprintf("Digest update detected for %s\nOld: %s\nNew: %s\ndigest_changed=true\n",
			check.Tag, check.Previous, check.Current)
	}
	return report.WriteValue(text, check)
}
