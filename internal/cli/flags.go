package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"container-os/internal/adapters"
	"container-os/internal/app"
)

func newAppService() app.Service {
	return app.NewService(app.Config{
		Runner:              viper.GetString("runner"),
		Engine:              viper.GetString("engine"),
		Batch:               viper.GetBool("batch"),
		HubURL:              viper.GetString("hub_url"),
		HubRepositories:     viper.GetStringMapString("hub_repositories"),
		HTTPTimeoutSec:      viper.GetInt("http_timeout_sec"),
		ContainerTimeoutSec: viper.GetInt("container_timeout_sec"),
		BaselineRef:         viper.GetString("baseline_ref"),
		DryRun:              viper.GetBool("dry_run"),
	})
}

func newReportWriter(cmd *cobra.Command) (adapters.ReportWriter, error) {
	return adapters.NewReportWriter(cmd.OutOrStdout(), viper.GetString("format"))
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetBool(key)
}

func resolveInt(cmd *cobra.Command, value int, key string, flagName string) int {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetInt(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
