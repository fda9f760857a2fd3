package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dashboard-analytics-service/internal/config"
	"dashboard-analytics-service/internal/dashboard/core/analytics"
	"dashboard-analytics-service/internal/log"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Workflow analytics dashboard",
	Long: `Aggregates workflows, execution logs, sessions, per-user stats and the
user roster into a single dashboard snapshot: overview totals, user
engagement categories, session retention, top users and blocks, and
per-block latency percentiles.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"dashboard version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))

	rootCmd.PersistentFlags().String("config", "", "Path to config file (default ./config.yaml)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(snapshotCmd)
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

func engineOptions(cfg *config.Config) analytics.Options {
	return analytics.Options{
		TopUsers:          cfg.Dashboard.TopUsers,
		TopReturningUsers: cfg.Dashboard.TopReturningUsers,
		RecentActivity:    cfg.Dashboard.RecentActivity,
	}
}

func initLogging(cfg *config.Config, cmd *cobra.Command) {
	log.Init(log.Config{
		Level:      log.Level(cfg.Log.Level),
		JSONOutput: cfg.Log.JSON,
		Output:     cmd.ErrOrStderr(),
	})
}
