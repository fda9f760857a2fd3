package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"dashboard-analytics-service/internal/dashboard/core/analytics"
	"dashboard-analytics-service/internal/dashboard/core/domain"
	"dashboard-analytics-service/internal/dashboard/core/usecase"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Compute a snapshot from a feeds file",
	Long: `Compute a dashboard snapshot offline from a JSON file holding the five
input feeds (workflows, logs, sessions, stats, users) and print it.`,
	Example: `  dashboard snapshot --feeds feeds.json
  dashboard snapshot --feeds feeds.json --format yaml`,
	RunE: runSnapshot,
}

func init() {
	snapshotCmd.Flags().String("feeds", "", "Path to the feeds JSON file (- for stdin)")
	snapshotCmd.Flags().String("format", "json", "Output format: json | yaml")
	_ = snapshotCmd.MarkFlagRequired("feeds")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("feeds")
	format, _ := cmd.Flags().GetString("format")
	if format != "json" && format != "yaml" {
		return fmt.Errorf("unsupported format %q (want json or yaml)", format)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	initLogging(cfg, cmd)

	feeds, err := readFeeds(cmd, path)
	if err != nil {
		return err
	}

	uc := usecase.NewComputeSnapshotUseCase(analytics.NewEngine(engineOptions(cfg)))
	snap, err := uc.Execute(cmd.Context(), *feeds)
	if err != nil {
		return err
	}

	return writeSnapshot(cmd.OutOrStdout(), snap, format)
}

func readFeeds(cmd *cobra.Command, path string) (*domain.Feeds, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open feeds: %w", err)
		}
		defer f.Close()
		r = f
	}

	var feeds domain.Feeds
	if err := json.NewDecoder(r).Decode(&feeds); err != nil {
		return nil, fmt.Errorf("decode feeds: %w", err)
	}
	return &feeds, nil
}

func writeSnapshot(w io.Writer, snap *domain.DashboardSnapshot, format string) error {
	if format == "yaml" {
		return encodeYAML(w, snap)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

// encodeYAML renders v through its JSON form so that field names and order
// match the HTTP API.
func encodeYAML(w io.Writer, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}

	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return err
	}
	clearStyle(&node)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return err
	}
	return enc.Close()
}

func clearStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		clearStyle(c)
	}
}
