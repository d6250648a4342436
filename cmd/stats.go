package cmd

import (
	"fmt"
	"os"
	"time"

	"lcftrans/core/config"
	"lcftrans/core/logger"
	"lcftrans/feature/status"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats [DIRECTORY]",
	Short: "Show translation progress of the unit files",
	Long: `Counts the terms of every unit file in the output directory and prints
per-unit and total progress. Stale and unmatched companion files count
toward the unit that produced them. Pass a directory to read somewhere
other than the configured output.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		startTime := time.Now()

		jsonOutput, _ := cmd.Flags().GetBool("json")

		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}

		dir := cfg.Project.Output
		if len(args) > 0 {
			dir = args[0]
		}

		// No caching, a one-shot command always reads fresh
		svc := status.NewService(dir, 0, logg)
		overview, err := svc.Overview()
		if err != nil {
			return fmt.Errorf("failed to read unit files: %w", err)
		}

		if jsonOutput {
			// Save the full report to file
			filename := fmt.Sprintf("stats_%d.json", time.Now().Unix())
			data, err := json.MarshalIndent(overview, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			if err := os.WriteFile(filename, data, 0644); err != nil {
				return fmt.Errorf("failed to save JSON file: %w", err)
			}
			logg.Info("JSON report saved", zap.String("file", filename), zap.Int("units", len(overview.Units)))
		}

		executionTime := time.Since(startTime)

		// Always display the table
		fmt.Println("\n=== Translation Progress ===")
		fmt.Printf("%-32s %8s %11s %6s %6s %10s %7s\n",
			"Unit", "Terms", "Translated", "Fuzzy", "Stale", "Unmatched", "Done")
		for _, u := range overview.Units {
			fmt.Printf("%-32s %8d %11d %6d %6d %10d %6.1f%%\n",
				u.Name, u.Total, u.Translated, u.Fuzzy, u.Stale, u.Unmatched, u.Percent)
		}
		fmt.Printf("%-32s %8d %11d %6d %6d %10s %6.1f%%\n",
			"TOTAL", overview.Total, overview.Translated, overview.Fuzzy, overview.Stale, "", overview.Percent)
		fmt.Printf("Execution Time: %s\n", executionTime.String())

		logg.Info("Stats completed",
			zap.String("directory", dir),
			zap.Int("units", len(overview.Units)),
			zap.Int("total", overview.Total),
			zap.Int("translated", overview.Translated),
			zap.Float64("percent", overview.Percent),
			zap.Duration("execution_time", executionTime),
		)

		return nil
	},
}

func init() {
	RootCmd.AddCommand(statsCmd)
	statsCmd.Flags().Bool("json", false, "Also save the full report to a timestamped JSON file")
}
