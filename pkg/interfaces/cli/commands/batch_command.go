package commands

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/reflowlabs/reflow/pkg/interfaces/cli/output"
)

func newBatchCmd() *cobra.Command {
	var timezone, now, format, outputDir string
	var allowEarlyStart, verbose bool

	cmd := &cobra.Command{
		Use:   "batch <scenario-dir> [scenario-dir...]",
		Short: "Run a reflow independently over multiple scenario directories",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var failures []string

			for _, dir := range args {
				flags := &scenarioFlags{
					ScenarioDir:     dir,
					Timezone:        timezone,
					Now:             now,
					AllowEarlyStart: allowEarlyStart,
				}

				service, cfg, err := loadScenario(flags)
				if err != nil {
					failures = append(failures, fmt.Sprintf("%s: %v", dir, err))
					continue
				}

				started := time.Now()
				result, err := service.Run(cmd.Context(), cfg)
				if err != nil {
					failures = append(failures, fmt.Sprintf("%s: %v", dir, err))
					continue
				}

				scenarioOutputDir := outputDir
				if scenarioOutputDir != "" {
					scenarioOutputDir = filepath.Join(outputDir, filepath.Base(dir))
				}

				if err := output.Generate(result, output.Config{
					Format:         format,
					OutputDir:      scenarioOutputDir,
					Verbose:        verbose,
					ProcessingTime: time.Since(started),
				}); err != nil {
					failures = append(failures, fmt.Sprintf("%s: %v", dir, err))
					continue
				}

				if verbose {
					fmt.Printf("%s: %d orders, %d rescheduled\n", dir, result.Metadata.TotalOrders, result.Metadata.RescheduledCount)
				}
			}

			if len(failures) > 0 {
				return fmt.Errorf("%d of %d scenarios failed:\n  %s", len(failures), len(args), strings.Join(failures, "\n  "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&timezone, "timezone", "UTC", "IANA timezone used to evaluate shift windows")
	cmd.Flags().StringVar(&now, "now", "", "RFC3339 timestamp used as 'now' when --allow-earlier-start is set")
	cmd.Flags().BoolVar(&allowEarlyStart, "allow-earlier-start", false, "allow orders with no dependency or machine history to start earlier than their original start")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json, csv")
	cmd.Flags().StringVar(&outputDir, "output", "", "base directory for per-scenario results (default: stdout)")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "print a one-line summary per scenario")

	return cmd
}
