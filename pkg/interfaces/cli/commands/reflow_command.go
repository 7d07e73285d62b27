package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/reflowlabs/reflow/pkg/interfaces/cli/output"
)

func newReflowCmd() *cobra.Command {
	flags := &scenarioFlags{}
	var format, outputDir string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "reflow",
		Short: "Reschedule a set of work orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, cfg, err := loadScenario(flags)
			if err != nil {
				return err
			}

			started := time.Now()
			result, err := service.Run(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("reflow failed: %w", err)
			}

			return output.Generate(result, output.Config{
				Format:         format,
				OutputDir:      outputDir,
				Verbose:        verbose,
				ProcessingTime: time.Since(started),
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json, csv")
	cmd.Flags().StringVar(&outputDir, "output", "", "directory to write results to (default: stdout)")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "print progress while running")

	return cmd
}
