package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reflowlabs/reflow/pkg/interfaces/cli/output"
)

func newGanttCmd() *cobra.Command {
	flags := &scenarioFlags{}
	var outputFile string

	cmd := &cobra.Command{
		Use:   "gantt",
		Short: "Run a reflow and render the result as an SVG Gantt chart",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, cfg, err := loadScenario(flags)
			if err != nil {
				return err
			}

			result, err := service.Run(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("reflow failed: %w", err)
			}

			chart := output.NewGanttChart(result)
			svg := chart.GenerateSVG(result)

			if outputFile == "" {
				fmt.Println(svg)
				return nil
			}
			if err := os.WriteFile(outputFile, []byte(svg), 0644); err != nil {
				return fmt.Errorf("writing gantt chart: %w", err)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&outputFile, "output", "", "path to write the SVG file to (default: stdout)")

	return cmd
}
