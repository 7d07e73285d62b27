package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	flags := &scenarioFlags{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a scenario for cycles, missing work centers, and missing dependencies without scheduling it",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, _, err := loadScenario(flags)
			if err != nil {
				return err
			}

			result, err := service.Validate()
			if err != nil {
				return fmt.Errorf("validate failed: %w", err)
			}

			if result.HasCycles {
				fmt.Println("Cycles detected:")
				for _, path := range result.CyclePaths {
					fmt.Printf("  %v\n", path)
				}
			}
			if len(result.MissingCenters) > 0 {
				fmt.Printf("Work orders referencing unknown work centers: %v\n", result.MissingCenters)
			}
			if len(result.MissingDeps) > 0 {
				fmt.Println("Work orders with missing dependencies:")
				for id, deps := range result.MissingDeps {
					fmt.Printf("  %s depends on missing %v\n", id, deps)
				}
			}
			if len(result.DuplicateOrderID) > 0 {
				fmt.Printf("Duplicate work order ids: %v\n", result.DuplicateOrderID)
			}
			if len(result.Errors) == 0 {
				fmt.Println("Scenario is valid.")
				return nil
			}

			return fmt.Errorf("scenario failed validation with %d error(s)", len(result.Errors))
		},
	}

	flags.register(cmd)
	return cmd
}
