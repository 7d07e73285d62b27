package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the top-level "reflow" command and registers every
// subcommand.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "reflow",
		Short: "Finite-capacity production scheduler",
		Long: `reflow recomputes start and end times for a set of work orders so they
honor dependencies, work center shifts, maintenance windows, and
no-overlap constraints, while disturbing the original schedule as
little as possible.`,
	}

	root.AddCommand(
		newReflowCmd(),
		newValidateCmd(),
		newGanttCmd(),
		newBatchCmd(),
	)

	return root
}
