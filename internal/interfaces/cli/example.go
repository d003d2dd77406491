package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/turtacn/admet-prioritizer/internal/application/prioritization"
)

// NewExampleCmd prints the bundled example table, a starting point for
// custom input.
func NewExampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example",
		Short: "Print the bundled example data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := io.WriteString(cmd.OutOrStdout(), prioritization.ExampleData)
			return err
		},
	}
}

//Personal.AI order the ending
