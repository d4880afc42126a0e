package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewClearCommand creates the clear command.
func NewClearCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "clear",
		Short:         "Empty the entire grid",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession(rootOpts)
			if err != nil {
				return err
			}
			defer session.Close()

			if err := requireGrid(session); err != nil {
				return err
			}

			session.Engine.Clear()

			fmt.Fprintln(cmd.OutOrStdout(), "grid cleared")
			return nil
		},
	}
}
