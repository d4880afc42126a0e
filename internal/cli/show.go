package cli

import (
	"github.com/spf13/cobra"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show",
		Short:         "Show the grid and its statistics",
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

			return printGrid(cmd.OutOrStdout(), rootOpts.Format, session.Engine.Slots(), session.Engine.Statistics())
		},
	}
}
