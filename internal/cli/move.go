package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewMoveCommand creates the move command.
func NewMoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "move <from> <to>",
		Short: "Move an item between grid slots",
		Long: `Move the item at one position to another. Positions are 1-based.
Moving onto an occupied slot swaps the two items.

Example:
  topgrid move 1 5`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := strconv.Atoi(args[0])
			if err != nil {
				return NewExitError(ExitCommandError, fmt.Sprintf("from must be an integer, got %q", args[0]))
			}
			to, err := strconv.Atoi(args[1])
			if err != nil {
				return NewExitError(ExitCommandError, fmt.Sprintf("to must be an integer, got %q", args[1]))
			}

			session, err := openSession(rootOpts)
			if err != nil {
				return err
			}
			defer session.Close()

			if err := requireGrid(session); err != nil {
				return err
			}

			if err := session.Engine.Move(from-1, to-1); err != nil {
				return rejectionError(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "moved %d -> %d\n", from, to)
			return printGrid(cmd.OutOrStdout(), rootOpts.Format, session.Engine.Slots(), session.Engine.Statistics())
		},
	}
}
