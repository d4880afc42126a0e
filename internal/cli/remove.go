package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// RemoveOptions holds flags for the remove command.
type RemoveOptions struct {
	*RootOptions
	ItemID string
}

// NewRemoveCommand creates the remove command.
func NewRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RemoveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "remove [position]",
		Short: "Remove an item from the grid",
		Long: `Remove the item at a 1-based position, or every slot bound to a given
item id with --item. The freed item returns to the backlog.

Examples:
  topgrid remove 3
  topgrid remove --item film-042`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (len(args) == 0) == (opts.ItemID == "") {
				return NewExitError(ExitCommandError, "provide a position or --item, not both")
			}

			session, err := openSession(rootOpts)
			if err != nil {
				return err
			}
			defer session.Close()

			if err := requireGrid(session); err != nil {
				return err
			}

			if opts.ItemID != "" {
				n := session.Engine.RemoveBySourceID(opts.ItemID)
				if n == 0 {
					return NewExitError(ExitFailure, fmt.Sprintf("item %s is not on the grid", opts.ItemID))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed %s from %d slot(s)\n", opts.ItemID, n)
			} else {
				position, err := strconv.Atoi(args[0])
				if err != nil {
					return NewExitError(ExitCommandError, fmt.Sprintf("position must be an integer, got %q", args[0]))
				}
				if !session.Engine.Remove(position - 1) {
					return NewExitError(ExitFailure, fmt.Sprintf("no item at position %d", position))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed item at position %d\n", position)
			}

			return printGrid(cmd.OutOrStdout(), rootOpts.Format, session.Engine.Slots(), session.Engine.Statistics())
		},
	}

	cmd.Flags().StringVar(&opts.ItemID, "item", "", "remove by source item id instead of position")

	return cmd
}
