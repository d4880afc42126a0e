package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/merrin/topgrid/internal/engine"
)

// NewPlaceCommand creates the place command.
func NewPlaceCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "place <item-id> [position]",
		Short: "Place a backlog item into a grid slot",
		Long: `Place a backlog item into a grid slot. Positions are 1-based; with no
position the item goes into the first empty slot.

Example:
  topgrid place film-042 3`,
		Args:          cobra.RangeArgs(1, 2),
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

			var position int
			if len(args) == 2 {
				p, err := strconv.Atoi(args[1])
				if err != nil {
					return NewExitError(ExitCommandError, fmt.Sprintf("position must be an integer, got %q", args[1]))
				}
				position = p - 1
			} else {
				next, ok := session.Engine.NextEmptyPosition()
				if !ok {
					return NewExitError(ExitFailure, "grid is complete: remove or move an item first")
				}
				position = next
			}

			err = session.Engine.HandlePlacementRequest(engine.PlacementRequest{
				Origin:      engine.ExternalOrigin(args[0]),
				Destination: position,
			})
			if err != nil {
				return rejectionError(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "placed %s at position %d\n", args[0], position+1)
			return printGrid(cmd.OutOrStdout(), rootOpts.Format, session.Engine.Slots(), session.Engine.Statistics())
		},
	}
}
