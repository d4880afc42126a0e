package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init <size>",
		Short: "Create an empty grid of the given size",
		Long: `Create an empty grid of the given size, replacing any existing grid.

Example:
  topgrid init 10`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			size, err := strconv.Atoi(args[0])
			if err != nil || size <= 0 {
				return NewExitError(ExitCommandError, fmt.Sprintf("size must be a positive integer, got %q", args[0]))
			}

			session, err := openSession(rootOpts)
			if err != nil {
				return err
			}
			defer session.Close()

			session.Engine.Initialize(size)

			fmt.Fprintf(cmd.OutOrStdout(), "initialized empty grid of %d slots\n", size)
			return nil
		},
	}
}
