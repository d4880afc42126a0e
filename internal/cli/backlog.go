package cli

import (
	"github.com/spf13/cobra"

	"github.com/merrin/topgrid/internal/backlog"
)

// BacklogOptions holds flags for the backlog command.
type BacklogOptions struct {
	*RootOptions
	AvailableOnly bool
}

// NewBacklogCommand creates the backlog command.
func NewBacklogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BacklogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "backlog",
		Short:         "List catalog items and their placement state",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession(rootOpts)
			if err != nil {
				return err
			}
			defer session.Close()

			store := session.Backlog
			if opts.AvailableOnly {
				// Re-list through a filtered copy so output code stays uniform.
				store = filteredAvailable(store)
			}
			return printBacklog(cmd.OutOrStdout(), rootOpts.Format, store)
		},
	}

	cmd.Flags().BoolVar(&opts.AvailableOnly, "available", false, "only items not currently placed")

	return cmd
}

// filteredAvailable narrows a store to its unplaced items.
func filteredAvailable(store *backlog.Store) *backlog.Store {
	return backlog.NewStore(store.Available()...)
}
