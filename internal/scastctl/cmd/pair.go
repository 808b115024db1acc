package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPairCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pair CODE",
		Short: "Pair the player using a link code",
		Long: `Pair submits a link code shown in the management panel to the player.
On success the player stores its device identity and starts fetching
content immediately.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			link, err := c.Pair(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("pairing failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Paired as device %s\n", link.UUID)
			return nil
		},
	}
}
