package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUnpairCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unpair",
		Short: "Clear the player's device identity",
		Long: `Unpair removes the stored device identity. The player stops cycling
content and shows the pairing message until it is paired again.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			if err := c.Unpair(cmd.Context()); err != nil {
				return fmt.Errorf("unpairing failed: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Device unpaired")
			return nil
		},
	}
}
