package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the player's playback status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			status, err := c.Status(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetching status: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "State:\t%s\n", status.State)
			fmt.Fprintf(w, "Paired:\t%t\n", status.Paired)
			fmt.Fprintf(w, "Slides:\t%d\n", status.SlideCount)
			if status.SlideCount > 0 {
				fmt.Fprintf(w, "Current slide:\t%d\n", status.CurrentSlide)
			}
			if !status.LastFetch.IsZero() {
				fmt.Fprintf(w, "Last fetch:\t%s\n", status.LastFetch.Format("2006-01-02 15:04:05"))
			}
			if status.LastError != "" {
				fmt.Fprintf(w, "Last error:\t%s\n", status.LastError)
			}
			return w.Flush()
		},
	}
}
