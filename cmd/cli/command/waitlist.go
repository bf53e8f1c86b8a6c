package command

import (
	"fmt"

	"feedbackme/cmd/cli/command/client"

	"github.com/spf13/cobra"
)

var waitlistCmd = &cobra.Command{
	Use:   "waitlist",
	Short: "Waitlist commands",
}

var waitlistCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Show how many people joined the waitlist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := client.NewHTTPClient(apiURL).WaitlistStats(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get waitlist stats: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%d registration(s)\n", stats.TotalRegistrations)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(waitlistCmd)
	waitlistCmd.AddCommand(waitlistCountCmd)
}
