package command

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"feedbackme/cmd/cli/dto"

	"github.com/spf13/cobra"
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Feedback commands",
}

var listFeedbackCmd = &cobra.Command{
	Use:   "list [project-id]",
	Short: "List a project's feedback",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid project ID: %w", err)
		}

		filter := dto.FeedbackFilter{ProjectID: projectID}
		filter.Type, _ = cmd.Flags().GetString("type")
		filter.Status, _ = cmd.Flags().GetString("status")
		filter.Sort, _ = cmd.Flags().GetString("sort")
		filter.Search, _ = cmd.Flags().GetString("search")
		filter.Limit, _ = cmd.Flags().GetInt("limit")

		httpClient, err := authenticatedClient()
		if err != nil {
			return err
		}

		result, err := httpClient.ListFeedback(cmd.Context(), filter)
		if err != nil {
			return fmt.Errorf("failed to list feedback: %w", err)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTYPE\tSTATUS\tUP\tDOWN\tTITLE")
		for _, item := range result.Feedback {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%s\n", item.ID, item.Type, item.Status, item.Upvotes, item.Downvotes, item.Title)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d item(s)\n", result.Count)
		return nil
	},
}

var statusFeedbackCmd = &cobra.Command{
	Use:       "status [feedback-id] [open|in-progress|closed]",
	Short:     "Change the status of a feedback item",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"open", "in-progress", "closed"},
	RunE: func(cmd *cobra.Command, args []string) error {
		feedbackID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid feedback ID: %w", err)
		}

		httpClient, err := authenticatedClient()
		if err != nil {
			return err
		}

		result, err := httpClient.UpdateStatus(cmd.Context(), feedbackID, args[1])
		if err != nil {
			return fmt.Errorf("failed to update status: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Feedback %d: %s -> %s\n", result.ID, result.PreviousStatus, result.Status)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(feedbackCmd)
	feedbackCmd.AddCommand(listFeedbackCmd, statusFeedbackCmd)

	listFeedbackCmd.Flags().String("type", "", "Filter by type (feature, bug, improvement)")
	listFeedbackCmd.Flags().String("status", "", "Filter by status (open, in-progress, closed)")
	listFeedbackCmd.Flags().String("sort", "newest", "Sort order (newest, oldest, votes, upvotes)")
	listFeedbackCmd.Flags().StringP("search", "q", "", "Search title and description")
	listFeedbackCmd.Flags().IntP("limit", "n", 0, "Maximum items to show (server caps at 100)")
}
