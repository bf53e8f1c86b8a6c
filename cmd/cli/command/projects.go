package command

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"feedbackme/cmd/cli/dto"

	"github.com/spf13/cobra"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Project management commands",
}

var listProjectsCmd = &cobra.Command{
	Use:   "list",
	Short: "List your projects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient, err := authenticatedClient()
		if err != nil {
			return err
		}

		result, err := httpClient.ListProjects(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list projects: %w", err)
		}

		if result.Count == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No projects yet.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tDOMAIN\tACTIVE\tAPI KEY")
		for _, p := range result.Projects {
			fmt.Fprintf(w, "%d\t%s\t%s\t%t\t%s\n", p.ID, p.Name, p.Domain, p.IsActive, p.APIKey)
		}
		return w.Flush()
	},
}

var createProjectCmd = &cobra.Command{
	Use:   "create [name] [domain]",
	Short: "Create a project and print its API key",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient, err := authenticatedClient()
		if err != nil {
			return err
		}

		req := &dto.CreateProjectRequest{Name: args[0], Domain: args[1]}
		if description, _ := cmd.Flags().GetString("description"); description != "" {
			req.Description = &description
		}

		project, err := httpClient.CreateProject(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "✓ Project created!")
		fmt.Fprintf(out, "ID: %d\n", project.ID)
		fmt.Fprintf(out, "Domain: %s\n", project.Domain)
		fmt.Fprintf(out, "API key: %s\n", project.APIKey)
		return nil
	},
}

var projectStatsCmd = &cobra.Command{
	Use:   "stats [project-id]",
	Short: "Show feedback and vote totals for a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid project ID: %w", err)
		}

		httpClient, err := authenticatedClient()
		if err != nil {
			return err
		}

		stats, err := httpClient.ProjectStats(cmd.Context(), projectID)
		if err != nil {
			return fmt.Errorf("failed to get stats: %w", err)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "Total feedback\t%d\n", stats.TotalFeedback)
		fmt.Fprintf(w, "Total votes\t%d\n", stats.TotalVotes)
		fmt.Fprintf(w, "Features / bugs / improvements\t%d / %d / %d\n", stats.FeatureRequests, stats.BugReports, stats.Improvements)
		fmt.Fprintf(w, "Open / in progress / closed\t%d / %d / %d\n", stats.OpenItems, stats.InProgressItems, stats.ClosedItems)
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(projectsCmd)
	projectsCmd.AddCommand(listProjectsCmd, createProjectCmd, projectStatsCmd)

	createProjectCmd.Flags().StringP("description", "d", "", "Optional project description")
}
