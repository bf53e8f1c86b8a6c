package command

// root.go defines the root command and the global flags.

import (
	"fmt"
	"os"
	"path/filepath"

	"feedbackme/cmd/cli/command/client"

	"github.com/spf13/cobra"
)

const defaultAPIURL = "http://localhost:8080"

var (
	apiURL    string // API server URL
	credsFile string // where login stores the access token
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "feedbackme",
	Short: "feedbackme - operator CLI for the feedback API",
	Long: `feedbackme talks to a running feedbackme API server. Log in once, then:
- list and create projects, and read their stats
- list feedback for a project and change its status
- check the waitlist size`,
	SilenceUsage: true,
}

// Execute runs the root command; called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	apiDefault := os.Getenv("FEEDBACKME_API")
	if apiDefault == "" {
		apiDefault = defaultAPIURL
	}

	rootCmd.PersistentFlags().StringVar(&apiURL, "api", apiDefault, "API server URL")
	rootCmd.PersistentFlags().StringVar(&credsFile, "credentials", defaultCredentialsPath(), "credentials file path")
}

func defaultCredentialsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".feedbackme-credentials.json"
	}
	return filepath.Join(dir, "feedbackme", "credentials.json")
}

// authenticatedClient returns a client carrying the stored access token.
func authenticatedClient() (*client.HTTPClient, error) {
	creds, err := loadCredentials(credsFile)
	if err != nil {
		return nil, fmt.Errorf("not logged in, run 'feedbackme login' first: %w", err)
	}

	httpClient := client.NewHTTPClient(apiURL)
	httpClient.SetToken(creds.AccessToken)
	return httpClient, nil
}
