package main

import (
	"errors"
	"fmt"
	"os"

	"shipls/internal/api"

	"github.com/spf13/cobra"
)

var version = "dev" // Will be set during build

var (
	configFile string
	debugMode  bool
	token      string
	apiURL     string
)

var rootCmd = &cobra.Command{
	Use:   "shipls [app]",
	Short: "List deployments grouped by application",
	Long: `Shipls fetches your deployments from the deployment API and prints them
grouped by application, newest first. The project in the current directory
(named by project.yaml) is listed ahead of all others.

The optional [app] argument is passed to the API as a server-side filter.`,
	Args:          cobra.MaximumNArgs(1),
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runList,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", getEnvOrDefault("SHIPLS_CONFIG_FILE", ""), "Path to config file")
	rootCmd.PersistentFlags().BoolVarP(&debugMode, "debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&token, "token", "t", getEnvOrDefault("SHIPLS_TOKEN", ""), "API token (overrides stored credentials)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "url", getEnvOrDefault("SHIPLS_URL", ""), "API base URL (default "+api.DefaultBaseURL+")")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		reportError(err)
		os.Exit(1)
	}
}

// unexpectedError carries the stack captured when the listing phase
// panicked, so reportError can distinguish it from ordinary API failures.
type unexpectedError struct {
	message string
	stack   []byte
}

func (e *unexpectedError) Error() string { return e.message }

// reportError prints err the way its class demands: authentication failures
// get a login hint, API and usage failures a plain report, unexpected
// failures the message plus a stack trace.
func reportError(err error) {
	var authErr *api.AuthError
	var apiErr *api.APIError
	var unexpected *unexpectedError

	switch {
	case errors.As(err, &authErr):
		fmt.Fprintf(os.Stderr, "Error: authentication failed: %v\n", authErr)
		fmt.Fprintln(os.Stderr, `Run "shipls login --token <token>" to store a valid token.`)
	case errors.As(err, &unexpected):
		fmt.Fprintf(os.Stderr, "Unexpected error: %s\n%s", unexpected.message, unexpected.stack)
	case errors.As(err, &apiErr):
		fmt.Fprintf(os.Stderr, "Error: %v\n", apiErr)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

// getEnvOrDefault returns the environment variable value or a default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
