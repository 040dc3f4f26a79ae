package main

import (
	"fmt"

	"shipls/internal/api"
	"shipls/internal/config"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Verify and store an API token",
	Long: `Verify a token against the deployment API and store it in the config file.

The token is taken from --token or the SHIPLS_TOKEN environment variable.`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored API token",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

func runLogin(cmd *cobra.Command, args []string) error {
	logger := newLogger(debugMode)

	if token == "" {
		return &api.AuthError{Message: "no token provided, pass --token or set SHIPLS_TOKEN"}
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	client := api.NewClient(resolveURL(cfg), token, logger)
	defer client.Close()

	sp := newSpinner(" Verifying token")
	sp.Start()
	user, err := client.Verify(cmd.Context())
	sp.Stop()
	if err != nil {
		return err
	}

	cfg.Token = token
	if apiURL != "" {
		cfg.URL = apiURL
	}
	if err := cfg.Save(); err != nil {
		return err
	}

	fmt.Printf("Logged in as %s\n", user.Email)
	fmt.Printf("Token stored in %s\n", cfg.Path())
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	if cfg.Token == "" {
		fmt.Println("Not logged in")
		return nil
	}

	cfg.Token = ""
	if err := cfg.Save(); err != nil {
		return err
	}

	fmt.Println("Logged out")
	return nil
}
