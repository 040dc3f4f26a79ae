package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"shipls/internal/api"
	"shipls/internal/config"
	"shipls/internal/history"
	"shipls/internal/listing"
	"shipls/internal/project"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

func runList(cmd *cobra.Command, args []string) (retErr error) {
	start := time.Now()
	logger := newLogger(debugMode)

	// The grouping and rendering phase is pure; anything thrown out of it
	// is a bug and gets reported with its stack.
	defer func() {
		if r := recover(); r != nil {
			retErr = &unexpectedError{message: fmt.Sprint(r), stack: debug.Stack()}
		}
	}()

	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	authToken := token
	if authToken == "" {
		authToken = cfg.Token
	}
	if authToken == "" {
		return &api.AuthError{Message: "no authentication token configured"}
	}

	client := api.NewClient(resolveURL(cfg), authToken, logger)
	defer client.Close()

	var filter string
	if len(args) == 1 {
		filter = args[0]
	}

	localName, ok := project.LocalName(".")
	if ok {
		logger.Debug("local_project", "name", localName)
	}

	sp := newSpinner(" Fetching deployments")
	sp.Start()
	deployments, err := client.List(cmd.Context(), filter)
	sp.Stop()
	if err != nil {
		return err
	}

	groups := listing.GroupByApp(deployments, localName)

	fmt.Println(listing.Summary(len(deployments), time.Since(start)))
	if len(groups) > 0 {
		fmt.Println()
	}
	listing.Render(os.Stdout, groups, time.Now())

	recordListing(logger, filter, len(deployments), time.Since(start))

	return nil
}

// resolveURL picks the API base URL: flag (or SHIPLS_URL), then config
// file, then the production default.
func resolveURL(cfg *config.Config) string {
	if apiURL != "" {
		return apiURL
	}
	if cfg.URL != "" {
		return cfg.URL
	}
	return api.DefaultBaseURL
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	// Stderr keeps the listing on stdout clean.
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func newSpinner(suffix string) *spinner.Spinner {
	sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	sp.Suffix = suffix
	return sp
}

// recordListing appends this invocation to the local history database.
// Best-effort: every failure is logged at debug level and swallowed.
func recordListing(logger *slog.Logger, filter string, count int, elapsed time.Duration) {
	dir, err := config.DefaultDir()
	if err != nil {
		logger.Debug("history_skipped", "error", err)
		return
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		logger.Debug("history_skipped", "error", err)
		return
	}

	hist, err := history.Open(filepath.Join(dir, "history.db"))
	if err != nil {
		logger.Debug("history_skipped", "error", err)
		return
	}
	defer hist.Close()

	id, err := hist.RecordListing(context.Background(), &history.ListingRecord{
		AppFilter:  filter,
		Count:      count,
		DurationMS: elapsed.Milliseconds(),
	})
	if err != nil {
		logger.Debug("history_write_failed", "error", err)
		return
	}
	logger.Debug("history_recorded", "id", id)
}
