// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tomtom215/ojakgyo/internal/app"
	"github.com/tomtom215/ojakgyo/internal/config"
	"github.com/tomtom215/ojakgyo/internal/database"
	"github.com/tomtom215/ojakgyo/internal/logging"
)

// cli holds state shared by every subcommand.
type cli struct {
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "ojakgyo",
		Short: "Seoul date course recommendations from the command line",
		Long: `ojakgyo loads the configured place store and answers the same
questions as the HTTP API: date courses, visiting order, weather advisories
and stations. It also bootstraps the embedded DuckDB store from CSV files
or generated mock data.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.load,
	}
	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default: ./config.yaml, then CONFIG_PATH)")

	root.AddCommand(
		c.importCmd(),
		c.seedCmd(),
		c.courseCmd(),
		c.routeCmd(),
		c.weatherCmd(),
		c.stationsCmd(),
	)
	return root
}

// load reads configuration and points the logger at stderr.
func (c *cli) load(cmd *cobra.Command, _ []string) error {
	if c.cfgFile != "" {
		if err := os.Setenv(config.ConfigPathEnvVar, c.cfgFile); err != nil {
			return err
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	c.cfg = cfg

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    "console",
		Timestamp: true,
		Output:    cmd.ErrOrStderr(),
	})
	c.logger = logging.Logger()
	return nil
}

// openApp opens the store and engine for a query command.
func (c *cli) openApp(ctx context.Context) (*app.App, error) {
	return app.Open(ctx, c.cfg, c.logger)
}

// openDuckDB opens the embedded store for the bootstrap commands, which
// have no meaning for PostgreSQL.
func (c *cli) openDuckDB() (*database.DB, error) {
	if c.cfg.Database.Driver != "duckdb" {
		return nil, fmt.Errorf("command requires DB_DRIVER=duckdb, got %q", c.cfg.Database.Driver)
	}
	return database.New(&c.cfg.Database, c.logger)
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
