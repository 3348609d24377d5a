// Package main is the entry point for the offline bulk loader.
// It walks a directory tree of trademark application XML files and loads
// every valid word mark into the registry database in batches.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/mkarpenko/trademark-registry/backend/internal/loader"
	"github.com/mkarpenko/trademark-registry/backend/internal/parser"
	"github.com/mkarpenko/trademark-registry/backend/internal/repo"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "loader <directory> <database-url>",
		Short: "Bulk-load trademark application XML files into the registry",
		Long: `Recursively scans <directory> for *.xml trademark application files,
parses each one, and inserts every valid word mark into the database at
<database-url> in batches. Files that fail to parse, describe non-word
marks, or lack required fields are logged and skipped; titles that are
already registered are skipped by the database.`,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args[0], args[1])
		},
	}
}

func run(ctx context.Context, dir, databaseURL string) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// The loader is a short-lived batch job; a couple of connections is plenty.
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		logger.Error("failed to parse database url", "error", err)
		return err
	}
	poolCfg.MaxConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		return err
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Error("failed to connect to database", "error", err)
		return err
	}

	// Stop cleanly on Ctrl-C: the loader flushes nothing further once the
	// context is cancelled, and partial progress stays committed.
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	l := loader.New(logger, parser.New(logger), repo.NewTrademarkRepo(pool), nil, loader.DefaultBatchSize)

	stats, err := l.Run(ctx, dir)
	if err != nil {
		logger.Error("load failed", "error", err)
		return err
	}

	logger.Info("load complete",
		"total_files", stats.TotalFiles,
		"processed_files", stats.ProcessedFiles,
		"loaded", stats.Loaded,
		"skipped", stats.Skipped,
	)
	return nil
}
