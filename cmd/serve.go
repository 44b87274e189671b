/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/josephgoksu/Chronicler/internal/server"
	"github.com/josephgoksu/Chronicler/internal/store"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the changelog API server",
	Long: `Start the HTTP API that generates, publishes and serves changelogs.

Endpoints:
  POST /api/generate              generate a changelog from git history
  POST /api/publish               publish a changelog under a version
  GET  /api/changelog             list published changelogs
  GET  /api/changelog/{version}   show one published changelog
  GET  /api/health                health and AI availability`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().Int("port", 0, "port to listen on (default from config, 8000)")
	serveCmd.Flags().String("db", "", "SQLite database path (default from config, changelog.db)")
	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("server.dbPath", serveCmd.Flags().Lookup("db"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gen, err := newGenerator(ctx)
	if err != nil {
		return err
	}

	st, err := store.NewSQLiteStore(cfg.Server.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	srv := server.New(server.Config{
		Port:            cfg.Server.Port,
		AllowedOrigins:  cfg.Server.AllowedOrigins,
		LookbackDays:    &cfg.LookbackDays,
		ExcludePatterns: cfg.ExcludePatterns,
	}, gen, st)

	var wg sync.WaitGroup
	errChan := make(chan error, 1)
	srv.Start(&wg, errChan)
	fmt.Fprintf(cmd.OutOrStdout(), "Chronicler API listening on http://localhost:%d (writer: %s)\n", cfg.Server.Port, gen.Strategy())

	select {
	case err = <-errChan:
	case <-ctx.Done():
		slog.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		slog.Error("shutdown failed", "error", shutdownErr)
	}
	wg.Wait()
	return err
}
