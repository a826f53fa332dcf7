package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	employeedb "github.com/database-playground/employee-api/lib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := configFromEnv()

	rootCmd := &cobra.Command{
		Use:           "employee-api",
		Short:         "HTTP API over the employee store, with an ad-hoc SQL runner",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cfg)
		},
	}
	rootCmd.PersistentFlags().StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database file (env EMPLOYEES_DB)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Initialize the store and serve HTTP until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cfg)
		},
	}
	for _, cmd := range []*cobra.Command{rootCmd, serveCmd} {
		cmd.Flags().StringVar(&cfg.Port, "port", cfg.Port, "port to listen on (env PORT)")
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create and seed the store, then exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return employeedb.NewStore(cfg.DBPath).Initialize(cmd.Context())
		},
	}

	rootCmd.AddCommand(serveCmd, initCmd)
	return rootCmd
}

func serve(ctx context.Context, cfg Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	shutdown, err := setupOTelSDK(ctx)
	if err != nil {
		slog.Error("Failed to setup OpenTelemetry", slog.Any("error", err))
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			slog.Error("Failed to shutdown OpenTelemetry", slog.Any("error", err))
		}
	}()

	store := employeedb.NewStore(cfg.DBPath)
	if err := store.Initialize(ctx); err != nil {
		slog.Error("Failed to initialize store", slog.String("path", cfg.DBPath), slog.Any("error", err))
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: newRouter(store, reg),
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Listening", slog.String("addr", srv.Addr), slog.String("db", cfg.DBPath))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		slog.Error("ListenAndServe failed", slog.Any("error", err))
		return err
	case <-ctx.Done():
		slog.Info("Received signal to shutdown")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Shutdown failed", slog.Any("error", err))
		return err
	}

	return nil
}
