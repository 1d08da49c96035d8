package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Abdulai258/aula/internal/config"
	httpapi "github.com/Abdulai258/aula/internal/http"
	"github.com/Abdulai258/aula/internal/relay"
	"github.com/Abdulai258/aula/internal/store"
	"github.com/Abdulai258/aula/internal/store/memory"
	"github.com/Abdulai258/aula/internal/store/sqlite"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the support chat relay server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	cfg, err := config.Load(resolveConfigPath())
	if err != nil {
		return err
	}
	setupLogging(cfg.Log.Level)

	var stores *store.Stores
	switch cfg.Database.Backend {
	case "memory":
		stores = memory.NewStores()
		slog.Warn("using volatile in-memory storage")
	case "", "sqlite":
		s, db, err := sqlite.NewStores(cfg.Database.Path)
		if err != nil {
			return err
		}
		defer db.Close()
		stores = s
		slog.Info("sqlite storage ready", "path", cfg.Database.Path)
	default:
		return fmt.Errorf("unknown database backend %q", cfg.Database.Backend)
	}

	sink := relay.NewAsyncSink(stores.Messages)
	defer sink.Close()

	router := relay.NewRouter(relay.NewRegistry(), sink)
	tickets := httpapi.NewTicketsHandler(stores.Tickets)
	srv := relay.NewServer(cfg, router, tickets)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Start(ctx)
}

func setupLogging(level string) {
	lvl := slog.LevelInfo
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	if verbose {
		lvl = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}
