package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jdelaire/postbridge/adapters/telegram_webhook"
	"github.com/jdelaire/postbridge/core"
	"github.com/jdelaire/postbridge/core/configwatch"
	"github.com/jdelaire/postbridge/internal/config"
	"github.com/jdelaire/postbridge/internal/httpapi"
)

const (
	reloadInterval  = 2 * time.Second
	shutdownTimeout = 10 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the Telegram webhook",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := loadStore((*config.Settings).Validate)
		if err != nil {
			return err
		}
		cfg := store.Current()

		logger, err := newLogger(cfg.Log)
		if err != nil {
			return err
		}

		dispatcher, err := newDispatcher(store, logger)
		if err != nil {
			return err
		}

		router := httpapi.NewRouter(logger, telegram_webhook.NewHandler(dispatcher, logger))
		srv := core.NewServer(cfg.ListenAddr, router, logger)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := srv.Start(ctx); err != nil {
			return err
		}

		watcher := configwatch.New(reloadInterval, logger)
		watcher.Watch(store.Path(), store)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			watcher.Run(gctx)
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
		return g.Wait()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
