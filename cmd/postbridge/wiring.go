package main

import (
	"fmt"
	"log/slog"

	"github.com/jdelaire/postbridge/adapters/mastodon_publisher"
	"github.com/jdelaire/postbridge/adapters/telegram_notifier"
	"github.com/jdelaire/postbridge/adapters/telegram_registrar"
	"github.com/jdelaire/postbridge/core"
	"github.com/jdelaire/postbridge/core/ops"
	"github.com/jdelaire/postbridge/internal/config"
)

// newDispatcher wires the adapters named by the current settings into a
// Dispatcher reading the rest of its settings from store.
func newDispatcher(store *config.Store, logger *slog.Logger) (*core.Dispatcher, error) {
	cfg := store.Current()

	notifier := telegram_notifier.New(cfg.Telegram.BotToken).WithBaseURL(cfg.Telegram.APIBaseURL)
	registrar := telegram_registrar.New(cfg.Telegram.BotToken, logger).WithBaseURL(cfg.Telegram.APIBaseURL)
	publisher := mastodon_publisher.New(cfg.Mastodon.BaseURL, cfg.Mastodon.AccessToken, cfg.Mastodon.Visibility)

	reg := ops.NewRegistry()
	if err := reg.Register(&ops.PostOp{Publisher: publisher}); err != nil {
		return nil, fmt.Errorf("registering ops: %w", err)
	}

	return core.NewDispatcher(store, reg, notifier, registrar, logger), nil
}

// loadStore loads the configuration and checks it with validate.
func loadStore(validate func(*config.Settings) error) (*config.Store, error) {
	store, err := config.NewStore(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	cfg := store.Current()
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return store, nil
}
