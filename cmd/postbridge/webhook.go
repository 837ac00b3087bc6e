package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jdelaire/postbridge/internal/config"
)

var webhookCmd = &cobra.Command{
	Use:   "webhook",
	Short: "Manage the Telegram webhook",
}

var webhookRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Point Telegram at this service's public URL",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := loadStore((*config.Settings).ValidateRegistration)
		if err != nil {
			return err
		}

		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			if logger, err = newLogger(store.Current().Log); err != nil {
				return err
			}
		}

		dispatcher, err := newDispatcher(store, logger)
		if err != nil {
			return err
		}

		ack, err := dispatcher.RegisterWebhook(cmd.Context())
		if err != nil {
			return fmt.Errorf("registering webhook: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), ack.Message)
		return nil
	},
}

func init() {
	webhookRegisterCmd.Flags().BoolP("verbose", "v", false, "log registration details")
	webhookCmd.AddCommand(webhookRegisterCmd)
	rootCmd.AddCommand(webhookCmd)
}
