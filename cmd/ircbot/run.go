package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/OCipriano/ircbot/bot"
	"github.com/OCipriano/ircbot/command"
	"github.com/OCipriano/ircbot/internal/logutil"
	"github.com/OCipriano/ircbot/price"
	"github.com/OCipriano/ircbot/seen"
	"github.com/OCipriano/ircbot/telegram"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Connect to the IRC network and serve commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logutil.LoggerFromViper()
			if err != nil {
				return err
			}
			slog.SetDefault(logger)

			store := seen.NewStore(viper.GetString("seen.path"))
			if err := store.Ensure(); err != nil {
				return fmt.Errorf("prepare seen store: %w", err)
			}

			notifier := telegram.NewNotifier(telegram.Config{
				Token:   viper.GetString("telegram.token"),
				ChatID:  viper.GetString("telegram.chat_id"),
				APIBase: viper.GetString("telegram.api_base"),
				Logger:  logger,
			})
			if !notifier.Enabled() {
				logger.Warn("telegram token or chat id not configured, alerts disabled")
			}

			prices := price.New(price.Config{
				APIBase: viper.GetString("price.api_base"),
				Timeout: viper.GetDuration("price.timeout"),
				Logger:  logger,
			})

			router := command.NewRouter(command.RouterConfig{
				Admins: command.NewAdminSet(stringList("irc.admins", ",")),
				Seen:   store,
				Price:  prices,
				Logger: logger,
			})

			session, err := bot.New(botConfigFromViper(), bot.Dependencies{
				Logger:   logger,
				Executor: router,
				Seen:     store,
				Notifier: notifier,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() { errc <- session.Run(ctx) }()

			select {
			case <-ctx.Done():
				logger.Info("shutdown signal received")
				notify(notifier, "⚠️ O bot foi encerrado manualmente ou pelo sistema.")
				select {
				case err := <-errc:
					return err
				case <-time.After(10 * time.Second):
					return fmt.Errorf("shutdown timed out")
				}
			case err := <-errc:
				if err != nil {
					notify(notifier, fmt.Sprintf("❌ Ocorreu um erro inesperado no bot: %v. Verifica o log para mais detalhes.", err))
				}
				return err
			}
		},
	}
	return cmd
}

func notify(n *telegram.Notifier, text string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := n.Notify(ctx, text); err != nil {
		slog.Warn("notification failed", "error", err)
	}
}
