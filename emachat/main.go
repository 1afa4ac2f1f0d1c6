package main

import (
	"context"
	"emachat/emachat/config"
	"emachat/emachat/controllers"
	"emachat/emachat/services/chatbot"
	"emachat/emachat/services/conversation"
	"emachat/emachat/ui"
	"emachat/emachat/utils/color"
	"emachat/emachat/utils/logging"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		plain   bool
		cfgPath string
	)
	cmd := &cobra.Command{
		Use:           "emachat",
		Short:         "Chat with the Ema chatbot over its streaming socket",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cfgPath)
			if err != nil {
				fmt.Fprintln(os.Stderr, color.ColorError("config: "+err.Error()))
				return err
			}
			if err := logging.InitLogger(cfg.LogDir, cfg.LogLevel); err != nil {
				fmt.Fprintln(os.Stderr, color.ColorError("logging: "+err.Error()))
				return err
			}
			defer logging.Sync()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			client := chatbot.Connect(ctx, config.ChatbotEndpoint)
			defer client.Close()
			ctrl := controllers.NewChatController(client, conversation.NewReconciler())
			opts := ui.Options{
				UserLabel:   cfg.UserLabel,
				BotLabel:    cfg.BotLabel,
				Placeholder: cfg.Placeholder,
				Markdown:    cfg.Markdown,
			}
			logging.AppLogger.Info("emachat started", zap.String("endpoint", config.ChatbotEndpoint), zap.Bool("plain", plain))

			if plain {
				color.Disable(os.Getenv("NO_COLOR") != "")
				fmt.Println(color.ColorInfo("Connected to " + config.ChatbotEndpoint + ". Type 'exit' to quit."))
				return ui.RunPlain(ctx, ctrl, client.Events(), client.Close, os.Stdin, os.Stdout, opts)
			}
			if err := ui.Run(ctrl, client, opts); err != nil {
				logging.ErrorLogger.Error("ui stopped", zap.Error(err))
				return err
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "line mode instead of the full screen")
	cmd.Flags().StringVar(&cfgPath, "config", "", "YAML config file (defaults to $EMACHAT_CONFIG)")
	return cmd
}
