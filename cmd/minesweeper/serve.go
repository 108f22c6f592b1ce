package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vancomm/minesweeper-daily/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP and WebSocket server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		log.WithFields(cfg.Fields()).Info("starting")

		a, err := app.New(ctx, log, cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Start(ctx)
	},
}
