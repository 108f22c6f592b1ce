package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vancomm/minesweeper-daily/internal/config"
)

var (
	configPath string
	cfg        *config.Config
	log        *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "minesweeper",
	Short: "Minesweeper game server with daily puzzles",
	Long: `minesweeper hosts server-authoritative Minesweeper games over HTTP and
WebSocket, including a seeded puzzle per difficulty each day.

Start the server
	minesweeper serve -c config.yaml

Print today's hard puzzle seed
	minesweeper daily --difficulty hard
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		log, err = newLogger(cfg, cmd.ErrOrStderr())
		return err
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")

	rootCmd.AddCommand(serveCmd, migrateCmd, boardCmd, dailyCmd, devtokenCmd)
}
