package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vancomm/minesweeper-daily/internal/config"
)

var devtokenOpts struct {
	subject string
	ttl     time.Duration
}

var devtokenCmd = &cobra.Command{
	Use:   "devtoken",
	Short: "Sign a token for the developer endpoints",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cfg.JWT.Configured() {
			return errors.New("no jwt keys configured, set JWT_PUBLIC_KEY and JWT_PRIVATE_KEY")
		}
		j, err := config.NewJWT(cfg.JWT)
		if err != nil {
			return err
		}

		ttl := devtokenOpts.ttl
		if ttl <= 0 {
			ttl = j.TokenLifetime
		}

		token, err := j.Sign(config.NewDevClaims(devtokenOpts.subject, ttl))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	f := devtokenCmd.Flags()
	f.StringVar(&devtokenOpts.subject, "subject", "developer", "Token subject")
	f.DurationVar(&devtokenOpts.ttl, "ttl", 0, "Token lifetime, the configured lifetime when zero")
}
