package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vancomm/minesweeper-daily/internal/daily"
)

var dailyOpts struct {
	difficulty string
	date       string
	board      bool
}

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Print the daily puzzle seed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if dailyOpts.date != "" {
			if _, err := daily.ParseDateKey(dailyOpts.date); err != nil {
				return err
			}
		}
		if _, ok := daily.Lookup(dailyOpts.difficulty); !ok {
			log.WithField("difficulty", dailyOpts.difficulty).Warn("unknown difficulty, using " + daily.DefaultDifficulty)
		}

		puzzle := daily.NewDeriver(cfg.Daily.Salt).Puzzle(dailyOpts.difficulty, dailyOpts.date)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s %s seed %d\n",
			puzzle.Date, puzzle.Difficulty.Name, puzzle.Difficulty.Params(), puzzle.Seed)

		if dailyOpts.board {
			game, err := puzzle.NewGame()
			if err != nil {
				return err
			}
			fmt.Fprint(out, game.Board)
		}
		return nil
	},
}

func init() {
	f := dailyCmd.Flags()
	f.StringVarP(&dailyOpts.difficulty, "difficulty", "d", daily.DefaultDifficulty, "Preset name")
	f.StringVar(&dailyOpts.date, "date", "", "Date as YYYY-MM-DD in UTC+8, today when empty")
	f.BoolVar(&dailyOpts.board, "board", false, "Also print the board")
}
