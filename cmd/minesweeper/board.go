package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vancomm/minesweeper-daily/internal/mines"
)

var boardOpts struct {
	params mines.GameParams
	seed   int64
	reveal []string
}

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Generate a board and print it",
	Long: `board prints a generated board, and optionally the player's view after
a few reveals.

	minesweeper board --rows 10 --cols 10 --mines 15 --seed 42 --reveal 9,9
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts []mines.Option
		if boardOpts.seed >= 0 {
			if boardOpts.seed > int64(^uint32(0)) {
				return fmt.Errorf("seed %d does not fit in 32 bits", boardOpts.seed)
			}
			opts = append(opts, mines.WithSeed(uint32(boardOpts.seed)))
		}

		game, err := mines.NewGame(boardOpts.params, opts...)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if game.Seed != nil {
			fmt.Fprintf(out, "%s seed %d\n", game.Board.GameParams, *game.Seed)
		} else {
			fmt.Fprintf(out, "%s\n", game.Board.GameParams)
		}
		fmt.Fprint(out, game.Board)

		if len(boardOpts.reveal) == 0 {
			return nil
		}

		for _, arg := range boardOpts.reveal {
			row, col, err := parsePoint(arg)
			if err != nil {
				return err
			}
			res := game.Reveal(row, col)
			fmt.Fprintf(out, "\nreveal %d,%d: accepted=%t gameOver=%t won=%t\n",
				row, col, res.Accepted, res.GameOver, res.Won)
		}
		fmt.Fprint(out, game)
		return nil
	},
}

func parsePoint(s string) (row int, col int, err error) {
	r, c, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("point %q is not row,col", s)
	}
	if row, err = strconv.Atoi(strings.TrimSpace(r)); err != nil {
		return 0, 0, fmt.Errorf("point %q: %w", s, err)
	}
	if col, err = strconv.Atoi(strings.TrimSpace(c)); err != nil {
		return 0, 0, fmt.Errorf("point %q: %w", s, err)
	}
	return row, col, nil
}

func init() {
	f := boardCmd.Flags()
	f.IntVar(&boardOpts.params.Rows, "rows", 10, "Number of rows")
	f.IntVar(&boardOpts.params.Cols, "cols", 10, "Number of columns")
	f.IntVar(&boardOpts.params.MineCount, "mines", 15, "Number of mines")
	f.Int64Var(&boardOpts.seed, "seed", -1, "Generator seed, random when negative")
	f.StringArrayVar(&boardOpts.reveal, "reveal", nil, "Cell to reveal as row,col; may be repeated")
}
