package mines

import (
	"fmt"
	"iter"
	"strings"
)

// MaxSide is the largest number of rows or columns a board may have.
const MaxSide = 50

type GameParams struct {
	Rows, Cols, MineCount int
}

func (p GameParams) Unpack() (rows int, cols int, mineCount int) {
	return p.Rows, p.Cols, p.MineCount
}

func (p GameParams) Cells() int {
	return p.Rows * p.Cols
}

func (p GameParams) String() string {
	return fmt.Sprintf("%dx%d(%d)", p.Rows, p.Cols, p.MineCount)
}

// Key encodes params as "rows:cols:mines".
func (p GameParams) Key() string {
	return fmt.Sprintf("%d:%d:%d", p.Rows, p.Cols, p.MineCount)
}

func ParseParams(key string) (*GameParams, error) {
	p := &GameParams{}
	n, err := fmt.Sscanf(
		strings.ReplaceAll(key, ":", " "), "%d %d %d",
		&p.Rows, &p.Cols, &p.MineCount,
	)
	if n != 3 || err != nil {
		return nil, fmt.Errorf(
			`invalid game params "%s" (n = %d, err = %w)`, key, n, err,
		)
	}
	return p, nil
}

func (p GameParams) Validate() error {
	switch {
	case p.Rows <= 0 || p.Cols <= 0:
		return &ConfigError{p, "board dimensions must be positive"}
	case p.Rows > MaxSide || p.Cols > MaxSide:
		return &ConfigError{p, fmt.Sprintf("board side must not exceed %d", MaxSide)}
	case p.MineCount <= 0:
		return &ConfigError{p, "mine count must be positive"}
	case p.MineCount >= p.Cells():
		return &ConfigError{p, "mine count must leave at least one free cell"}
	}
	return nil
}

func (p GameParams) PointInBounds(row, col int) bool {
	return 0 <= row && row < p.Rows && 0 <= col && col < p.Cols
}

func (p GameParams) index(row, col int) int {
	return row*p.Cols + col
}

func (p GameParams) point(i int) (row int, col int) {
	return i / p.Cols, i % p.Cols
}

// neighbors yields indices of the up to 8 cells surrounding index i.
func (p GameParams) neighbors(i int) iter.Seq[int] {
	row, col := p.point(i)
	return func(yield func(int) bool) {
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				if dr == 0 && dc == 0 {
					continue
				}
				if !p.PointInBounds(row+dr, col+dc) {
					continue
				}
				if !yield(p.index(row+dr, col+dc)) {
					return
				}
			}
		}
	}
}
