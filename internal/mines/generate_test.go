package mines

import (
	"errors"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Log.SetLevel(logrus.DebugLevel)
	Log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	os.Exit(m.Run())
}

// board produced by the reference generator for 10x10(15), seed 42
var golden42 = [][]int{
	{1, 1, 1, 0, 1, -1, -1, 2, 0, 0},
	{1, -1, 1, 0, 1, 3, -1, 2, 0, 0},
	{3, 3, 2, 0, 0, 1, 1, 1, 0, 0},
	{-1, -1, 1, 0, 0, 0, 0, 0, 0, 0},
	{-1, 4, 2, 1, 0, 0, 0, 0, 0, 0},
	{2, 3, -1, 1, 0, 0, 0, 0, 0, 0},
	{1, -1, 3, 3, 2, 1, 0, 0, 0, 0},
	{1, 1, 2, -1, -1, 2, 0, 0, 0, 0},
	{0, 0, 2, 5, -1, 4, 1, 0, 0, 0},
	{0, 0, 1, -1, -1, -1, 1, 0, 0, 0},
}

func TestGenerateGolden(t *testing.T) {
	tests := []struct {
		name   string
		params GameParams
		seed   uint32
		want   [][]int
	}{
		{
			name:   "10x10(15)@42",
			params: GameParams{Rows: 10, Cols: 10, MineCount: 15},
			seed:   42,
			want:   golden42,
		},
		{
			name:   "5x5(3)@7",
			params: GameParams{Rows: 5, Cols: 5, MineCount: 3},
			seed:   7,
			want: [][]int{
				{0, 0, 1, 2, -1},
				{0, 0, 2, -1, 3},
				{0, 0, 2, -1, 2},
				{0, 0, 1, 1, 1},
				{0, 0, 0, 0, 0},
			},
		},
		{
			name:   "8x8(10)@12345",
			params: GameParams{Rows: 8, Cols: 8, MineCount: 10},
			seed:   12345,
			want: [][]int{
				{-1, 3, 1, 1, 2, 3, -1, 1},
				{-1, -1, 1, 1, -1, -1, 2, 1},
				{3, 3, 1, 1, 2, 2, 1, 0},
				{-1, 1, 0, 0, 0, 0, 0, 0},
				{1, 1, 0, 0, 0, 0, 0, 0},
				{0, 0, 0, 1, 1, 1, 0, 0},
				{0, 0, 0, 2, -1, 3, 1, 1},
				{0, 0, 0, 2, -1, 3, -1, 1},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b, err := Generate(test.params, NewLCG(test.seed))
			require.NoError(t, err)
			assert.Equal(t, test.want, b.Matrix())
		})
	}
}

func TestGenerateDeterministic(t *testing.T) {
	t.Parallel()

	params := []GameParams{
		{Rows: 10, Cols: 10, MineCount: 10},
		{Rows: 15, Cols: 15, MineCount: 25},
		{Rows: 20, Cols: 20, MineCount: 40},
		{Rows: 30, Cols: 30, MineCount: 50},
		{Rows: 40, Cols: 40, MineCount: 100},
		{Rows: 50, Cols: 50, MineCount: 150},
		{Rows: 9, Cols: 9, MineCount: 80},
	}

	for _, p := range params {
		t.Run(p.String(), func(t *testing.T) {
			t.Parallel()
			for _, seed := range []uint32{0, 1, 42, 2740242883, 4294967295} {
				a, err := Generate(p, NewLCG(seed))
				require.NoError(t, err)
				b, err := Generate(p, NewLCG(seed))
				require.NoError(t, err)
				require.Equal(t, a.Values, b.Values, "seed %d", seed)
			}
		})
	}
}

func TestGenerateInvariants(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	t.Parallel()

	tests := []struct {
		name   string
		params GameParams
	}{
		{name: "2x1(1)", params: GameParams{Rows: 2, Cols: 1, MineCount: 1}},
		{name: "3x3(8)", params: GameParams{Rows: 3, Cols: 3, MineCount: 8}},
		{name: "9x9(10)", params: GameParams{Rows: 9, Cols: 9, MineCount: 10}},
		{name: "9x9(80)", params: GameParams{Rows: 9, Cols: 9, MineCount: 80}},
		{name: "16x30(99)", params: GameParams{Rows: 16, Cols: 30, MineCount: 99}},
		{name: "50x50(150)", params: GameParams{Rows: 50, Cols: 50, MineCount: 150}},
		{name: "50x50(2000)", params: GameParams{Rows: 50, Cols: 50, MineCount: 2000}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			src := NewRandomSource()
			for range 20 {
				b, err := Generate(test.params, src)
				require.NoError(t, err)
				require.Equal(t, test.params.MineCount, b.Mines())
				requireNumbered(t, b)
			}
		})
	}
}

// requireNumbered checks every safe cell against a direct neighbour count.
func requireNumbered(t *testing.T, b *Board) {
	t.Helper()
	for row := range b.Rows {
		for col := range b.Cols {
			if b.IsMine(row, col) {
				continue
			}
			want := 0
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					r, c := row+dr, col+dc
					if (dr != 0 || dc != 0) && b.PointInBounds(r, c) && b.IsMine(r, c) {
						want++
					}
				}
			}
			require.Equal(t, CellValue(want), b.At(row, col), "cell %d:%d", row, col)
		}
	}
}

func TestGenerateRejectsInvalid(t *testing.T) {
	tests := []struct {
		name   string
		params GameParams
	}{
		{name: "1x1(1)", params: GameParams{Rows: 1, Cols: 1, MineCount: 1}},
		{name: "full", params: GameParams{Rows: 4, Cols: 4, MineCount: 16}},
		{name: "overfull", params: GameParams{Rows: 4, Cols: 4, MineCount: 17}},
		{name: "no mines", params: GameParams{Rows: 4, Cols: 4, MineCount: 0}},
		{name: "negative mines", params: GameParams{Rows: 4, Cols: 4, MineCount: -1}},
		{name: "zero rows", params: GameParams{Rows: 0, Cols: 4, MineCount: 1}},
		{name: "negative cols", params: GameParams{Rows: 4, Cols: -4, MineCount: 1}},
		{name: "too wide", params: GameParams{Rows: 4, Cols: MaxSide + 1, MineCount: 1}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b, err := Generate(test.params, NewLCG(1))
			assert.Nil(t, b)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfiguration))

			var ce *ConfigError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, test.params, ce.Params)
		})
	}
}
