package mines

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

// gameFromLayout builds a game from rows of '*' (mine) and '.' (safe).
func gameFromLayout(t *testing.T, clock *fakeClock, layout ...string) *GameState {
	t.Helper()
	params := GameParams{Rows: len(layout), Cols: len(layout[0])}
	b := newBoard(params)
	for row, line := range layout {
		require.Len(t, line, params.Cols)
		for col, ch := range line {
			if ch == '*' {
				b.placeMine(row, col)
				b.MineCount++
			}
		}
	}
	b.number()
	require.NoError(t, b.Validate())

	g := &GameState{
		Board:    b,
		Revealed: make([]bool, params.Cells()),
		Flagged:  make([]bool, params.Cells()),
	}
	if clock != nil {
		g.now = clock.Now
	}
	return g
}

func countTrue(s []bool) (n int) {
	for _, v := range s {
		if v {
			n++
		}
	}
	return
}

func hidden(g *GameState) []Point {
	var pts []Point
	for i, r := range g.Revealed {
		if !r {
			row, col := g.Board.point(i)
			pts = append(pts, Point{Row: row, Col: col})
		}
	}
	return pts
}

func TestRevealFloodFill(t *testing.T) {
	g, err := NewGame(GameParams{Rows: 5, Cols: 5, MineCount: 3}, WithSeed(7))
	require.NoError(t, err)

	res := g.Reveal(4, 0)
	assert.Equal(t, MoveResult{Accepted: true}, res)
	assert.Equal(t, []Point{
		{0, 3}, {0, 4}, {1, 3}, {1, 4}, {2, 3}, {2, 4},
	}, hidden(g))
	assert.NotNil(t, g.StartTime)
	assert.Nil(t, g.EndTime)

	assert.True(t, g.Reveal(0, 3).Accepted)
	assert.True(t, g.Reveal(1, 4).Accepted)
	res = g.Reveal(2, 4)
	assert.Equal(t, MoveResult{Accepted: true, GameOver: true, Won: true}, res)
	assert.True(t, g.GameOver)
	assert.True(t, g.Won)
	assert.Nil(t, g.HitMine)
	assert.NotNil(t, g.EndTime)
	assert.Equal(t, []Point{{0, 4}, {1, 3}, {2, 3}}, hidden(g))
}

func TestFlagStopsFlood(t *testing.T) {
	g, err := NewGame(GameParams{Rows: 5, Cols: 5, MineCount: 3}, WithSeed(7))
	require.NoError(t, err)

	require.True(t, g.ToggleFlag(2, 0))
	require.True(t, g.Reveal(4, 0).Accepted)

	assert.False(t, g.Revealed[g.Board.index(2, 0)])
	assert.True(t, g.Flagged[g.Board.index(2, 0)])
	assert.Equal(t, 18, countTrue(g.Revealed))
	assert.False(t, g.GameOver)
}

func TestRevealRejections(t *testing.T) {
	g := gameFromLayout(t, nil,
		"*..",
		"...",
		"...",
	)

	tests := []struct {
		name     string
		row, col int
	}{
		{"negative row", -1, 0},
		{"negative col", 0, -1},
		{"row past edge", 3, 0},
		{"col past edge", 0, 3},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, MoveResult{}, g.Reveal(test.row, test.col))
			assert.False(t, g.ToggleFlag(test.row, test.col))
			assert.Equal(t, MoveResult{}, g.Chord(test.row, test.col))
		})
	}
	assert.Zero(t, countTrue(g.Revealed))
	assert.Nil(t, g.StartTime)

	require.True(t, g.Reveal(1, 1).Accepted)
	assert.False(t, g.Reveal(1, 1).Accepted, "already revealed")
}

func TestFlagRevealExclusive(t *testing.T) {
	g := gameFromLayout(t, nil,
		"*..",
		"...",
		"...",
	)

	require.True(t, g.ToggleFlag(1, 1))
	assert.False(t, g.Reveal(1, 1).Accepted, "flagged cells cannot be revealed")
	assert.Nil(t, g.StartTime)

	require.True(t, g.ToggleFlag(1, 1))
	assert.False(t, g.Flagged[g.Board.index(1, 1)])

	require.True(t, g.Reveal(1, 1).Accepted)
	assert.False(t, g.ToggleFlag(1, 1), "revealed cells cannot be flagged")

	for i := range g.Revealed {
		assert.False(t, g.Revealed[i] && g.Flagged[i], "cell %d", i)
	}
}

func TestRevealMineLoses(t *testing.T) {
	clock := newFakeClock()
	g := gameFromLayout(t, clock,
		"*...",
		"....",
		"...*",
		"..*.",
	)

	require.True(t, g.ToggleFlag(3, 2))
	require.True(t, g.Reveal(0, 3).Accepted)
	clock.Advance(4 * time.Second)

	res := g.Reveal(2, 3)
	assert.Equal(t, MoveResult{Accepted: true, GameOver: true}, res)
	assert.True(t, g.GameOver)
	assert.False(t, g.Won)
	assert.Equal(t, &Point{Row: 2, Col: 3}, g.HitMine)
	require.NotNil(t, g.EndTime)
	assert.Equal(t, clock.Now(), *g.EndTime)
	assert.Equal(t, 4, g.FinalElapsed())

	for i, v := range g.Board.Values {
		if v == Mine {
			assert.True(t, g.Revealed[i], "mine %d revealed", i)
		}
	}
	// flags are left as the player set them
	assert.True(t, g.Flagged[g.Board.index(3, 2)])
}

func TestFirstRevealOnMine(t *testing.T) {
	g := gameFromLayout(t, newFakeClock(),
		"*.",
		"..",
	)

	res := g.Reveal(0, 0)
	assert.Equal(t, MoveResult{Accepted: true, GameOver: true}, res)
	assert.NotNil(t, g.StartTime)
	assert.Equal(t, 0, g.FinalElapsed())
}

func TestTerminalStateIsFrozen(t *testing.T) {
	for name, move := range map[string]Point{
		"lost": {Row: 0, Col: 0},
		"won":  {Row: 2, Col: 2},
	} {
		t.Run(name, func(t *testing.T) {
			g := gameFromLayout(t, nil,
				"*..",
				"...",
				"...",
			)
			require.True(t, g.Reveal(move.Row, move.Col).GameOver)

			before, err := g.Bytes()
			require.NoError(t, err)

			for row := range 3 {
				for col := range 3 {
					assert.False(t, g.Reveal(row, col).Accepted)
					assert.False(t, g.ToggleFlag(row, col))
					assert.False(t, g.Chord(row, col).Accepted)
				}
			}

			after, err := g.Bytes()
			require.NoError(t, err)
			assert.Equal(t, before, after)
		})
	}
}

func TestRevealedIsMonotonic(t *testing.T) {
	params := GameParams{Rows: 16, Cols: 16, MineCount: 40}
	src := NewLCG(99)

	for game := range 50 {
		g, err := NewGame(params, WithSeed(uint32(game)))
		require.NoError(t, err)

		prev := make([]bool, params.Cells())
		for !g.GameOver {
			row, col := intn(src, params.Rows), intn(src, params.Cols)
			switch intn(src, 4) {
			case 0:
				g.ToggleFlag(row, col)
			case 1:
				g.Chord(row, col)
			default:
				g.Reveal(row, col)
			}

			for i := range prev {
				require.False(t, prev[i] && !g.Revealed[i], "cell %d was hidden again", i)
				if !g.GameOver {
					require.False(t, g.Revealed[i] && g.Flagged[i], "cell %d", i)
				}
			}
			copy(prev, g.Revealed)
		}

		if g.Won {
			assert.Nil(t, g.HitMine)
		} else {
			assert.NotNil(t, g.HitMine)
		}
	}
}

func TestChord(t *testing.T) {
	layout := []string{
		"*..",
		"...",
		"...",
	}

	t.Run("needs matching flags", func(t *testing.T) {
		g := gameFromLayout(t, nil, layout...)
		require.True(t, g.Reveal(1, 1).Accepted)
		assert.False(t, g.Chord(1, 1).Accepted)

		require.True(t, g.ToggleFlag(0, 1))
		require.True(t, g.ToggleFlag(0, 2))
		assert.False(t, g.Chord(1, 1).Accepted, "too many flags")
	})

	t.Run("hidden cells", func(t *testing.T) {
		g := gameFromLayout(t, nil, layout...)
		assert.False(t, g.Chord(1, 1).Accepted)
		require.True(t, g.Reveal(1, 1).Accepted)
		require.True(t, g.ToggleFlag(0, 0))
		assert.False(t, g.Chord(2, 2).Accepted)
	})

	t.Run("opens neighbours", func(t *testing.T) {
		g := gameFromLayout(t, nil, layout...)
		require.True(t, g.Reveal(1, 1).Accepted)
		require.True(t, g.ToggleFlag(0, 0))

		res := g.Chord(1, 1)
		assert.Equal(t, MoveResult{Accepted: true, GameOver: true, Won: true}, res)
		assert.False(t, g.Revealed[0])
	})

	t.Run("wrong flag hits mine", func(t *testing.T) {
		g := gameFromLayout(t, nil, layout...)
		require.True(t, g.Reveal(1, 1).Accepted)
		require.True(t, g.ToggleFlag(0, 1))

		res := g.Chord(1, 1)
		assert.Equal(t, MoveResult{Accepted: true, GameOver: true}, res)
		assert.Equal(t, &Point{Row: 0, Col: 0}, g.HitMine)
	})
}

func TestElapsed(t *testing.T) {
	clock := newFakeClock()
	g := gameFromLayout(t, clock,
		"*..",
		"...",
		"...",
	)

	assert.Equal(t, 0, g.Elapsed())
	clock.Advance(time.Minute)
	assert.Equal(t, 0, g.Elapsed(), "clock starts on first reveal")

	require.True(t, g.Reveal(1, 1).Accepted)
	clock.Advance(3500 * time.Millisecond)
	assert.Equal(t, 3, g.Elapsed())
	assert.Equal(t, 0, g.FinalElapsed())

	clock.Advance(6500 * time.Millisecond)
	require.True(t, g.Reveal(2, 2).Won)
	assert.Equal(t, 10, g.FinalElapsed())

	clock.Advance(time.Hour)
	assert.Equal(t, 10, g.Elapsed())
}

func TestSnapshot(t *testing.T) {
	clock := newFakeClock()
	g := gameFromLayout(t, clock,
		"*..",
		"...",
		"..*",
	)

	s := g.Snapshot()
	assert.Equal(t, 3, s.Rows)
	assert.Equal(t, 3, s.Cols)
	assert.Equal(t, 2, s.MineCount)
	assert.Nil(t, s.StartTime)
	assert.Nil(t, s.HitMineRow)
	for row := range 3 {
		for col := range 3 {
			assert.Nil(t, s.Values[row][col])
		}
	}

	require.True(t, g.ToggleFlag(2, 2))
	require.True(t, g.Reveal(0, 2).Accepted)
	clock.Advance(2 * time.Second)

	s = g.Snapshot()
	require.NotNil(t, s.Values[0][2])
	assert.Equal(t, 0, *s.Values[0][2])
	require.NotNil(t, s.Values[1][1])
	assert.Equal(t, 2, *s.Values[1][1])
	assert.Nil(t, s.Values[0][0])
	assert.Nil(t, s.Values[2][2])
	assert.True(t, s.Flags[2][2])
	assert.False(t, s.Revealed[2][2])
	assert.Equal(t, 2, s.ElapsedTime)
	require.NotNil(t, s.StartTime)
	assert.Equal(t, g.StartTime.UnixMilli(), *s.StartTime)

	require.True(t, g.Reveal(0, 0).GameOver)
	s = g.Snapshot()
	require.NotNil(t, s.HitMineRow)
	assert.Equal(t, 0, *s.HitMineRow)
	assert.Equal(t, 0, *s.HitMineCol)
	assert.Equal(t, -1, *s.Values[2][2])
}

func TestSnapshotJSON(t *testing.T) {
	g := gameFromLayout(t, nil,
		"*.",
		"..",
	)
	require.True(t, g.Reveal(1, 1).Accepted)

	b, err := json.Marshal(g.Snapshot())
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))

	for _, key := range []string{
		"rows", "cols", "revealed", "flags", "values", "gameOver", "won",
		"minesCount", "elapsedTime", "startTime", "hitMineRow", "hitMineCol",
	} {
		assert.Contains(t, m, key)
	}
	assert.Nil(t, m["hitMineRow"])
	assert.Equal(t, []any{
		[]any{nil, nil},
		[]any{nil, float64(1)},
	}, m["values"])
}

func TestGameString(t *testing.T) {
	g := gameFromLayout(t, nil,
		"*..",
		"...",
		"...",
	)
	require.True(t, g.ToggleFlag(0, 0))
	require.True(t, g.Reveal(1, 1).Accepted)

	want := strings.Join([]string{
		"F # # ",
		"# 1 # ",
		"# # # ",
		"",
	}, "\n")
	assert.Equal(t, want, g.String())
}

func TestNewGameOptions(t *testing.T) {
	params := GameParams{Rows: 10, Cols: 10, MineCount: 15}

	g, err := NewGame(params, WithSeed(42), WithDaily())
	require.NoError(t, err)
	assert.True(t, g.IsDaily)
	require.NotNil(t, g.Seed)
	assert.Equal(t, uint32(42), *g.Seed)
	assert.Equal(t, golden42, g.Board.Matrix())

	g, err = NewGame(params)
	require.NoError(t, err)
	assert.False(t, g.IsDaily)
	assert.Nil(t, g.Seed)
	assert.Equal(t, 15, g.Board.Mines())

	_, err = NewGame(GameParams{Rows: 2, Cols: 2, MineCount: 4})
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestWithSource(t *testing.T) {
	params := GameParams{Rows: 10, Cols: 10, MineCount: 15}

	g, err := NewGame(params, WithSource(NewLCG(42)))
	require.NoError(t, err)
	assert.Nil(t, g.Seed)
	assert.Equal(t, golden42, g.Board.Matrix())

	g, err = NewGame(params, WithSource(NewLCG(1)), WithSeed(42))
	require.NoError(t, err)
	assert.Equal(t, golden42, g.Board.Matrix())
}

func TestClone(t *testing.T) {
	g := gameFromLayout(t, newFakeClock(),
		"*..",
		"...",
		"...",
	)
	require.True(t, g.Reveal(1, 1).Accepted)

	c := g.Clone()
	require.True(t, c.ToggleFlag(0, 0))
	require.True(t, c.Reveal(2, 2).Won)

	assert.False(t, g.Flagged[0])
	assert.False(t, g.GameOver)
	assert.Nil(t, g.EndTime)
	assert.Equal(t, 1, countTrue(g.Revealed))
	assert.Equal(t, g.Board.Values, c.Board.Values)
	assert.NotSame(t, g.Board, c.Board)
}
