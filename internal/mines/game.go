package mines

import (
	"slices"
	"strings"
	"time"
)

// GameState is a single playthrough. It is not safe for concurrent use;
// callers sharing a game must serialize access to it.
type GameState struct {
	Board     *Board
	Revealed  []bool
	Flagged   []bool
	GameOver  bool
	Won       bool
	StartTime *time.Time /* first accepted reveal */
	EndTime   *time.Time /* transition to game over */
	HitMine   *Point
	Seed      *uint32
	IsDaily   bool

	now func() time.Time
}

type MoveResult struct {
	Accepted bool `json:"success"`
	GameOver bool `json:"gameOver"`
	Won      bool `json:"won"`
}

type gameOptions struct {
	seed  *uint32
	src   Source
	daily bool
	now   func() time.Time
}

type Option func(*gameOptions)

// WithSeed makes mine placement fully determined by seed.
func WithSeed(seed uint32) Option {
	return func(o *gameOptions) {
		o.seed = &seed
	}
}

// WithSource draws mine placement from src. WithSeed takes precedence.
func WithSource(src Source) Option {
	return func(o *gameOptions) {
		o.src = src
	}
}

// WithDaily tags the game as a daily puzzle. It does not change generation.
func WithDaily() Option {
	return func(o *gameOptions) {
		o.daily = true
	}
}

func WithClock(now func() time.Time) Option {
	return func(o *gameOptions) {
		o.now = now
	}
}

func NewGame(params GameParams, opts ...Option) (*GameState, error) {
	o := gameOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	src := o.src
	switch {
	case o.seed != nil:
		src = NewLCG(*o.seed)
	case src == nil:
		src = NewRandomSource()
	}

	board, err := Generate(params, src)
	if err != nil {
		return nil, err
	}

	return &GameState{
		Board:    board,
		Revealed: make([]bool, params.Cells()),
		Flagged:  make([]bool, params.Cells()),
		Seed:     o.seed,
		IsDaily:  o.daily,
		now:      o.now,
	}, nil
}

func (g *GameState) clock() time.Time {
	if g.now == nil {
		return time.Now()
	}
	return g.now()
}

func (g *GameState) result() MoveResult {
	return MoveResult{Accepted: true, GameOver: g.GameOver, Won: g.Won}
}

func (g *GameState) ValidatePoint(row, col int) bool {
	return g.Board.PointInBounds(row, col)
}

// Reveal opens the cell at row:col. Revealing a zero cell cascades to its
// whole zero region and the numbers bordering it.
func (g *GameState) Reveal(row, col int) MoveResult {
	if g.GameOver || !g.ValidatePoint(row, col) {
		return MoveResult{}
	}
	i := g.Board.index(row, col)
	if g.Revealed[i] || g.Flagged[i] {
		return MoveResult{}
	}

	now := g.clock()
	if g.StartTime == nil {
		g.StartTime = &now
	}

	if g.Board.Values[i] == Mine {
		g.Revealed[i] = true
		g.lose(row, col, now)
		return g.result()
	}

	g.flood(i)

	if g.allSafeRevealed() {
		g.GameOver = true
		g.Won = true
		g.EndTime = &now
	}

	return g.result()
}

func (g *GameState) lose(row, col int, now time.Time) {
	g.GameOver = true
	g.Won = false
	g.EndTime = &now
	g.HitMine = &Point{Row: row, Col: col}

	/* flags stay as they were, even on mines */
	for i, v := range g.Board.Values {
		if v == Mine {
			g.Revealed[i] = true
		}
	}
}

func (g *GameState) allSafeRevealed() bool {
	for i, v := range g.Board.Values {
		if v != Mine && !g.Revealed[i] {
			return false
		}
	}
	return true
}

func (g *GameState) ToggleFlag(row, col int) bool {
	if g.GameOver || !g.ValidatePoint(row, col) {
		return false
	}
	i := g.Board.index(row, col)
	if g.Revealed[i] {
		return false
	}
	g.Flagged[i] = !g.Flagged[i]
	return true
}

// Chord reveals every unflagged neighbour of an opened number once the
// player has flagged exactly that many neighbours.
func (g *GameState) Chord(row, col int) MoveResult {
	if g.GameOver || !g.ValidatePoint(row, col) {
		return MoveResult{}
	}
	i := g.Board.index(row, col)
	v := g.Board.Values[i]
	if !g.Revealed[i] || v <= 0 {
		return MoveResult{}
	}

	flags := 0
	targets := make([]int, 0, 8)
	for j := range g.Board.neighbors(i) {
		if g.Flagged[j] {
			flags++
		} else if !g.Revealed[j] {
			targets = append(targets, j)
		}
	}
	if flags != int(v) || len(targets) == 0 {
		return MoveResult{}
	}

	for _, j := range targets {
		// a previous target's cascade may already have opened j
		g.Reveal(g.Board.point(j))
		if g.GameOver {
			break
		}
	}

	return g.result()
}

// Elapsed is the whole number of seconds played so far.
func (g *GameState) Elapsed() int {
	if g.StartTime == nil {
		return 0
	}
	end := g.clock()
	if g.EndTime != nil {
		end = *g.EndTime
	}
	return int(end.Sub(*g.StartTime) / time.Second)
}

// FinalElapsed is the whole number of seconds a finished game took, or 0 if
// the game never started or is still running.
func (g *GameState) FinalElapsed() int {
	if g.StartTime == nil || g.EndTime == nil {
		return 0
	}
	return int(g.EndTime.Sub(*g.StartTime) / time.Second)
}

func (g *GameState) String() string {
	var sb strings.Builder
	for row := range g.Board.Rows {
		for col := range g.Board.Cols {
			i := g.Board.index(row, col)
			switch {
			case g.Revealed[i]:
				sb.WriteString(g.Board.Values[i].String())
			case g.Flagged[i]:
				sb.WriteString("F")
			default:
				sb.WriteString("#")
			}
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Clone returns a deep copy that shares nothing mutable with g.
func (g *GameState) Clone() *GameState {
	c := *g
	c.Board = &Board{GameParams: g.Board.GameParams, Values: slices.Clone(g.Board.Values)}
	c.Revealed = slices.Clone(g.Revealed)
	c.Flagged = slices.Clone(g.Flagged)
	if g.StartTime != nil {
		t := *g.StartTime
		c.StartTime = &t
	}
	if g.EndTime != nil {
		t := *g.EndTime
		c.EndTime = &t
	}
	if g.HitMine != nil {
		p := *g.HitMine
		c.HitMine = &p
	}
	if g.Seed != nil {
		s := *g.Seed
		c.Seed = &s
	}
	return &c
}
