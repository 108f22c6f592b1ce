package daily

import (
	"time"

	"github.com/vancomm/minesweeper-daily/internal/mines"
)

// Deriver computes daily seeds with a fixed secret salt.
type Deriver struct {
	salt string
	now  func() time.Time
}

type DeriverOption func(*Deriver)

func WithClock(now func() time.Time) DeriverOption {
	return func(d *Deriver) {
		d.now = now
	}
}

func NewDeriver(salt string, opts ...DeriverOption) *Deriver {
	d := &Deriver{salt: salt, now: time.Now}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Deriver) DefaultSalt() bool {
	return d.salt == DefaultSalt
}

// DateKey is today's key.
func (d *Deriver) DateKey() string {
	return DateKey(d.now())
}

// Seed is today's seed for label.
func (d *Deriver) Seed(label string) uint32 {
	return Seed(label, d.now(), d.salt)
}

func (d *Deriver) SeedForDate(label, dateKey string) uint32 {
	return SeedForDate(label, dateKey, d.salt)
}

// [Deriver] implements [fmt.Stringer]
func (d *Deriver) String() string {
	return "daily.Deriver{salt: [REDACTED]}"
}

// Puzzle describes one daily board: which preset, which day, which seed.
type Puzzle struct {
	Difficulty Difficulty
	Date       string
	Seed       uint32
}

// Puzzle resolves name to a preset and derives its seed for dateKey, or for
// today when dateKey is empty. The seed is keyed on the preset name, so
// "Easy" and "easy" share a board.
func (d *Deriver) Puzzle(name, dateKey string) Puzzle {
	diff, _ := Lookup(name)
	if dateKey == "" {
		dateKey = d.DateKey()
	}
	return Puzzle{
		Difficulty: diff,
		Date:       dateKey,
		Seed:       d.SeedForDate(diff.Name, dateKey),
	}
}

// NewGame starts a fresh session of the puzzle.
func (p Puzzle) NewGame(opts ...mines.Option) (*mines.GameState, error) {
	opts = append([]mines.Option{mines.WithSeed(p.Seed), mines.WithDaily()}, opts...)
	return mines.NewGame(p.Difficulty.Params(), opts...)
}
