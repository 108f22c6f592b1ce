package store

import (
	"context"
	"errors"

	"github.com/vancomm/minesweeper-daily/internal/mines"
)

var (
	ErrNotFound    = errors.New("game session not found")
	ErrNotMigrated = errors.New("game session table is missing, run migrations")
)

// Store keeps game sessions between requests. Update runs fn with exclusive
// access to the session and saves the result only if fn returns nil.
// Returned games are copies and may be read freely.
type Store interface {
	Create(ctx context.Context, g *mines.GameState) (string, error)
	Get(ctx context.Context, id string) (*mines.GameState, error)
	Update(ctx context.Context, id string, fn func(*mines.GameState) error) (*mines.GameState, error)
	Len(ctx context.Context) (int, error)
	Close()
}

// Purger is implemented by stores whose expired sessions must be removed
// explicitly.
type Purger interface {
	Purge(ctx context.Context) (int64, error)
}
