package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-daily/internal/mines"
)

type entry struct {
	mu   sync.Mutex
	game *mines.GameState
}

// Memory holds up to capacity sessions, dropping the least recently used
// one when full and any session left untouched for ttl.
type Memory struct {
	lru *expirable.LRU[string, *entry]
}

func NewMemory(capacity int, ttl time.Duration, log logrus.FieldLogger) *Memory {
	onEvict := func(id string, _ *entry) {
		log.WithField("game_session_id", id).Debug("session evicted")
	}
	return &Memory{
		lru: expirable.NewLRU[string, *entry](capacity, onEvict, ttl),
	}
}

// [Memory] implements [Store]
func (m *Memory) Create(_ context.Context, g *mines.GameState) (string, error) {
	id := uuid.NewString()
	m.lru.Add(id, &entry{game: g.Clone()})
	return id, nil
}

func (m *Memory) Get(_ context.Context, id string) (*mines.GameState, error) {
	e, ok := m.lru.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.game.Clone(), nil
}

func (m *Memory) Update(
	_ context.Context, id string, fn func(*mines.GameState) error,
) (*mines.GameState, error) {
	e, ok := m.lru.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	g := e.game.Clone()
	if err := fn(g); err != nil {
		return nil, err
	}
	e.game = g
	m.lru.Add(id, e) /* restarts the ttl */

	return g.Clone(), nil
}

func (m *Memory) Len(context.Context) (int, error) {
	return m.lru.Len(), nil
}

func (m *Memory) Close() {
	m.lru.Purge()
}
