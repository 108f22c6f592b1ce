package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-daily/internal/daily"
	"github.com/vancomm/minesweeper-daily/internal/mines"
	"github.com/vancomm/minesweeper-daily/internal/repository"
)

// Postgres keeps sessions in the game_session table. Sessions not updated
// for ttl are invisible and removed by [Postgres.Purge].
type Postgres struct {
	pool *pgxpool.Pool
	q    *repository.Queries
	ttl  time.Duration
	log  logrus.FieldLogger
	now  func() time.Time
}

func NewPostgres(pool *pgxpool.Pool, ttl time.Duration, log logrus.FieldLogger) *Postgres {
	return &Postgres{
		pool: pool,
		q:    repository.New(pool),
		ttl:  ttl,
		log:  log,
		now:  time.Now,
	}
}

func (p *Postgres) cutoff() time.Time {
	return p.now().Add(-p.ttl)
}

func mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UndefinedTable {
		return fmt.Errorf("%w: %s", ErrNotMigrated, pgErr.Message)
	}
	return err
}

func parseID(id string) (uuid.UUID, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, ErrNotFound
	}
	return uid, nil
}

// [Postgres] implements [Store]
func (p *Postgres) Create(ctx context.Context, g *mines.GameState) (string, error) {
	state, err := g.Bytes()
	if err != nil {
		return "", fmt.Errorf("unable to encode game: %w", err)
	}

	params := repository.CreateGameSessionParams{
		GameSessionId: uuid.New(),
		RowCount:      g.Board.Rows,
		ColCount:      g.Board.Cols,
		MineCount:     g.Board.MineCount,
		IsDaily:       g.IsDaily,
		State:         state,
	}
	if g.Seed != nil {
		seed := int64(*g.Seed)
		params.Seed = &seed
	}
	if g.IsDaily {
		date := daily.DateKey(p.now())
		params.DailyDate = &date
	}

	session, err := p.q.CreateGameSession(ctx, params)
	if err != nil {
		return "", mapError(err)
	}
	return session.GameSessionId.String(), nil
}

func (p *Postgres) Get(ctx context.Context, id string) (*mines.GameState, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	session, err := p.q.FetchGameSession(ctx, uid, p.cutoff())
	if err != nil {
		return nil, mapError(err)
	}
	return mines.DecodeGameState(session.State)
}

func (p *Postgres) Update(
	ctx context.Context, id string, fn func(*mines.GameState) error,
) (g *mines.GameState, err error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	err = pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		q := p.q.WithTx(tx)

		session, err := q.FetchGameSessionForUpdate(ctx, uid, p.cutoff())
		if err != nil {
			return mapError(err)
		}
		g, err = mines.DecodeGameState(session.State)
		if err != nil {
			return err
		}
		if err := fn(g); err != nil {
			return err
		}

		state, err := g.Bytes()
		if err != nil {
			return fmt.Errorf("unable to encode game: %w", err)
		}
		_, err = q.UpdateGameSession(ctx, uid, repository.UpdateGameSessionParams{
			GameOver:  &g.GameOver,
			Won:       &g.Won,
			StartedAt: g.StartTime,
			EndedAt:   g.EndTime,
			State:     &state,
		})
		return mapError(err)
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (p *Postgres) Len(ctx context.Context) (int, error) {
	n, err := p.q.CountGameSessions(ctx, p.cutoff())
	return n, mapError(err)
}

// [Postgres] implements [Purger]
func (p *Postgres) Purge(ctx context.Context) (int64, error) {
	n, err := p.q.DeleteStaleGameSessions(ctx, p.cutoff())
	if err != nil {
		return 0, mapError(err)
	}
	if n > 0 {
		p.log.WithField("count", n).Info("purged stale sessions")
	}
	return n, nil
}

func (p *Postgres) Close() {
	p.pool.Close()
}
