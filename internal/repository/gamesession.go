package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type GameSession struct {
	GameSessionId uuid.UUID          `db:"game_session_id"`
	RowCount      int                `db:"row_count"`
	ColCount      int                `db:"col_count"`
	MineCount     int                `db:"mine_count"`
	Seed          *int64             `db:"seed"`
	IsDaily       bool               `db:"is_daily"`
	DailyDate     *string            `db:"daily_date"`
	GameOver      bool               `db:"game_over"`
	Won           bool               `db:"won"`
	StartedAt     pgtype.Timestamptz `db:"started_at"`
	EndedAt       pgtype.Timestamptz `db:"ended_at"`
	State         []byte             `db:"state"`
	CreatedAt     pgtype.Timestamptz `db:"created_at"`
	UpdatedAt     pgtype.Timestamptz `db:"updated_at"`
}

type CreateGameSessionParams struct {
	GameSessionId uuid.UUID
	RowCount      int
	ColCount      int
	MineCount     int
	Seed          *int64
	IsDaily       bool
	DailyDate     *string
	State         []byte
}

func (q *Queries) CreateGameSession(
	ctx context.Context, params CreateGameSessionParams,
) (*GameSession, error) {
	args := pgx.NamedArgs{
		"game_session_id": params.GameSessionId,
		"row_count":       params.RowCount,
		"col_count":       params.ColCount,
		"mine_count":      params.MineCount,
		"seed":            params.Seed,
		"is_daily":        params.IsDaily,
		"daily_date":      params.DailyDate,
		"state":           params.State,
	}
	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO game_session (
			game_session_id, row_count, col_count, mine_count,
			seed, is_daily, daily_date, state
		)
		VALUES (
			@game_session_id, @row_count, @col_count, @mine_count,
			@seed, @is_daily, @daily_date, @state
		)
		RETURNING *;`,
		args,
	)
	return pgx.CollectExactlyOneRow(
		rows, pgx.RowToAddrOfStructByName[GameSession],
	)
}

// FetchGameSession returns the session if it was touched after cutoff.
func (q *Queries) FetchGameSession(
	ctx context.Context, id uuid.UUID, cutoff time.Time,
) (*GameSession, error) {
	rows, _ := q.db.Query(
		ctx,
		"SELECT * FROM game_session WHERE game_session_id = $1 AND updated_at > $2",
		id, cutoff,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}

// FetchGameSessionForUpdate locks the row until the surrounding
// transaction ends.
func (q *Queries) FetchGameSessionForUpdate(
	ctx context.Context, id uuid.UUID, cutoff time.Time,
) (*GameSession, error) {
	rows, _ := q.db.Query(
		ctx,
		`SELECT * FROM game_session
		WHERE game_session_id = $1 AND updated_at > $2
		FOR UPDATE`,
		id, cutoff,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}

type UpdateGameSessionParams struct {
	GameOver  *bool
	Won       *bool
	StartedAt *time.Time
	EndedAt   *time.Time
	State     *[]byte
}

func (p UpdateGameSessionParams) SetClause() (string, map[string]any) {
	parts := []string{"updated_at = now()"}
	args := make(map[string]any)

	if p.GameOver != nil {
		parts = append(parts, "game_over = @game_over")
		args["game_over"] = *p.GameOver
	}
	if p.Won != nil {
		parts = append(parts, "won = @won")
		args["won"] = *p.Won
	}
	if p.StartedAt != nil {
		parts = append(parts, "started_at = @started_at")
		args["started_at"] = *p.StartedAt
	}
	if p.EndedAt != nil {
		parts = append(parts, "ended_at = @ended_at")
		args["ended_at"] = *p.EndedAt
	}
	if p.State != nil {
		parts = append(parts, "state = @state")
		args["state"] = *p.State
	}

	return strings.Join(parts, ", "), args
}

func (q *Queries) UpdateGameSession(
	ctx context.Context, id uuid.UUID, params UpdateGameSessionParams,
) (*GameSession, error) {
	setClause, args := params.SetClause()
	args["game_session_id"] = id
	rows, _ := q.db.Query(
		ctx,
		"UPDATE game_session SET "+setClause+" WHERE game_session_id = @game_session_id RETURNING *",
		pgx.NamedArgs(args),
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}

func (q *Queries) CountGameSessions(ctx context.Context, cutoff time.Time) (count int, err error) {
	err = q.db.QueryRow(
		ctx, "SELECT count(*) FROM game_session WHERE updated_at > $1", cutoff,
	).Scan(&count)
	return
}

// DeleteStaleGameSessions removes sessions untouched since cutoff.
func (q *Queries) DeleteStaleGameSessions(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := q.db.Exec(
		ctx, "DELETE FROM game_session WHERE updated_at <= $1", cutoff,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
