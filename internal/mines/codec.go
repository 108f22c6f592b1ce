package mines

import (
	"bytes"
	"encoding/gob"
	"errors"
	"time"
)

var ErrMalformedState = errors.New("malformed game state")

// gob drops zero values behind pointers, so a seed of 0 or a mine hit at
// 0:0 are carried with explicit presence flags.
type gameRecord struct {
	Params    GameParams
	Values    []CellValue
	Revealed  []bool
	Flagged   []bool
	GameOver  bool
	Won       bool
	StartTime *time.Time
	EndTime   *time.Time
	Hit       bool
	HitRow    int
	HitCol    int
	Seeded    bool
	Seed      uint32
	IsDaily   bool
}

func (g *GameState) Bytes() ([]byte, error) {
	r := gameRecord{
		Params:    g.Board.GameParams,
		Values:    g.Board.Values,
		Revealed:  g.Revealed,
		Flagged:   g.Flagged,
		GameOver:  g.GameOver,
		Won:       g.Won,
		StartTime: g.StartTime,
		EndTime:   g.EndTime,
		IsDaily:   g.IsDaily,
	}
	if g.HitMine != nil {
		r.Hit, r.HitRow, r.HitCol = true, g.HitMine.Row, g.HitMine.Col
	}
	if g.Seed != nil {
		r.Seeded, r.Seed = true, *g.Seed
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeGameState restores a game encoded with [GameState.Bytes]. The
// decoded game uses the wall clock.
func DecodeGameState(b []byte) (*GameState, error) {
	var r gameRecord
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&r); err != nil {
		return nil, err
	}

	cells := r.Params.Cells()
	if r.Params.Validate() != nil ||
		len(r.Values) != cells ||
		len(r.Revealed) != cells ||
		len(r.Flagged) != cells {
		return nil, ErrMalformedState
	}

	g := &GameState{
		Board:     &Board{GameParams: r.Params, Values: r.Values},
		Revealed:  r.Revealed,
		Flagged:   r.Flagged,
		GameOver:  r.GameOver,
		Won:       r.Won,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		IsDaily:   r.IsDaily,
	}
	if r.Hit {
		g.HitMine = &Point{Row: r.HitRow, Col: r.HitCol}
	}
	if r.Seeded {
		seed := r.Seed
		g.Seed = &seed
	}
	return g, nil
}
