package handlers

import (
	"github.com/vancomm/minesweeper-daily/internal/daily"
	"github.com/vancomm/minesweeper-daily/internal/mines"
)

type NewGameRequest struct {
	Rows  int `json:"rows" schema:"rows"`
	Cols  int `json:"cols" schema:"cols"`
	Mines int `json:"mines" schema:"mines"`
}

func defaultNewGameRequest() NewGameRequest {
	return NewGameRequest{Rows: 10, Cols: 10, Mines: 15}
}

func (r NewGameRequest) Params() mines.GameParams {
	return mines.GameParams{Rows: r.Rows, Cols: r.Cols, MineCount: r.Mines}
}

type DailyRequest struct {
	Difficulty string `json:"difficulty" schema:"difficulty"`
}

// MoveRequest defaults to an off-board cell so a missing coordinate is a
// rejected move rather than a move at 0:0.
type MoveRequest struct {
	Row int `json:"row" schema:"row"`
	Col int `json:"col" schema:"col"`
}

func defaultMoveRequest() MoveRequest {
	return MoveRequest{Row: -1, Col: -1}
}

type GameResponse struct {
	GameID string         `json:"gameId,omitempty"`
	State  mines.Snapshot `json:"state"`
}

type DailyGameResponse struct {
	GameID        string         `json:"gameId"`
	State         mines.Snapshot `json:"state"`
	Seed          uint32         `json:"seed"`
	IsDailyPuzzle bool           `json:"isDailyPuzzle"`
	Date          string         `json:"date"`
	Difficulty    string         `json:"difficulty"`
}

type MoveResponse struct {
	mines.MoveResult
	State mines.Snapshot `json:"state"`
}

type FlagResponse struct {
	Success bool           `json:"success"`
	State   mines.Snapshot `json:"state"`
}

type DevBoardResponse struct {
	Board [][]int `json:"board"`
	Rows  int     `json:"rows"`
	Cols  int     `json:"cols"`
	Seed  *uint32 `json:"seed"`
}

type DailyInfoResponse struct {
	Date         string                      `json:"date"`
	Difficulties map[string]daily.Difficulty `json:"difficulties"`
}

type CommandError struct {
	Error string `json:"error"`
	Line  string `json:"line"`
}
