package handlers

import (
	"net/http"

	"github.com/gorilla/schema"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-daily/internal/config"
	"github.com/vancomm/minesweeper-daily/internal/daily"
	"github.com/vancomm/minesweeper-daily/internal/mines"
	"github.com/vancomm/minesweeper-daily/internal/store"
)

type GameHandler struct {
	log   logrus.FieldLogger
	store store.Store
	daily *daily.Deriver
	ws    *config.WebSocket
	dec   *schema.Decoder
}

func NewGameHandler(
	log logrus.FieldLogger,
	s store.Store,
	deriver *daily.Deriver,
	ws *config.WebSocket,
) *GameHandler {
	return &GameHandler{
		log:   log,
		store: s,
		daily: deriver,
		ws:    ws,
		dec:   newDecoder(),
	}
}

func (h GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	req := defaultNewGameRequest()
	if err := decodeRequest(h.dec, r, &req); err != nil {
		sendError(w, h.log, err)
		return
	}

	game, err := mines.NewGame(req.Params())
	if err != nil {
		sendError(w, h.log, err)
		return
	}

	id, err := h.store.Create(r.Context(), game)
	if err != nil {
		sendError(w, h.log, err)
		return
	}

	h.log.WithFields(logrus.Fields{
		"game_session_id": id,
		"params":          game.Board.GameParams.String(),
	}).Debug("game created")

	sendJSONOrLog(w, h.log, http.StatusOK, GameResponse{
		GameID: id,
		State:  game.Snapshot(),
	})
}

// NewDaily starts a private session of today's puzzle. Every session of the
// same difficulty and day has the same board.
func (h GameHandler) NewDaily(w http.ResponseWriter, r *http.Request) {
	req := DailyRequest{Difficulty: daily.DefaultDifficulty}
	if err := decodeRequest(h.dec, r, &req); err != nil {
		sendError(w, h.log, err)
		return
	}

	puzzle := h.daily.Puzzle(req.Difficulty, "")
	game, err := puzzle.NewGame()
	if err != nil {
		sendError(w, h.log, err)
		return
	}

	id, err := h.store.Create(r.Context(), game)
	if err != nil {
		sendError(w, h.log, err)
		return
	}

	h.log.WithFields(logrus.Fields{
		"game_session_id": id,
		"difficulty":      puzzle.Difficulty.Name,
		"date":            puzzle.Date,
	}).Debug("daily game created")

	sendJSONOrLog(w, h.log, http.StatusOK, DailyGameResponse{
		GameID:        id,
		State:         game.Snapshot(),
		Seed:          puzzle.Seed,
		IsDailyPuzzle: true,
		Date:          puzzle.Date,
		Difficulty:    puzzle.Difficulty.Name,
	})
}

func (h GameHandler) DailyInfo(w http.ResponseWriter, r *http.Request) {
	info := DailyInfoResponse{
		Date:         h.daily.DateKey(),
		Difficulties: make(map[string]daily.Difficulty, len(daily.Difficulties)),
	}
	for _, d := range daily.Difficulties {
		info.Difficulties[d.Name] = d
	}
	sendJSONOrLog(w, h.log, http.StatusOK, info)
}

func (h GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	game, err := h.store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		sendError(w, h.log, err)
		return
	}
	sendJSONOrLog(w, h.log, http.StatusOK, GameResponse{State: game.Snapshot()})
}

// move decodes the target cell and applies fn to the stored session.
func (h GameHandler) move(
	w http.ResponseWriter,
	r *http.Request,
	fn func(g *mines.GameState, m MoveRequest) any,
) {
	m := defaultMoveRequest()
	if err := decodeRequest(h.dec, r, &m); err != nil {
		sendError(w, h.log, err)
		return
	}

	id := r.PathValue("id")
	var (
		resp       any
		wasPlaying bool
	)
	game, err := h.store.Update(r.Context(), id, func(g *mines.GameState) error {
		wasPlaying = !g.GameOver
		resp = fn(g, m)
		return nil
	})
	if err != nil {
		sendError(w, h.log, err)
		return
	}

	if wasPlaying && game.GameOver {
		h.logFinished(id, game)
	}

	sendJSONOrLog(w, h.log, http.StatusOK, resp)
}

func (h GameHandler) logFinished(id string, g *mines.GameState) {
	h.log.WithFields(logrus.Fields{
		"game_session_id": id,
		"won":             g.Won,
		"daily":           g.IsDaily,
		"elapsed":         g.FinalElapsed(),
	}).Info("game finished")
}

func (h GameHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, func(g *mines.GameState, m MoveRequest) any {
		res := g.Reveal(m.Row, m.Col)
		return MoveResponse{MoveResult: res, State: g.Snapshot()}
	})
}

func (h GameHandler) Flag(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, func(g *mines.GameState, m MoveRequest) any {
		ok := g.ToggleFlag(m.Row, m.Col)
		return FlagResponse{Success: ok, State: g.Snapshot()}
	})
}

func (h GameHandler) Chord(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, func(g *mines.GameState, m MoveRequest) any {
		res := g.Chord(m.Row, m.Col)
		return MoveResponse{MoveResult: res, State: g.Snapshot()}
	})
}

// DevBoard exposes the full mine layout. It is mounted only in development
// behind [middleware.DevAuth].
func (h GameHandler) DevBoard(w http.ResponseWriter, r *http.Request) {
	game, err := h.store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		sendError(w, h.log, err)
		return
	}
	sendJSONOrLog(w, h.log, http.StatusOK, DevBoardResponse{
		Board: game.Board.Matrix(),
		Rows:  game.Board.Rows,
		Cols:  game.Board.Cols,
		Seed:  game.Seed,
	})
}

func Status(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("OK"))
}
