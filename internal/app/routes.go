package app

import (
	"net/http"

	"github.com/vancomm/minesweeper-daily/internal/handlers"
	"github.com/vancomm/minesweeper-daily/internal/middleware"
)

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(a.log, a.store, a.deriver, a.ws)

	a.router.HandleFunc("GET /status", handlers.Status)

	a.router.HandleFunc("GET /api/daily", game.DailyInfo)
	a.router.HandleFunc("POST /api/game/new", game.NewGame)
	a.router.HandleFunc("POST /api/game/daily", game.NewDaily)
	a.router.HandleFunc("GET /api/game/{id}", game.Fetch)
	a.router.HandleFunc("POST /api/game/{id}/reveal", game.Reveal)
	a.router.HandleFunc("POST /api/game/{id}/flag", game.Flag)
	a.router.HandleFunc("POST /api/game/{id}/chord", game.Chord)
	a.router.HandleFunc("GET /api/game/{id}/connect", game.ConnectWS)

	if a.jwt != nil {
		a.router.Handle("GET /api/game/{id}/dev", middleware.Wrap(
			http.HandlerFunc(game.DevBoard),
			middleware.DevAuth(a.jwt, a.log),
		))
		a.log.Warn("developer board endpoint enabled")
	}
}
