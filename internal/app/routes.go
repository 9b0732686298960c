package app

import (
	"net/http"

	"github.com/ostapk/minefield-server/internal/board"
	"github.com/ostapk/minefield-server/internal/handlers"
)

func (a *App) loadRoutes() {
	game := handlers.NewGame(a.log, a.db, a.ws, board.NewRand())
	auth := handlers.NewAuth(a.log, a.db, a.cookies, a.jwt)

	a.router.HandleFunc("POST /game", game.NewGame)
	a.router.HandleFunc("GET /game/{id}", game.Fetch)
	a.router.HandleFunc("POST /game/{id}/move", game.MakeAMove)
	a.router.HandleFunc("POST /game/{id}/forfeit", game.Forfeit)
	a.router.HandleFunc("POST /game/{id}/batch", game.Batch)
	a.router.HandleFunc("/game/{id}/connect", game.ConnectWS)
	a.router.HandleFunc("GET /game/records", game.Records)

	a.router.HandleFunc("POST /register", auth.Register)
	a.router.HandleFunc("POST /login", auth.Login)
	a.router.HandleFunc("POST /logout", auth.Logout)
	a.router.HandleFunc("GET /auth/status", auth.Status)

	a.router.HandleFunc("GET /status", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("\"ok\""))
	})
}
