package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/ostapk/minefield-server/internal/board"
	"github.com/ostapk/minefield-server/internal/command"
)

// ConnectWS upgrades the connection and runs the command loop: every text
// message carries newline-separated commands, and each message is answered
// with the full session state after the commands ran. The board is persisted
// after every message so a dropped connection loses nothing.
func (g Game) ConnectWS(w http.ResponseWriter, r *http.Request) {
	session, b, ok := g.loadSession(w, r)
	if !ok {
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.WithError(err).Error("unable to upgrade connection")
		return
	}
	defer c.Close()

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				g.log.WithError(err).Warn("websocket read")
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}

		text := strings.TrimSpace(string(message))
		for _, cmd := range command.ByPiece(text, "\n") {
			if err := command.Execute(b, cmd); err != nil {
				g.log.WithError(err).Error("websocket command")
				return
			}
			if b.Status() != board.StatusPlaying {
				break
			}
		}

		session, err = g.repo.SaveBoard(r.Context(), session, b)
		if err != nil {
			g.log.WithError(err).Error("unable to update session in db")
			return
		}

		if err := c.WriteJSON(NewGameSessionDTO(session, b)); err != nil {
			g.log.WithError(err).Error("websocket write")
			break
		}
	}
}
