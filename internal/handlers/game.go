package handlers

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/ostapk/minefield-server/internal/board"
	"github.com/ostapk/minefield-server/internal/command"
	"github.com/ostapk/minefield-server/internal/config"
	"github.com/ostapk/minefield-server/internal/middleware"
	"github.com/ostapk/minefield-server/internal/repository"
)

type Game struct {
	log  *logrus.Logger
	repo *repository.Queries
	ws   *config.WebSocket
	rnd  *rand.Rand
}

func NewGame(
	log *logrus.Logger,
	db *pgxpool.Pool,
	ws *config.WebSocket,
	rnd *rand.Rand,
) *Game {
	return &Game{
		log:  log,
		repo: repository.New(db),
		ws:   ws,
		rnd:  rnd,
	}
}

// NewGame starts a game session. Mines are not placed until the first open,
// so the request carries only the board dimensions.
func (g Game) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseNewGameDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.log, wrapError(err))
		return
	}
	if dto.Rows <= 0 || dto.Cols <= 0 || dto.MineCount < 0 {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.log, wrapError(fmt.Errorf("invalid board dimensions")))
		return
	}

	b := board.New(dto.Rows, dto.Cols, dto.MineCount, g.rnd)

	var playerId *int64
	if claims, ok := middleware.PlayerClaims(r); ok {
		playerId = &claims.PlayerId
	}

	session, err := g.repo.CreateGameSession(r.Context(), b, playerId)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to create game session")
		return
	}

	sendJSONOrLog(w, g.log, NewGameSessionDTO(session, b))
}

// loadSession fetches the session row and decodes its board, writing the
// appropriate status code on failure.
func (g Game) loadSession(
	w http.ResponseWriter, r *http.Request,
) (*repository.GameSession, *board.Board, bool) {
	sessionId, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return nil, nil, false
	}

	session, err := g.repo.FetchGameSession(r.Context(), sessionId)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return nil, nil, false
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to fetch session from db")
		return nil, nil, false
	}

	b, err := board.ParseBoardFromBytes(session.State, g.rnd)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("db returned invalid game_session.state")
		return nil, nil, false
	}
	return session, b, true
}

func (g Game) Fetch(w http.ResponseWriter, r *http.Request) {
	session, b, ok := g.loadSession(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, g.log, NewGameSessionDTO(session, b))
}

var ErrUnknownMove = errors.New("unknown move")

// MakeAMove applies a single move named by the "move" query parameter:
// open, flag or chord, at the row and col parameters.
func (g Game) MakeAMove(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	move := query.Get("move")
	switch move {
	case "open", "flag", "chord":
	default:
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.log, wrapError(ErrUnknownMove))
		return
	}

	pos, err := ParsePosition(query)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.log, wrapError(err))
		return
	}

	session, b, ok := g.loadSession(w, r)
	if !ok {
		return
	}

	if _, ok := b.CellAt(pos.Row, pos.Col); !ok {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.log, wrapError(fmt.Errorf("invalid cell position")))
		return
	}

	switch move {
	case "open":
		b.Reveal(pos.Row, pos.Col)
	case "flag":
		b.CycleMark(pos.Row, pos.Col)
	case "chord":
		b.Chord(pos.Row, pos.Col)
	}

	session, err = g.repo.SaveBoard(r.Context(), session, b)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to update session in db")
		return
	}

	sendJSONOrLog(w, g.log, NewGameSessionDTO(session, b))
}

func (g Game) Forfeit(w http.ResponseWriter, r *http.Request) {
	session, b, ok := g.loadSession(w, r)
	if !ok {
		return
	}

	b.Forfeit()

	session, err := g.repo.SaveBoard(r.Context(), session, b)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to update session in db")
		return
	}

	sendJSONOrLog(w, g.log, NewGameSessionDTO(session, b))
}

// Batch accepts newline-separated commands in the request body and applies
// them in order. A malformed command drops all changes and reports the
// offending line; a game over stops interpretation early.
func (g Game) Batch(w http.ResponseWriter, r *http.Request) {
	session, b, ok := g.loadSession(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to read request body")
		return
	}

	lines := strings.TrimSpace(string(body))
	for i, c := range command.ByPiece(lines, "\n") {
		if err := command.Execute(b, c); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			sendJSONOrLog(w, g.log, map[string]any{
				"loc":   i,
				"error": err.Error(),
			})
			return
		}
		if b.Status() != board.StatusPlaying {
			break
		}
	}

	session, err = g.repo.SaveBoard(r.Context(), session, b)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to update session in db")
		return
	}

	sendJSONOrLog(w, g.log, NewGameSessionDTO(session, b))
}

// Records lists won games ordered by playtime, optionally filtered by
// username and board parameters.
func (g Game) Records(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var filter repository.HighscoreFilter
	if username := query.Get("username"); username != "" {
		filter.Username = &username
	}
	if query.Has("rows") || query.Has("cols") || query.Has("mine_count") {
		var params repository.BoardParams
		var err error
		if params.Rows, err = strconv.Atoi(query.Get("rows")); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if params.Cols, err = strconv.Atoi(query.Get("cols")); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if params.MineCount, err = strconv.Atoi(query.Get("mine_count")); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		filter.BoardParams = &params
	}

	records, err := g.repo.GetHighscores(r.Context(), filter)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to fetch highscores")
		return
	}

	sendJSONOrLog(w, g.log, records)
}
