package handlers

import (
	"strconv"

	"github.com/gorilla/schema"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/ostapk/minefield-server/internal/board"
	"github.com/ostapk/minefield-server/internal/repository"
)

type NewGameDTO struct {
	Rows      int `schema:"rows,required"`
	Cols      int `schema:"cols,required"`
	MineCount int `schema:"mine_count,required"`
}

func ParseNewGameDTO(src map[string][]string) (NewGameDTO, error) {
	var dto NewGameDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	return dto, err
}

type PositionDTO struct {
	Row int `schema:"row,required"`
	Col int `schema:"col,required"`
}

func ParsePosition(src map[string][]string) (PositionDTO, error) {
	var dto PositionDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	return dto, err
}

type GameSessionDTO struct {
	GameSessionId string           `json:"game_session_id"`
	Grid          board.GridView   `json:"grid"`
	Rows          int              `json:"rows"`
	Cols          int              `json:"cols"`
	MineCount     int              `json:"mine_count"`
	FlagCount     int              `json:"flag_count"`
	Status        board.GameStatus `json:"status"`
	StartedAt     int64            `json:"started_at"`
	EndedAt       *int64           `json:"ended_at,omitempty"`
}

func NewGameSessionDTO(
	session *repository.GameSession, b *board.Board,
) *GameSessionDTO {
	var endedAt *int64
	if session.EndedAt.Valid {
		e := session.EndedAt.Time.UnixMilli()
		endedAt = &e
	}
	return &GameSessionDTO{
		GameSessionId: strconv.FormatInt(session.GameSessionId, 10),
		Grid:          b.View(),
		Rows:          b.Rows(),
		Cols:          b.Cols(),
		MineCount:     b.MineCount(),
		FlagCount:     b.FlagCount(),
		Status:        b.Status(),
		StartedAt:     startedAtMillis(session.StartedAt),
		EndedAt:       endedAt,
	}
}

func startedAtMillis(t pgtype.Timestamptz) int64 {
	if !t.Valid {
		return 0
	}
	return t.Time.UnixMilli()
}
