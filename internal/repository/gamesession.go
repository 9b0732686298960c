package repository

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/ostapk/minefield-server/internal/board"
)

// GameSession is a row of the game_session table. The state column holds the
// gob-encoded board snapshot; the remaining columns are summaries for
// querying without decoding the blob.
type GameSession struct {
	GameSessionId int64              `db:"game_session_id"`
	PlayerId      *int64             `db:"player_id"`
	Rows          int                `db:"rows"`
	Cols          int                `db:"cols"`
	MineCount     int                `db:"mine_count"`
	FlagCount     int                `db:"flag_count"`
	Status        int16              `db:"status"`
	StartedAt     pgtype.Timestamptz `db:"started_at"`
	EndedAt       pgtype.Timestamptz `db:"ended_at"`
	State         []byte             `db:"state"`
	CreatedAt     pgtype.Timestamptz `db:"created_at"`
	UpdatedAt     pgtype.Timestamptz `db:"updated_at"`
}

func (q Queries) CreateGameSession(
	ctx context.Context, b *board.Board, playerId *int64,
) (*GameSession, error) {
	state, err := b.Bytes()
	if err != nil {
		return nil, err
	}

	args := pgx.NamedArgs{
		"player_id":  playerId,
		"rows":       b.Rows(),
		"cols":       b.Cols(),
		"mine_count": b.MineCount(),
		"flag_count": b.FlagCount(),
		"status":     int16(b.Status()),
		"state":      state,
	}

	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO game_session (
			player_id, rows, cols, mine_count, flag_count, status, state
		)
		VALUES (
			@player_id, @rows, @cols, @mine_count, @flag_count, @status, @state
		)
		RETURNING *;`,
		args,
	)
	return pgx.CollectExactlyOneRow(
		rows, pgx.RowToAddrOfStructByName[GameSession],
	)
}

func (q Queries) FetchGameSession(
	ctx context.Context, gameSessionId int64,
) (*GameSession, error) {
	rows, _ := q.db.Query(
		ctx,
		"SELECT * FROM game_session WHERE game_session_id = $1;",
		gameSessionId,
	)
	return pgx.CollectExactlyOneRow(
		rows, pgx.RowToAddrOfStructByName[GameSession],
	)
}

type UpdateGameSessionParams struct {
	FlagCount *int
	Status    *int16
	EndedAt   *time.Time
	State     *[]byte
}

func (p UpdateGameSessionParams) setClause() (string, pgx.NamedArgs) {
	parts := make([]string, 0)
	args := pgx.NamedArgs{}

	if p.FlagCount != nil {
		parts = append(parts, "flag_count = @flag_count")
		args["flag_count"] = *p.FlagCount
	}
	if p.Status != nil {
		parts = append(parts, "status = @status")
		args["status"] = *p.Status
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

func (q Queries) UpdateGameSession(
	ctx context.Context, gameSessionId int64, params UpdateGameSessionParams,
) (*GameSession, error) {
	setClause, args := params.setClause()
	args["game_session_id"] = gameSessionId
	rows, _ := q.db.Query(
		ctx,
		"UPDATE game_session SET "+setClause+
			" WHERE game_session_id = @game_session_id RETURNING *;",
		args,
	)
	return pgx.CollectExactlyOneRow(
		rows, pgx.RowToAddrOfStructByName[GameSession],
	)
}

// SaveBoard refreshes the blob and the summary columns from the board after
// a move, stamping ended_at the first time the game reaches a final status.
func (q Queries) SaveBoard(
	ctx context.Context, session *GameSession, b *board.Board,
) (*GameSession, error) {
	state, err := b.Bytes()
	if err != nil {
		return nil, err
	}
	flagCount := b.FlagCount()
	status := int16(b.Status())
	params := UpdateGameSessionParams{
		FlagCount: &flagCount,
		Status:    &status,
		State:     &state,
	}
	if b.Status() != board.StatusPlaying && !session.EndedAt.Valid {
		endedAt := time.Now().UTC()
		params.EndedAt = &endedAt
	}
	return q.UpdateGameSession(ctx, session.GameSessionId, params)
}
