package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
)

type Highscore struct {
	GameSessionId int64   `json:"game_session_id"`
	Username      *string `json:"username"`
	Rows          int     `json:"rows"`
	Cols          int     `json:"cols"`
	MineCount     int     `json:"mine_count"`
	PlaytimeMs    float64 `json:"playtime_ms"`
}

type BoardParams struct {
	Rows      int
	Cols      int
	MineCount int
}

type HighscoreFilter struct {
	Username    *string
	BoardParams *BoardParams
}

func (f HighscoreFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.Username != nil {
		clauses = append(clauses, "username = @username")
		args["username"] = *f.Username
	}
	if f.BoardParams != nil {
		clauses = append(
			clauses,
			"rows = @rows",
			"cols = @cols",
			"mine_count = @mineCount",
		)
		args["rows"] = f.BoardParams.Rows
		args["cols"] = f.BoardParams.Cols
		args["mineCount"] = f.BoardParams.MineCount
	}
	return strings.Join(clauses, " AND "), args
}

// GetHighscores lists won games ordered by playtime. Status 1 is the won
// state of board.GameStatus.
func (q Queries) GetHighscores(
	ctx context.Context, filter HighscoreFilter,
) ([]Highscore, error) {
	query := `
	SELECT
		game_session_id,
		username,
		rows,
		cols,
		mine_count,
		(
			extract('epoch' from ended_at) -
			extract('epoch' from started_at)
		) * 1000 playtime_ms
	FROM game_session
		LEFT OUTER JOIN player using (player_id)
	WHERE
		status = 1
		AND ended_at IS NOT NULL
	`

	whereClause, args := filter.WhereClause()
	if whereClause != "" {
		query += " AND " + whereClause
	}

	query += " ORDER BY playtime_ms;"

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Highscore])
}
