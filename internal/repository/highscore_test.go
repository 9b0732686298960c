package repository

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestHighscoreFilterWhereClause(t *testing.T) {
	username := "joe"

	tests := []struct {
		name       string
		filter     HighscoreFilter
		wantClause string
		wantArgs   pgx.NamedArgs
	}{
		{
			name:       "empty",
			filter:     HighscoreFilter{},
			wantClause: "",
			wantArgs:   pgx.NamedArgs{},
		},
		{
			name:       "username only",
			filter:     HighscoreFilter{Username: &username},
			wantClause: "username = @username",
			wantArgs:   pgx.NamedArgs{"username": "joe"},
		},
		{
			name: "board params only",
			filter: HighscoreFilter{
				BoardParams: &BoardParams{Rows: 9, Cols: 9, MineCount: 10},
			},
			wantClause: "rows = @rows AND cols = @cols AND mine_count = @mineCount",
			wantArgs: pgx.NamedArgs{
				"rows": 9, "cols": 9, "mineCount": 10,
			},
		},
		{
			name: "both",
			filter: HighscoreFilter{
				Username:    &username,
				BoardParams: &BoardParams{Rows: 16, Cols: 30, MineCount: 99},
			},
			wantClause: "username = @username AND rows = @rows AND cols = @cols AND mine_count = @mineCount",
			wantArgs: pgx.NamedArgs{
				"username": "joe", "rows": 16, "cols": 30, "mineCount": 99,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, args := tt.filter.WhereClause()
			assert.Equal(t, tt.wantClause, clause)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestUpdateGameSessionSetClause(t *testing.T) {
	flagCount := 3
	status := int16(2)

	params := UpdateGameSessionParams{FlagCount: &flagCount, Status: &status}
	clause, args := params.setClause()
	assert.Equal(t, "flag_count = @flag_count, status = @status", clause)
	assert.Equal(t, pgx.NamedArgs{"flag_count": 3, "status": int16(2)}, args)

	empty, emptyArgs := UpdateGameSessionParams{}.setClause()
	assert.Equal(t, "", empty)
	assert.Empty(t, emptyArgs)
}
