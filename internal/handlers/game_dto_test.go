package handlers

import (
	"encoding/json"
	"net/url"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ostapk/minefield-server/internal/board"
	"github.com/ostapk/minefield-server/internal/repository"
)

func TestParseNewGameDTO(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    NewGameDTO
		wantErr bool
	}{
		{
			name:  "ok",
			query: "rows=9&cols=9&mine_count=10",
			want:  NewGameDTO{Rows: 9, Cols: 9, MineCount: 10},
		},
		{
			name:  "extra keys ignored",
			query: "rows=9&cols=9&mine_count=10&foo=bar",
			want:  NewGameDTO{Rows: 9, Cols: 9, MineCount: 10},
		},
		{name: "missing mine_count", query: "rows=9&cols=9", wantErr: true},
		{name: "non-numeric", query: "rows=a&cols=9&mine_count=10", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			dto, err := ParseNewGameDTO(values)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, dto)
		})
	}
}

func TestParsePosition(t *testing.T) {
	values, err := url.ParseQuery("row=3&col=4")
	require.NoError(t, err)
	pos, err := ParsePosition(values)
	require.NoError(t, err)
	assert.Equal(t, PositionDTO{Row: 3, Col: 4}, pos)

	values, err = url.ParseQuery("row=3")
	require.NoError(t, err)
	_, err = ParsePosition(values)
	assert.Error(t, err)
}

func TestGameSessionDTO(t *testing.T) {
	b := board.New(2, 2, 0, nil)
	b.Reveal(0, 0) // 0 mines, so this wins and unveils

	started := time.UnixMilli(1700000000000).UTC()
	ended := started.Add(42 * time.Second)
	session := &repository.GameSession{
		GameSessionId: 17,
		StartedAt:     pgtype.Timestamptz{Time: started, Valid: true},
		EndedAt:       pgtype.Timestamptz{Time: ended, Valid: true},
	}

	dto := NewGameSessionDTO(session, b)
	assert.Equal(t, "17", dto.GameSessionId)
	assert.Equal(t, board.StatusWon, dto.Status)
	assert.Equal(t, started.UnixMilli(), dto.StartedAt)
	require.NotNil(t, dto.EndedAt)
	assert.Equal(t, ended.UnixMilli(), *dto.EndedAt)

	payload, err := json.Marshal(dto)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"status":"won"`)
	assert.Contains(t, string(payload), `"game_session_id":"17"`)
}
