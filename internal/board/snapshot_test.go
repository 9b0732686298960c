package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	b := fixture(t, 5, 5, [][2]int{{0, 1}, {1, 0}, {1, 1}})
	require.True(t, b.Reveal(3, 3))
	require.True(t, b.CycleMark(0, 1))

	restored, err := Restore(b.Snapshot(), testRand())
	require.NoError(t, err)

	assert.Equal(t, b.Status(), restored.Status())
	assert.Equal(t, b.FlagCount(), restored.FlagCount())
	assert.Equal(t, b.MineCount(), restored.MineCount())
	assert.Equal(t, b.MinesPlaced(), restored.MinesPlaced())
	for r := range b.Rows() {
		for c := range b.Cols() {
			want, _ := b.CellAt(r, c)
			got, ok := restored.CellAt(r, c)
			require.True(t, ok)
			assert.Equal(t, want, got, "cell %d:%d", r, c)
		}
	}
}

func TestRestoredBoardPlaysOn(t *testing.T) {
	b := fixture(t, 5, 5, [][2]int{{0, 1}, {1, 0}, {1, 1}})
	require.True(t, b.Reveal(3, 3))

	restored, err := Restore(b.Snapshot(), testRand())
	require.NoError(t, err)

	require.True(t, restored.CycleMark(0, 1))
	require.True(t, restored.CycleMark(1, 0))
	require.True(t, restored.CycleMark(1, 1))
	assert.Equal(t, StatusWon, restored.Status())
}

func TestRestorePreFirstClickStillPlacesLazily(t *testing.T) {
	b := New(9, 9, 10, testRand())

	restored, err := Restore(b.Snapshot(), testRand())
	require.NoError(t, err)
	require.False(t, restored.MinesPlaced())

	require.True(t, restored.Reveal(4, 4))
	assert.True(t, restored.MinesPlaced())
	assert.Equal(t, 10, restored.MineCount())

	cell, _ := restored.CellAt(4, 4)
	assert.False(t, cell.Mine)
}

func TestGobRoundTrip(t *testing.T) {
	b := fixture(t, 4, 4, [][2]int{{0, 0}})
	require.True(t, b.Reveal(3, 3))

	data, err := b.Bytes()
	require.NoError(t, err)

	restored, err := ParseBoardFromBytes(data, testRand())
	require.NoError(t, err)
	assert.Equal(t, b.Snapshot(), restored.Snapshot())
}

func TestParseBoardFromGarbage(t *testing.T) {
	_, err := ParseBoardFromBytes([]byte("not a gob stream"), testRand())
	assert.ErrorIs(t, err, ErrInvalidSnapshot)
}

func TestTextRoundTrip(t *testing.T) {
	b := fixture(t, 3, 3, [][2]int{{0, 0}})
	require.True(t, b.CycleMark(0, 0))

	text, err := b.Snapshot().Text()
	require.NoError(t, err)

	parsed, err := ParseSnapshotText(text)
	require.NoError(t, err)
	assert.Equal(t, b.Snapshot(), parsed)

	_, err = ParseSnapshotText("{{{ not yaml")
	assert.ErrorIs(t, err, ErrInvalidSnapshot)
}

func TestRestoreRejectsMalformedSnapshots(t *testing.T) {
	base := func() Snapshot {
		return fixture(t, 3, 3, [][2]int{{0, 0}}).Snapshot()
	}

	tests := []struct {
		name   string
		mangle func(*Snapshot)
	}{
		{"zero rows", func(s *Snapshot) { s.Rows = 0 }},
		{"row count mismatch", func(s *Snapshot) { s.Grid = s.Grid[:2] }},
		{"col count mismatch", func(s *Snapshot) { s.Grid[1] = s.Grid[1][:1] }},
		{"negative flag count", func(s *Snapshot) { s.FlagCount = -1 }},
		{"unknown status", func(s *Snapshot) { s.Status = GameStatus(42) }},
		{"unknown mark", func(s *Snapshot) { s.Grid[0][1].Mark = Mark(9) }},
		{"adjacency out of range", func(s *Snapshot) { s.Grid[0][1].Adjacent = 9 }},
		{"revealed cell with mark", func(s *Snapshot) {
			s.Grid[0][1].Revealed = true
			s.Grid[0][1].Mark = MarkFlagged
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base()
			tt.mangle(&s)
			_, err := Restore(s, testRand())
			assert.ErrorIs(t, err, ErrInvalidSnapshot)
		})
	}
}
