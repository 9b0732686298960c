package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ostapk/minefield-server/internal/board"
)

func TestExecute(t *testing.T) {
	tests := []struct {
		name    string
		cmd     string
		wantErr error
	}{
		{"get state", "g", nil},
		{"open", "o 0 0", nil},
		{"flag", "f 1 1", nil},
		{"chord", "c 0 0", nil},
		{"forfeit", "r", nil},
		{"unknown", "x 1 1", ErrUnknownCommand},
		{"missing args", "o 1", ErrBadArgs},
		{"extra args", "r 1 1", ErrBadArgs},
		{"non-numeric", "o one two", ErrBadArgs},
		{"out of bounds", "o 9 9", ErrBadArgs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := board.New(3, 3, 0, nil)
			err := Execute(b, tt.cmd)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExecuteSequence(t *testing.T) {
	b := board.New(3, 3, 0, nil)

	require.NoError(t, Execute(b, "f 0 0"))
	assert.Equal(t, 1, b.FlagCount())

	require.NoError(t, Execute(b, "f 0 0")) // question
	require.NoError(t, Execute(b, "f 0 0")) // back to unmarked
	assert.Equal(t, 0, b.FlagCount())

	require.NoError(t, Execute(b, "o 1 1"))
	assert.Equal(t, board.StatusWon, b.Status(), "zero mines, one open wins")
}

func TestExecuteForfeit(t *testing.T) {
	b := board.New(3, 3, 2, nil)
	require.NoError(t, Execute(b, "r"))
	assert.Equal(t, board.StatusLost, b.Status())
}

func TestByPiece(t *testing.T) {
	testCases := []struct {
		input string
		sep   string
		array []string
	}{
		{"a b c", " ", []string{"a", "b", "c"}},
		{"foo\nbar\nbaz\n\nbazz", "\n", []string{"foo", "bar", "baz", "", "bazz"}},
	}
	for _, test := range testCases {
		for i, p := range ByPiece(test.input, test.sep) {
			require.Less(t, i, len(test.array))
			assert.Equal(t, test.array[i], p)
		}
	}
}
