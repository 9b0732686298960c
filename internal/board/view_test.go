package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewHidesMinesWhilePlaying(t *testing.T) {
	b := fixture(t, 3, 3, [][2]int{{0, 0}})
	require.True(t, b.Reveal(1, 1))
	require.True(t, b.CycleMark(0, 1))
	require.True(t, b.CycleMark(0, 2))
	require.True(t, b.CycleMark(0, 2)) // question

	g := b.View()
	assert.Equal(t, ViewUnknown, g[0], "unrevealed mine looks like any other cell")
	assert.Equal(t, ViewFlagged, g[1])
	assert.Equal(t, ViewQuestion, g[2])
	assert.Equal(t, CellView(1), g[4])
}

func TestViewAfterGameOver(t *testing.T) {
	lost := fixture(t, 3, 3, [][2]int{{0, 0}})
	require.True(t, lost.Reveal(0, 0))
	assert.Equal(t, ViewMineLost, lost.View()[0])

	won := fixture(t, 3, 3, [][2]int{{0, 0}})
	require.True(t, won.Reveal(2, 2))
	require.Equal(t, StatusWon, won.Status())
	g := won.View()
	assert.Equal(t, ViewMineWon, g[0])
	assert.Equal(t, CellView(1), g[4])
}

func TestGridViewToString(t *testing.T) {
	b := fixture(t, 3, 3, [][2]int{{0, 0}})
	require.True(t, b.Reveal(1, 1))

	out := b.View().ToString(b.Cols())
	assert.Equal(t, "      \n  1   \n      \n", out)
}
