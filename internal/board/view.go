package board

import (
	"fmt"
	"strconv"
	"strings"
)

// CellView is the one-number-per-cell projection handed to rendering layers.
// It deliberately says nothing about unrevealed mines while the game is
// still on.
type CellView int8

const (
	ViewQuestion CellView = -3
	ViewUnknown  CellView = -2
	ViewFlagged  CellView = -1
	// 0-8 for open cells with the given neighbor mine count
	ViewMineWon  CellView = 64 // mine on a won board; render as correctly flagged
	ViewMineLost CellView = 65 // mine on a lost board; render as exploded
)

func (v CellView) String() string {
	switch {
	case v == ViewQuestion:
		return "?"
	case v == ViewUnknown:
		return " "
	case v == ViewFlagged:
		return "*"
	case 0 <= v && v <= 8:
		return strconv.Itoa(int(v))
	default:
		return "!"
	}
}

type GridView []CellView

func (g GridView) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			i := y*width + x
			if i >= len(g) {
				break
			}
			fmt.Fprint(&b, g[i].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}

// View projects the board row-major into player knowledge.
func (b *Board) View() GridView {
	g := make(GridView, len(b.cells))
	for i := range b.cells {
		cell := &b.cells[i]
		switch {
		case !cell.Revealed && cell.Mark == MarkFlagged:
			g[i] = ViewFlagged
		case !cell.Revealed && cell.Mark == MarkQuestioned:
			g[i] = ViewQuestion
		case !cell.Revealed:
			g[i] = ViewUnknown
		case cell.Mine && b.status == StatusWon:
			g[i] = ViewMineWon
		case cell.Mine:
			g[i] = ViewMineLost
		default:
			g[i] = CellView(cell.Adjacent)
		}
	}
	return g
}
