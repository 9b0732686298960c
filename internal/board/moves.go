package board

import "github.com/gammazero/deque"

// Reveal opens a cell. It reports whether anything changed; finished games,
// out-of-bounds coordinates, already-revealed cells and flagged cells are
// all no-ops. The first successful call places the mines, using this cell
// as the safe center.
func (b *Board) Reveal(row, col int) bool {
	if b.status != StatusPlaying || !b.inBounds(row, col) {
		return false
	}
	cell := &b.cells[b.index(row, col)]
	if cell.Revealed || cell.Mark == MarkFlagged {
		return false
	}

	if !b.minesPlaced {
		b.placeMines(row, col)
	}

	if cell.Mine {
		cell.Revealed = true
		cell.Mark = MarkNone
		b.status = StatusLost
		for i := range b.cells {
			if b.cells[i].Mine {
				b.cells[i].Revealed = true
				b.cells[i].Mark = MarkNone
			}
		}
		return true
	}

	// Iterative flood fill. A zero-adjacency cell never borders a mine, so
	// nothing queued here can explode; the queue is bounded by the grid size
	// because a cell is only queued while unrevealed.
	var todo deque.Deque[int]
	todo.PushBack(b.index(row, col))
	for todo.Len() > 0 {
		c := &b.cells[todo.PopFront()]
		if c.Revealed || c.Mark == MarkFlagged {
			continue
		}
		c.Revealed = true
		c.Mark = MarkNone
		if c.Adjacent == 0 {
			b.forEachNeighbor(c.Row, c.Col, func(nb *Cell) {
				if !nb.Revealed && nb.Mark != MarkFlagged {
					todo.PushBack(b.index(nb.Row, nb.Col))
				}
			})
		}
	}

	b.checkWin()
	return true
}

// CycleMark advances an unrevealed cell through
// None -> Flagged -> Questioned -> None. Flagging the last mine can win the
// game, so win conditions are evaluated after every change.
func (b *Board) CycleMark(row, col int) bool {
	if b.status != StatusPlaying || !b.inBounds(row, col) {
		return false
	}
	cell := &b.cells[b.index(row, col)]
	if cell.Revealed {
		return false
	}
	switch cell.Mark {
	case MarkNone:
		cell.Mark = MarkFlagged
		b.flagCount++
	case MarkFlagged:
		cell.Mark = MarkQuestioned
		b.flagCount--
	case MarkQuestioned:
		cell.Mark = MarkNone
	}
	b.checkWin()
	return true
}

// Chord opens every unflagged, unrevealed neighbor of a revealed numbered
// cell, but only when the flagged-neighbor count matches the cell's number.
// If the player flagged the wrong cells this opens a mine and loses the
// game; that risk is the point of the move.
func (b *Board) Chord(row, col int) bool {
	if b.status != StatusPlaying || !b.inBounds(row, col) {
		return false
	}
	cell := &b.cells[b.index(row, col)]
	if !cell.Revealed || cell.Adjacent == 0 {
		return false
	}

	flagged := 0
	b.forEachNeighbor(row, col, func(nb *Cell) {
		if nb.Mark == MarkFlagged {
			flagged++
		}
	})
	if flagged != cell.Adjacent {
		return false
	}

	b.forEachNeighbor(row, col, func(nb *Cell) {
		if !nb.Revealed && nb.Mark != MarkFlagged {
			b.Reveal(nb.Row, nb.Col)
		}
	})
	return true
}

// Forfeit concedes an in-progress game: the board transitions to StatusLost
// and every cell is unveiled.
func (b *Board) Forfeit() bool {
	if b.status != StatusPlaying {
		return false
	}
	b.status = StatusLost
	b.unveil()
	return true
}

// checkWin applies the two independent win conditions: every safe cell
// revealed, or every mine flagged with no flags to spare. The flag-count
// equality plus "all mines flagged" together force every flag onto a mine,
// so safe cells need no separate scan. Nothing can be won before the first
// reveal places the mines.
func (b *Board) checkWin() {
	if b.status != StatusPlaying || !b.minesPlaced {
		return
	}

	unrevealedSafe := 0
	minesFlagged := true
	for i := range b.cells {
		c := &b.cells[i]
		if !c.Mine && !c.Revealed {
			unrevealedSafe++
		}
		if c.Mine && c.Mark != MarkFlagged {
			minesFlagged = false
		}
	}

	if unrevealedSafe == 0 || (minesFlagged && b.flagCount == b.mineCount) {
		b.status = StatusWon
		b.unveil()
	}
}

// unveil opens the whole grid. Revealing clears marks; flagCount keeps its
// final in-play value so the remaining-mine display stays meaningful after
// the game ends.
func (b *Board) unveil() {
	for i := range b.cells {
		b.cells[i].Revealed = true
		b.cells[i].Mark = MarkNone
	}
}
