package board

import (
	"hash/maphash"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

// Log may be swapped for a configured instance by the embedding application.
var Log = logrus.New()

// Mark is the player's annotation on an unrevealed cell. It cycles
// None -> Flagged -> Questioned -> None.
type Mark uint8

const (
	MarkNone Mark = iota
	MarkFlagged
	MarkQuestioned
)

// GameStatus transitions are one-way: once a board is Won or Lost no
// operation mutates it again.
type GameStatus uint8

const (
	StatusPlaying GameStatus = iota
	StatusWon
	StatusLost
)

func (s GameStatus) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	}
	return "unknown"
}

// [GameStatus] implements [json.Marshaler]
func (s GameStatus) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

func (s *GameStatus) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"playing"`:
		*s = StatusPlaying
	case `"won"`:
		*s = StatusWon
	case `"lost"`:
		*s = StatusLost
	default:
		return ErrInvalidSnapshot
	}
	return nil
}

type Cell struct {
	Row      int
	Col      int
	Mine     bool
	Revealed bool
	Mark     Mark
	Adjacent int // meaningless when Mine is set
}

// Board holds the full game aggregate: the cell grid, the status machine and
// the running flag count. It is not safe for concurrent use; the caller owns
// serialization of access.
type Board struct {
	rows, cols  int
	mineCount   int
	flagCount   int
	minesPlaced bool
	status      GameStatus
	cells       []Cell
	rnd         *rand.Rand
}

// NewRand seeds a generator the same way for every process start without
// reaching for crypto/rand.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

// New creates an empty board in StatusPlaying. No mines exist until the
// first Reveal call places them. A nil rnd gets a fresh generator.
func New(rows, cols, mineCount int, rnd *rand.Rand) *Board {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	if mineCount < 0 {
		mineCount = 0
	}
	if rnd == nil {
		rnd = NewRand()
	}
	b := &Board{
		rows:      rows,
		cols:      cols,
		mineCount: mineCount,
		rnd:       rnd,
		cells:     make([]Cell, rows*cols),
	}
	for i := range b.cells {
		b.cells[i].Row = i / cols
		b.cells[i].Col = i % cols
	}
	return b
}

func (b *Board) Rows() int          { return b.rows }
func (b *Board) Cols() int          { return b.cols }
func (b *Board) MineCount() int     { return b.mineCount }
func (b *Board) FlagCount() int     { return b.flagCount }
func (b *Board) Status() GameStatus { return b.status }
func (b *Board) MinesPlaced() bool  { return b.minesPlaced }

func (b *Board) index(row, col int) int {
	return row*b.cols + col
}

func (b *Board) inBounds(row, col int) bool {
	return 0 <= row && row < b.rows && 0 <= col && col < b.cols
}

// CellAt returns a copy of the cell, or ok=false when the coordinates are
// outside the grid.
func (b *Board) CellAt(row, col int) (Cell, bool) {
	if !b.inBounds(row, col) {
		return Cell{}, false
	}
	return b.cells[b.index(row, col)], true
}

func (b *Board) forEachNeighbor(row, col int, fn func(*Cell)) {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if b.inBounds(row+dr, col+dc) {
				fn(&b.cells[b.index(row+dr, col+dc)])
			}
		}
	}
}

func absDiff(x, y int) int {
	if x > y {
		return x - y
	}
	return y - x
}

// placeMines plants the mines by rejection sampling, skipping the 3x3 block
// around the first-revealed cell so the first click always opens safely.
// The requested count is clamped to rows*cols-9, which leaves the sampling
// loop enough eligible cells to always terminate.
func (b *Board) placeMines(safeRow, safeCol int) {
	limit := b.rows*b.cols - 9
	if limit < 0 {
		limit = 0
	}
	if b.mineCount > limit {
		b.mineCount = limit
	}

	for placed := 0; placed < b.mineCount; {
		i := b.rnd.IntN(len(b.cells))
		cell := &b.cells[i]
		if cell.Mine {
			continue
		}
		if absDiff(cell.Row, safeRow) <= 1 && absDiff(cell.Col, safeCol) <= 1 {
			continue
		}
		cell.Mine = true
		placed++
	}

	for i := range b.cells {
		cell := &b.cells[i]
		if cell.Mine {
			continue
		}
		n := 0
		b.forEachNeighbor(cell.Row, cell.Col, func(nb *Cell) {
			if nb.Mine {
				n++
			}
		})
		cell.Adjacent = n
	}

	b.minesPlaced = true

	Log.WithFields(logrus.Fields{
		"rows":  b.rows,
		"cols":  b.cols,
		"mines": b.mineCount,
	}).Debug("mines placed")
}
