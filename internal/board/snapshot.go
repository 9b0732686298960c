package board

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"math/rand/v2"

	"gopkg.in/yaml.v2"
)

// ErrInvalidSnapshot marks a snapshot the engine refuses to restore. Callers
// treating a snapshot as a saved game should discard it on this error.
var ErrInvalidSnapshot = errors.New("invalid board snapshot")

type CellSnapshot struct {
	Mine     bool `json:"mine" yaml:"mine"`
	Revealed bool `json:"revealed" yaml:"revealed"`
	Mark     Mark `json:"mark" yaml:"mark"`
	Adjacent int  `json:"adjacent" yaml:"adjacent"`
}

// Snapshot is the plain-data form of a board: primitives and nested arrays
// only, so it survives any structured text store. Row and column indices are
// implied by grid position.
type Snapshot struct {
	Rows        int              `json:"rows" yaml:"rows"`
	Cols        int              `json:"cols" yaml:"cols"`
	MineCount   int              `json:"mine_count" yaml:"mine_count"`
	MinesPlaced bool             `json:"mines_placed" yaml:"mines_placed"`
	FlagCount   int              `json:"flag_count" yaml:"flag_count"`
	Status      GameStatus       `json:"status" yaml:"status"`
	Grid        [][]CellSnapshot `json:"grid" yaml:"grid"`
}

func (b *Board) Snapshot() Snapshot {
	grid := make([][]CellSnapshot, b.rows)
	for r := range grid {
		grid[r] = make([]CellSnapshot, b.cols)
		for c := range grid[r] {
			cell := b.cells[b.index(r, c)]
			grid[r][c] = CellSnapshot{
				Mine:     cell.Mine,
				Revealed: cell.Revealed,
				Mark:     cell.Mark,
				Adjacent: cell.Adjacent,
			}
		}
	}
	return Snapshot{
		Rows:        b.rows,
		Cols:        b.cols,
		MineCount:   b.mineCount,
		MinesPlaced: b.minesPlaced,
		FlagCount:   b.flagCount,
		Status:      b.status,
		Grid:        grid,
	}
}

func (s Snapshot) validate() error {
	if s.Rows < 1 || s.Cols < 1 {
		return fmt.Errorf("%w: %dx%d grid", ErrInvalidSnapshot, s.Rows, s.Cols)
	}
	if s.MineCount < 0 || s.FlagCount < 0 {
		return fmt.Errorf("%w: negative counters", ErrInvalidSnapshot)
	}
	if s.Status > StatusLost {
		return fmt.Errorf("%w: unknown status %d", ErrInvalidSnapshot, s.Status)
	}
	if len(s.Grid) != s.Rows {
		return fmt.Errorf("%w: declared %d rows, grid has %d",
			ErrInvalidSnapshot, s.Rows, len(s.Grid))
	}
	for r, row := range s.Grid {
		if len(row) != s.Cols {
			return fmt.Errorf("%w: declared %d cols, row %d has %d",
				ErrInvalidSnapshot, s.Cols, r, len(row))
		}
		for c, cell := range row {
			if cell.Mark > MarkQuestioned {
				return fmt.Errorf("%w: unknown mark %d at %d:%d",
					ErrInvalidSnapshot, cell.Mark, r, c)
			}
			if cell.Adjacent < 0 || cell.Adjacent > 8 {
				return fmt.Errorf("%w: adjacency %d at %d:%d",
					ErrInvalidSnapshot, cell.Adjacent, r, c)
			}
			if cell.Revealed && cell.Mark != MarkNone {
				return fmt.Errorf("%w: revealed cell %d:%d still marked",
					ErrInvalidSnapshot, r, c)
			}
		}
	}
	return nil
}

// Restore builds an independent board from a snapshot. The restored board
// behaves exactly as the original did at snapshot time; in particular a
// pre-first-click snapshot still places mines lazily. A nil rnd gets a
// fresh generator.
func Restore(s Snapshot, rnd *rand.Rand) (*Board, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	b := New(s.Rows, s.Cols, s.MineCount, rnd)
	b.minesPlaced = s.MinesPlaced
	b.flagCount = s.FlagCount
	b.status = s.Status
	for r, row := range s.Grid {
		for c, cs := range row {
			cell := &b.cells[b.index(r, c)]
			cell.Mine = cs.Mine
			cell.Revealed = cs.Revealed
			cell.Mark = cs.Mark
			cell.Adjacent = cs.Adjacent
		}
	}
	return b, nil
}

// Bytes gob-encodes the board's snapshot for blob storage.
func (b *Board) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(b.Snapshot()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseBoardFromBytes restores a board from its gob-encoded snapshot.
func ParseBoardFromBytes(data []byte, rnd *rand.Rand) (*Board, error) {
	var s Snapshot
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSnapshot, err)
	}
	return Restore(s, rnd)
}

// Text renders the snapshot for a string-valued store.
func (s Snapshot) Text() (string, error) {
	out, err := yaml.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// ParseSnapshotText is the inverse of [Snapshot.Text]. The result still has
// to pass through [Restore] to become a board.
func ParseSnapshotText(in string) (Snapshot, error) {
	var s Snapshot
	if err := yaml.Unmarshal([]byte(in), &s); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrInvalidSnapshot, err)
	}
	return s, nil
}
