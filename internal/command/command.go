// Package command implements the tiny text protocol shared by the batch
// endpoint and the websocket loop:
//
//	o r c // open the cell at row r, column c
//	f r c // cycle the mark on the cell at row r, column c
//	c r c // chord the cell at row r, column c
//	r     // forfeit, unveiling the board
//	g     // no-op, fetch current state
//
// Commands are interpreted in order; a malformed command aborts the batch.
package command

import (
	"errors"
	"iter"
	"strconv"
	"strings"

	"github.com/ostapk/minefield-server/internal/board"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadArgs        = errors.New("invalid command arguments")
)

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	"g": 0,
	"o": 2,
	"f": 2,
	"c": 2,
	"r": 0,
}

func parseRowCol(args []string) (row int, col int, err error) {
	if row, err = strconv.Atoi(args[0]); err != nil {
		return 0, 0, ErrBadArgs
	}
	if col, err = strconv.Atoi(args[1]); err != nil {
		return 0, 0, ErrBadArgs
	}
	return row, col, nil
}

// Execute runs a single command against the board. Coordinates outside the
// grid are a protocol error here, even though the engine itself would just
// ignore them.
func Execute(b *board.Board, c string) error {
	parts := strings.Split(c, " ")
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return ErrUnknownCommand
	}
	if nargs != len(parts)-1 {
		return ErrBadArgs
	}
	switch parts[0] {
	case "g":
		return nil
	case "r":
		b.Forfeit()
		return nil
	}

	row, col, err := parseRowCol(parts[1:])
	if err != nil {
		return err
	}
	if _, ok := b.CellAt(row, col); !ok {
		return ErrBadArgs
	}

	switch parts[0] {
	case "o":
		b.Reveal(row, col)
	case "f":
		b.CycleMark(row, col)
	case "c":
		b.Chord(row, col)
	}
	return nil
}

// ByPiece iterates over the separated pieces of s without allocating the
// whole split.
func ByPiece(s string, sep string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, sep)
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}
