package tetris

import "fmt"

// Snapshot is the persisted state of a grid: every piece (locked ones
// included) and the board. Board dimensions are taken from the board itself.
type Snapshot struct {
	Pieces []PieceRecord `json:"pieces"`
	Board  [][]Cell      `json:"board"`
}

// Snapshot captures the grid for persistence. Empty board cells are stored
// as DarkBackground so saved files read as the rendered board.
func (g *Grid) Snapshot() Snapshot {
	pieces := make([]PieceRecord, len(g.pieces))
	for i, p := range g.pieces {
		pieces[i] = p.Record()
	}

	board := make([][]Cell, g.height)
	for r, row := range g.board {
		board[r] = make([]Cell, len(row))
		for c, cell := range row {
			if cell == Empty {
				cell = DarkBackground
			}
			board[r][c] = cell
		}
	}
	return Snapshot{Pieces: pieces, Board: board}
}

// FromSnapshot rebuilds a grid exactly as it was saved. Width and height come
// from the board rows; the board must be non-empty and rectangular.
func FromSnapshot(s Snapshot, opts ...Option) (*Grid, error) {
	height := len(s.Board)
	if height == 0 || len(s.Board[0]) == 0 {
		return nil, fmt.Errorf("%w: empty board", ErrInvalidState)
	}
	width := len(s.Board[0])

	g := newGrid(width, height, opts...)
	for r, row := range s.Board {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrInvalidState, r, len(row), width)
		}
		for c, cell := range row {
			if cell == DarkBackground || cell == LightBackground {
				cell = Empty
			}
			g.board[r][c] = cell
		}
	}

	g.pieces = make([]*Piece, 0, len(s.Pieces))
	for i, rec := range s.Pieces {
		p, err := FromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("piece %d: %w", i, err)
		}
		g.pieces = append(g.pieces, p)
	}
	return g, nil
}
