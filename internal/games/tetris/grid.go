// Package tetris implements the falling-block grid: piece projection and
// rotation, collision, locking, line clears and the per-tick state machine.
// It has no I/O; sessions load, tick, render and save it.
package tetris

import (
	"math/rand"
	"strings"
	"time"

	"github.com/vovakirdan/crowdtris/internal/vote"
)

// DefaultInterval is the presentation delay between ticks.
const DefaultInterval = 500 * time.Millisecond

// Grid owns the board, the piece arena and all move/lock/clear logic.
type Grid struct {
	width  int
	height int
	board  [][]Cell
	pieces []*Piece // every piece spawned since the last reset; the last one is active

	shapes []Shape
	rng    *rand.Rand

	// TickInterval is how long a driver waits between ticks. It has no effect
	// on the simulation.
	TickInterval time.Duration

	// Paused tells a driver to stop calling Tick.
	Paused bool
}

// Option configures a Grid.
type Option func(*Grid)

// WithSeed makes spawning deterministic.
func WithSeed(seed int64) Option {
	return func(g *Grid) {
		g.rng = rand.New(rand.NewSource(seed))
	}
}

// WithShapes replaces the shape set used by Reset.
func WithShapes(shapes []Shape) Option {
	return func(g *Grid) {
		if len(shapes) > 0 {
			g.shapes = shapes
		}
	}
}

// WithInterval sets the tick interval.
func WithInterval(d time.Duration) Option {
	return func(g *Grid) {
		if d > 0 {
			g.TickInterval = d
		}
	}
}

func newGrid(width, height int, opts ...Option) *Grid {
	g := &Grid{
		width:        width,
		height:       height,
		shapes:       DefaultShapes,
		TickInterval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g.board = make([][]Cell, height)
	for r := range g.board {
		g.board[r] = make([]Cell, width)
	}
	return g
}

// New creates a fresh grid with one piece waiting above the board.
func New(width, height int, opts ...Option) *Grid {
	g := newGrid(width, height, opts...)
	g.Reset()
	return g
}

// Width returns the board width in cells.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the board height in cells.
func (g *Grid) Height() int {
	return g.height
}

// Shapes returns the shape set used when spawning.
func (g *Grid) Shapes() []Shape {
	return g.shapes
}

// Pieces returns every piece spawned since the last reset, oldest first.
func (g *Grid) Pieces() []*Piece {
	return g.pieces
}

// Active returns the most recently spawned piece, or nil.
func (g *Grid) Active() *Piece {
	if len(g.pieces) == 0 {
		return nil
	}
	return g.pieces[len(g.pieces)-1]
}

// Cell returns the board content at (row, col). Out-of-bounds reads are Empty.
func (g *Grid) Cell(row, col int) Cell {
	if !g.IsWithinBounds(row, col) {
		return Empty
	}
	return g.board[row][col]
}

// Rows returns a copy of the board.
func (g *Grid) Rows() [][]Cell {
	out := make([][]Cell, g.height)
	for r := range g.board {
		out[r] = append([]Cell(nil), g.board[r]...)
	}
	return out
}

// Reset empties the board, drops all pieces and spawns a new one.
func (g *Grid) Reset() {
	g.pieces = nil
	for r := range g.board {
		for c := range g.board[r] {
			g.board[r][c] = Empty
		}
	}
	g.SpawnPiece(g.shapes)
}

// SpawnPiece adds a random piece just above the board. If the piece would
// overlap settled blocks the board is full and the grid is reset instead;
// SpawnPiece then returns false.
func (g *Grid) SpawnPiece(candidates []Shape) bool {
	if len(candidates) == 0 {
		candidates = g.shapes
	}
	p := NewPiece(candidates[g.rng.Intn(len(candidates))])
	p.Rotation = g.rng.Intn(4)

	_, w := p.Bounds()
	col := 0
	if g.width > w {
		col = g.rng.Intn(g.width - w + 1)
	}
	p.Position = Position{Row: -1, Col: col}

	if g.overlaps(p) {
		g.Reset()
		return false
	}
	g.pieces = append(g.pieces, p)
	return true
}

// overlaps reports whether any block of p sits on settled board content.
func (g *Grid) overlaps(p *Piece) bool {
	for _, cell := range p.Occupied() {
		if g.IsWithinBounds(cell.Row, cell.Col) && g.board[cell.Row][cell.Col] != Empty {
			return true
		}
	}
	return false
}

// IsWithinBounds reports whether (row, col) is on the board.
func (g *Grid) IsWithinBounds(row, col int) bool {
	return row >= 0 && row < g.height && col >= 0 && col < g.width
}

// Collides reports whether p would hit something if shifted by (dRow, dCol).
// A target cell already held by p itself never counts. Leaving the board
// through the sides or bottom collides; rising above row 0 does not.
func (g *Grid) Collides(p *Piece, dRow, dCol int) bool {
	proj := p.Project()
	for _, row := range proj {
		for _, cell := range row {
			if cell.Value == Empty {
				continue
			}
			r, c := cell.Row+dRow, cell.Col+dCol
			if holds(proj, p.Position, r, c) {
				continue
			}
			if c < 0 || c >= g.width || r >= g.height {
				return true
			}
			if r < 0 {
				continue
			}
			if g.board[r][c] != Empty {
				return true
			}
		}
	}
	return false
}

// ShouldLock reports whether p has landed: a block reached the bottom row, or
// a block with nothing of its own below it rests on settled content.
func (g *Grid) ShouldLock(p *Piece) bool {
	proj := p.Project()
	for _, row := range proj {
		for _, cell := range row {
			if cell.Value != Empty && cell.Row >= g.height-1 {
				return true
			}
		}
	}

	for r, row := range proj {
		for c, cell := range row {
			if cell.Value == Empty {
				continue
			}
			if r+1 < len(proj) && proj[r+1][c].Value != Empty {
				continue
			}
			below := cell.Row + 1
			if g.IsWithinBounds(below, cell.Col) && g.board[below][cell.Col] != Empty {
				return true
			}
		}
	}
	return false
}

// ClearPieceFromBoard erases p's on-board blocks.
func (g *Grid) ClearPieceFromBoard(p *Piece) {
	for _, cell := range p.Occupied() {
		if g.IsWithinBounds(cell.Row, cell.Col) {
			g.board[cell.Row][cell.Col] = Empty
		}
	}
}

// DrawPieceToBoard writes p's on-board blocks.
func (g *Grid) DrawPieceToBoard(p *Piece) {
	for _, cell := range p.Occupied() {
		if g.IsWithinBounds(cell.Row, cell.Col) {
			g.board[cell.Row][cell.Col] = cell.Value
		}
	}
}

// Move shifts p unless the move collides. Fixed pieces still accept the
// column delta but never move vertically. Returns whether the move happened.
func (g *Grid) Move(p *Piece, dRow, dCol int) bool {
	if g.Collides(p, dRow, dCol) {
		return false
	}
	g.ClearPieceFromBoard(p)
	p.Position.Col += dCol
	if !p.Fixed {
		p.Position.Row += dRow
	}
	g.DrawPieceToBoard(p)
	return true
}

// RowsToClear returns the full rows touched by p, in the order p first
// touches them. Row 0 is never eligible.
func (g *Grid) RowsToClear(p *Piece) []int {
	seen := make(map[int]bool)
	var rows []int
	for _, cell := range p.Occupied() {
		r := cell.Row
		if seen[r] {
			continue
		}
		seen[r] = true
		if r <= 0 || r >= g.height {
			continue
		}
		if g.rowFull(r) {
			rows = append(rows, r)
		}
	}
	return rows
}

func (g *Grid) rowFull(r int) bool {
	for _, cell := range g.board[r] {
		if cell == Empty {
			return false
		}
	}
	return true
}

// ClearRows removes each listed row in turn by shifting everything above it
// down one row. Rows are processed one after another, not simultaneously.
func (g *Grid) ClearRows(rows []int) {
	for _, row := range rows {
		if row <= 0 || row >= g.height {
			continue
		}
		for cur := row; cur > 0; cur-- {
			copy(g.board[cur], g.board[cur-1])
		}
		for c := range g.board[0] {
			g.board[0][c] = Empty
		}
	}
}

// TickResult describes what one Tick did.
type TickResult struct {
	Intent  vote.Intent
	Locked  bool  // the active piece became fixed
	Cleared []int // rows removed, in the order they were cleared
	Reset   bool  // the stack overflowed and the board restarted
	Spawned bool  // a new piece entered
}

// Tick advances the simulation by one step: lock check, gravity, the voted
// intent, then overflow or line clears for a piece that just locked, and
// finally a new piece once nothing is left to control.
func (g *Grid) Tick(candidates []Shape, intent vote.Intent) TickResult {
	res := TickResult{Intent: intent}

	for _, p := range g.pieces {
		if p.Fixed {
			continue
		}
		if g.ShouldLock(p) {
			p.Fixed = true
			res.Locked = true
		}

		g.Move(p, 1, 0)
		g.Apply(intent)

		if p.Fixed {
			if p.Top() <= 0 {
				g.Reset()
				res.Reset = true
				return res
			}
			rows := g.RowsToClear(p)
			g.ClearRows(rows)
			res.Cleared = append(res.Cleared, rows...)
		}
	}

	if g.allFixed() {
		if g.SpawnPiece(candidates) {
			res.Spawned = true
		} else {
			res.Reset = true
		}
	}
	return res
}

func (g *Grid) allFixed() bool {
	for _, p := range g.pieces {
		if !p.Fixed {
			return false
		}
	}
	return true
}

// Apply performs the move an intent asks for.
func (g *Grid) Apply(intent vote.Intent) {
	switch intent {
	case vote.Left:
		g.Left()
	case vote.Right:
		g.Right()
	case vote.TiltLeft:
		g.TiltLeft()
	case vote.SoftDrop:
		g.Down()
	}
}

// Left nudges the active piece one column left if it is not at the wall.
// Only the wall is checked; the piece may slide over settled blocks.
func (g *Grid) Left() {
	p := g.Active()
	if p == nil {
		return
	}
	if p.Position.Col > 0 {
		g.shift(p, -1)
	}
}

// Right nudges the active piece one column right if it is not at the wall.
// Only the wall is checked; the piece may slide over settled blocks.
func (g *Grid) Right() {
	p := g.Active()
	if p == nil {
		return
	}
	_, w := p.Bounds()
	if p.Position.Col+w-1 < g.width-1 {
		g.shift(p, 1)
	}
}

// shift moves p sideways without a collision check.
func (g *Grid) shift(p *Piece, dCol int) {
	g.ClearPieceFromBoard(p)
	p.Position.Col += dCol
	g.DrawPieceToBoard(p)
}

// Down hard-drops the active piece toward the bottom row.
func (g *Grid) Down() {
	p := g.Active()
	if p == nil {
		return
	}
	h, _ := p.Bounds()
	for y := p.Position.Row + h; y <= g.height-1; y++ {
		g.Move(p, 1, 0)
	}
}

// TiltLeft rotates every unlocked piece one step forward.
func (g *Grid) TiltLeft() {
	g.tilt(1)
}

// TiltRight rotates every unlocked piece one step back.
func (g *Grid) TiltRight() {
	g.tilt(-1)
}

// tilt rotates without consulting the board, then pushes the piece back
// inside the right and bottom edges.
func (g *Grid) tilt(delta int) {
	for _, p := range g.pieces {
		if p.Fixed {
			continue
		}
		g.ClearPieceFromBoard(p)
		p.Rotation += delta

		h, w := p.Bounds()
		if p.Position.Row+h >= g.height {
			p.Position.Row = g.height - h
		}
		if p.Position.Col+w >= g.width {
			p.Position.Col = g.width - w
		}
		if p.Position.Col < 0 {
			p.Position.Col = 0
		}

		g.DrawPieceToBoard(p)
	}
}

// RenderText draws the board as lines of glyphs, with empty cells shown as
// background.
func (g *Grid) RenderText(background Cell) string {
	var sb strings.Builder
	for r, row := range g.board {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for _, cell := range row {
			if cell == Empty {
				cell = background
			}
			sb.WriteString(string(cell))
		}
	}
	return sb.String()
}
