package tetris

// Cell is a single board or shape cell: a colored block glyph, or Empty.
type Cell string

// Empty marks a cell with no block in it.
const Empty Cell = ""

// Shape is a rectangular template of cells. Shapes are never mutated after
// construction and are shared by every piece (and rotation) that uses them.
type Shape [][]Cell

// Rows returns the number of rows in the shape.
func (s Shape) Rows() int {
	return len(s)
}

// Cols returns the number of columns in the shape.
func (s Shape) Cols() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Position is a (row, col) offset on the board. Row may be negative while a
// piece is still entering from above the visible board.
type Position struct {
	Row int
	Col int
}

// Projected is one cell of a piece in absolute board coordinates.
type Projected struct {
	Row   int
	Col   int
	Value Cell
}

// Piece is a placed instance of a shape.
type Piece struct {
	Shape    Shape
	Position Position
	Rotation int // any integer; only |Rotation| mod 4 is meaningful
	Fixed    bool
}

// NewPiece creates an unlocked piece at the default spawn position.
func NewPiece(shape Shape) *Piece {
	return &Piece{
		Shape:    shape,
		Position: Position{Row: -1, Col: 0},
	}
}

// NormalizedRotation returns the rotation step in [0, 3].
func (p *Piece) NormalizedRotation() int {
	r := p.Rotation
	if r < 0 {
		r = -r
	}
	return r % 4
}

// Project maps every shape cell to absolute board coordinates after rotation.
// The result is the rotated bounding box; empty cells carry Empty.
//
// Rotations 1 and 3 swap the box dimensions. For a shape with h rows and w
// columns, rotation 1 reads shape[r][w-1-c] into out[c][r] and rotation 3
// reads shape[h-1-r][c] into out[c][r]; rotation 2 reverses both axes.
func (p *Piece) Project() [][]Projected {
	h, w := p.Shape.Rows(), p.Shape.Cols()
	row0, col0 := p.Position.Row, p.Position.Col

	switch p.NormalizedRotation() {
	case 1:
		out := allocProjection(w, h)
		for c := 0; c < w; c++ {
			for r := 0; r < h; r++ {
				out[c][r] = Projected{Row: row0 + c, Col: col0 + r, Value: p.Shape[r][w-1-c]}
			}
		}
		return out
	case 2:
		out := allocProjection(h, w)
		for r := 0; r < h; r++ {
			for c := 0; c < w; c++ {
				out[r][c] = Projected{Row: row0 + r, Col: col0 + c, Value: p.Shape[h-1-r][w-1-c]}
			}
		}
		return out
	case 3:
		out := allocProjection(w, h)
		for c := 0; c < w; c++ {
			for r := 0; r < h; r++ {
				out[c][r] = Projected{Row: row0 + c, Col: col0 + r, Value: p.Shape[h-1-r][c]}
			}
		}
		return out
	default:
		out := allocProjection(h, w)
		for r := 0; r < h; r++ {
			for c := 0; c < w; c++ {
				out[r][c] = Projected{Row: row0 + r, Col: col0 + c, Value: p.Shape[r][c]}
			}
		}
		return out
	}
}

func allocProjection(rows, cols int) [][]Projected {
	out := make([][]Projected, rows)
	for i := range out {
		out[i] = make([]Projected, cols)
	}
	return out
}

// Bounds returns the height and width of the rotated bounding box.
func (p *Piece) Bounds() (height, width int) {
	if p.NormalizedRotation()%2 == 1 {
		return p.Shape.Cols(), p.Shape.Rows()
	}
	return p.Shape.Rows(), p.Shape.Cols()
}

// Occupied returns the non-empty projected cells in row-major order.
func (p *Piece) Occupied() []Projected {
	var cells []Projected
	for _, row := range p.Project() {
		for _, cell := range row {
			if cell.Value != Empty {
				cells = append(cells, cell)
			}
		}
	}
	return cells
}

// Top returns the smallest row index of any occupied cell, or the piece's row
// if the shape has no occupied cells.
func (p *Piece) Top() int {
	top := p.Position.Row
	first := true
	for _, cell := range p.Occupied() {
		if first || cell.Row < top {
			top = cell.Row
			first = false
		}
	}
	return top
}

// holds reports whether a projection made at origin has a block at the given
// absolute coordinate.
func holds(proj [][]Projected, origin Position, row, col int) bool {
	r := row - origin.Row
	c := col - origin.Col
	if r < 0 || r >= len(proj) || c < 0 || c >= len(proj[r]) {
		return false
	}
	return proj[r][c].Value != Empty
}

// PieceRecord is the persisted form of a piece. Empty shape cells are null.
type PieceRecord struct {
	Shape    [][]*string `json:"shape"`
	Position [2]int      `json:"position"`
	Rotation int         `json:"rotation"`
	Fixed    bool        `json:"fixed"`
}

// Record converts the piece into its persisted form.
func (p *Piece) Record() PieceRecord {
	shape := make([][]*string, len(p.Shape))
	for r, row := range p.Shape {
		shape[r] = make([]*string, len(row))
		for c, cell := range row {
			if cell == Empty {
				continue
			}
			v := string(cell)
			shape[r][c] = &v
		}
	}
	return PieceRecord{
		Shape:    shape,
		Position: [2]int{p.Position.Row, p.Position.Col},
		Rotation: p.Rotation,
		Fixed:    p.Fixed,
	}
}

// FromRecord rebuilds a piece from its persisted form.
func FromRecord(rec PieceRecord) (*Piece, error) {
	shape := make(Shape, len(rec.Shape))
	for r, row := range rec.Shape {
		if r > 0 && len(row) != len(rec.Shape[0]) {
			return nil, ErrInvalidState
		}
		shape[r] = make([]Cell, len(row))
		for c, v := range row {
			if v != nil {
				shape[r][c] = Cell(*v)
			}
		}
	}
	if shape.Rows() == 0 || shape.Cols() == 0 {
		return nil, ErrInvalidState
	}
	return &Piece{
		Shape:    shape,
		Position: Position{Row: rec.Position[0], Col: rec.Position[1]},
		Rotation: rec.Rotation,
		Fixed:    rec.Fixed,
	}, nil
}
