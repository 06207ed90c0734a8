package game

import (
	"slices"
	"strings"
)

// Shape is a piece's bounding box as rows of columns; true marks a filled
// cell. Shapes are treated as immutable: rotation builds a new one.
type Shape [][]bool

// ParseShape builds a Shape from rows drawn with '#' for filled cells and
// any other byte for empty ones.
func ParseShape(rows ...string) Shape {
	shape := make(Shape, len(rows))
	for r, row := range rows {
		shape[r] = make([]bool, len(row))
		for c := 0; c < len(row); c++ {
			shape[r][c] = row[c] == '#'
		}
	}
	return shape
}

// Width returns the number of columns in the bounding box.
func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Height returns the number of rows in the bounding box.
func (s Shape) Height() int {
	return len(s)
}

// Filled calls fn with the column and row of every filled cell, row by row.
func (s Shape) Filled(fn func(col, row int)) {
	for r, row := range s {
		for c, filled := range row {
			if filled {
				fn(c, r)
			}
		}
	}
}

// FilledCount returns the number of filled cells.
func (s Shape) FilledCount() int {
	n := 0
	s.Filled(func(int, int) { n++ })
	return n
}

// Equal reports whether both shapes have the same size and filled pattern.
func (s Shape) Equal(other Shape) bool {
	if s.Height() != other.Height() || s.Width() != other.Width() {
		return false
	}
	for r := range s {
		for c := range s[r] {
			if s[r][c] != other[r][c] {
				return false
			}
		}
	}
	return true
}

func (s Shape) clone() Shape {
	out := make(Shape, len(s))
	for r, row := range s {
		out[r] = slices.Clone(row)
	}
	return out
}

func (s Shape) String() string {
	var b strings.Builder
	for r, row := range s {
		if r > 0 {
			b.WriteByte('/')
		}
		for _, filled := range row {
			if filled {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
	}
	return b.String()
}

// The seven shapes in catalog order.
var defaultShapes = []Shape{
	ParseShape( // square
		"##",
		"##",
	),
	ParseShape( // L
		".#",
		".#",
		".#",
		"##",
	),
	ParseShape( // T
		".#.",
		"###",
	),
	ParseShape( // Z
		"##.",
		".##",
	),
	ParseShape( // line
		"#",
		"#",
		"#",
		"#",
	),
	ParseShape( // reverse L
		"#.",
		"#.",
		"#.",
		"##",
	),
	ParseShape( // reverse Z
		".##",
		"##.",
	),
}

// Catalog is the fixed, ordered set of shapes and the index of the current
// one. It is shared by every piece: rotating the active piece replaces the
// catalog slot, so later spawns of that shape start from the last accepted
// rotation.
type Catalog struct {
	Shapes  []Shape
	Current int
}

// NewCatalog returns a catalog holding a fresh copy of the seven default
// shapes with the square selected.
func NewCatalog() Catalog {
	shapes := make([]Shape, len(defaultShapes))
	for i, shape := range defaultShapes {
		shapes[i] = shape.clone()
	}
	return Catalog{Shapes: shapes}
}

// Shape returns the currently selected shape.
func (c *Catalog) Shape() Shape {
	return c.Shapes[c.Current]
}

// Len returns the number of shapes in the catalog.
func (c *Catalog) Len() int {
	return len(c.Shapes)
}
