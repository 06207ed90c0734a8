package game

// RotateShape returns shape turned 90 degrees clockwise: column c of the
// source, read from the bottom row up, becomes row c of the result.
func RotateShape(shape Shape) Shape {
	rotated := make(Shape, shape.Width())
	for c := range rotated {
		row := make([]bool, 0, shape.Height())
		for r := shape.Height() - 1; r >= 0; r-- {
			row = append(row, shape[r][c])
		}
		rotated[c] = row
	}
	return rotated
}

// RotatePiece rotates the current catalog shape in place when the rotated
// shape fits at the piece's unchanged position, and reports whether it did.
// A blocked rotation is dropped; no alternate offsets are tried.
func RotatePiece(grid *Grid, catalog *Catalog, piece *ActivePiece) bool {
	candidate := RotateShape(catalog.Shape())
	if grid.IsCollision(piece.X, piece.Y, candidate) {
		return false
	}
	catalog.Shapes[catalog.Current] = candidate
	return true
}
