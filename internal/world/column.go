package world

// ColumnPos identifies a column by chunk coordinates.
type ColumnPos struct {
	X, Z int
}

// StartX is the world X of the column's first block.
func (p ColumnPos) StartX() int { return p.X * ColumnWidth }

// StartZ is the world Z of the column's first block.
func (p ColumnPos) StartZ() int { return p.Z * ColumnWidth }

// Column is a sampled 16 x Height x 16 volume of materials.
//
// Blocks is laid out as Height*16*x + 16*y + z with local coordinates and y
// measured from Shape.MinY. The slice is never resized after allocation.
type Column struct {
	Pos    ColumnPos
	Shape  ColumnShape
	Blocks []MaterialID
}

// NewColumn allocates an air-filled column for shape.
func NewColumn(pos ColumnPos, shape ColumnShape) *Column {
	return &Column{
		Pos:    pos,
		Shape:  shape,
		Blocks: make([]MaterialID, shape.Volume()),
	}
}

// blockIndex linearizes local coordinates. Coordinates outside the column are
// a contract violation and panic with *ContractError.
func blockIndex(shape ColumnShape, x, y, z int) int {
	if x < 0 || y < 0 || z < 0 {
		panic(contractf("index", "negative local position (%d, %d, %d)", x, y, z))
	}
	if x >= ColumnWidth || y >= shape.Height || z >= ColumnWidth {
		panic(contractf("index", "local position (%d, %d, %d) outside %dx%dx%d", x, y, z, ColumnWidth, shape.Height, ColumnWidth))
	}
	return shape.Height*ColumnWidth*x + ColumnWidth*y + z
}

// Index returns the buffer index of local coordinates (x, y, z).
func (c *Column) Index(x, y, z int) int {
	return blockIndex(c.Shape, x, y, z)
}

// At returns the material at local coordinates.
func (c *Column) At(x, y, z int) MaterialID {
	return c.Blocks[c.Index(x, y, z)]
}

// AtWorldY returns the material at local x, z and world Y.
func (c *Column) AtWorldY(x, worldY, z int) MaterialID {
	return c.At(x, worldY-c.Shape.MinY, z)
}

// Set stores a material at local coordinates.
func (c *Column) Set(x, y, z int, id MaterialID) {
	c.Blocks[c.Index(x, y, z)] = id
}

// TopY returns the world Y of the highest block at local x, z for which
// keep returns true, or false if there is none.
func (c *Column) TopY(x, z int, keep func(MaterialID) bool) (int, bool) {
	for y := c.Shape.Height - 1; y >= 0; y-- {
		if keep(c.At(x, y, z)) {
			return y + c.Shape.MinY, true
		}
	}
	return 0, false
}

// Count returns how many blocks hold id.
func (c *Column) Count(id MaterialID) int {
	n := 0
	for _, b := range c.Blocks {
		if b == id {
			n++
		}
	}
	return n
}
