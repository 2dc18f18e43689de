package world

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"gonum.org/v1/gonum/floats"
)

// FormatRawIDs writes blocks in buffer order as "[id,id,...,]" followed by a
// newline. Every id, the last included, is followed by a comma.
func FormatRawIDs(w io.Writer, blocks []MaterialID) error {
	bw := bufio.NewWriter(w)
	bw.WriteByte('[')
	var num []byte
	for _, id := range blocks {
		num = strconv.AppendUint(num[:0], uint64(id), 10)
		bw.Write(num)
		bw.WriteByte(',')
	}
	bw.WriteString("]\n")
	return bw.Flush()
}

// SliceAxis selects which local coordinate a slice holds fixed.
type SliceAxis int

const (
	SliceX SliceAxis = iota // fixed local x, image spans z
	SliceZ                  // fixed local z, image spans x
)

func (a SliceAxis) String() string {
	if a == SliceZ {
		return "z"
	}
	return "x"
}

const captionHeight = 14

// missingColor marks materials without a palette entry.
var missingColor = color.RGBA{R: 255, G: 0, B: 255, A: 255}

// RenderSlice draws one vertical slice of col, highest Y at the top, scaled by
// scale and captioned with the column position. Colors are RGB in [0,1].
func RenderSlice(col *Column, axis SliceAxis, index int, colors map[MaterialID]mgl32.Vec3, scale int) (*image.RGBA, error) {
	if index < 0 || index >= ColumnWidth {
		return nil, fmt.Errorf("render slice: index %d outside [0, %d)", index, ColumnWidth)
	}
	scale = max(scale, 1)
	height := col.Shape.Height

	small := image.NewRGBA(image.Rect(0, 0, ColumnWidth, height))
	for u := 0; u < ColumnWidth; u++ {
		for y := 0; y < height; y++ {
			var id MaterialID
			if axis == SliceZ {
				id = col.At(u, y, index)
			} else {
				id = col.At(index, y, u)
			}
			small.SetRGBA(u, height-1-y, toRGBA(colors, id))
		}
	}

	out := image.NewRGBA(image.Rect(0, 0, ColumnWidth*scale, height*scale+captionHeight))
	draw.Draw(out, out.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	body := image.Rect(0, captionHeight, ColumnWidth*scale, captionHeight+height*scale)
	draw.NearestNeighbor.Scale(out, body, small, small.Bounds(), draw.Src, nil)

	d := font.Drawer{
		Dst:  out,
		Src:  image.White,
		Face: basicfont.Face7x13,
		Dot:  fixed.P(2, captionHeight-3),
	}
	d.DrawString(fmt.Sprintf("%d,%d %s=%d", col.Pos.X, col.Pos.Z, axis, index))
	return out, nil
}

func toRGBA(colors map[MaterialID]mgl32.Vec3, id MaterialID) color.RGBA {
	c, ok := colors[id]
	if !ok {
		return missingColor
	}
	return color.RGBA{
		R: uint8(mgl32.Clamp(c[0], 0, 1) * 255),
		G: uint8(mgl32.Clamp(c[1], 0, 1) * 255),
		B: uint8(mgl32.Clamp(c[2], 0, 1) * 255),
		A: 255,
	}
}

// CornerStats summarizes the lattice corner densities of one column.
type CornerStats struct {
	Count     int
	Undefined int
	Min, Max  float64
	Mean      float64
	Solid     int // corners with positive density
}

// SummarizeCorners evaluates density at every lattice corner of the column at
// pos and reports their distribution. Undefined corners are counted but left
// out of Min, Max and Mean.
func SummarizeCorners(pos ColumnPos, shape ColumnShape, density DensityFunction) (CornerStats, error) {
	if err := shape.Validate(); err != nil {
		return CornerStats{}, err
	}
	h := shape.HorizontalCellSize
	v := shape.VerticalCellSize
	cellsXZ := shape.HorizontalCellCount()
	minCellY := shape.MinCellY()

	values := make([]float64, 0, shape.CornerCount())
	st := CornerStats{}
	for cx := 0; cx <= cellsXZ; cx++ {
		x := (pos.X*cellsXZ + cx) * h
		for cz := 0; cz <= cellsXZ; cz++ {
			z := (pos.Z*cellsXZ + cz) * h
			for cy := 0; cy <= shape.VerticalCellCount(); cy++ {
				y := (minCellY + cy) * v
				d, err := density.Sample(x, y, z)
				if err != nil {
					return CornerStats{}, fmt.Errorf("sample density at (%d, %d, %d): %w", x, y, z, err)
				}
				st.Count++
				if IsUndefined(d) {
					st.Undefined++
					continue
				}
				if d > 0 {
					st.Solid++
				}
				values = append(values, d)
			}
		}
	}
	if len(values) > 0 {
		st.Min = floats.Min(values)
		st.Max = floats.Max(values)
		st.Mean = floats.Sum(values) / float64(len(values))
	}
	return st, nil
}

func (s CornerStats) String() string {
	return fmt.Sprintf("corners=%d undefined=%d solid=%d min=%.3f max=%.3f mean=%.3f",
		s.Count, s.Undefined, s.Solid, s.Min, s.Max, s.Mean)
}
