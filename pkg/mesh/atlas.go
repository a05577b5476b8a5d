package mesh

import (
	"fmt"

	"github.com/Faultbox/gridmesh/pkg/math"
)

// FaceUVTemplate holds the texture coordinates of one cube's 24 vertices,
// four per face in face order. Vertex k of every cube receives entry k.
type FaceUVTemplate [VerticesPerCube]math.Vec2

// AtlasCell addresses one cell of an atlas grid. Row 0 is at v = 0.
type AtlasCell struct {
	Column int `yaml:"column"`
	Row    int `yaml:"row"`
}

// AtlasLayout maps each cube face to a cell of a Columns x Rows texture atlas.
type AtlasLayout struct {
	Columns int                  `yaml:"columns"`
	Rows    int                  `yaml:"rows"`
	Cells   [FaceCount]AtlasCell `yaml:"cells"`
}

// StripLayout places the faces in six equal columns, in face order.
var StripLayout = AtlasLayout{
	Columns: 6,
	Rows:    1,
	Cells: [FaceCount]AtlasCell{
		FaceBottom: {0, 0},
		FaceBack:   {1, 0},
		FaceRight:  {2, 0},
		FaceFront:  {3, 0},
		FaceLeft:   {4, 0},
		FaceTop:    {5, 0},
	},
}

// CrossLayout is the 4x3 cross unwrap: a row of left, front, right, back
// with bottom below and top above the front cell.
var CrossLayout = AtlasLayout{
	Columns: 4,
	Rows:    3,
	Cells: [FaceCount]AtlasCell{
		FaceBottom: {1, 0},
		FaceBack:   {3, 1},
		FaceRight:  {2, 1},
		FaceFront:  {1, 1},
		FaceLeft:   {0, 1},
		FaceTop:    {1, 2},
	},
}

// LayoutByName returns a named preset layout ("strip" or "cross").
func LayoutByName(name string) (AtlasLayout, error) {
	switch name {
	case "strip", "":
		return StripLayout, nil
	case "cross":
		return CrossLayout, nil
	}
	return AtlasLayout{}, fmt.Errorf("unknown atlas layout %q", name)
}

// Validate checks the grid size and that every cell is inside it.
func (l AtlasLayout) Validate() error {
	if l.Columns <= 0 || l.Rows <= 0 {
		return fmt.Errorf("atlas layout %dx%d must have positive size", l.Columns, l.Rows)
	}
	for f, c := range l.Cells {
		if c.Column < 0 || c.Column >= l.Columns || c.Row < 0 || c.Row >= l.Rows {
			return fmt.Errorf("atlas cell for %s at (%d,%d) is outside %dx%d",
				Face(f), c.Column, c.Row, l.Columns, l.Rows)
		}
	}
	return nil
}

// CellRect returns the UV rectangle of a face's cell.
func (l AtlasLayout) CellRect(f Face) (lo, hi math.Vec2) {
	c := l.Cells[f]
	cols, rows := float32(l.Columns), float32(l.Rows)
	lo = math.Vec2{X: float32(c.Column) / cols, Y: float32(c.Row) / rows}
	hi = math.Vec2{X: float32(c.Column+1) / cols, Y: float32(c.Row+1) / rows}
	return lo, hi
}

// Template builds the per-vertex UV template for the layout. Face corners
// 0..3 map to the cell's (min,min), (max,min), (min,max), (max,max).
func (l AtlasLayout) Template() (FaceUVTemplate, error) {
	var t FaceUVTemplate
	if err := l.Validate(); err != nil {
		return t, err
	}
	for f := range FaceCount {
		lo, hi := l.CellRect(Face(f))
		base := f * VerticesPerFace
		t[base+0] = math.Vec2{X: lo.X, Y: lo.Y}
		t[base+1] = math.Vec2{X: hi.X, Y: lo.Y}
		t[base+2] = math.Vec2{X: lo.X, Y: hi.Y}
		t[base+3] = math.Vec2{X: hi.X, Y: hi.Y}
	}
	return t, nil
}

// DefaultFaceUVs returns the StripLayout template.
func DefaultFaceUVs() FaceUVTemplate {
	t, err := StripLayout.Template()
	if err != nil {
		panic(err)
	}
	return t
}
