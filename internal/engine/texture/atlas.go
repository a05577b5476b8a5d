package texture

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/Faultbox/gridmesh/pkg/mesh"
)

// faceColors fills each face cell of a debug atlas.
var faceColors = [mesh.FaceCount]color.RGBA{
	mesh.FaceBottom: {R: 96, G: 96, B: 96, A: 255},
	mesh.FaceBack:   {R: 60, G: 90, B: 200, A: 255},
	mesh.FaceRight:  {R: 200, G: 60, B: 60, A: 255},
	mesh.FaceFront:  {R: 60, G: 170, B: 220, A: 255},
	mesh.FaceLeft:   {R: 220, G: 140, B: 50, A: 255},
	mesh.FaceTop:    {R: 80, G: 190, B: 80, A: 255},
}

var (
	borderColor = color.RGBA{R: 20, G: 20, B: 20, A: 255}
	originColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	labelColor  = image.NewUniform(color.RGBA{R: 255, G: 255, B: 255, A: 255})
)

// MinAtlasCell is the smallest cell that fits a face label.
const MinAtlasCell = 16

// FaceAtlas draws a labelled debug texture for layout, cell pixels per face.
// Each cell is filled with its face's color and marked at its (u, v) = (0, 0)
// corner. The image is in file orientation: v = 0 is the bottom row.
func FaceAtlas(layout mesh.AtlasLayout, cell int) (*image.RGBA, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	if cell < MinAtlasCell {
		return nil, fmt.Errorf("atlas cell size %d is below %d", cell, MinAtlasCell)
	}

	img := image.NewRGBA(image.Rect(0, 0, layout.Columns*cell, layout.Rows*cell))
	marker := cell / 8

	for f := mesh.FaceBottom; f <= mesh.FaceTop; f++ {
		r := cellBounds(layout, f, cell)
		draw.Draw(img, r, image.NewUniform(borderColor), image.Point{}, draw.Src)
		draw.Draw(img, r.Inset(1), image.NewUniform(faceColors[f]), image.Point{}, draw.Src)

		// Origin marker at the bottom-left corner.
		m := image.Rect(r.Min.X+1, r.Max.Y-1-marker, r.Min.X+1+marker, r.Max.Y-1)
		draw.Draw(img, m, image.NewUniform(originColor), image.Point{}, draw.Src)

		drawLabel(img, r, f.String())
	}

	return img, nil
}

// cellBounds returns the pixel rectangle of a face's cell. Atlas rows count
// up from v = 0, image rows count down.
func cellBounds(layout mesh.AtlasLayout, f mesh.Face, cell int) image.Rectangle {
	c := layout.Cells[f]
	x := c.Column * cell
	y := (layout.Rows - 1 - c.Row) * cell
	return image.Rect(x, y, x+cell, y+cell)
}

func drawLabel(img *image.RGBA, r image.Rectangle, text string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  labelColor,
		Face: basicfont.Face7x13,
	}
	width := d.MeasureString(text).Ceil()
	if width > r.Dx()-2 {
		text = text[:1]
		width = d.MeasureString(text).Ceil()
	}
	metrics := basicfont.Face7x13.Metrics()
	x := r.Min.X + (r.Dx()-width)/2
	y := r.Min.Y + (r.Dy()+metrics.Ascent.Ceil()-metrics.Descent.Ceil())/2
	d.Dot = fixed.P(x, y)
	d.DrawString(text)
}
