package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/png" // PNG decoder registration
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// Load reads a TGA, BMP or PNG file into RGBA.
func Load(path string) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

// Decode decodes image data. ext (".tga", ".bmp", ...) picks the decoder
// for formats without a reliable magic number; other data is sniffed.
func Decode(data []byte, ext string) (*image.RGBA, error) {
	switch strings.ToLower(ext) {
	case ".tga":
		return DecodeTGA(data)
	case ".bmp":
		img, err := bmp.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return ToRGBA(img), nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	return ToRGBA(img), nil
}

// ToRGBA converts any image to *image.RGBA with its origin at (0, 0).
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// FlipVertical returns a copy with rows reversed. OpenGL expects the first
// row at v = 0, image files store it at the top.
func FlipVertical(img *image.RGBA) *image.RGBA {
	h := img.Rect.Dy()
	rowSize := img.Rect.Dx() * 4
	out := image.NewRGBA(img.Rect)
	for y := 0; y < h; y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+rowSize]
		dst := (h - 1 - y) * out.Stride
		copy(out.Pix[dst:dst+rowSize], src)
	}
	return out
}
