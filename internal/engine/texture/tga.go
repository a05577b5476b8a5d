// Package texture decodes texture images and renders debug atlases.
package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

const tgaHeaderSize = 18

// ErrUnsupported reports an image format or variant the decoder cannot read.
var ErrUnsupported = errors.New("unsupported image")

// tgaReader walks BGR(A) pixel data and writes rows in image order.
type tgaReader struct {
	img           *image.RGBA
	data          []byte
	pos           int
	width, height int
	bytesPerPixel int
	topToBottom   bool
}

func (r *tgaReader) pixel() (color.RGBA, bool) {
	if r.pos+r.bytesPerPixel > len(r.data) {
		return color.RGBA{}, false
	}
	p := r.data[r.pos:]
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if r.bytesPerPixel == 4 {
		c.A = p[3]
	}
	r.pos += r.bytesPerPixel
	return c, true
}

// set stores pixel number n of the file's scan order.
func (r *tgaReader) set(n int, c color.RGBA) {
	x, y := n%r.width, n/r.width
	if !r.topToBottom {
		y = r.height - 1 - y
	}
	r.img.SetRGBA(x, y, c)
}

// DecodeTGA decodes uncompressed (type 2) and RLE (type 10) true-color TGA
// data at 24 or 32 bits per pixel.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("TGA data too short: %d bytes", len(data))
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := int(data[2])
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("%w: color-mapped TGA", ErrUnsupported)
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("%w: TGA type %d", ErrUnsupported, imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("%w: TGA bit depth %d", ErrUnsupported, bpp)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("TGA data truncated")
	}

	r := &tgaReader{
		img:           image.NewRGBA(image.Rect(0, 0, width, height)),
		data:          data[offset:],
		width:         width,
		height:        height,
		bytesPerPixel: bpp / 8,
		// Bit 5 of the descriptor marks top-to-bottom row order
		topToBottom: descriptor&0x20 != 0,
	}

	if imageType == TGATypeUncompressed {
		if len(r.data) < width*height*r.bytesPerPixel {
			return nil, fmt.Errorf("TGA pixel data truncated")
		}
		for n := 0; n < width*height; n++ {
			c, _ := r.pixel()
			r.set(n, c)
		}
		return r.img, nil
	}

	decodeTGARLE(r)
	return r.img, nil
}

// decodeTGARLE decodes run-length packets. Truncated input leaves the
// remaining pixels transparent.
func decodeTGARLE(r *tgaReader) {
	total := r.width * r.height
	n := 0

	for n < total && r.pos < len(r.data) {
		packet := r.data[r.pos]
		r.pos++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			c, ok := r.pixel()
			if !ok {
				return
			}
			for i := 0; i < count && n < total; i++ {
				r.set(n, c)
				n++
			}
			continue
		}

		for i := 0; i < count && n < total; i++ {
			c, ok := r.pixel()
			if !ok {
				return
			}
			r.set(n, c)
			n++
		}
	}
}
