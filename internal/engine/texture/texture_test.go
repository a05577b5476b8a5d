package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/Faultbox/gridmesh/pkg/mesh"
)

// tgaHeader builds an 18-byte header for a true-color image.
func tgaHeader(imageType byte, width, height int, bpp byte, descriptor byte) []byte {
	h := make([]byte, 18)
	h[2] = imageType
	h[12], h[13] = byte(width), byte(width>>8)
	h[14], h[15] = byte(height), byte(height>>8)
	h[16] = bpp
	h[17] = descriptor
	return h
}

func TestDecodeTGAUncompressed(t *testing.T) {
	// 2x2, bottom-to-top, BGR.
	data := tgaHeader(TGATypeUncompressed, 2, 2, 24, 0)
	data = append(data,
		0, 0, 255, 0, 255, 0, // bottom row: red, green
		255, 0, 0, 255, 255, 255, // top row: blue, white
	)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA failed: %v", err)
	}

	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 1, color.RGBA{R: 255, A: 255}},
		{1, 1, color.RGBA{G: 255, A: 255}},
		{0, 0, color.RGBA{B: 255, A: 255}},
		{1, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255}},
	}
	for _, tt := range tests {
		if got := img.RGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestDecodeTGARLE(t *testing.T) {
	// 3x1, top-to-bottom, 32 bpp: a run of two red pixels then one raw blue.
	data := tgaHeader(TGATypeRLE, 3, 1, 32, 0x20)
	data = append(data,
		0x81, 0, 0, 255, 128, // run of 2
		0x00, 255, 0, 0, 255, // raw 1
	)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA failed: %v", err)
	}
	if got := img.RGBAAt(1, 0); got != (color.RGBA{R: 255, A: 128}) {
		t.Errorf("run pixel = %v", got)
	}
	if got := img.RGBAAt(2, 0); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("raw pixel = %v", got)
	}
}

func TestDecodeTGAErrors(t *testing.T) {
	tests := []struct {
		name        string
		data        []byte
		unsupported bool
	}{
		{"short", []byte{1, 2, 3}, false},
		{"color mapped", func() []byte { h := tgaHeader(TGATypeUncompressed, 1, 1, 24, 0); h[1] = 1; return h }(), true},
		{"grayscale", tgaHeader(3, 1, 1, 8, 0), true},
		{"16 bpp", tgaHeader(TGATypeUncompressed, 1, 1, 16, 0), true},
		{"truncated pixels", tgaHeader(TGATypeUncompressed, 4, 4, 24, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTGA(tt.data)
			if err == nil {
				t.Fatal("expected error")
			}
			if errors.Is(err, ErrUnsupported) != tt.unsupported {
				t.Errorf("unexpected error kind: %v", err)
			}
		})
	}
}

func TestLoadFormats(t *testing.T) {
	dir := t.TempDir()

	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	src.SetRGBA(2, 1, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	var pngBuf, bmpBuf bytes.Buffer
	if err := png.Encode(&pngBuf, src); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	if err := bmp.Encode(&bmpBuf, src); err != nil {
		t.Fatalf("bmp encode: %v", err)
	}

	files := map[string][]byte{
		"grid.png": pngBuf.Bytes(),
		"grid.BMP": bmpBuf.Bytes(),
	}
	for name, data := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}

		img, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%s) failed: %v", name, err)
		}
		if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
			t.Errorf("%s: unexpected size %v", name, img.Bounds())
		}
		if got := img.RGBAAt(2, 1); got.R != 10 || got.G != 20 || got.B != 30 {
			t.Errorf("%s: pixel (2,1) = %v", name, got)
		}
	}

	if _, err := Decode([]byte("not an image"), ".jpg"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
	if _, err := Load(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFlipVertical(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 3))
	img.SetRGBA(1, 0, color.RGBA{R: 255, A: 255})

	flipped := FlipVertical(img)
	if got := flipped.RGBAAt(1, 2); got.R != 255 {
		t.Errorf("expected top-right pixel at bottom-right, got %v", got)
	}
	if got := flipped.RGBAAt(1, 0); got.R != 0 {
		t.Errorf("expected top-right pixel cleared, got %v", got)
	}
}

func TestToRGBAOffsetBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 7, 8))
	src.SetRGBA(5, 5, color.RGBA{G: 200, A: 255})

	out := ToRGBA(src.SubImage(image.Rect(5, 5, 7, 8)))
	if out.Rect.Min != (image.Point{}) {
		t.Errorf("expected origin at zero, got %v", out.Rect)
	}
	if got := out.RGBAAt(0, 0); got.G != 200 {
		t.Errorf("pixel (0,0) = %v", got)
	}
}

func TestFaceAtlas(t *testing.T) {
	const cell = 32

	for _, layout := range []mesh.AtlasLayout{mesh.StripLayout, mesh.CrossLayout} {
		img, err := FaceAtlas(layout, cell)
		if err != nil {
			t.Fatalf("FaceAtlas failed: %v", err)
		}
		if img.Bounds().Dx() != layout.Columns*cell || img.Bounds().Dy() != layout.Rows*cell {
			t.Errorf("unexpected atlas size %v", img.Bounds())
		}

		for f := mesh.FaceBottom; f <= mesh.FaceTop; f++ {
			r := cellBounds(layout, f, cell)
			// Sample just inside the top-right corner, away from label and marker.
			got := img.RGBAAt(r.Max.X-3, r.Min.Y+3)
			if got != faceColors[f] {
				t.Errorf("%s cell at %v has color %v, want %v", f, r, got, faceColors[f])
			}
		}
	}

	// Cross layout rows count up: bottom is row 0, so it sits in the last image row.
	if r := cellBounds(mesh.CrossLayout, mesh.FaceBottom, cell); r.Min.Y != 2*cell {
		t.Errorf("bottom face should be drawn in the last image row, got %v", r)
	}

	if _, err := FaceAtlas(mesh.StripLayout, 4); err == nil {
		t.Error("expected error for tiny cell size")
	}
}
