package mesh

// Color is a linear RGBA color multiplier.
type Color struct {
	R, G, B, A float32
}

// DefaultColor is applied when Hints.Color is unset.
var DefaultColor = Color{R: 1, G: 0.92, B: 0.016, A: 1}

// Hints carries optional appearance data through to the realizer.
// Neither field affects geometry.
type Hints struct {
	Color   *Color // nil means the realizer's default
	Texture string // empty means untextured
}

// ColorOr returns the hinted color, or def if none was set.
func (h Hints) ColorOr(def Color) Color {
	if h.Color == nil {
		return def
	}
	return *h.Color
}

// Realizer turns a populated buffer into something visible.
// Implementations must reject buffers that fail Validate.
type Realizer interface {
	Realize(buf *Buffer, hints Hints) error
}
