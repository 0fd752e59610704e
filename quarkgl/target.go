package quarkgl

// Target is a minimal pixel target for software rendering.
//
// Implementations should clip out-of-bounds coordinates and composite colors
// whose alpha is below 255 over the existing pixel.
type Target interface {
	Size() (w, h int)
	SetPixel(x, y int, c Color)
	Clear(c Color)
}

// RenderMode selects the rasterization mode.
type RenderMode uint8

const (
	RenderWireframe RenderMode = iota
	RenderSolidFlat
)
