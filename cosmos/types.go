package cosmos

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Item is an external content record. The core only reads it.
type Item struct {
	ID           string
	AspectWidth  float64
	AspectHeight float64
	TextureRef   string
}

// Euler is an XYZ-order rotation in radians.
type Euler struct {
	X, Y, Z float64
}

// PlacedItem is the layout result for one Item.
type PlacedItem struct {
	ID          string
	Position    r3.Vec
	Orientation quat.Number
	Rotation    Euler
}

// Pose is a camera position plus the point it looks at.
type Pose struct {
	Position r3.Vec
	LookAt   r3.Vec
}

// CameraPlan is the target of one camera transition.
type CameraPlan struct {
	CameraTarget r3.Vec
	LookTarget   r3.Vec
}

// Plan converts a framing pose into a transition target.
func (p Pose) Plan() CameraPlan {
	return CameraPlan{CameraTarget: p.Position, LookTarget: p.LookAt}
}

// Camera is the mutable perspective camera owned by the host render engine.
type Camera interface {
	Position() r3.Vec
	SetPosition(p r3.Vec)
	// VerticalFOV is in radians.
	VerticalFOV() float64
	Aspect() float64
}

// Controls is an orbit-style controller with a look-at target and an input gate.
type Controls interface {
	Target() r3.Vec
	SetTarget(t r3.Vec)
	SetEnabled(on bool)
	Enabled() bool
}

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
}

type nopLogger struct{}

func (nopLogger) WriteLineString(string) {}

func orNop(l Logger) Logger {
	if l == nil {
		return nopLogger{}
	}
	return l
}
