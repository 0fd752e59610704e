// Package cosmos is the camera and layout core of the book cosmos view.
//
// It scatters panels over a sphere, frames a selected panel so it fills the
// viewport, and runs at most one camera transition at a time. Everything here
// is driven by explicit calls from a single frame loop:
//
//	Tick → idle rotation → pointer events (debounced) → sequencer advance → render.
//
// The package has no rendering or input code of its own. The host supplies a
// Camera and Controls implementation and reads Panels() back every frame.
package cosmos
