package app

import (
	"hash/fnv"
	"math"

	"bookcosmos/cosmos"
	"bookcosmos/quarkgl"
)

var coverPalette = []quarkgl.Color{
	quarkgl.RGB(0xC8, 0x5A, 0x3C),
	quarkgl.RGB(0x3C, 0x6E, 0xC8),
	quarkgl.RGB(0xE0, 0xB8, 0x4A),
	quarkgl.RGB(0x4A, 0xA8, 0x78),
	quarkgl.RGB(0x8C, 0x4A, 0xB0),
	quarkgl.RGB(0xD8, 0xD0, 0xC0),
	quarkgl.RGB(0x2C, 0x3A, 0x50),
	quarkgl.RGB(0xB0, 0x30, 0x58),
}

// coverTint stands in for the cover texture: a stable color per textureRef.
func coverTint(ref, id string) quarkgl.Color {
	key := ref
	if key == "" {
		key = id
	}
	h := fnv.New32a()
	h.Write([]byte(key))
	return coverPalette[h.Sum32()%uint32(len(coverPalette))]
}

// panelMeshes mirrors cosmos panels into quarkgl meshes.
type panelMeshes struct {
	ids   []int
	count int
	gen   int
	// fallbackSide sizes panels whose aspect is unusable.
	fallbackSide float64
}

// sync rebuilds the meshes when the panel set changed and updates every
// transform and opacity.
func (pm *panelMeshes) sync(s *quarkgl.Scene, panels []cosmos.Panel, gen int) {
	if gen != pm.gen || len(panels) != pm.count {
		pm.rebuild(s, panels)
		pm.gen = gen
	}
	for i, p := range panels {
		id := pm.ids[i]
		q := p.Orientation
		rot := quarkgl.Mat4FromQuat(quarkgl.Scalar(q.Real), quarkgl.Scalar(q.Imag), quarkgl.Scalar(q.Jmag), quarkgl.Scalar(q.Kmag))
		s.UpdateMeshTransform(id, quarkgl.Mat4TRS(vecTo(p.Position), rot, quarkgl.V3(1, 1, 1)))
		a := opacityByte(p.Opacity)
		s.UpdateMeshOpacity(id, a)
		// Invisible panels are neither drawn nor pickable.
		s.SetMeshEnabled(id, a > 0)
	}
}

func (pm *panelMeshes) rebuild(s *quarkgl.Scene, panels []cosmos.Panel) {
	s.Reset(len(panels))
	pm.ids = pm.ids[:0]
	for i, p := range panels {
		w, h := p.Width, p.Height
		if !(w > 0) || !(h > 0) {
			w, h = pm.fallbackSide, pm.fallbackSide
		}
		m := quarkgl.NewQuad(quarkgl.Scalar(w), quarkgl.Scalar(h), coverTint(p.TextureRef, p.ID))
		m.Material.Unlit = true
		m.PickID = i
		pm.ids = append(pm.ids, s.AddMesh(m))
	}
	pm.count = len(panels)
}

func opacityByte(o float64) uint8 {
	if !(o > 0) {
		return 0
	}
	if o >= 1 {
		return 0xFF
	}
	return uint8(math.Round(o * 255))
}
