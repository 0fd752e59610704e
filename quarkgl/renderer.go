package quarkgl

import "sort"

// Renderer is a fixed-pipeline software renderer.
//
// Create it once and reuse it to avoid allocations.
type Renderer struct {
	Mode       RenderMode
	Depth      bool
	ClearColor Color

	depthBuf []float32
	pickBuf  []int32
	pickW    int
	pickH    int

	order []sortedMesh
}

type sortedMesh struct {
	m    *Mesh
	dist Scalar
}

// NewRenderer creates a renderer for a given maximum target size.
//
// If enableDepth is true, a depth buffer of size w*h is allocated.
func NewRenderer(w, h int, enableDepth bool) *Renderer {
	r := &Renderer{
		Mode:       RenderSolidFlat,
		Depth:      enableDepth,
		ClearColor: RGB(0, 0, 0),
	}
	if enableDepth && w > 0 && h > 0 {
		r.depthBuf = make([]float32, w*h)
	}
	return r
}

func (r *Renderer) SetRenderMode(m RenderMode) { r.Mode = m }

func (r *Renderer) EnableDepth(on bool, w, h int) {
	r.Depth = on
	if !on {
		r.depthBuf = nil
		return
	}
	if w <= 0 || h <= 0 {
		r.depthBuf = nil
		return
	}
	if cap(r.depthBuf) < w*h {
		r.depthBuf = make([]float32, w*h)
	} else {
		r.depthBuf = r.depthBuf[:w*h]
	}
}

func (r *Renderer) clearDepth() {
	for i := range r.depthBuf {
		r.depthBuf[i] = 1e9
	}
}

func (r *Renderer) resetPick(w, h int) {
	if cap(r.pickBuf) < w*h {
		r.pickBuf = make([]int32, w*h)
	} else {
		r.pickBuf = r.pickBuf[:w*h]
	}
	r.pickW, r.pickH = w, h
	for i := range r.pickBuf {
		r.pickBuf[i] = NoPick
	}
}

// PickAt returns the PickID of the mesh drawn last at x,y in the previous
// Render, or NoPick.
func (r *Renderer) PickAt(x, y int) int {
	if r == nil || x < 0 || y < 0 || x >= r.pickW || y >= r.pickH {
		return NoPick
	}
	idx := y*r.pickW + x
	if idx >= len(r.pickBuf) {
		return NoPick
	}
	return int(r.pickBuf[idx])
}

// Render renders a scene into the target. Opaque meshes are drawn first,
// translucent ones after them from far to near.
func (r *Renderer) Render(t Target, s *Scene) {
	if r == nil || t == nil || s == nil {
		return
	}
	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return
	}
	t.Clear(r.ClearColor)
	r.resetPick(w, h)

	if r.Depth {
		r.EnableDepth(true, w, h)
		r.clearDepth()
	}

	aspect := Scalar(1)
	if h != 0 {
		aspect = Scalar(w) / Scalar(h)
	}
	view := s.Camera.View()
	proj := s.Camera.Projection(aspect)

	r.order = r.order[:0]
	s.eachMesh(func(m *Mesh) {
		if m == nil || !m.Enabled {
			return
		}
		if m.Material.Opacity == 0xFF {
			r.renderMesh(t, w, h, proj, view, m, s.Light)
			return
		}
		c := V3(m.Transform[12], m.Transform[13], m.Transform[14])
		r.order = append(r.order, sortedMesh{m: m, dist: Len(c.Sub(s.Camera.Position))})
	})
	sort.SliceStable(r.order, func(i, j int) bool { return r.order[i].dist > r.order[j].dist })
	for _, sm := range r.order {
		r.renderMesh(t, w, h, proj, view, sm.m, s.Light)
	}
}

func (r *Renderer) renderMesh(t Target, w, h int, proj, view Mat4, m *Mesh, light Light) {
	if len(m.Vertices) == 0 || len(m.Indices) < 3 {
		return
	}
	model := m.Transform
	if model == (Mat4{}) {
		model = Mat4Identity()
	}

	mvp := Mat4Mul(proj, Mat4Mul(view, model))
	translucent := m.Material.Opacity != 0xFF

	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0 := int(m.Indices[i+0])
		i1 := int(m.Indices[i+1])
		i2 := int(m.Indices[i+2])
		if i0 >= len(m.Vertices) || i1 >= len(m.Vertices) || i2 >= len(m.Vertices) {
			continue
		}

		v0 := m.Vertices[i0]
		v1 := m.Vertices[i1]
		v2 := m.Vertices[i2]

		p0 := Mat4MulV4(mvp, Vec4{X: v0.Pos.X, Y: v0.Pos.Y, Z: v0.Pos.Z, W: 1})
		p1 := Mat4MulV4(mvp, Vec4{X: v1.Pos.X, Y: v1.Pos.Y, Z: v1.Pos.Z, W: 1})
		p2 := Mat4MulV4(mvp, Vec4{X: v2.Pos.X, Y: v2.Pos.Y, Z: v2.Pos.Z, W: 1})

		// Trivial clip: drop triangles with any vertex behind the eye.
		if p0.W <= 0 || p1.W <= 0 || p2.W <= 0 {
			continue
		}

		ndc0 := clipToNDC(p0)
		ndc1 := clipToNDC(p1)
		ndc2 := clipToNDC(p2)

		x0, y0 := ndcToScreen(ndc0, w, h)
		x1, y1 := ndcToScreen(ndc1, w, h)
		x2, y2 := ndcToScreen(ndc2, w, h)

		base := m.Material.BaseColor
		if light.Mode == LightAmbientDirectional && !m.Material.Unlit {
			n := triangleNormal(v0.Pos, v1.Pos, v2.Pos)
			base = base.MulScalar(lightIntensity(light, n))
		}
		base.A = m.Material.Opacity

		switch r.Mode {
		case RenderWireframe:
			r.drawLine(t, x0, y0, x1, y1, base)
			r.drawLine(t, x1, y1, x2, y2, base)
			r.drawLine(t, x2, y2, x0, y0, base)
		default:
			r.fillTriangleFlat(t, w, h, tri{x0, y0, ndc0.Z, x1, y1, ndc1.Z, x2, y2, ndc2.Z}, base, int32(m.PickID), !translucent)
		}
	}
}

type ndcPoint struct {
	X, Y, Z float32
}

func clipToNDC(p Vec4) ndcPoint {
	invW := 1.0 / p.W
	return ndcPoint{X: p.X * invW, Y: p.Y * invW, Z: p.Z * invW}
}

func ndcToScreen(p ndcPoint, w, h int) (x, y int) {
	sx := (p.X*0.5 + 0.5) * float32(w-1)
	sy := (1 - (p.Y*0.5 + 0.5)) * float32(h-1)
	return int(sx + 0.5), int(sy + 0.5)
}

func triangleNormal(a, b, c Vec3) Vec3 {
	return Normalize(Cross(b.Sub(a), c.Sub(a)))
}

func lightIntensity(l Light, n Vec3) Scalar {
	amb := Clamp01(l.Ambient)
	dir := Clamp01(l.DirAmount)
	ld := Normalize(l.Dir)
	if ld == (Vec3{}) {
		return amb
	}
	d := Dot(n, ld.Mul(-1))
	if d < 0 {
		d = -d
	}
	return Clamp01(amb + d*dir)
}

// depthTest reports whether z is nearer than the stored depth and records it
// when write is set.
func (r *Renderer) depthTest(w int, x, y int, z float32, write bool) bool {
	if !r.Depth || r.depthBuf == nil {
		return true
	}
	if x < 0 || y < 0 || x >= w {
		return false
	}
	idx := y*w + x
	if idx < 0 || idx >= len(r.depthBuf) {
		return false
	}
	// NDC z is typically in [-1,1]. Map to [0,1].
	d := clampF32(z*0.5+0.5, 0, 1)
	if d >= r.depthBuf[idx] {
		return false
	}
	if write {
		r.depthBuf[idx] = d
	}
	return true
}

func (r *Renderer) drawLine(t Target, x0, y0, x1, y1 int, c Color) {
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		t.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

type tri struct {
	x0, y0 int
	z0     float32
	x1, y1 int
	z1     float32
	x2, y2 int
	z2     float32
}

func (r *Renderer) fillTriangleFlat(t Target, w, h int, tr tri, c Color, pick int32, writeDepth bool) {
	minX, maxX := min3(tr.x0, tr.x1, tr.x2), max3(tr.x0, tr.x1, tr.x2)
	minY, maxY := min3(tr.y0, tr.y1, tr.y2), max3(tr.y0, tr.y1, tr.y2)
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX >= w {
		maxX = w - 1
	}
	if maxY >= h {
		maxY = h - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	area := edgeFn(tr.x0, tr.y0, tr.x1, tr.y1, tr.x2, tr.y2)
	if area == 0 {
		return
	}
	invArea := 1.0 / float32(area)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			w0 := edgeFn(tr.x1, tr.y1, tr.x2, tr.y2, x, y)
			w1 := edgeFn(tr.x2, tr.y2, tr.x0, tr.y0, x, y)
			w2 := edgeFn(tr.x0, tr.y0, tr.x1, tr.y1, x, y)
			// Accept both windings; panels are double sided.
			if area > 0 && (w0|w1|w2) < 0 {
				continue
			}
			if area < 0 && (w0 > 0 || w1 > 0 || w2 > 0) {
				continue
			}
			a0 := float32(w0) * invArea
			a1 := float32(w1) * invArea
			a2 := float32(w2) * invArea
			z := a0*tr.z0 + a1*tr.z1 + a2*tr.z2
			if !r.depthTest(w, x, y, z, writeDepth) {
				continue
			}
			t.SetPixel(x, y, c)
			if pick != NoPick {
				r.pickBuf[y*r.pickW+x] = pick
			}
		}
	}
}

func edgeFn(x0, y0, x1, y1, x, y int) int {
	return (x-x0)*(y1-y0) - (y-y0)*(x1-x0)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func min3(a, b, c int) int {
	if a > b {
		a = b
	}
	if a > c {
		a = c
	}
	return a
}

func max3(a, b, c int) int {
	if a < b {
		a = b
	}
	if a < c {
		a = c
	}
	return a
}

func clampF32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
