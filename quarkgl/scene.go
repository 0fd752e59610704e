package quarkgl

// Material is a minimal surface description.
type Material struct {
	BaseColor Color
	Opacity   uint8 // 0..255. 255 means opaque.
	// Unlit skips the directional light term.
	Unlit bool
}

// LightMode defines minimal lighting options.
type LightMode uint8

const (
	LightOff LightMode = iota
	LightAmbientDirectional
)

// Light is a minimal light setup.
type Light struct {
	Mode      LightMode
	Ambient   Scalar // 0..1
	Dir       Vec3   // direction *towards* the scene
	DirAmount Scalar // 0..1
}

// Camera is a perspective camera.
type Camera struct {
	Position Vec3
	Target   Vec3
	Up       Vec3

	FOVYRad Scalar

	Near Scalar
	Far  Scalar
}

// View returns the camera view matrix.
func (c Camera) View() Mat4 {
	up := c.Up
	if up == (Vec3{}) {
		up = V3(0, 1, 0)
	}
	return Mat4LookAt(c.Position, c.Target, up)
}

// Projection returns the projection matrix for a target aspect.
func (c Camera) Projection(aspect Scalar) Mat4 {
	fov := c.FOVYRad
	if fov == 0 {
		fov = Scalar(1.0)
	}
	return Mat4Perspective(fov, aspect, c.Near, c.Far)
}

// Vertex is a mesh vertex.
type Vertex struct {
	Pos    Vec3
	Normal Vec3
	Color  Color
}

// NoPick marks pixels and meshes that are not hit-testable.
const NoPick = -1

// Mesh is a triangle mesh with an object transform.
type Mesh struct {
	Enabled bool

	Vertices []Vertex
	Indices  []uint16 // triangle list

	Transform Mat4
	Material  Material

	// PickID is written into the renderer's pick buffer for every covered pixel.
	PickID int
}

// Scene is a collection of objects to render.
type Scene struct {
	Camera Camera
	Light  Light

	meshes []Mesh
	alive  []bool
}

// CreateScene allocates a scene with a fixed mesh capacity.
func CreateScene(maxMeshes int) *Scene {
	if maxMeshes < 0 {
		maxMeshes = 0
	}
	return &Scene{
		Camera: Camera{
			Position: V3(0, 0, 3),
			Target:   V3(0, 0, 0),
			Up:       V3(0, 1, 0),
			FOVYRad:  Scalar(1.0),
			Near:     Scalar(0.05),
			Far:      Scalar(100),
		},
		Light: Light{
			Mode:      LightAmbientDirectional,
			Ambient:   Scalar(0.25),
			Dir:       Normalize(V3(1, 1, 1)),
			DirAmount: Scalar(0.75),
		},
		meshes: make([]Mesh, maxMeshes),
		alive:  make([]bool, maxMeshes),
	}
}

// Capacity is the fixed mesh slot count.
func (s *Scene) Capacity() int { return len(s.meshes) }

// Reset removes every mesh and resizes the scene to maxMeshes slots.
func (s *Scene) Reset(maxMeshes int) {
	if maxMeshes < 0 {
		maxMeshes = 0
	}
	if cap(s.meshes) < maxMeshes {
		s.meshes = make([]Mesh, maxMeshes)
		s.alive = make([]bool, maxMeshes)
		return
	}
	s.meshes = s.meshes[:maxMeshes]
	s.alive = s.alive[:maxMeshes]
	for i := range s.meshes {
		s.meshes[i] = Mesh{}
		s.alive[i] = false
	}
}

// AddMesh adds a mesh to the scene and returns its id or -1 if full.
func (s *Scene) AddMesh(m Mesh) int {
	if s == nil {
		return -1
	}
	for i := range s.meshes {
		if s.alive[i] {
			continue
		}
		if m.Transform == (Mat4{}) {
			m.Transform = Mat4Identity()
		}
		if m.Material.Opacity == 0 {
			m.Material.Opacity = 0xFF
		}
		if m.Material.BaseColor == (Color{}) {
			m.Material.BaseColor = RGB(0xCC, 0xCC, 0xCC)
		}
		m.Enabled = true
		s.meshes[i] = m
		s.alive[i] = true
		return i
	}
	return -1
}

// SetMeshEnabled enables/disables a mesh by id.
func (s *Scene) SetMeshEnabled(id int, enabled bool) {
	if s == nil || id < 0 || id >= len(s.meshes) || !s.alive[id] {
		return
	}
	s.meshes[id].Enabled = enabled
}

// UpdateMeshTransform updates a mesh transform by id.
func (s *Scene) UpdateMeshTransform(id int, m Mat4) {
	if s == nil || id < 0 || id >= len(s.meshes) || !s.alive[id] {
		return
	}
	s.meshes[id].Transform = m
}

// UpdateMeshOpacity sets a mesh's material opacity by id.
func (s *Scene) UpdateMeshOpacity(id int, a uint8) {
	if s == nil || id < 0 || id >= len(s.meshes) || !s.alive[id] {
		return
	}
	s.meshes[id].Material.Opacity = a
}

func (s *Scene) eachMesh(fn func(m *Mesh)) {
	for i := range s.meshes {
		if !s.alive[i] {
			continue
		}
		fn(&s.meshes[i])
	}
}

// NewQuad returns a w×h quad in the XY plane centred on the origin, facing +Z.
func NewQuad(w, h Scalar, c Color) Mesh {
	hw, hh := w/2, h/2
	n := V3(0, 0, 1)
	return Mesh{
		Vertices: []Vertex{
			{Pos: V3(-hw, -hh, 0), Normal: n, Color: c},
			{Pos: V3(hw, -hh, 0), Normal: n, Color: c},
			{Pos: V3(hw, hh, 0), Normal: n, Color: c},
			{Pos: V3(-hw, hh, 0), Normal: n, Color: c},
		},
		Indices:  []uint16{0, 1, 2, 0, 2, 3},
		Material: Material{BaseColor: c, Opacity: 0xFF},
		PickID:   NoPick,
	}
}
