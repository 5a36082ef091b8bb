package scene

// ShadingModel selects the global lighting model for a frame.
type ShadingModel int

const (
	// ShadeBlinnPhong is per-pixel diffuse plus Blinn-Phong specular.
	ShadeBlinnPhong ShadingModel = iota
	// ShadeFlat uses one face normal per triangle and skips specular.
	ShadeFlat
	// ShadeNone bypasses lighting and writes albedo directly. Used for the
	// baked-normal debug view and wireframes.
	ShadeNone
)

func (s ShadingModel) String() string {
	switch s {
	case ShadeBlinnPhong:
		return "blinn-phong"
	case ShadeFlat:
		return "flat"
	case ShadeNone:
		return "none"
	}
	return "unknown"
}

// Scene is the single root the pipeline reads each frame. Nothing here may
// be mutated while a frame is being rendered; the frame boundary is the only
// synchronization point between input handling and the pipeline.
type Scene struct {
	Entities []*Entity
	Lights   []Light
	Camera   *Camera

	Shading ShadingModel
	// Ambient is the global ambient constant multiplied with each
	// material's ambient color, applied once per pixel.
	Ambient ColorF
}

// NewScene creates an empty scene with a default camera, Blinn-Phong
// shading, and a dim global ambient.
func NewScene() *Scene {
	return &Scene{
		Camera:  NewCamera(),
		Shading: ShadeBlinnPhong,
		Ambient: CF(0.1, 0.1, 0.1),
	}
}

// Add appends an entity to the scene.
func (s *Scene) Add(e *Entity) {
	s.Entities = append(s.Entities, e)
}

// AddLight appends a light to the scene.
func (s *Scene) AddLight(l Light) {
	s.Lights = append(s.Lights, l)
}
