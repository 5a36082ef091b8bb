package scene

// Material holds the surface properties the shading pass reads. Materials
// are read-only during rendering; they belong to a mesh.
type Material struct {
	Name      string
	Diffuse   ColorF
	Specular  ColorF
	Ambient   ColorF
	Shininess float64
}

// DefaultMaterial is a matte mid-gray used when a mesh carries no materials.
func DefaultMaterial() Material {
	return Material{
		Name:      "default",
		Diffuse:   CF(0.8, 0.8, 0.8),
		Specular:  CF(0.2, 0.2, 0.2),
		Ambient:   DarkGray,
		Shininess: 16,
	}
}
