package render

import (
	"math"

	"github.com/hexlade/facet/pkg/math3d"
	"github.com/hexlade/facet/pkg/scene"
)

// ShadeParams is the read-only per-frame state shared by all shading
// workers. Built once in the pipeline before the chunk pass starts.
type ShadeParams struct {
	Lights      []scene.Light
	Ambient     scene.ColorF // Global ambient, modulated by material ambient
	CameraPos   math3d.Vec3
	InvViewProj math3d.Mat4
	Shading     scene.ShadingModel

	// BakeNormals replaces lighting with a normal visualization
	// (n * 0.5 + 0.5 mapped to RGB), used for debugging geometry.
	BakeNormals bool
}

var defaultMaterial = scene.DefaultMaterial()

// ShadeChunk runs the lighting pass over one chunk: for every pixel touched
// this frame it reconstructs the world position from depth and evaluates the
// scene lights against the G-Buffer attributes.
func ShadeChunk(t *Target, gb *GBuffer, chunk Chunk, p *ShadeParams) {
	invW := 2.0 / float64(t.Width)
	invH := 2.0 / float64(t.Height)

	for y := chunk.Y0; y < chunk.Y1; y++ {
		rowOffset := y * t.Width
		// NDC Y for the pixel-center of this row; screen Y grows downward.
		ndcY := 1 - (float64(y)+0.5)*invH

		for x := 0; x < t.Width; x++ {
			idx := rowOffset + x
			depth := t.Depth[idx]
			if math.IsInf(depth, 1) {
				continue // untouched pixel keeps the background
			}

			if gb.Flags[idx]&FlagUnlit != 0 {
				t.Color[idx] = gb.Albedo[idx].RGBA()
				continue
			}

			normal := gb.Normal[idx].Normalize()

			if p.BakeNormals {
				t.Color[idx] = scene.ColorF{
					R: normal.X*0.5 + 0.5,
					G: normal.Y*0.5 + 0.5,
					B: normal.Z*0.5 + 0.5,
				}.RGBA()
				continue
			}

			if p.Shading == scene.ShadeNone {
				t.Color[idx] = gb.Albedo[idx].RGBA()
				continue
			}

			mat := gb.Material[idx]
			if mat == nil {
				mat = &defaultMaterial
			}

			// Unproject the pixel center back to world space through the
			// inverse view-projection matrix.
			ndcX := (float64(x)+0.5)*invW - 1
			worldPos := p.InvViewProj.MulVec4(math3d.V4(ndcX, ndcY, depth, 1)).PerspectiveDivide()

			base := gb.Albedo[idx].Mul(mat.Diffuse)
			viewDir := p.CameraPos.Sub(worldPos).Normalize()

			// Ambient contributes once per pixel, not once per light.
			result := mat.Ambient.Mul(p.Ambient)

			for li := range p.Lights {
				result = result.Add(lightContribution(
					&p.Lights[li], mat, base, normal, worldPos, viewDir,
					p.Shading == scene.ShadeFlat,
				))
			}

			t.Color[idx] = result.RGBA()
		}
	}
}

// lightContribution evaluates one light at a shaded point. Flat shading
// skips the specular term.
func lightContribution(l *scene.Light, mat *scene.Material, base scene.ColorF, normal, worldPos, viewDir math3d.Vec3, flat bool) scene.ColorF {
	var lightDir math3d.Vec3 // from the point toward the light
	atten := 1.0
	spot := 1.0

	switch l.Kind {
	case scene.Directional:
		lightDir = l.Direction.Negate()

	case scene.Point:
		toLight := l.Position.Sub(worldPos)
		d := toLight.Len()
		if d == 0 {
			return scene.Black
		}
		lightDir = toLight.Div(d)
		atten = l.Attenuation(d)

	case scene.Spot:
		toLight := l.Position.Sub(worldPos)
		d := toLight.Len()
		if d == 0 {
			return scene.Black
		}
		lightDir = toLight.Div(d)
		atten = l.Attenuation(d)

		// Angular falloff: full inside the inner cone, zero outside the
		// outer cone, smooth in between.
		cosTheta := lightDir.Negate().Dot(l.Direction)
		if cosTheta <= l.OuterCutoff {
			return scene.Black
		}
		if cosTheta < l.InnerCutoff {
			spot = (cosTheta - l.OuterCutoff) / (l.InnerCutoff - l.OuterCutoff)
		}
	}

	diff := normal.Dot(lightDir)
	if diff <= 0 {
		return scene.Black
	}

	contrib := base.Scale(diff)

	if !flat && mat.Shininess > 0 {
		half := lightDir.Add(viewDir).Normalize()
		specAngle := normal.Dot(half)
		if specAngle > 0 {
			contrib = contrib.Add(mat.Specular.Scale(math.Pow(specAngle, mat.Shininess)))
		}
	}

	return contrib.Mul(l.Color).Scale(l.Intensity * atten * spot)
}
