package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/hexlade/facet/pkg/config"
	"github.com/hexlade/facet/pkg/math3d"
	"github.com/hexlade/facet/pkg/render"
	"github.com/hexlade/facet/pkg/scene"
)

// runWindow starts a desktop window that displays the render target and
// forwards keyboard input. It blocks until the window closes.
func runWindow(cfg config.Config, modelPath string) error {
	width, height := cfg.Width, cfg.Height
	if width == 0 || height == 0 {
		width, height = 640, 360
	}

	chunks := cfg.Chunks
	if chunks == 0 {
		chunks = max(cfg.Workers, 1)
	}
	pipeline, err := render.NewPipeline(width, height, chunks)
	if err != nil {
		return err
	}
	pipeline.Workers = cfg.Workers
	pipeline.Background = cfg.BackgroundColor()
	pipeline.BakeNormals = *bakeFlag
	pipeline.SetBackfaceCulling(cfg.Culling())
	pipeline.SetFixedPointBits(cfg.FixedPointBits)

	s, subject, err := buildScene(cfg, modelPath)
	if err != nil {
		return err
	}
	s.Camera.SetAspectRatio(float64(width) / float64(height))

	g := &viewerGame{
		pipeline: pipeline,
		scene:    s,
		subject:  subject,
		rotation: NewRotationState(cfg.FPS),
		view:     &ViewState{Culling: cfg.Culling()},
		cameraZ:  5.0,
		last:     time.Now(),
	}
	ebiten.SetWindowTitle("facet")
	ebiten.SetWindowSize(width*2, height*2)
	ebiten.SetTPS(cfg.FPS)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

type viewerGame struct {
	pipeline *render.Pipeline
	scene    *scene.Scene
	subject  *scene.Entity
	rotation *RotationState
	view     *ViewState

	fbImg   *ebiten.Image
	cameraZ float64
	last    time.Time
}

func (g *viewerGame) Update() error {
	now := time.Now()
	dt := now.Sub(g.last).Seconds()
	g.last = now
	if dt > 0.1 {
		dt = 0.1
	}

	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	const torque = 3.0
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		g.rotation.ApplyImpulse(-torque*dt, 0, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		g.rotation.ApplyImpulse(torque*dt, 0, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		g.rotation.ApplyImpulse(0, -torque*dt, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		g.rotation.ApplyImpulse(0, torque*dt, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyQ) {
		g.rotation.ApplyImpulse(0, 0, -torque*dt)
	}
	if ebiten.IsKeyPressed(ebiten.KeyE) {
		g.rotation.ApplyImpulse(0, 0, torque*dt)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.rotation.ApplyImpulse(
			(rand.Float64()-0.5)*1.5,
			(rand.Float64()-0.5)*1.5,
			(rand.Float64()-0.5)*1.5,
		)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.rotation.Reset()
		g.cameraZ = 5.0
		g.scene.Camera.SetPosition(math3d.V3(0, 0.5, g.cameraZ))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		g.view.Wireframe = !g.view.Wireframe
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.view.FixedPoint = !g.view.FixedPoint
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.pipeline.BakeNormals = !g.pipeline.BakeNormals
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.view.Culling = !g.view.Culling
		g.pipeline.SetBackfaceCulling(g.view.Culling)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		switch g.scene.Shading {
		case scene.ShadeBlinnPhong:
			g.scene.Shading = scene.ShadeFlat
		case scene.ShadeFlat:
			g.scene.Shading = scene.ShadeNone
		default:
			g.scene.Shading = scene.ShadeBlinnPhong
		}
	}

	_, wheelY := ebiten.Wheel()
	if wheelY != 0 {
		g.cameraZ -= wheelY * 0.5
		if g.cameraZ < 1 {
			g.cameraZ = 1
		}
		if g.cameraZ > 20 {
			g.cameraZ = 20
		}
		g.scene.Camera.SetPosition(math3d.V3(0, 0.5, g.cameraZ))
	}

	g.rotation.Update()
	g.subject.Rotation = math3d.V3(
		g.rotation.Pitch.Position,
		g.rotation.Yaw.Position,
		g.rotation.Roll.Position,
	)
	g.view.Apply(g.subject)

	for i := range g.scene.Lights {
		g.scene.Lights[i].Orbit(math3d.Zero3(), 2.5, 0.8, dt)
	}

	return g.pipeline.Render(context.Background(), g.scene)
}

func (g *viewerGame) Draw(screen *ebiten.Image) {
	target := g.pipeline.Target()
	if g.fbImg == nil {
		g.fbImg = ebiten.NewImage(target.Width, target.Height)
	}
	g.fbImg.WritePixels(target.ToImage().Pix)
	screen.DrawImage(g.fbImg, nil)

	stats := g.pipeline.Stats()
	ebiten.SetWindowTitle(fmt.Sprintf("facet - %d/%d tris - %s",
		stats.TrianglesOut, stats.TrianglesIn, g.scene.Shading))
}

func (g *viewerGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	target := g.pipeline.Target()
	return target.Width, target.Height
}
