// facet - Terminal 3D scene viewer
// Renders glTF models or a built-in demo scene with a parallel software
// rasterizer and deferred lighting.
//
// Controls:
//
//	Mouse drag  - Rotate model (yaw/pitch)
//	Scroll      - Zoom in/out
//	W/S         - Pitch up/down
//	A/D         - Yaw left/right
//	Q/E         - Roll left/right
//	Space       - Apply random impulse
//	R           - Reset rotation
//	X           - Toggle wireframe mode
//	P           - Toggle fixed-point (retro) mode
//	N           - Toggle baked-normal debug view
//	C           - Toggle backface culling
//	F           - Cycle shading model
//	O           - Toggle debug overlay (axes, grid, light markers)
//	?           - Toggle HUD overlay
//	+/-         - Adjust zoom
//	Esc         - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/hexlade/facet/pkg/config"
	"github.com/hexlade/facet/pkg/math3d"
	"github.com/hexlade/facet/pkg/models"
	"github.com/hexlade/facet/pkg/render"
	"github.com/hexlade/facet/pkg/scene"
)

var (
	configPath = flag.String("config", "", "Path to YAML config file")
	windowMode = flag.Bool("window", false, "Render to a desktop window instead of the terminal")
	targetFPS  = flag.Int("fps", 0, "Target FPS (overrides config)")
	shading    = flag.String("shading", "", "Shading model: blinn-phong, flat, none (overrides config)")
	bakeFlag   = flag.Bool("bake-normals", false, "Render normals as colors (debug)")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "facet - Terminal 3D scene viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: facet [options] [model.glb]\n\n")
		fmt.Fprintf(os.Stderr, "Without a model, a built-in demo scene is shown.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Mouse drag  - Rotate model\n")
		fmt.Fprintf(os.Stderr, "  Scroll      - Zoom in/out\n")
		fmt.Fprintf(os.Stderr, "  W/S/A/D     - Pitch and yaw\n")
		fmt.Fprintf(os.Stderr, "  Q/E         - Roll left/right\n")
		fmt.Fprintf(os.Stderr, "  Space       - Random spin\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset view\n")
		fmt.Fprintf(os.Stderr, "  X           - Toggle wireframe\n")
		fmt.Fprintf(os.Stderr, "  P           - Toggle fixed-point mode\n")
		fmt.Fprintf(os.Stderr, "  N           - Toggle normal debug view\n")
		fmt.Fprintf(os.Stderr, "  C           - Toggle backface culling\n")
		fmt.Fprintf(os.Stderr, "  F           - Cycle shading model\n")
		fmt.Fprintf(os.Stderr, "  O           - Toggle debug overlay\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if *targetFPS > 0 {
		cfg.FPS = *targetFPS
	}
	if *shading != "" {
		cfg.Shading = *shading
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var modelPath string
	if flag.NArg() > 0 {
		modelPath = flag.Arg(0)
	}

	var err error
	if *windowMode {
		err = runWindow(cfg, modelPath)
	} else {
		err = runTerminal(cfg, modelPath)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildScene loads the model (or the demo scene) and sets up camera and
// lights.
func buildScene(cfg config.Config, modelPath string) (*scene.Scene, *scene.Entity, error) {
	s := scene.NewScene()
	s.Ambient = scene.White.Scale(cfg.Ambient)

	model, err := cfg.ShadingModel()
	if err != nil {
		return nil, nil, err
	}
	s.Shading = model

	var subject *scene.Entity

	if modelPath != "" {
		ext := strings.ToLower(filepath.Ext(modelPath))
		if ext != ".glb" && ext != ".gltf" {
			return nil, nil, fmt.Errorf("unsupported format: %s (use .glb or .gltf)", ext)
		}
		mesh, err := models.LoadGLB(modelPath)
		if err != nil {
			return nil, nil, fmt.Errorf("load model: %w", err)
		}

		// Center and scale to a ~2 unit cube so any model fills the view.
		center := mesh.Center()
		size := mesh.Size()
		maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
		if maxDim > 0 {
			scale := 2.0 / maxDim
			mesh.Transform(math3d.ScaleUniform(scale).Mul(math3d.Translate(center.Negate())))
		}

		subject = scene.NewEntity(mesh)
		s.Add(subject)
	} else {
		subject = scene.NewEntity(models.NewCube(1.5, scene.CF(0.9, 0.4, 0.3)))
		s.Add(subject)

		orb := scene.NewEntity(models.NewUVSphere(0.4, 12, 24, scene.CF(0.3, 0.5, 0.9)))
		orb.Position = math3d.V3(1.6, 0.6, -0.5)
		s.Add(orb)

		floor := scene.NewEntity(models.NewPlane(8, 8, scene.CF(0.35, 0.35, 0.4)))
		floor.Position = math3d.V3(0, -1.2, 0)
		s.Add(floor)
	}

	s.AddLight(scene.NewDirectional(math3d.V3(-0.4, -1, -0.3), scene.White, 0.7))
	s.AddLight(scene.EasyPoint(math3d.V3(2.5, 1.5, 2)))
	s.AddLight(scene.DefaultSpot(math3d.V3(0, 3, 0)))

	s.Camera.SetPosition(math3d.V3(0, 0.5, 5))
	s.Camera.LookAt(math3d.Zero3())

	return s, subject, nil
}

// RotationAxis tracks position and velocity for one rotation axis with
// spring decay.
type RotationAxis struct {
	Position  float64
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64 // internal spring velocity (for animating Velocity toward 0)
}

// NewRotationAxis creates an axis with harmonica spring for smooth velocity
// decay.
func NewRotationAxis(fps int) RotationAxis {
	return RotationAxis{
		// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Update applies velocity to position and decays velocity toward 0.
func (a *RotationAxis) Update() {
	a.Position += a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

// RotationState holds rotation with harmonica spring physics.
type RotationState struct {
	Pitch, Yaw, Roll RotationAxis
	fps              int
}

func NewRotationState(fps int) *RotationState {
	return &RotationState{
		Pitch: NewRotationAxis(fps),
		Yaw:   NewRotationAxis(fps),
		Roll:  NewRotationAxis(fps),
		fps:   fps,
	}
}

func (r *RotationState) Update() {
	r.Pitch.Update()
	r.Yaw.Update()
	r.Roll.Update()
}

func (r *RotationState) ApplyImpulse(pitch, yaw, roll float64) {
	r.Pitch.Velocity += pitch
	r.Yaw.Velocity += yaw
	r.Roll.Velocity += roll
}

func (r *RotationState) Reset() {
	r.Pitch = NewRotationAxis(r.fps)
	r.Yaw = NewRotationAxis(r.fps)
	r.Roll = NewRotationAxis(r.fps)
}

// ViewState holds interactive toggles (UI state, not library code).
type ViewState struct {
	Wireframe   bool
	FixedPoint  bool
	Culling     bool
	ShowHUD     bool
	ShowOverlay bool
}

// Apply pushes the view toggles onto the subject entity.
func (v *ViewState) Apply(subject *scene.Entity) {
	switch {
	case v.Wireframe:
		subject.Mode = scene.ModeWireframe
	case v.FixedPoint:
		subject.Mode = scene.ModeFixedPoint
	default:
		subject.Mode = scene.ModeSolid
	}
}

// HUD renders an overlay with scene info and render stats.
type HUD struct {
	filename  string
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

func NewHUD(filename string) *HUD {
	return &HUD{filename: filename, fpsTime: time.Now()}
}

// UpdateFPS updates the FPS counter (call once per frame).
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Render draws the HUD overlay directly to the terminal.
func (h *HUD) Render(width, height int, view *ViewState, s *scene.Scene, stats render.FrameStats) {
	const (
		reset     = "\x1b[0m"
		bold      = "\x1b[1m"
		bgBlack   = "\x1b[40m"
		fgWhite   = "\x1b[97m"
		fgGreen   = "\x1b[92m"
		fgCyan    = "\x1b[96m"
		clearLine = "\x1b[2K"
	)

	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	// Always clear the HUD rows (so toggling off works)
	fmt.Print(moveTo(1, 1) + clearLine)
	fmt.Print(moveTo(height, 1) + clearLine)

	if !view.ShowHUD {
		return
	}

	fmt.Printf("%s%s%s %.0f FPS %s", moveTo(1, 1), bgBlack, fgGreen, h.fps, reset)

	titleCol := max((width-len(h.filename)-2)/2, 1)
	fmt.Printf("%s%s%s%s %s %s", moveTo(1, titleCol), bold, bgBlack, fgWhite, h.filename, reset)

	triStr := fmt.Sprintf("%d/%d tris", stats.TrianglesOut, stats.TrianglesIn)
	polyCol := max(width-len(triStr)-2, 1)
	fmt.Printf("%s%s%s%s %s %s", moveTo(1, polyCol), bgBlack, fgCyan, bold, triStr, reset)

	check := func(on bool) string {
		if on {
			return "[✓]"
		}
		return "[ ]"
	}
	modeStr := fmt.Sprintf("%s%s %s Wireframe  %s FixedPoint  %s Culling  shading: %s %s",
		bgBlack, fgWhite, check(view.Wireframe), check(view.FixedPoint), check(view.Culling), s.Shading, reset)
	fmt.Print(moveTo(height, 1) + modeStr)
}

func runTerminal(cfg config.Config, modelPath string) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Enable mouse mode
	fmt.Fprint(os.Stdout, "\x1b[?1003h") // Enable any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // Enable SGR extended mouse mode

	presenter := render.NewTerminalRenderer(term, width, height)
	pxW, pxH := presenter.TargetSize()

	chunks := cfg.Chunks
	if chunks == 0 {
		chunks = max(cfg.Workers, 1)
	}
	pipeline, err := render.NewPipeline(pxW, pxH, chunks)
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
	s.Camera.SetAspectRatio(float64(pxW) / float64(pxH))

	title := "demo scene"
	if modelPath != "" {
		title = filepath.Base(modelPath)
	}
	hud := NewHUD(title)

	rotation := NewRotationState(cfg.FPS)
	view := &ViewState{Culling: cfg.Culling(), ShowHUD: true}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	inputTorque := struct{ pitch, yaw, roll float64 }{}
	const torqueStrength = 3.0

	var mouseDown bool
	var lastMouseX, lastMouseY int
	cameraZ := 5.0

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				presenter = render.NewTerminalRenderer(term, width, height)
				pxW, pxH = presenter.TargetSize()
				if p, err := render.NewPipeline(pxW, pxH, chunks); err == nil {
					p.Workers = pipeline.Workers
					p.Background = pipeline.Background
					p.BakeNormals = pipeline.BakeNormals
					p.SetBackfaceCulling(view.Culling)
					p.SetFixedPointBits(cfg.FixedPointBits)
					pipeline = p
				}
				s.Camera.SetAspectRatio(float64(pxW) / float64(pxH))

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
					cancel()
					return
				case ev.MatchString("q"):
					inputTorque.roll = -torqueStrength
				case ev.MatchString("e"):
					inputTorque.roll = torqueStrength
				case ev.MatchString("r"):
					rotation.Reset()
					cameraZ = 5.0
					s.Camera.SetPosition(math3d.V3(0, 0.5, cameraZ))
				case ev.MatchString("w", "up"):
					inputTorque.pitch = -torqueStrength
				case ev.MatchString("s", "down"):
					inputTorque.pitch = torqueStrength
				case ev.MatchString("a", "left"):
					inputTorque.yaw = -torqueStrength
				case ev.MatchString("d", "right"):
					inputTorque.yaw = torqueStrength
				case ev.MatchString("space"):
					rotation.ApplyImpulse(
						(rand.Float64()-0.5)*1.5,
						(rand.Float64()-0.5)*1.5,
						(rand.Float64()-0.5)*1.5,
					)
				case ev.MatchString("+", "="):
					cameraZ = math.Max(1, cameraZ-0.5)
					s.Camera.SetPosition(math3d.V3(0, 0.5, cameraZ))
				case ev.MatchString("-", "_"):
					cameraZ = math.Min(20, cameraZ+0.5)
					s.Camera.SetPosition(math3d.V3(0, 0.5, cameraZ))
				case ev.MatchString("x"):
					view.Wireframe = !view.Wireframe
				case ev.MatchString("p"):
					view.FixedPoint = !view.FixedPoint
				case ev.MatchString("n"):
					pipeline.BakeNormals = !pipeline.BakeNormals
				case ev.MatchString("c"):
					view.Culling = !view.Culling
					pipeline.SetBackfaceCulling(view.Culling)
				case ev.MatchString("o"):
					view.ShowOverlay = !view.ShowOverlay
				case ev.MatchString("f"):
					switch s.Shading {
					case scene.ShadeBlinnPhong:
						s.Shading = scene.ShadeFlat
					case scene.ShadeFlat:
						s.Shading = scene.ShadeNone
					default:
						s.Shading = scene.ShadeBlinnPhong
					}
				case ev.MatchString("?"), ev.MatchString("shift+/"):
					view.ShowHUD = !view.ShowHUD
				}

			case uv.KeyReleaseEvent:
				switch {
				case ev.MatchString("w"), ev.MatchString("up"), ev.MatchString("s"), ev.MatchString("down"):
					inputTorque.pitch = 0
				case ev.MatchString("a"), ev.MatchString("left"), ev.MatchString("d"), ev.MatchString("right"):
					inputTorque.yaw = 0
				case ev.MatchString("q"), ev.MatchString("e"):
					inputTorque.roll = 0
				}

			case uv.MouseClickEvent:
				mouseDown = true
				lastMouseX, lastMouseY = ev.X, ev.Y

			case uv.MouseReleaseEvent:
				mouseDown = false

			case uv.MouseMotionEvent:
				if mouseDown {
					dx := ev.X - lastMouseX
					dy := ev.Y - lastMouseY
					rotation.ApplyImpulse(float64(dy)*0.03, float64(dx)*0.03, 0)
					lastMouseX, lastMouseY = ev.X, ev.Y
				}

			case uv.MouseWheelEvent:
				switch ev.Button {
				case uv.MouseWheelUp:
					cameraZ = math.Max(1, cameraZ-0.5)
				case uv.MouseWheelDown:
					cameraZ = math.Min(20, cameraZ+0.5)
				}
				s.Camera.SetPosition(math3d.V3(0, 0.5, cameraZ))
			}
		}
	}()

	targetDuration := time.Second / time.Duration(cfg.FPS)
	lastFrame := time.Now()

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now

		if dt > 0.1 {
			dt = 0.1
		}

		// Apply input torque and decay it (key release events unreliable)
		rotation.ApplyImpulse(
			inputTorque.pitch*dt,
			inputTorque.yaw*dt,
			inputTorque.roll*dt,
		)
		inputTorque.pitch *= 0.9
		inputTorque.yaw *= 0.9
		inputTorque.roll *= 0.9

		rotation.Update()

		subject.Rotation = math3d.V3(
			rotation.Pitch.Position,
			rotation.Yaw.Position,
			rotation.Roll.Position,
		)
		view.Apply(subject)

		// Swing the point light slowly around the subject.
		for i := range s.Lights {
			s.Lights[i].Orbit(math3d.Zero3(), 2.5, 0.8, dt)
		}

		if err := pipeline.Render(ctx, s); err != nil {
			if ctx.Err() != nil {
				cleanup()
				return nil
			}
			cleanup()
			return fmt.Errorf("render: %w", err)
		}

		if view.ShowOverlay {
			ov := render.NewOverlay(s.Camera, pipeline.Target())
			ov.DrawGrid(8, 1, render.RGB(60, 60, 70))
			ov.DrawAxes(1.5)
			ov.DrawBounds(subject, render.ColorGray)
			for _, l := range s.Lights {
				ov.DrawLightMarker(l, 0.3, render.ColorYellow)
			}
		}

		presenter.Render(pipeline.Target())
		if err := presenter.Flush(); err != nil {
			cleanup()
			return fmt.Errorf("flush: %w", err)
		}

		hud.UpdateFPS()
		hud.Render(width, height, view, s, pipeline.Stats())

		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
