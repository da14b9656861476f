// trophy - Terminal 3D Model Viewer
// View glTF/GLB models in your terminal with full 3D rendering.
//
// Controls:
//
//	Mouse drag  - Rotate model (yaw/pitch)
//	Scroll      - Zoom in/out
//	W/S         - Pitch up/down
//	A/D         - Yaw left/right
//	Q/E         - Roll left/right (Q rolls left, E rolls right)
//	Space       - Apply random impulse
//	R           - Reset rotation
//	T           - Toggle texture on/off
//	X           - Toggle wireframe mode (x-ray)
//	L           - Light positioning mode (move mouse, click to set, Esc to cancel)
//	G           - Toggle debug ground grid and axes overlay
//	?           - Toggle HUD overlay (FPS, filename, poly count, mode status)
//	+/-         - Adjust zoom
//	Esc         - Quit (or cancel light mode)
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
	"github.com/charmbracelet/log"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/schollz/progressbar/v3"

	"github.com/taigrr/trophy/pkg/engine"
	"github.com/taigrr/trophy/pkg/math3d"
	"github.com/taigrr/trophy/pkg/models"
	"github.com/taigrr/trophy/pkg/render"
	"github.com/taigrr/trophy/pkg/scene"
	"github.com/taigrr/trophy/pkg/shader"
)

var (
	texturePath   = flag.String("texture", "", "Path to texture image (PNG/JPG/BMP)")
	targetFPS     = flag.Int("fps", 60, "Target FPS")
	bgColor       = flag.String("bg", "30,30,40", "Background color (R,G,B)")
	engineConfig  = flag.String("config", "", "Path to a TOML engine config (see pkg/engine.Config)")
	sceneSettings = flag.String("scene-settings", "", "Path to a JSON scene-settings file, hot-reloaded while running")
	threadCount   = flag.Int("threads", 4, "Worker pool size for strip rasterization")
	rasterFlag    = flag.String("raster", "halfspace", "Rasterizer: scanline or halfspace")
	aaFlag        = flag.String("aa", "off", "Anti-aliasing: off, msaa4x, ssaa2x, ssaa4x")
	mipmapsFlag   = flag.Bool("mipmaps", true, "Enable analytic mip-level texture sampling")
	benchFrames   = flag.Int("bench", 0, "Run N frames headlessly against a synthetic scene and report timing, then exit")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "trophy - Terminal 3D Model Viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: trophy [options] <model.glb|model.gltf>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Mouse drag  - Rotate model\n")
		fmt.Fprintf(os.Stderr, "  Scroll      - Zoom in/out\n")
		fmt.Fprintf(os.Stderr, "  W/S/A/D     - Pitch and yaw\n")
		fmt.Fprintf(os.Stderr, "  Q/E         - Roll left/right\n")
		fmt.Fprintf(os.Stderr, "  Space       - Random spin\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset view\n")
		fmt.Fprintf(os.Stderr, "  T           - Toggle texture\n")
		fmt.Fprintf(os.Stderr, "  X           - Toggle wireframe\n")
		fmt.Fprintf(os.Stderr, "  L           - Position light (mouse to aim, click to set)\n")
		fmt.Fprintf(os.Stderr, "  G           - Toggle debug grid/axes overlay\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	if *benchFrames > 0 {
		if err := runBench(*benchFrames); err != nil {
			log.Fatal("bench failed", "err", err)
		}
		return
	}

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		log.Fatal("trophy exited with an error", "err", err)
	}
}

// RotationAxis tracks position and velocity for one rotation axis with spring decay
type RotationAxis struct {
	Position  float64
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64 // internal spring velocity (for animating Velocity toward 0)
}

// NewRotationAxis creates an axis with harmonica spring for smooth velocity decay
func NewRotationAxis(fps int) RotationAxis {
	return RotationAxis{
		// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Update applies velocity to position and decays velocity toward 0 using spring
func (a *RotationAxis) Update() {
	a.Position += a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

// RotationState holds rotation with harmonica spring physics
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

// RenderMode controls how the mesh is drawn
type RenderMode int

const (
	RenderModeTextured  RenderMode = iota // Textured with lighting via shader.LitShader
	RenderModeFlat                        // Lit, untextured
	RenderModeWireframe                   // Wireframe only, drawn via the debug Rasterizer overlay
)

// ViewState holds all view-related settings (UI state, not library code)
type ViewState struct {
	TextureEnabled bool
	RenderMode     RenderMode
	LightMode      bool
	LightDir       math3d.Vec3 // direction from the surface toward the light
	PendingLight   math3d.Vec3
	ShowHUD        bool
	ShowGrid       bool
}

func NewViewState() *ViewState {
	return &ViewState{
		TextureEnabled: true,
		RenderMode:     RenderModeTextured,
		LightMode:      false,
		LightDir:       math3d.V3(0.5, 1, 0.3).Normalize(),
	}
}

// HUD renders an overlay with model info and controls
type HUD struct {
	filename  string
	polyCount int
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

func NewHUD(filename string, polyCount int) *HUD {
	return &HUD{filename: filename, polyCount: polyCount, fpsTime: time.Now()}
}

func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

func (h *HUD) Render(width, height int, viewState *ViewState) {
	const (
		reset     = "\x1b[0m"
		bold      = "\x1b[1m"
		dim       = "\x1b[2m"
		bgBlack   = "\x1b[40m"
		fgWhite   = "\x1b[97m"
		fgGreen   = "\x1b[92m"
		fgYellow  = "\x1b[93m"
		fgCyan    = "\x1b[96m"
		clearLine = "\x1b[2K"
	)

	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	fmt.Print(moveTo(1, 1) + clearLine)
	fmt.Print(moveTo(height, 1) + clearLine)

	if viewState.LightMode {
		lightMsg := fmt.Sprintf("%s%s%s ◉ LIGHT MODE - Move mouse to position, click to set, Esc to cancel %s",
			bgBlack, bold, fgYellow, reset)
		lightCol := max((width-60)/2, 1)
		fmt.Print(moveTo(height, lightCol) + lightMsg)
		return
	}

	if !viewState.ShowHUD {
		return
	}

	fpsStr := fmt.Sprintf("%s%s%s %.0f FPS %s", moveTo(1, 1), bgBlack, fgGreen, h.fps, reset)
	fmt.Print(fpsStr)

	titleStr := fmt.Sprintf("%s%s%s %s %s", bold, bgBlack, fgWhite, h.filename, reset)
	titleCol := max((width-len(h.filename)-2)/2, 1)
	fmt.Print(moveTo(1, titleCol) + titleStr)

	polyStr := fmt.Sprintf("%s%s%s %d polys %s", bgBlack, fgCyan, bold, h.polyCount, reset)
	polyCol := max(width-12, 1)
	fmt.Print(moveTo(1, polyCol) + polyStr)

	checkTex := "[ ]"
	if viewState.TextureEnabled && viewState.RenderMode != RenderModeWireframe {
		checkTex = "[✓]"
	}
	checkWire := "[ ]"
	if viewState.RenderMode == RenderModeWireframe {
		checkWire = "[✓]"
	}

	modeStr := fmt.Sprintf("%s%s %s Texture  %s X-Ray (wireframe) %s",
		bgBlack, fgWhite, checkTex, checkWire, reset)
	fmt.Print(moveTo(height, 1) + modeStr)

	hint := fmt.Sprintf("%s%s%s L: position light %s", bgBlack, dim, fgYellow, reset)
	hintCol := max(width-18, 1)
	fmt.Print(moveTo(height, hintCol) + hint)
}

// ScreenToLightDir converts a screen position to a light direction.
// Maps screen coords to a hemisphere above the object.
func (v *ViewState) ScreenToLightDir(screenX, screenY, width, height int) math3d.Vec3 {
	nx := (float64(screenX)/float64(width))*2 - 1
	ny := (float64(screenY)/float64(height))*2 - 1

	lenSq := nx*nx + ny*ny
	if lenSq > 1 {
		length := math.Sqrt(lenSq)
		nx /= length
		ny /= length
		lenSq = 1
	}

	nz := math.Sqrt(1 - lenSq)
	return math3d.V3(nx, -ny, nz).Normalize()
}

// loadModel loads a glTF/GLB model and its embedded texture, if any. OBJ is
// not supported: mesh loading is grounded entirely on the qmuntal/gltf
// loader in pkg/models, which never grew an OBJ path.
func loadModel(modelPath string) (*models.Mesh, *render.Texture, error) {
	ext := strings.ToLower(filepath.Ext(modelPath))
	if ext != ".glb" && ext != ".gltf" {
		return nil, nil, fmt.Errorf("unsupported format %q: only .glb and .gltf are supported", ext)
	}

	mesh, embeddedImg, err := models.LoadGLBWithTexture(modelPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load model: %w", err)
	}

	var texture *render.Texture
	if *texturePath != "" {
		texture, err = render.LoadTexture(*texturePath)
		if err != nil {
			log.Warn("could not load texture, falling back", "path", *texturePath, "err", err)
		}
	}
	if texture == nil && embeddedImg != nil {
		texture = render.TextureFromImage(embeddedImg)
		log.Info("using embedded texture", "width", embeddedImg.Bounds().Dx(), "height", embeddedImg.Bounds().Dy())
	}
	if texture == nil {
		texture = render.NewCheckerTexture(64, 64, 8, render.RGB(200, 200, 200), render.RGB(100, 100, 100))
	}
	if *mipmapsFlag {
		texture.BuildMipChain()
	}

	return mesh, texture, nil
}

// buildEngineContext constructs the RenderingContext per the CLI flags (or
// -config file if given), sized to a terminal framebuffer.
func buildEngineContext(width, height int) (*engine.RenderingContext, error) {
	cfg := engine.DefaultConfig()
	if *engineConfig != "" {
		loaded, err := engine.LoadConfig(*engineConfig)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.Width, cfg.Height = width, height
	// Without -config the flags decide; with it, only flags given explicitly override the file.
	useFlag := map[string]bool{"threads": *engineConfig == "", "raster": *engineConfig == "", "aa": *engineConfig == "", "mipmaps": *engineConfig == ""}
	flag.Visit(func(f *flag.Flag) { useFlag[f.Name] = true })
	if useFlag["threads"] {
		cfg.ThreadCount = *threadCount
	}
	if useFlag["raster"] {
		cfg.Raster = *rasterFlag
	}
	if useFlag["aa"] {
		cfg.AntiAlias = *aaFlag
	}
	if useFlag["mipmaps"] {
		cfg.Mipmaps = *mipmapsFlag
	}

	return engine.NewContextFromConfig(cfg), nil
}

func run(modelPath string) error {
	var bgR, bgG, bgB uint8 = 30, 30, 40
	fmt.Sscanf(*bgColor, "%d,%d,%d", &bgR, &bgG, &bgB)

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

	fmt.Fprint(os.Stdout, "\x1b[?1003h") // Enable any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // Enable SGR extended mouse mode

	termRenderer := render.NewTerminalRenderer(term, width, height)
	fbWidth, fbHeight := termRenderer.FramebufferSize()
	fb := render.NewFramebuffer(fbWidth, fbHeight)

	sc := scene.NewScene()
	sc.Camera.SetAspectRatio(float64(fbWidth) / float64(fbHeight))
	sc.Camera.SetFOV(math.Pi / 3)
	sc.Camera.SetClipPlanes(0.1, 100)
	sc.Camera.SetPosition(math3d.V3(0, 0, 5))
	sc.Camera.LookAt(math3d.V3(0, 0, 0))

	wireframeOverlay := render.NewRasterizer(sc.Camera, fb)
	debugOverlay := render.NewWireframe(sc.Camera, fb)

	mesh, texture, err := loadModel(modelPath)
	if err != nil {
		return err
	}

	mesh.CalculateBounds()
	center := mesh.Center()
	size := mesh.Size()
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	if maxDim > 0 {
		scaleFactor := 2.0 / maxDim
		centering := math3d.Scale(math3d.V3(scaleFactor, scaleFactor, scaleFactor)).Mul(math3d.Translate(center.Scale(-1)))
		mesh.Transform(centering)
	}

	litShader := &shader.LitShader{EnableLighting: true}
	obj := scene.NewSceneObject(filepath.Base(modelPath), mesh, texture, litShader)
	sc.Objects = append(sc.Objects, obj)

	// A flat white 1x1 texture stands in for the real one in
	// RenderModeFlat/untextured mode: LitShader.Fragment always samples its
	// texture, so "no texture" means "a texture that contributes nothing but
	// white" rather than a nil pointer.
	whiteTexture := render.NewCheckerTexture(1, 1, 1, render.RGB(255, 255, 255), render.RGB(255, 255, 255))

	keyLight := &render.DirectionalLight{Name: "key", Color: render.ColorF{R: 1, G: 1, B: 1}, Multiplier: 1}
	sc.Lights = append(sc.Lights,
		&render.AmbientLight{Name: "ambient", Color: render.ColorF{R: 1, G: 1, B: 1}, Multiplier: 0.25},
		keyLight,
	)

	if *sceneSettings != "" {
		if err := sc.ApplySettings(*sceneSettings); err != nil {
			log.Warn("scene settings load failed", "path", *sceneSettings, "err", err)
		}
		stop, err := sc.WatchSettings(*sceneSettings)
		if err != nil {
			log.Warn("scene settings watch failed", "path", *sceneSettings, "err", err)
		} else {
			defer stop()
		}
	}

	ctx, err := buildEngineContext(fbWidth, fbHeight)
	if err != nil {
		return fmt.Errorf("build engine context: %w", err)
	}
	ctx.ClearColor = render.ToColorF(render.RGB(bgR, bgG, bgB))
	defer ctx.Close()

	log.Info("loaded model", "file", filepath.Base(modelPath), "vertices", mesh.VertexCount(), "triangles", mesh.TriangleCount())

	hud := NewHUD(filepath.Base(modelPath), mesh.TriangleCount())

	rotation := NewRotationState(*targetFPS)
	viewState := NewViewState()

	runCtx, cancel := context.WithCancel(context.Background())
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
				termRenderer = render.NewTerminalRenderer(term, width, height)
				fbWidth, fbHeight = termRenderer.FramebufferSize()
				fb = render.NewFramebuffer(fbWidth, fbHeight)
				wireframeOverlay = render.NewRasterizer(sc.Camera, fb)
				debugOverlay = render.NewWireframe(sc.Camera, fb)
				sc.Camera.SetAspectRatio(float64(fbWidth) / float64(fbHeight))
				ctx.Close()
				newCtx, rebuildErr := buildEngineContext(fbWidth, fbHeight)
				if rebuildErr != nil {
					log.Error("failed to rebuild engine context on resize", "err", rebuildErr)
					continue
				}
				newCtx.ClearColor = render.ToColorF(render.RGB(bgR, bgG, bgB))
				ctx = newCtx

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"):
					if viewState.LightMode {
						viewState.LightMode = false
					} else {
						cancel()
						return
					}
				case ev.MatchString("ctrl+c"):
					cancel()
					return
				case ev.MatchString("q"):
					inputTorque.roll = -torqueStrength
				case ev.MatchString("r"):
					rotation.Reset()
					cameraZ = 5.0
					sc.Camera.SetPosition(math3d.V3(0, 0, cameraZ))
				case ev.MatchString("w", "up"):
					inputTorque.pitch = -torqueStrength
				case ev.MatchString("s", "down"):
					inputTorque.pitch = torqueStrength
				case ev.MatchString("a", "left"):
					inputTorque.yaw = -torqueStrength
				case ev.MatchString("d", "right"):
					inputTorque.yaw = torqueStrength
				case ev.MatchString("e"):
					inputTorque.roll = torqueStrength
				case ev.MatchString("space"):
					rotation.ApplyImpulse(
						(rand.Float64()-0.5)*1.5,
						(rand.Float64()-0.5)*1.5,
						(rand.Float64()-0.5)*1.5,
					)
				case ev.MatchString("+", "="):
					cameraZ = math.Max(1, cameraZ-0.5)
					sc.Camera.SetPosition(math3d.V3(0, 0, cameraZ))
				case ev.MatchString("-", "_"):
					cameraZ = math.Min(20, cameraZ+0.5)
					sc.Camera.SetPosition(math3d.V3(0, 0, cameraZ))
				case ev.MatchString("t"):
					viewState.TextureEnabled = !viewState.TextureEnabled
				case ev.MatchString("x"):
					if viewState.RenderMode == RenderModeWireframe {
						viewState.RenderMode = RenderModeTextured
					} else {
						viewState.RenderMode = RenderModeWireframe
					}
				case ev.MatchString("l"):
					viewState.LightMode = true
					viewState.PendingLight = viewState.LightDir
				case ev.MatchString("g"):
					viewState.ShowGrid = !viewState.ShowGrid
				case ev.MatchString("?"), ev.MatchString("shift+/"):
					viewState.ShowHUD = !viewState.ShowHUD
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
				if viewState.LightMode {
					viewState.LightDir = viewState.PendingLight
					viewState.LightMode = false
				} else {
					mouseDown = true
					lastMouseX, lastMouseY = ev.X, ev.Y
				}

			case uv.MouseReleaseEvent:
				if !viewState.LightMode {
					mouseDown = false
				}

			case uv.MouseMotionEvent:
				if viewState.LightMode {
					viewState.PendingLight = viewState.ScreenToLightDir(ev.X, ev.Y, width, height)
				} else if mouseDown {
					dx := ev.X - lastMouseX
					dy := ev.Y - lastMouseY
					rotation.ApplyImpulse(float64(dy)*0.03, float64(dx)*0.03, 0)
					lastMouseX, lastMouseY = ev.X, ev.Y
				}

			case uv.MouseWheelEvent:
				switch ev.Button {
				case uv.MouseWheelUp:
					cameraZ -= 0.5
					if cameraZ < 1 {
						cameraZ = 1
					}
				case uv.MouseWheelDown:
					cameraZ += 0.5
					if cameraZ > 20 {
						cameraZ = 20
					}
				}
				sc.Camera.SetPosition(math3d.V3(0, 0, cameraZ))
			}
		}
	}()

	targetDuration := time.Second / time.Duration(*targetFPS)
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
		case <-runCtx.Done():
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

		rotation.ApplyImpulse(
			inputTorque.pitch*dt,
			inputTorque.yaw*dt,
			inputTorque.roll*dt,
		)
		inputTorque.pitch *= 0.9
		inputTorque.yaw *= 0.9
		inputTorque.roll *= 0.9

		rotation.Update()

		obj.Transform.SetRotation(math3d.V3(rotation.Pitch.Position, rotation.Yaw.Position, rotation.Roll.Position))

		lightDir := viewState.LightDir
		if viewState.LightMode {
			lightDir = viewState.PendingLight
		}
		keyLight.Dir = lightDir.Negate()

		if viewState.TextureEnabled && viewState.RenderMode != RenderModeFlat {
			obj.Texture = texture
		} else {
			obj.Texture = whiteTexture
		}

		switch viewState.RenderMode {
		case RenderModeWireframe:
			fb.Clear(render.RGB(bgR, bgG, bgB))
			wireframeOverlay.InvalidateFrustum()
			wireframeOverlay.DrawMeshWireframe(mesh, obj.Transform.Matrix(), render.RGB(0, 255, 128))
		default:
			ctx.Clear(true, true)
			ctx.Draw(sc)
			blit(ctx.Present(), fbWidth, fbHeight, fb)
		}

		if viewState.ShowGrid {
			debugOverlay.DrawGrid(4, 0.5, render.RGB(80, 80, 80))
			debugOverlay.DrawAxes(1.5)
		}

		termRenderer.Render(fb)
		if err := termRenderer.Flush(); err != nil {
			cleanup()
			return fmt.Errorf("flush: %w", err)
		}

		hud.UpdateFPS()
		hud.Render(width, height, viewState)

		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}

// blit copies a row-major engine.RenderingContext.Present() result into a
// Framebuffer for the terminal's half-block presentation path.
func blit(colors []render.Color, width, height int, fb *render.Framebuffer) {
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			fb.SetPixel(x, y, colors[y*width+x])
		}
	}
}

// runBench exercises the engine package headlessly: it builds a synthetic
// cube scene, renders frameCount frames through RenderingContext.Draw, and
// reports timing, with no terminal attached. Useful for sanity-checking the
// worker-pool strip dispatch (engine/worker.go, engine/context.go) and its
// raster/AA mode combinations without a live session.
func runBench(frameCount int) error {
	const w, h = 320, 200

	sc := scene.NewScene()
	sc.Camera.SetAspectRatio(float64(w) / float64(h))
	sc.Camera.SetFOV(math.Pi / 3)
	sc.Camera.SetClipPlanes(0.1, 100)
	sc.Camera.SetPosition(math3d.V3(0, 2, 6))
	sc.Camera.LookAt(math3d.V3(0, 0, 0))

	mesh := cubeMesh()
	tex := render.NewCheckerTexture(32, 32, 4, render.RGB(220, 220, 220), render.RGB(60, 60, 60))
	tex.BuildMipChain()

	obj := scene.NewSceneObject("bench-cube", mesh, tex, &shader.LitShader{EnableLighting: true})
	sc.Objects = append(sc.Objects, obj)
	sc.Lights = append(sc.Lights,
		&render.AmbientLight{Name: "ambient", Color: render.ColorF{R: 1, G: 1, B: 1}, Multiplier: 0.3},
		&render.DirectionalLight{Name: "key", Color: render.ColorF{R: 1, G: 1, B: 1}, Multiplier: 1, Dir: math3d.V3(-0.4, -1, -0.3).Normalize()},
	)

	ctx := engine.NewContextFromConfig(engine.Config{
		Width: w, Height: h, ThreadCount: *threadCount,
		Raster: *rasterFlag, AntiAlias: *aaFlag, Mipmaps: *mipmapsFlag,
	})
	defer ctx.Close()

	bar := progressbar.Default(int64(frameCount), "rendering")
	start := time.Now()
	for i := 0; i < frameCount; i++ {
		obj.Transform.SetRotation(math3d.V3(0, float64(i)*0.05, 0))
		ctx.Clear(true, true)
		ctx.Draw(sc)
		out := ctx.Present()
		if len(out) != w*h {
			return fmt.Errorf("present returned %d pixels, want %d", len(out), w*h)
		}
		bar.Add(1)
	}
	elapsed := time.Since(start)

	log.Info("bench complete",
		"frames", frameCount,
		"elapsed", elapsed,
		"fps", float64(frameCount)/elapsed.Seconds(),
		"raster", *rasterFlag,
		"aa", *aaFlag,
		"threads", *threadCount,
	)
	return nil
}

func cubeMesh() *models.Mesh {
	mesh := models.NewMesh("cube")
	positions := []math3d.Vec3{
		math3d.V3(-1, -1, 1), math3d.V3(1, -1, 1), math3d.V3(1, 1, 1), math3d.V3(-1, 1, 1),
		math3d.V3(-1, -1, -1), math3d.V3(1, -1, -1), math3d.V3(1, 1, -1), math3d.V3(-1, 1, -1),
	}
	uvs := []math3d.Vec2{math3d.V2(0, 0), math3d.V2(1, 0), math3d.V2(1, 1), math3d.V2(0, 1)}
	for i, p := range positions {
		mesh.Vertices = append(mesh.Vertices, models.MeshVertex{Position: p, Normal: p.Normalize(), UV: uvs[i%4]})
	}
	faces := [][3]int{
		{0, 1, 2}, {0, 2, 3}, // front
		{5, 4, 7}, {5, 7, 6}, // back
		{4, 0, 3}, {4, 3, 7}, // left
		{1, 5, 6}, {1, 6, 2}, // right
		{3, 2, 6}, {3, 6, 7}, // top
		{4, 5, 1}, {4, 1, 0}, // bottom
	}
	for _, f := range faces {
		mesh.Faces = append(mesh.Faces, models.Face{V: f, Material: -1})
	}
	mesh.CalculateBounds()
	return mesh
}
