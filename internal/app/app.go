// Package app implements the interactive viewer main loop.
package app

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/geosim/internal/config"
	"github.com/Faultbox/geosim/internal/controller"
	"github.com/Faultbox/geosim/internal/engine/camera"
	"github.com/Faultbox/geosim/internal/engine/debug"
	"github.com/Faultbox/geosim/internal/engine/framebuffer"
	"github.com/Faultbox/geosim/internal/engine/input"
	"github.com/Faultbox/geosim/internal/engine/lighting"
	"github.com/Faultbox/geosim/internal/engine/renderer"
	"github.com/Faultbox/geosim/internal/engine/window"
	"github.com/Faultbox/geosim/internal/logger"
	"github.com/Faultbox/geosim/internal/snapshot"
	"github.com/Faultbox/geosim/internal/viewer"
	"github.com/Faultbox/geosim/pkg/figure"
	gm "github.com/Faultbox/geosim/pkg/math"
)

// keymap binds scancodes to viewer commands.
var keymap = map[sdl.Scancode]viewer.Command{
	sdl.SCANCODE_1:        {Kind: viewer.CmdSelectShape, Shape: figure.Cube},
	sdl.SCANCODE_2:        {Kind: viewer.CmdSelectShape, Shape: figure.Pyramid},
	sdl.SCANCODE_3:        {Kind: viewer.CmdSelectShape, Shape: figure.Cuboid},
	sdl.SCANCODE_4:        {Kind: viewer.CmdSelectShape, Shape: figure.Prism},
	sdl.SCANCODE_5:        {Kind: viewer.CmdSelectShape, Shape: figure.Cylinder},
	sdl.SCANCODE_SPACE:    {Kind: viewer.CmdAutoAssemble},
	sdl.SCANCODE_LEFT:     {Kind: viewer.CmdStepBackward},
	sdl.SCANCODE_RIGHT:    {Kind: viewer.CmdStepForward},
	sdl.SCANCODE_TAB:      {Kind: viewer.CmdNextDimension},
	sdl.SCANCODE_EQUALS:   {Kind: viewer.CmdGrowDimension},
	sdl.SCANCODE_KP_PLUS:  {Kind: viewer.CmdGrowDimension},
	sdl.SCANCODE_MINUS:    {Kind: viewer.CmdShrinkDimension},
	sdl.SCANCODE_KP_MINUS: {Kind: viewer.CmdShrinkDimension},
	sdl.SCANCODE_F12:      {Kind: viewer.CmdScreenshot},
	sdl.SCANCODE_R:        {Kind: viewer.CmdResetView},
	sdl.SCANCODE_ESCAPE:   {Kind: viewer.CmdQuit},
}

// App is the viewer instance.
type App struct {
	cfg      *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
	ctrl     *controller.Controller
	session  *viewer.Session
	shots    *debug.ScreenshotCapture
	capture  *framebuffer.Framebuffer
	sun      gm.Vec3
	log      *zap.Logger
}

// New opens the window and builds the initial figure.
func New(cfg *config.Config) (*App, error) {
	a := &App{cfg: cfg, sun: lighting.DefaultSun(), log: logger.Named("app")}

	shape, err := cfg.Figure.ShapeType()
	if err != nil {
		return nil, err
	}
	dims, err := cfg.Figure.DimensionsFor(shape)
	if err != nil {
		return nil, err
	}

	bg, err := parseColor(cfg.Snapshot.Background)
	if err != nil {
		return nil, err
	}
	fg, err := parseColor(cfg.Snapshot.Color)
	if err != nil {
		return nil, err
	}

	a.log.Info("initializing viewer",
		zap.Int("width", cfg.Viewer.Width),
		zap.Int("height", cfg.Viewer.Height),
		zap.Stringer("shape", shape),
	)

	// Window first, the renderer needs its GL context.
	a.window, err = window.New(window.Config{
		Title:      "geosim",
		Width:      cfg.Viewer.Width,
		Height:     cfg.Viewer.Height,
		Fullscreen: cfg.Viewer.Fullscreen,
		VSync:      cfg.Viewer.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	w, h := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:      w,
		Height:     h,
		Background: bg,
		Color:      fg,
		LabelColor: [3]float32{1, 0.85, 0.3},
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.ctrl, err = controller.New(a.renderer,
		controller.WithShape(shape),
		controller.WithDimensions(dims),
		controller.WithProgress(cfg.Figure.Progress),
		controller.WithRate(cfg.Figure.AssembleRate),
		controller.WithFigureOptions(cfg.Figure.Options()...),
	)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create controller: %w", err)
	}

	a.session = viewer.NewSession(a.ctrl)
	a.input = input.New()
	a.camera = camera.NewOrbitCamera()
	a.refit()
	a.shots = debug.NewScreenshotCapture("screenshots", "geosim")

	a.log.Info("viewer initialized")
	return a, nil
}

// Run starts the main loop and returns when the window closes.
func (a *App) Run() error {
	a.running = true

	var frameBudget time.Duration
	if a.cfg.Viewer.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(a.cfg.Viewer.FPSLimit)
	}

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()
	title := ""

	a.log.Info("starting main loop")

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		if a.input.Update() {
			a.running = false
			break
		}
		a.handleEvents()

		a.ctrl.Tick(dt)

		if t := a.session.Title(); t != title {
			a.window.SetTitle(t)
			title = t
		}

		a.renderer.Render(a.camera.ViewMatrix(), a.projection(), a.sun)
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frameCount), zap.Duration("dt", dt))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if frameBudget > 0 {
			if spent := time.Since(now); spent < frameBudget {
				sdl.Delay(uint32((frameBudget - spent).Milliseconds()))
			}
		}
	}

	return nil
}

// Close releases GL and SDL resources.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.capture != nil {
		a.capture.Destroy()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}

func (a *App) handleEvents() {
	for _, event := range a.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			w, h := a.window.DrawableSize()
			a.renderer.Resize(w, h)

		case input.EventMouseMove:
			if a.input.Dragging() {
				a.camera.HandleDrag(float32(event.DeltaX), float32(event.DeltaY))
			}

		case input.EventMouseWheel:
			a.camera.HandleZoom(float32(event.DeltaY))

		case input.EventKeyDown:
			cmd, ok := keymap[event.Key]
			if !ok {
				continue
			}
			// Only dimension and progress steps auto-repeat.
			if event.Repeat && !repeatable(cmd.Kind) {
				continue
			}
			a.execute(cmd)
		}
	}
}

func (a *App) execute(cmd viewer.Command) {
	effect, err := a.session.Execute(cmd)
	if err != nil {
		a.log.Warn("command rejected", zap.Error(err))
		return
	}

	switch effect {
	case viewer.EffectRefit:
		a.refit()
	case viewer.EffectScreenshot:
		if err := a.screenshot(); err != nil {
			a.log.Error("screenshot failed", zap.Error(err))
		}
	case viewer.EffectQuit:
		a.running = false
	}
}

// refit frames the assembled figure so the view does not jump while it
// explodes and assembles.
func (a *App) refit() {
	f := a.ctrl.Figure()
	assembled, err := figure.New(f.Type, f.Dimensions, 1)
	if err != nil {
		a.log.Warn("refit failed", zap.Error(err))
		return
	}
	lo, hi := assembled.Bounds()
	// Exploded pieces stay within about half the explosion distance of
	// the box once the bounding sphere is taken around its diagonal.
	e := figure.ExplosionDistance(f.Type) / 2
	margin := gm.Vec3{X: e, Y: e, Z: e}
	a.camera.FitToBounds(lo.Sub(margin), hi.Add(margin))
}

// screenshot renders one frame into an offscreen buffer and saves it.
func (a *App) screenshot() error {
	w, h := a.renderer.Size()
	if a.capture == nil {
		fb, err := framebuffer.New(int32(w), int32(h))
		if err != nil {
			return err
		}
		a.capture = fb
	}
	a.capture.Resize(int32(w), int32(h))

	restore := a.capture.Bind()
	a.renderer.Render(a.camera.ViewMatrix(), a.projection(), a.sun)
	pixels := a.capture.ReadPixels()
	restore()

	fw, fh := a.capture.Size()
	path, err := a.shots.CaptureFromPixels(pixels, int(fw), int(fh))
	if err != nil {
		return err
	}
	a.log.Info("screenshot saved", zap.String("path", path))
	return nil
}

func (a *App) projection() gm.Mat4 {
	w, h := a.renderer.Size()
	return a.camera.ProjectionMatrix(float32(w) / float32(max(h, 1)))
}

func repeatable(k viewer.CommandKind) bool {
	switch k {
	case viewer.CmdStepBackward, viewer.CmdStepForward, viewer.CmdGrowDimension, viewer.CmdShrinkDimension:
		return true
	}
	return false
}

func parseColor(hex string) ([3]float32, error) {
	r, g, b, err := snapshot.ParseColor(hex)
	if err != nil {
		return [3]float32{}, err
	}
	return [3]float32{float32(r), float32(g), float32(b)}, nil
}
