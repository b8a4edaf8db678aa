package demo

import (
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"learngl/internal/camera"
	"learngl/internal/config"
	"learngl/internal/graphics"
	"learngl/internal/input"
	"learngl/internal/lighting"
	"learngl/internal/model"
	"learngl/internal/profiling"
	"learngl/internal/scene"
)

// slowFrame is the processing time above which a frame is logged with its top tasks
const slowFrame = 16 * time.Millisecond

type App struct {
	window       *glfw.Window
	inputManager *input.InputManager

	settings config.Settings
	scene    *scene.Descriptor

	controls *Controls
	mouse    *camera.MouseTracker
	aspect   float32

	shader    *graphics.Shader
	textures  *graphics.TextureCache
	drawables []drawable

	hud       *graphics.TextRenderer
	showHUD   bool
	wireframe bool

	watcher     *shaderWatcher
	profiler    *profiling.Frame
	fpsLimiter  *FPSLimiter
	lastTime    float64
	interrupted atomic.Bool
}

// NewApp compiles the scene's shader, uploads its objects and pushes the
// static light uniforms. The window's context must be current.
func NewApp(window *glfw.Window, s config.Settings, d *scene.Descriptor) (*App, error) {
	shader, err := graphics.NewShader(d.Shader.Vertex, d.Shader.Fragment)
	if err != nil {
		return nil, fmt.Errorf("lighting shader: %w", err)
	}
	shader.SetVerbose(s.Verbose)

	textures := graphics.NewTextureCache(graphics.TextureOptions{FlipY: d.FlipUV})

	cx, cy := window.GetCursorPos()
	fbW, fbH := window.GetFramebufferSize()
	aspect := s.AspectRatio()
	if fbW > 0 && fbH > 0 {
		aspect = float32(fbW) / float32(fbH)
	}

	a := &App{
		window:       window,
		inputManager: input.NewInputManager(),
		settings:     s,
		scene:        d,
		controls: &Controls{
			Camera:   camera.New(d.StartPosition()),
			Switches: lighting.NewSwitches(1),
			ADS:      lighting.NewADS(1),
			Ramps:    d.Ramps,
		},
		mouse:      camera.NewMouseTracker(cx, cy),
		aspect:     aspect,
		shader:     shader,
		textures:   textures,
		drawables:  loadDrawables(d, textures),
		showHUD:    s.HUD,
		profiler:   profiling.NewFrame(),
		fpsLimiter: NewFPSLimiter(s.FPSLimit),
	}

	if s.HUD {
		winW, winH := window.GetSize()
		if a.hud, err = newHUD(winW, winH); err != nil {
			log.Printf("HUD disabled: %v", err)
			a.showHUD = false
		}
	}

	if s.WatchShaders {
		if a.watcher, err = watchShaders(d.ShaderDir()); err != nil {
			log.Printf("Shader hot reload disabled: %v", err)
		}
	}

	a.configureShader()
	SetupInputHandlers(a)

	log.Printf("Scene %q: %d objects, %d textures", d.Name, len(a.drawables), textures.Len())
	return a, nil
}

// configureShader binds the sampler units and pushes every uniform that does
// not change per frame. Called again after a reload.
func (a *App) configureShader() {
	a.shader.Use()
	a.shader.SetInt("material.diffuse", model.DiffuseUnit)
	a.shader.SetInt("material.specular", model.SpecularUnit)
	a.scene.Lights.Configure(a.shader)
	a.controls.Switches.Sync(a.shader)
	a.controls.ADS.Sync(a.shader)
}

func (a *App) Run() {
	a.lastTime = glfw.GetTime()
	for !a.window.ShouldClose() && !a.interrupted.Load() {
		a.tick()
	}
}

func (a *App) tick() {
	a.profiler.Reset()
	startTick := time.Now()

	now := glfw.GetTime()
	dt := float32(now - a.lastTime)
	a.lastTime = now

	glfw.PollEvents()

	if a.controls.Apply(a.inputManager, dt) {
		a.window.SetShouldClose(true)
	}
	a.handleToggles()

	if a.watcher != nil && a.watcher.Changed() {
		a.reloadShader()
	}

	a.render()
	a.window.SwapBuffers()

	if processing := time.Since(startTick); processing > slowFrame {
		log.Printf("Slow frame: %v. Top tasks: %s", processing, a.profiler.TopN(5))
	}

	a.inputManager.PostUpdate()
	a.fpsLimiter.Wait()
}

func (a *App) handleToggles() {
	im := a.inputManager
	if im.JustPressed(input.ActionToggleWireframe) {
		a.wireframe = !a.wireframe
		if a.wireframe {
			gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		} else {
			gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
		}
	}
	if im.JustPressed(input.ActionToggleHUD) && a.hud != nil {
		a.showHUD = !a.showHUD
	}
	if im.JustPressed(input.ActionReloadShaders) {
		a.reloadShader()
	}
}

func (a *App) reloadShader() {
	defer a.profiler.Track("shader.Reload")()
	if err := a.shader.Reload(); err != nil {
		log.Printf("Shader reload failed, keeping previous program: %v", err)
		return
	}
	a.configureShader()
	if a.settings.Verbose {
		vertex, fragment := a.shader.Paths()
		log.Printf("Reloaded %s, %s", vertex, fragment)
	}
}

func (a *App) render() {
	c := a.scene.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	cam := a.controls.Camera

	stopUniforms := a.profiler.Track("uniforms")
	a.shader.Use()
	a.shader.SetMatrix4("projection", cam.ProjectionMatrix(a.aspect))
	a.shader.SetMatrix4("view", cam.ViewMatrix())
	a.shader.SetVec3("viewPos", cam.Position)
	a.scene.Lights.TrackCamera(a.shader, cam.Position, cam.Front)
	a.controls.Switches.Sync(a.shader)
	a.controls.ADS.Sync(a.shader)
	stopUniforms()

	stopDraw := a.profiler.Track("draw")
	for _, d := range a.drawables {
		for _, m := range d.instances {
			a.shader.SetMatrix4("model", m)
			d.model.Draw(a.shader)
		}
	}
	stopDraw()

	if a.showHUD && a.hud != nil {
		defer a.profiler.Track("hud")()
		if a.wireframe {
			gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
			defer gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		}
		step := a.hud.LineHeight()
		a.hud.RenderLines(hudLines(a.controls), 10, 10+step, step, 1, hudColor)
	}
}

// Interrupt stops the loop from a signal handler. It touches no GL state.
func (a *App) Interrupt() {
	a.interrupted.Store(true)
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			log.Printf("closing shader watcher: %v", err)
		}
	}
}

// Dispose releases GPU resources. Must run on the render thread before glfw.Terminate.
func (a *App) Dispose() {
	if a.watcher != nil {
		a.watcher.Close()
	}
	for _, d := range a.drawables {
		d.model.Delete()
	}
	a.drawables = nil
	a.textures.Delete()
	if a.hud != nil {
		a.hud.Delete()
	}
	a.shader.Delete()
}
