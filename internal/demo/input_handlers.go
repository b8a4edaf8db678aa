package demo

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func SetupInputHandlers(app *App) {
	window := app.window
	im := app.inputManager

	// Mouse look
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		dx, dy := app.mouse.Offset(xpos, ypos)
		app.controls.Camera.ProcessMouseMovement(dx, dy, true)
	})

	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		app.controls.Camera.ProcessMouseScroll(float32(yoff))
	})

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		im.HandleKeyEvent(key, action)
	})

	// Framebuffer size callback
	window.SetFramebufferSizeCallback(func(w *glfw.Window, fbWidth, fbHeight int) {
		if fbWidth == 0 || fbHeight == 0 {
			// Minimised; keep the last aspect ratio
			return
		}
		gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
		app.aspect = float32(fbWidth) / float32(fbHeight)

		if app.hud != nil {
			winW, winH := w.GetSize()
			app.hud.SetViewport(winW, winH)
		}
	})

	// Re-seed the tracker so regaining focus does not jump the view
	window.SetFocusCallback(func(w *glfw.Window, focused bool) {
		if focused {
			app.mouse.Reset()
		}
	})

	window.SetRefreshCallback(func(w *glfw.Window) {
		app.render()
		w.SwapBuffers()
	})
}
