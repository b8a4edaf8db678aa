package main

import (
	"log"
	"os"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/xlab/closer"

	"learngl/internal/config"
	"learngl/internal/demo"
	"learngl/internal/scene"
	"learngl/internal/transform"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	defer closer.Close()

	// Any argument runs the algebra check instead of opening a window
	if len(os.Args) > 1 {
		if err := transform.SmokeTest(os.Stdout); err != nil {
			closer.Fatalln(err)
		}
		return
	}

	settings, err := config.LoadDefault(".")
	if err != nil {
		closer.Fatalln(err)
	}
	desc, err := scene.ForSettings(settings)
	if err != nil {
		closer.Fatalln(err)
	}

	if err := glfw.Init(); err != nil {
		closer.Fatalln("Failed to initialize GLFW:", err)
	}

	window, err := demo.SetupWindow(settings)
	if err != nil {
		glfw.Terminate()
		closer.Fatalln(err)
	}

	app, err := demo.NewApp(window, settings, desc)
	if err != nil {
		glfw.Terminate()
		closer.Fatalln(err)
	}

	// The signal handler runs off the main thread, so it only stops the loop
	closer.Bind(app.Interrupt)

	app.Run()

	app.Dispose()
	glfw.Terminate()
	log.Println("Bye")
}
