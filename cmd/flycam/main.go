package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/go-flycam/internal/config"
	"github.com/leterax/go-flycam/internal/openglhelper"
	"github.com/leterax/go-flycam/pkg/asset"
	"github.com/leterax/go-flycam/pkg/input"
	"github.com/leterax/go-flycam/pkg/render"
	"github.com/leterax/go-flycam/pkg/scene"
)

func init() {
	// This is needed to ensure that OpenGL functions are called from the same thread
	runtime.LockOSThread()
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.SetPrefix("[flycam] ")

	configPath := flag.String("config", "", "YAML config file (empty for defaults)")
	modelPath := flag.String("model", "", "glTF/GLB model to view (empty for the textured cube)")
	width := flag.Int("width", 0, "Window width")
	height := flag.Int("height", 0, "Window height")
	fov := flag.Float64("fov", 0, "Vertical field of view in degrees")
	debug := flag.Bool("debug", false, "Request a debug context and log GL messages")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Flags win over the file, but only when given
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "model":
			cfg.Scene.Model = *modelPath
		case "width":
			cfg.Window.Width = *width
		case "height":
			cfg.Window.Height = *height
		case "fov":
			cfg.Camera.FOV = float32(*fov)
		case "debug":
			cfg.Window.Debug = *debug
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}

	bindings, err := cfg.Bindings()
	if err != nil {
		log.Fatalf("Failed to build key bindings: %v", err)
	}

	model, err := loadModel(cfg.Scene)
	if err != nil {
		log.Fatalf("Failed to load model: %v", err)
	}

	window, err := openglhelper.NewWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, cfg.Window.VSync, cfg.Window.Debug)
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}
	if cfg.Window.Debug {
		window.EnableDebugOutput()
	}

	glScene, err := scene.New(model, scene.Options{
		VertexShaderPath:   cfg.Scene.VertexShader,
		FragmentShaderPath: cfg.Scene.FragmentShader,
	})
	if err != nil {
		window.Close()
		log.Fatalf("Failed to build scene: %v", err)
	}

	tracker := input.NewTracker(bindings)
	camera := render.NewCamera(
		mgl32.Vec3(cfg.Camera.Position),
		render.WithFOV(cfg.Camera.FOV),
		render.WithMoveSpeed(cfg.Camera.Speed),
		render.WithSensitivity(cfg.Camera.Sensitivity),
	)

	window.OnKey(tracker.OnKeyEvent)
	window.OnCursorPos(tracker.OnCursorEvent)
	window.OnScroll(func(_, yoffset float64) {
		camera.Zoom(yoffset)
	})
	window.OnResize(func(width, height int) {
		window.SetTitle(fmt.Sprintf("%s (%dx%d)", cfg.Window.Title, width, height))
	})
	window.SetMouseCaptured(cfg.Window.StartCaptured)

	renderer := render.NewRenderer(window, tracker, camera, glScene,
		render.WithClock(glfw.GetTime),
		render.WithClearColor(mgl32.Vec4(cfg.Scene.ClearColor)),
		render.WithSpinRate(cfg.Scene.SpinRate),
		render.WithLighting(cfg.Lighting()),
	)

	log.Printf("Flying: %v to toggle the cursor, %v to quit", keyNames(bindings, input.ActionToggleMouse), keyNames(bindings, input.ActionQuit))
	renderer.Run()
}

func loadModel(cfg config.SceneConfig) (*asset.Model, error) {
	if cfg.Model != "" {
		return asset.LoadModel(cfg.Model, cfg.FlipTextures)
	}

	diffuse := asset.SolidImage("white", 255, 255, 255, 255)
	if cfg.DiffuseTexture != "" {
		img, err := asset.LoadImage(cfg.DiffuseTexture, cfg.FlipTextures)
		if err != nil {
			return nil, err
		}
		diffuse = img
	}

	var specular *asset.Image
	if cfg.SpecularTexture != "" {
		img, err := asset.LoadImage(cfg.SpecularTexture, cfg.FlipTextures)
		if err != nil {
			return nil, err
		}
		specular = img
	}

	return asset.Cube(diffuse, specular), nil
}

func keyNames(b *input.Bindings, action string) []string {
	keys, _ := b.Keys(action)
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	return names
}
