package main

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"time"

	"cubeworld/internal/config"
	"cubeworld/internal/export"
	"cubeworld/internal/graphics"
	"cubeworld/internal/graphics/gpu"
	renderer "cubeworld/internal/graphics/renderer"
	"cubeworld/internal/meshing"
	"cubeworld/internal/profiling"
	"cubeworld/internal/world"

	"github.com/faiface/mainthread"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

func init() {
	runtime.LockOSThread()
}

const (
	orbitSensitivity = 0.3
	zoomStep         = 0.9
)

// runViewer opens a window, meshes the store on the worker pool with uploads
// going straight to GL, and renders until the window is closed. It must be
// called from the function passed to mainthread.Run.
func runViewer(store *world.ChunkStore, exportPath string) error {
	var (
		window *glfw.Window
		r      *renderer.Renderer
		chunks *renderer.ChunkRenderer
		err    error
	)
	mainthread.Call(func() {
		window, err = setupWindow()
		if err != nil {
			return
		}
		chunks = renderer.NewChunkRenderer()
		w, h := window.GetFramebufferSize()
		r, err = renderer.NewRenderer(w, h, chunks)
		if err != nil {
			window.Destroy()
			glfw.Terminate()
			return
		}
		r.UpdateViewport(w, h)
		setupInputHandlers(window, r)
	})
	if err != nil {
		return err
	}
	aimCamera(r, store)

	all := store.Chunks()
	results := make(chan meshing.MeshResult, len(all))
	pool := meshing.NewWorkerPool(config.GetMeshWorkers(), config.GetMeshQueueSize())
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		dev := gpu.NewGLDevice()
		for _, ch := range all {
			job := meshing.MeshJob{Source: store, Chunk: ch, Device: dev, ResultChan: results}
			if err := pool.SubmitJobBlocking(ctx, job); err != nil {
				return
			}
		}
	}()

	prog := newProgress(len(all))
	var scene *export.Scene
	if exportPath != "" {
		scene = export.NewScene()
	}
	apply := func(res meshing.MeshResult) {
		if res.Error != nil {
			log.Printf("mesh chunk %v: %v", res.Coord, res.Error)
			return
		}
		if scene != nil {
			scene.AddChunk(res.Coord, res.Builder)
		}
		mainthread.Call(func() {
			chunks.SetMesh(res.Coord, res.Mesh)
		})
	}

	limiter := graphics.NewFPSLimiter()
	last := time.Now()
	for {
	drain:
		for {
			select {
			case res := <-results:
				prog.step()
				apply(res)
			default:
				break drain
			}
		}
		if scene != nil && prog.done == prog.total {
			if err := exportScene(scene, exportPath); err != nil {
				log.Print(err)
			}
			scene = nil
		}

		now := time.Now()
		dt := now.Sub(last).Seconds()
		last = now

		var closed bool
		mainthread.Call(func() {
			func() {
				defer profiling.Track("viewer.frame")()
				r.Render(dt)
			}()
			window.SwapBuffers()
			glfw.PollEvents()
			closed = window.ShouldClose()
			window.SetTitle(fmt.Sprintf("cubeworld - %d/%d chunks drawn", chunks.Drawn(), chunks.Len()))
		})
		if closed {
			break
		}
		limiter.Wait()
	}

	cancel()
	pool.Shutdown()
	// meshes finished after the last frame still own GL buffers
	for len(results) > 0 {
		res := <-results
		if res.Error == nil {
			mainthread.Call(func() { chunks.SetMesh(res.Coord, res.Mesh) })
		}
	}
	mainthread.Call(func() {
		r.Dispose()
		window.Destroy()
		glfw.Terminate()
	})
	fmt.Printf("profile: %s\n", profiling.TopN(5))
	return nil
}

func exportScene(scene *export.Scene, path string) error {
	defer profiling.Track("export.WriteFile")()
	if err := scene.WriteFile(path); err != nil {
		return err
	}
	fmt.Printf("exported %d chunks to %s\n", scene.Len(), path)
	return nil
}

func setupWindow() (*glfw.Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, errors.Wrap(err, "glfw init")
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	width, height := config.GetWindowSize()
	window, err := glfw.CreateWindow(width, height, "cubeworld", nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, errors.Wrap(err, "create window")
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, errors.Wrap(err, "gl init")
	}
	glfw.SwapInterval(1)
	return window, nil
}

// aimCamera points the camera at the centre of the loaded chunks.
func aimCamera(r *renderer.Renderer, store *world.ChunkStore) {
	chs := store.Chunks()
	if len(chs) == 0 {
		return
	}
	lo := mgl32.Vec3{1e9, 1e9, 1e9}
	hi := mgl32.Vec3{-1e9, -1e9, -1e9}
	for _, ch := range chs {
		ox, oy, oz := ch.Coord().Origin()
		o := mgl32.Vec3{float32(ox), float32(oy), float32(oz)}
		for i := 0; i < 3; i++ {
			lo[i] = min(lo[i], o[i])
			hi[i] = max(hi[i], o[i]+world.ChunkSize)
		}
	}
	cam := r.GetCamera()
	cam.Target = lo.Add(hi).Mul(0.5)
	cam.Distance = mgl32.Clamp(hi.Sub(lo).Len(), cam.MinDistance, cam.MaxDistance)
	cam.FarPlane = max(cam.FarPlane, cam.Distance*4)
}

func setupInputHandlers(window *glfw.Window, r *renderer.Renderer) {
	var dragging bool
	var lastX, lastY float64

	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		dragging = action == glfw.Press
		lastX, lastY = w.GetCursorPos()
	})

	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		if !dragging {
			return
		}
		dx, dy := xpos-lastX, ypos-lastY
		lastX, lastY = xpos, ypos
		r.GetCamera().Orbit(float32(dx)*orbitSensitivity, float32(-dy)*orbitSensitivity)
	})

	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		switch {
		case yoff > 0:
			r.GetCamera().Zoom(zoomStep)
		case yoff < 0:
			r.GetCamera().Zoom(1 / zoomStep)
		}
	})

	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		r.UpdateViewport(width, height)
	})

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})
}
