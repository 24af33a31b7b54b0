package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	_ "image/png"
	"log"
	"os"
	"sort"
	"time"

	"cubeworld/internal/config"
	"cubeworld/internal/export"
	"cubeworld/internal/graphics/gpu"
	"cubeworld/internal/meshing"
	"cubeworld/internal/profiling"
	"cubeworld/internal/world"

	"github.com/faiface/mainthread"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

type options struct {
	seed       int64
	flat       int
	heightmap  string
	maxHeight  int
	radius     int
	layers     int
	load       string
	save       string
	exportPath string
	view       bool
}

func main() {
	var opts options
	flag.Int64Var(&opts.seed, "seed", 1, "terrain seed for the noise generator")
	flag.IntVar(&opts.flat, "flat", -1, "generate a flat world with the surface at this height")
	flag.StringVar(&opts.heightmap, "heightmap", "", "generate terrain from a greyscale image (png, bmp, tiff)")
	flag.IntVar(&opts.maxHeight, "max-height", 48, "surface height of a white heightmap pixel")
	flag.IntVar(&opts.radius, "radius", config.GetRenderDistance(), "chunk radius around the origin to generate")
	flag.IntVar(&opts.layers, "layers", 4, "maximum vertical chunk layers to generate")
	flag.StringVar(&opts.load, "load", "", "load a saved world instead of generating one")
	flag.StringVar(&opts.save, "save", "", "save the world to this file")
	flag.StringVar(&opts.exportPath, "export", "", "write the meshed world as binary glTF")
	flag.BoolVar(&opts.view, "view", false, "open a window and render the world")
	workers := flag.Int("workers", config.GetMeshWorkers(), "meshing goroutines")
	queue := flag.Int("queue", config.GetMeshQueueSize(), "mesh job queue size")
	cull := flag.Bool("cull", config.GetCullFaces(), "skip faces hidden by neighbouring blocks")
	debug := flag.Bool("debug", false, "validate every face while meshing")
	fps := flag.Int("fps", config.GetFPSLimit(), "viewer frame cap, 0 for uncapped")
	flag.Parse()

	config.SetMeshWorkers(*workers)
	config.SetMeshQueueSize(*queue)
	config.SetCullFaces(*cull)
	config.SetDebugGeometryChecks(*debug)
	config.SetFPSLimit(*fps)
	config.SetRenderDistance(opts.radius)
	opts.radius = config.GetRenderDistance()

	store, err := loadOrGenerate(opts)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("world: %d chunks\n", store.Len())

	if opts.save != "" {
		if err := saveWorld(opts.save, store); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("saved %s\n", opts.save)
	}

	if opts.view {
		mainthread.Run(func() {
			if err := runViewer(store, opts.exportPath); err != nil {
				log.Fatal(err)
			}
		})
		return
	}
	if err := runHeadless(store, opts.exportPath); err != nil {
		log.Fatal(err)
	}
}

func loadOrGenerate(opts options) (*world.ChunkStore, error) {
	if opts.load != "" {
		f, err := os.Open(opts.load)
		if err != nil {
			return nil, errors.Wrap(err, "open world")
		}
		defer f.Close()
		return world.Load(f)
	}

	var gen world.TerrainGenerator
	switch {
	case opts.heightmap != "":
		img, err := decodeImage(opts.heightmap)
		if err != nil {
			return nil, err
		}
		gen = world.NewHeightmapGenerator(img, opts.maxHeight)
	case opts.flat >= 0:
		gen = world.NewFlatGenerator(opts.flat)
	default:
		gen = world.NewNoiseGenerator(opts.seed)
	}

	store := world.NewChunkStore()
	streamer := world.NewChunkStreamer(store, gen, config.GetMeshWorkers())
	if _, err := streamer.StreamArea(context.Background(), 0, 0, opts.radius, opts.layers); err != nil {
		return nil, err
	}
	return store, nil
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open heightmap")
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decode heightmap %s", path)
	}
	log.Printf("heightmap %s: %s %v", path, format, img.Bounds().Size())
	return img, nil
}

func saveWorld(path string, store *world.ChunkStore) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create save file")
	}
	if err := world.Save(f, store); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// runHeadless meshes every chunk into an in-memory device and prints totals.
func runHeadless(store *world.ChunkStore, exportPath string) error {
	dev := gpu.NewMemoryDevice()
	pool := meshing.NewWorkerPool(config.GetMeshWorkers(), config.GetMeshQueueSize())
	defer pool.Shutdown()

	start := time.Now()
	results, err := pool.MeshAll(context.Background(), store, store.Chunks(), dev)
	if err != nil {
		return err
	}
	sortResults(results)

	var faces, warnings int
	for _, r := range results {
		faces += r.Mesh.FaceCount
		warnings += r.Builder.Warnings()
	}
	fmt.Printf("meshed %d chunks in %v: %d faces, %d triangles, %d KiB of buffers\n",
		len(results), time.Since(start).Round(time.Millisecond), faces, faces*2, dev.Bytes()/1024)
	if warnings > 0 {
		fmt.Printf("%d faces failed geometry checks\n", warnings)
	}

	if exportPath != "" {
		if err := exportResults(exportPath, results); err != nil {
			return err
		}
	}

	for _, r := range results {
		r.Mesh.Release(dev)
	}
	fmt.Printf("profile: %s\n", profiling.TopN(5))
	return nil
}

func exportResults(path string, results []meshing.MeshResult) error {
	defer profiling.Track("export.WriteFile")()
	scene := export.NewScene()
	for _, r := range results {
		scene.AddChunk(r.Coord, r.Builder)
	}
	if err := scene.WriteFile(path); err != nil {
		return err
	}
	fmt.Printf("exported %d chunks to %s\n", scene.Len(), path)
	return nil
}

func sortResults(results []meshing.MeshResult) {
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i].Coord, results[j].Coord
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		if a.Z != b.Z {
			return a.Z < b.Z
		}
		return a.X < b.X
	})
}
