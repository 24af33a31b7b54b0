package world

import (
	"image"
	"image/color"
	"math"
	"math/rand"
)

// TerrainGenerator fills chunks from a column height function.
type TerrainGenerator interface {
	// HeightAt returns the Y of the topmost solid block of the column, or -1 for an empty column.
	HeightAt(worldX, worldZ int) int
}

// PopulateChunk fills c from the generator's column heights: stone below,
// three layers of dirt, grass on top.
func PopulateChunk(g TerrainGenerator, c *Chunk) {
	baseX, baseY, baseZ := c.Coord().Origin()
	for lx := range ChunkSize {
		for lz := range ChunkSize {
			height := g.HeightAt(baseX+lx, baseZ+lz)
			topLocal := height - baseY
			if topLocal < 0 {
				continue
			}
			for ly := 0; ly <= min(topLocal, ChunkSize-1); ly++ {
				c.SetBlock(lx, ly, lz, layerBlock(height-(baseY+ly)))
			}
		}
	}
	c.MarkDirty()
}

func layerBlock(depth int) BlockType {
	switch {
	case depth == 0:
		return BlockTypeGrass
	case depth <= 3:
		return BlockTypeDirt
	default:
		return BlockTypeStone
	}
}

// GenerateArea creates and populates every chunk in the box
// [-radius, radius] x [0, layers) x [-radius, radius] of chunk coordinates.
func GenerateArea(store *ChunkStore, g TerrainGenerator, radius, layers int) {
	for cy := 0; cy < layers; cy++ {
		for cz := -radius; cz <= radius; cz++ {
			for cx := -radius; cx <= radius; cx++ {
				ch := NewChunk(cx, cy, cz)
				PopulateChunk(g, ch)
				store.AddChunk(ch)
			}
		}
	}
}

// FlatGenerator produces a flat world with the surface at a fixed height.
type FlatGenerator struct {
	height int
}

// NewFlatGenerator creates a flat generator with the grass layer at height.
func NewFlatGenerator(height int) *FlatGenerator {
	return &FlatGenerator{height: height}
}

func (g *FlatGenerator) HeightAt(worldX, worldZ int) int {
	return g.height
}

// NoiseGenerator builds rolling hills from fractal gradient noise. Each
// octave has its own permutation table drawn from the seed.
type NoiseGenerator struct {
	scale       float64
	baseHeight  int
	amp         float64
	persistence float64
	lacunarity  float64
	perms       [][512]uint8
}

// Eight evenly spaced unit gradients; 2D gradient noise stays within ±√½ with these.
var hillGradients = [8][2]float64{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{math.Sqrt2 / 2, math.Sqrt2 / 2}, {-math.Sqrt2 / 2, math.Sqrt2 / 2},
	{math.Sqrt2 / 2, -math.Sqrt2 / 2}, {-math.Sqrt2 / 2, -math.Sqrt2 / 2},
}

// NewNoiseGenerator creates a noise generator with default hill settings.
func NewNoiseGenerator(seed int64) *NoiseGenerator {
	g := &NoiseGenerator{
		scale:       1.0 / 48.0,
		baseHeight:  8,
		amp:         20,
		persistence: 0.5,
		lacunarity:  2.0,
		perms:       make([][512]uint8, 4),
	}
	rng := rand.New(rand.NewSource(seed))
	for i := range g.perms {
		for j, v := range rng.Perm(256) {
			g.perms[i][j] = uint8(v)
			g.perms[i][j+256] = uint8(v)
		}
	}
	return g
}

func (g *NoiseGenerator) HeightAt(worldX, worldZ int) int {
	n := g.sample(float64(worldX)*g.scale, float64(worldZ)*g.scale)
	height := float64(g.baseHeight) + n*g.amp
	if height < 0 {
		return -1
	}
	return int(math.Floor(height))
}

// sample sums the octaves and maps the result to [0, 1].
func (g *NoiseGenerator) sample(x, z float64) float64 {
	amplitude, frequency := 1.0, 1.0
	var sum, total float64
	for i := range g.perms {
		sum += amplitude * gradientNoise(&g.perms[i], x*frequency, z*frequency)
		total += amplitude
		amplitude *= g.persistence
		frequency *= g.lacunarity
	}
	if total == 0 {
		return 0.5
	}
	return min(max((sum/total+1)/2, 0), 1)
}

// gradientNoise is 2D Perlin noise over perm. It is zero on lattice points.
func gradientNoise(perm *[512]uint8, x, z float64) float64 {
	cellX, cellZ := math.Floor(x), math.Floor(z)
	ix, iz := int(cellX)&255, int(cellZ)&255
	dx, dz := x-cellX, z-cellZ

	corner := func(ox, oz int) float64 {
		grad := hillGradients[perm[int(perm[ix+ox])+iz+oz]&7]
		return grad[0]*(dx-float64(ox)) + grad[1]*(dz-float64(oz))
	}
	// quintic ease keeps the second derivative continuous across cells
	u := dx * dx * dx * (dx*(dx*6-15) + 10)
	v := dz * dz * dz * (dz*(dz*6-15) + 10)

	near := corner(0, 0) + u*(corner(1, 0)-corner(0, 0))
	far := corner(0, 1) + u*(corner(1, 1)-corner(0, 1))
	return near + v*(far-near)
}

// HeightmapGenerator maps the luminance of an image to column heights.
// The image is centred on the world origin; columns outside it are empty.
type HeightmapGenerator struct {
	img       image.Image
	maxHeight int
	offX      int
	offZ      int
}

// NewHeightmapGenerator creates a generator where white maps to maxHeight and black to 0.
func NewHeightmapGenerator(img image.Image, maxHeight int) *HeightmapGenerator {
	b := img.Bounds()
	return &HeightmapGenerator{
		img:       img,
		maxHeight: maxHeight,
		offX:      b.Min.X + b.Dx()/2,
		offZ:      b.Min.Y + b.Dy()/2,
	}
}

func (g *HeightmapGenerator) HeightAt(worldX, worldZ int) int {
	p := image.Pt(worldX+g.offX, worldZ+g.offZ)
	if !p.In(g.img.Bounds()) {
		return -1
	}
	gray := color.Gray16Model.Convert(g.img.At(p.X, p.Y)).(color.Gray16)
	return int(gray.Y) * g.maxHeight / 0xFFFF
}
