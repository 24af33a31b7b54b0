package renderer

import (
	_ "embed"
	"sort"

	"cubeworld/internal/graphics"
	"cubeworld/internal/meshing"
	"cubeworld/internal/profiling"
	"cubeworld/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

//go:embed shaders/chunk.vert
var chunkVertShader string

//go:embed shaders/chunk.frag
var chunkFragShader string

type chunkDraw struct {
	coord world.ChunkCoord
	vao   uint32
	mesh  meshing.WorldChunkMesh
	min   mgl32.Vec3
	max   mgl32.Vec3
}

// ChunkRenderer draws uploaded chunk meshes. It takes ownership of every
// mesh handed to SetMesh and deletes the buffers itself, so all methods
// must run on the GL thread.
type ChunkRenderer struct {
	shader *graphics.Shader
	draws  map[world.ChunkCoord]*chunkDraw
	order  []*chunkDraw

	LightDir  mgl32.Vec3
	BaseColor mgl32.Vec3

	drawn int
}

// NewChunkRenderer creates a chunk renderable
func NewChunkRenderer() *ChunkRenderer {
	return &ChunkRenderer{
		draws:     make(map[world.ChunkCoord]*chunkDraw),
		LightDir:  mgl32.Vec3{-0.4, -1, -0.25},
		BaseColor: mgl32.Vec3{0.55, 0.7, 0.45},
	}
}

// Init compiles the chunk shader
func (r *ChunkRenderer) Init() error {
	var err error
	r.shader, err = graphics.NewShader(chunkVertShader, chunkFragShader)
	return err
}

// SetMesh replaces the mesh drawn for coord. Empty meshes are released
// immediately and clear any previous mesh for that chunk.
func (r *ChunkRenderer) SetMesh(coord world.ChunkCoord, mesh meshing.WorldChunkMesh) {
	r.Remove(coord)
	if mesh.IsEmpty() {
		deleteBuffers(mesh)
		return
	}

	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, mesh.VertexBuffer)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, meshing.CubeVertexSize, meshing.PositionOffset)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 4, gl.INT_2_10_10_10_REV, true, meshing.CubeVertexSize, meshing.NormalOffset)

	// the element binding is recorded in the VAO
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, mesh.IndexBuffer)
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	ox, oy, oz := coord.Origin()
	origin := mgl32.Vec3{float32(ox), float32(oy), float32(oz)}
	d := &chunkDraw{
		coord: coord,
		vao:   vao,
		mesh:  mesh,
		min:   origin,
		max:   origin.Add(mgl32.Vec3{world.ChunkSize, world.ChunkSize, world.ChunkSize}),
	}
	r.draws[coord] = d
	r.rebuildOrder()
}

// Remove drops and frees the mesh drawn for coord, if any.
func (r *ChunkRenderer) Remove(coord world.ChunkCoord) {
	d, ok := r.draws[coord]
	if !ok {
		return
	}
	gl.DeleteVertexArrays(1, &d.vao)
	deleteBuffers(d.mesh)
	delete(r.draws, coord)
	r.rebuildOrder()
}

func (r *ChunkRenderer) rebuildOrder() {
	r.order = r.order[:0]
	for _, d := range r.draws {
		r.order = append(r.order, d)
	}
	sort.Slice(r.order, func(i, j int) bool {
		a, b := r.order[i].coord, r.order[j].coord
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		if a.Z != b.Z {
			return a.Z < b.Z
		}
		return a.X < b.X
	})
}

func deleteBuffers(m meshing.WorldChunkMesh) {
	ids := []uint32{m.VertexBuffer, m.IndexBuffer}
	gl.DeleteBuffers(int32(len(ids)), &ids[0])
}

// Render draws every chunk inside the view frustum
func (r *ChunkRenderer) Render(ctx RenderContext) {
	defer profiling.Track("renderer.renderChunks")()

	r.shader.Use()
	r.shader.SetMat4("proj", ctx.Proj)
	r.shader.SetMat4("view", ctx.View)
	r.shader.SetVec3("lightDir", r.LightDir)
	r.shader.SetVec3("baseColor", r.BaseColor)

	r.drawn = 0
	for _, d := range r.order {
		if !ctx.Frustum.IntersectsAABB(d.min, d.max) {
			continue
		}
		r.shader.SetVec3("chunkOrigin", d.min)
		gl.BindVertexArray(d.vao)
		gl.DrawElements(gl.TRIANGLES, int32(d.mesh.IndexCount()), gl.UNSIGNED_INT, nil)
		r.drawn++
	}
	gl.BindVertexArray(0)
}

// Len returns the number of chunks with geometry.
func (r *ChunkRenderer) Len() int {
	return len(r.draws)
}

// Drawn returns how many chunks passed frustum culling in the last frame.
func (r *ChunkRenderer) Drawn() int {
	return r.drawn
}

// Dispose cleans up OpenGL resources
func (r *ChunkRenderer) Dispose() {
	for coord := range r.draws {
		r.Remove(coord)
	}
	if r.shader != nil {
		r.shader.Delete()
	}
}
