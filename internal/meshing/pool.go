package meshing

import (
	"context"
	"sync"

	"cubeworld/internal/graphics/gpu"
	"cubeworld/internal/world"

	"github.com/pkg/errors"
)

// ErrPoolClosed is returned when submitting to a pool that has been shut down.
var ErrPoolClosed = errors.New("mesh pool is shut down")

// MeshJob represents a meshing job request
type MeshJob struct {
	Source BlockSource
	Chunk  *world.Chunk
	// Device, when set, is used by the worker to upload the mesh. It must be
	// safe to call from worker goroutines (gpu.GLDevice and gpu.MemoryDevice are).
	Device gpu.Device
	// Result channel - will be sent the result when done
	ResultChan chan<- MeshResult
}

// MeshResult contains the result of a meshing operation. Builder is always
// set on success; Mesh is only set when the job carried a Device.
type MeshResult struct {
	Coord   world.ChunkCoord
	Builder *ChunkMeshBuilder
	Mesh    WorldChunkMesh
	Error   error
}

// WorkerPool meshes chunks on a fixed set of goroutines. Every job gets its
// own builder, so workers never share mutable mesh state.
type WorkerPool struct {
	jobQueue chan MeshJob
	workers  int
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	// stopped is closed once every worker has exited
	stopped  chan struct{}
	stopOnce sync.Once
}

// NewWorkerPool creates a new mesh worker pool
func NewWorkerPool(workers int, queueSize int) *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())
	pool := &WorkerPool{
		jobQueue: make(chan MeshJob, queueSize),
		workers:  workers,
		ctx:      ctx,
		cancel:   cancel,
		stopped:  make(chan struct{}),
	}

	for range workers {
		pool.wg.Add(1)
		go pool.worker()
	}
	return pool
}

// SubmitJob submits a mesh generation job to the pool.
// Returns false if the queue is full or the pool is shut down.
func (p *WorkerPool) SubmitJob(job MeshJob) bool {
	if p.ctx.Err() != nil {
		return false
	}
	select {
	case p.jobQueue <- job:
		return true
	default:
		return false
	}
}

// SubmitJobBlocking waits until the job is queued, ctx is done or the pool shuts down.
func (p *WorkerPool) SubmitJobBlocking(ctx context.Context, job MeshJob) error {
	select {
	case p.jobQueue <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.ctx.Done():
		return ErrPoolClosed
	}
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()

	for {
		select {
		case job := <-p.jobQueue:
			result := runJob(job)
			select {
			case job.ResultChan <- result:
				continue
			default:
			}
			select {
			case job.ResultChan <- result:
			case <-p.ctx.Done():
				// nobody will read this result, so its buffers are ours to free
				if job.Device != nil {
					result.Mesh.Release(job.Device)
				}
				return
			}

		case <-p.ctx.Done():
			return
		}
	}
}

func runJob(job MeshJob) MeshResult {
	if job.Chunk == nil {
		return MeshResult{Error: errors.New("mesh job without chunk")}
	}
	result := MeshResult{Coord: job.Chunk.Coord()}
	result.Builder = BuildChunk(job.Source, job.Chunk)

	if job.Device != nil {
		mesh, err := result.Builder.CreateMesh(job.Device)
		if err != nil {
			result.Error = errors.Wrapf(err, "chunk %v", result.Coord)
			return result
		}
		result.Mesh = mesh
	}
	return result
}

// Shutdown stops the workers and waits for them to exit. Queued jobs that
// were not started are dropped.
func (p *WorkerPool) Shutdown() {
	p.cancel()
	p.wg.Wait()
	p.stopOnce.Do(func() { close(p.stopped) })
}

// QueueLength returns the current number of jobs in the queue
func (p *WorkerPool) QueueLength() int {
	return len(p.jobQueue)
}

// Workers returns the number of worker goroutines.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// MeshAll meshes chunks through the pool and returns one result per chunk,
// in the order the workers finished, along with the first job error.
//
// When ctx is done, no further chunks are submitted but jobs already queued
// still finish and are returned with ctx's error. When the pool shuts down,
// MeshAll waits for the workers to exit and returns what they delivered
// with ErrPoolClosed. Either way every uploaded mesh ends up in the returned
// slice, so the caller can release it.
func (p *WorkerPool) MeshAll(ctx context.Context, src BlockSource, chunks []*world.Chunk, dev gpu.Device) ([]MeshResult, error) {
	type submission struct {
		n   int
		err error
	}
	results := make(chan MeshResult, len(chunks))
	submitted := make(chan submission, 1)
	go func() {
		for i, ch := range chunks {
			job := MeshJob{Source: src, Chunk: ch, Device: dev, ResultChan: results}
			if err := p.SubmitJobBlocking(ctx, job); err != nil {
				submitted <- submission{n: i, err: err}
				return
			}
		}
		submitted <- submission{n: len(chunks)}
	}()

	var firstErr, stopErr error
	pending := -1
	done := ctx.Done()
	out := make([]MeshResult, 0, len(chunks))
	collect := func(r MeshResult) {
		out = append(out, r)
		if r.Error != nil && firstErr == nil {
			firstErr = r.Error
		}
	}

	for pending < 0 || len(out) < pending {
		select {
		case r := <-results:
			collect(r)
		case s := <-submitted:
			pending = s.n
			if s.err != nil && stopErr == nil {
				stopErr = s.err
			}
		case <-done:
			if stopErr == nil {
				stopErr = ctx.Err()
			}
			done = nil
		case <-p.stopped:
			// workers are gone; whatever they delivered is already buffered
			for {
				select {
				case r := <-results:
					collect(r)
				default:
					return out, ErrPoolClosed
				}
			}
		}
	}
	if stopErr == nil && ctx.Err() != nil {
		stopErr = ctx.Err()
	}
	if stopErr != nil {
		return out, stopErr
	}
	return out, firstErr
}
