package config

import (
	"runtime"
	"sync"
)

// MeshSettings holds chunk meshing configuration
type MeshSettings struct {
	mu             sync.RWMutex
	workers        int
	queueSize      int
	cullFaces      bool
	geometryChecks bool
}

var globalMeshSettings = &MeshSettings{
	workers:   max(runtime.NumCPU()/2, 1),
	queueSize: 256,
	cullFaces: true,
}

// GetMeshWorkers returns the number of meshing goroutines
func GetMeshWorkers() int {
	globalMeshSettings.mu.RLock()
	defer globalMeshSettings.mu.RUnlock()
	return globalMeshSettings.workers
}

// SetMeshWorkers sets the number of meshing goroutines, clamped to [1, 64]
func SetMeshWorkers(n int) {
	globalMeshSettings.mu.Lock()
	defer globalMeshSettings.mu.Unlock()
	globalMeshSettings.workers = min(max(n, 1), 64)
}

// GetMeshQueueSize returns the capacity of the mesh job queue
func GetMeshQueueSize() int {
	globalMeshSettings.mu.RLock()
	defer globalMeshSettings.mu.RUnlock()
	return globalMeshSettings.queueSize
}

// SetMeshQueueSize sets the capacity of the mesh job queue (at least 1)
func SetMeshQueueSize(n int) {
	globalMeshSettings.mu.Lock()
	defer globalMeshSettings.mu.Unlock()
	globalMeshSettings.queueSize = max(n, 1)
}

// GetCullFaces returns whether faces between two solid blocks are skipped
func GetCullFaces() bool {
	globalMeshSettings.mu.RLock()
	defer globalMeshSettings.mu.RUnlock()
	return globalMeshSettings.cullFaces
}

// SetCullFaces sets whether faces between two solid blocks are skipped
func SetCullFaces(enabled bool) {
	globalMeshSettings.mu.Lock()
	defer globalMeshSettings.mu.Unlock()
	globalMeshSettings.cullFaces = enabled
}

// DebugGeometryChecks returns whether new mesh builders validate the faces they receive
func DebugGeometryChecks() bool {
	globalMeshSettings.mu.RLock()
	defer globalMeshSettings.mu.RUnlock()
	return globalMeshSettings.geometryChecks
}

// SetDebugGeometryChecks toggles face validation in new mesh builders
func SetDebugGeometryChecks(enabled bool) {
	globalMeshSettings.mu.Lock()
	defer globalMeshSettings.mu.Unlock()
	globalMeshSettings.geometryChecks = enabled
}
