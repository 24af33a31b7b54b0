package config

import "sync"

// ViewSettings holds viewer configuration
type ViewSettings struct {
	mu             sync.RWMutex
	renderDistance int // in chunks
	width, height  int
	fpsLimit       int // 0 = uncapped
}

var globalViewSettings = &ViewSettings{
	renderDistance: 4,
	width:          900,
	height:         600,
	fpsLimit:       60,
}

// GetRenderDistance returns the current render distance in chunks
func GetRenderDistance() int {
	globalViewSettings.mu.RLock()
	defer globalViewSettings.mu.RUnlock()
	return globalViewSettings.renderDistance
}

// SetRenderDistance sets the render distance in chunks, clamped to [1, 32]
func SetRenderDistance(distance int) {
	globalViewSettings.mu.Lock()
	defer globalViewSettings.mu.Unlock()
	globalViewSettings.renderDistance = min(max(distance, 1), 32)
}

// GetWindowSize returns the viewer window size in pixels
func GetWindowSize() (int, int) {
	globalViewSettings.mu.RLock()
	defer globalViewSettings.mu.RUnlock()
	return globalViewSettings.width, globalViewSettings.height
}

// SetWindowSize sets the viewer window size; non-positive values are ignored
func SetWindowSize(width, height int) {
	globalViewSettings.mu.Lock()
	defer globalViewSettings.mu.Unlock()
	if width > 0 {
		globalViewSettings.width = width
	}
	if height > 0 {
		globalViewSettings.height = height
	}
}

// GetFPSLimit returns the viewer frame cap; 0 means uncapped
func GetFPSLimit() int {
	globalViewSettings.mu.RLock()
	defer globalViewSettings.mu.RUnlock()
	return globalViewSettings.fpsLimit
}

// SetFPSLimit sets the viewer frame cap; non-positive values disable it
func SetFPSLimit(limit int) {
	globalViewSettings.mu.Lock()
	defer globalViewSettings.mu.Unlock()
	globalViewSettings.fpsLimit = max(limit, 0)
}
