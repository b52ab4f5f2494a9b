package layer

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/trayprefs/internal/config/loader"
)

// Manager manages layers and provides merged access.
type Manager struct {
	mu     sync.RWMutex
	layers []*Layer // Sorted by priority (ascending), stable
}

// NewManager creates a new layer manager.
func NewManager() *Manager {
	return &Manager{
		layers: make([]*Layer, 0, 4),
	}
}

// AddLayer adds a layer. Among layers of equal priority, the one added
// last wins.
func (m *Manager) AddLayer(layer *Layer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.layers = append(m.layers, layer)
	sort.SliceStable(m.layers, func(i, j int) bool {
		return m.layers[i].Priority < m.layers[j].Priority
	})
}

// Load reads l and adds the result as a layer. A source that does not
// exist yields an empty layer.
func (m *Manager) Load(name string, source Source, l loader.Loader) error {
	values, err := l.Load()
	if err != nil {
		return fmt.Errorf("loading %s layer %s: %w", source, name, err)
	}
	m.AddLayer(NewLayerWithValues(name, source, values))
	return nil
}

// Layers returns copies of all layers sorted by priority.
func (m *Manager) Layers() []*Layer {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*Layer, len(m.layers))
	for i, l := range m.layers {
		result[i] = l.Clone()
	}
	return result
}

// Merge combines all layers into a single map.
func (m *Manager) Merge() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]any)
	for _, layer := range m.layers {
		for k, v := range layer.Values {
			result[k] = v
		}
	}
	return result
}

// Origin returns the name and source of the highest priority layer that
// sets key to a value accept allows. A nil accept allows any value.
func (m *Manager) Origin(key string, accept func(any) bool) (name string, source Source, ok bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.layers) - 1; i >= 0; i-- {
		v, found := m.layers[i].Values[key]
		if !found || (accept != nil && !accept(v)) {
			continue
		}
		return m.layers[i].Name, m.layers[i].Source, true
	}
	return "", 0, false
}
