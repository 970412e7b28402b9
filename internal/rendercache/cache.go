package rendercache

import (
	"sync"

	"github.com/specialistvlad/framegridgo/internal/jobs"
	"github.com/specialistvlad/framegridgo/internal/scene"
)

// Cache maps frame-graph leaves to their cached results.
type Cache struct {
	leaves sync.Map // Key: scene.NodeID of the leaf, Value: *Leaf
}

func New() *Cache {
	return &Cache{}
}

// Leaf returns the entry of the given leaf, creating an empty one on first
// use.
func (c *Cache) Leaf(id scene.NodeID) *Leaf {
	if v, ok := c.leaves.Load(id); ok {
		return v.(*Leaf)
	}
	v, _ := c.leaves.LoadOrStore(id, &Leaf{})
	return v.(*Leaf)
}

// Has reports whether an entry exists for the leaf.
func (c *Cache) Has(id scene.NodeID) bool {
	_, ok := c.leaves.Load(id)
	return ok
}

// Remove drops the entry of a leaf that left the frame graph.
func (c *Cache) Remove(id scene.NodeID) {
	c.leaves.Delete(id)
}

// Retain drops every entry whose leaf is not in live and returns how many
// were dropped.
func (c *Cache) Retain(live []scene.NodeID) int {
	keep := make(map[scene.NodeID]struct{}, len(live))
	for _, id := range live {
		keep[id] = struct{}{}
	}
	removed := 0
	c.leaves.Range(func(k, _ any) bool {
		if _, ok := keep[k.(scene.NodeID)]; !ok {
			c.leaves.Delete(k)
			removed++
		}
		return true
	})
	return removed
}

// Len returns the number of cached leaves.
func (c *Cache) Len() int {
	n := 0
	c.leaves.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Leaf is the cached state of one frame-graph leaf. Slices handed in are
// stored as-is and must not be modified afterwards by the caller.
type Leaf struct {
	mu sync.RWMutex

	layerFiltered      []*scene.Entity
	materialParameters []jobs.MaterialParameters
	renderables        []*scene.Entity
	computables        []*scene.Entity
	lights             []jobs.LightSource
	environmentLight   *scene.EnvironmentLight
}

func (l *Leaf) SetLayerFilteredEntities(es []*scene.Entity) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.layerFiltered = es
}

func (l *Leaf) LayerFilteredEntities() []*scene.Entity {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.layerFiltered
}

// SetMaterialParameters stores the results of every material gatherer
// shard.
func (l *Leaf) SetMaterialParameters(params []jobs.MaterialParameters) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.materialParameters = params
}

func (l *Leaf) MaterialParameters() []jobs.MaterialParameters {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.materialParameters
}

func (l *Leaf) SetRenderables(es []*scene.Entity) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.renderables = es
}

func (l *Leaf) Renderables() []*scene.Entity {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.renderables
}

func (l *Leaf) SetComputables(es []*scene.Entity) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.computables = es
}

func (l *Leaf) Computables() []*scene.Entity {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.computables
}

// SetLights stores the gathered lights and the environment light, which
// may be nil.
func (l *Leaf) SetLights(lights []jobs.LightSource, env *scene.EnvironmentLight) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lights = lights
	l.environmentLight = env
}

func (l *Leaf) Lights() []jobs.LightSource {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lights
}

func (l *Leaf) EnvironmentLight() *scene.EnvironmentLight {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.environmentLight
}
