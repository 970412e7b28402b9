package scene

import "sync"

// Managers owns the backend scene: the entity tree and lookup tables for
// every resource referenced by id. Lookups are safe for concurrent use;
// mutation of the tree happens between frames.
type Managers struct {
	mu sync.RWMutex

	root       *Entity
	entities   map[NodeID]*Entity
	layers     map[NodeID]*Layer
	materials  map[NodeID]*Material
	effects    map[NodeID]*Effect
	techniques map[NodeID]*Technique
	passes     map[NodeID]*RenderPass
	shaders    map[NodeID]*ShaderProgram
	buffers    map[NodeID]*Buffer
	textures   map[NodeID]*Texture

	// materialOrder keeps registration order so material sharding is
	// deterministic.
	materialOrder []*Material
}

// NewManagers creates managers for the tree rooted at root. Every entity
// already attached to root is registered.
func NewManagers(root *Entity) *Managers {
	m := &Managers{
		root:       root,
		entities:   make(map[NodeID]*Entity),
		layers:     make(map[NodeID]*Layer),
		materials:  make(map[NodeID]*Material),
		effects:    make(map[NodeID]*Effect),
		techniques: make(map[NodeID]*Technique),
		passes:     make(map[NodeID]*RenderPass),
		shaders:    make(map[NodeID]*ShaderProgram),
		buffers:    make(map[NodeID]*Buffer),
		textures:   make(map[NodeID]*Texture),
	}
	if root != nil {
		m.RegisterSubtree(root)
	}
	return m
}

func (m *Managers) Root() *Entity { return m.root }

// RegisterSubtree records e, its descendants and the materials they use.
func (m *Managers) RegisterSubtree(e *Entity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.Visit(func(x *Entity) bool {
		m.entities[x.id] = x
		if x.Material != nil {
			m.registerMaterialLocked(x.Material)
		}
		return true
	})
}

// RegisterMaterial records a material, its effect, techniques, passes and
// shaders.
func (m *Managers) RegisterMaterial(mat *Material) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.registerMaterialLocked(mat)
}

func (m *Managers) registerMaterialLocked(mat *Material) {
	if _, ok := m.materials[mat.ID]; !ok {
		m.materialOrder = append(m.materialOrder, mat)
	}
	m.materials[mat.ID] = mat
	if mat.Effect == nil {
		return
	}
	m.effects[mat.Effect.ID] = mat.Effect
	for _, t := range mat.Effect.Techniques {
		m.techniques[t.ID] = t
		for _, p := range t.Passes {
			m.passes[p.ID] = p
			if p.Shader != nil {
				m.shaders[p.Shader.ID] = p.Shader
			}
		}
	}
}

func (m *Managers) RegisterLayer(l *Layer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.layers[l.ID] = l
}

func (m *Managers) RegisterShader(s *ShaderProgram) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shaders[s.ID] = s
}

func (m *Managers) RegisterBuffer(b *Buffer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buffers[b.ID] = b
}

func (m *Managers) RegisterTexture(t *Texture) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.textures[t.ID] = t
}

func (m *Managers) Entity(id NodeID) *Entity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.entities[id]
}

func (m *Managers) Layer(id NodeID) *Layer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.layers[id]
}

func (m *Managers) Material(id NodeID) *Material {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.materials[id]
}

// Materials returns every registered material in registration order.
func (m *Managers) Materials() []*Material {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*Material(nil), m.materialOrder...)
}

// Layers returns every registered layer, in no particular order.
func (m *Managers) Layers() []*Layer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Layer, 0, len(m.layers))
	for _, l := range m.layers {
		out = append(out, l)
	}
	return out
}

// Techniques returns every registered technique, in no particular order.
func (m *Managers) Techniques() []*Technique {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Technique, 0, len(m.techniques))
	for _, t := range m.techniques {
		out = append(out, t)
	}
	return out
}

// Shaders returns every registered shader program, in no particular order.
func (m *Managers) Shaders() []*ShaderProgram {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*ShaderProgram, 0, len(m.shaders))
	for _, s := range m.shaders {
		out = append(out, s)
	}
	return out
}

func (m *Managers) Buffers() []*Buffer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Buffer, 0, len(m.buffers))
	for _, b := range m.buffers {
		out = append(out, b)
	}
	return out
}

func (m *Managers) Textures() []*Texture {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Texture, 0, len(m.textures))
	for _, t := range m.textures {
		out = append(out, t)
	}
	return out
}

// EnabledEntities returns every tree-enabled entity in depth-first
// pre-order. Disabled subtrees are skipped entirely.
func (m *Managers) EnabledEntities() []*Entity {
	if m.root == nil {
		return nil
	}
	var out []*Entity
	m.root.Visit(func(e *Entity) bool {
		if !e.TreeEnabled() {
			return false
		}
		out = append(out, e)
		return true
	})
	return out
}

// AllEntities returns every entity of the tree in depth-first pre-order.
func (m *Managers) AllEntities() []*Entity {
	if m.root == nil {
		return nil
	}
	var out []*Entity
	m.root.Visit(func(e *Entity) bool {
		out = append(out, e)
		return true
	})
	return out
}
