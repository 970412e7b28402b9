package scene

// FilterKey is a name/value pair used by technique and render-pass filters.
type FilterKey struct {
	Name  string
	Value any
}

// Equal compares name and value. Values coming from config files are
// float64, strings or bools, all of which compare with ==.
func (k FilterKey) Equal(o FilterKey) bool {
	return k.Name == o.Name && k.Value == o.Value
}

// Parameters maps a uniform name to its value.
type Parameters map[string]any

// GraphicsAPI names the API and minimal version a technique targets.
type GraphicsAPI struct {
	Name  string
	Major int
	Minor int
}

// Less orders versions of the same API.
func (a GraphicsAPI) Less(o GraphicsAPI) bool {
	if a.Major != o.Major {
		return a.Major < o.Major
	}
	return a.Minor < o.Minor
}

// ShaderProgram is a shader whose interface is discovered by the
// introspection job.
type ShaderProgram struct {
	ID   NodeID
	Name string
	// Declared lists the uniforms the program source declares.
	Declared []string

	introspected bool
	uniforms     map[string]struct{}
}

// Introspected reports whether the introspection job has processed the
// program.
func (s *ShaderProgram) Introspected() bool {
	return s.introspected
}

// HasUniform reports whether the introspected program declares name.
func (s *ShaderProgram) HasUniform(name string) bool {
	_, ok := s.uniforms[name]
	return ok
}

// Introspect records the uniform set. It is idempotent.
func (s *ShaderProgram) Introspect() {
	if s.introspected {
		return
	}
	s.uniforms = make(map[string]struct{}, len(s.Declared))
	for _, u := range s.Declared {
		s.uniforms[u] = struct{}{}
	}
	s.introspected = true
}

// RenderPass is one shader invocation of a technique.
type RenderPass struct {
	ID         NodeID
	Name       string
	Enabled    bool
	FilterKeys []FilterKey
	Shader     *ShaderProgram
	Parameters Parameters
	// StateCount is the number of render states the pass changes. It feeds
	// the state-change-cost sort policy.
	StateCount int
}

// Technique groups render passes for one graphics API.
type Technique struct {
	ID         NodeID
	Name       string
	API        GraphicsAPI
	FilterKeys []FilterKey
	Passes     []*RenderPass
	Parameters Parameters

	compatible bool
}

// CompatibleWithRenderer is written by the filter-compatible-technique job.
func (t *Technique) CompatibleWithRenderer() bool {
	return t.compatible
}

func (t *Technique) SetCompatibleWithRenderer(v bool) {
	t.compatible = v
}

// MatchesFilters reports whether every filter key has an equal key on the
// technique.
func (t *Technique) MatchesFilters(filters []FilterKey) bool {
	for _, f := range filters {
		found := false
		for _, k := range t.FilterKeys {
			if k.Equal(f) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Effect is the set of techniques a material can be drawn with.
type Effect struct {
	ID         NodeID
	Name       string
	Techniques []*Technique
	Parameters Parameters
}

// Material binds an effect with per-material parameter values.
type Material struct {
	ID         NodeID
	Name       string
	Enabled    bool
	Effect     *Effect
	Parameters Parameters
}

// Buffer is a GPU buffer whose contents may need uploading.
type Buffer struct {
	ID    NodeID
	Name  string
	Dirty bool
}

// Texture is a GPU texture whose contents may need uploading.
type Texture struct {
	ID    NodeID
	Name  string
	Dirty bool
}
