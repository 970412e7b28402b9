// This file translates the HCL resource blocks (layers, shaders, buffers,
// textures, effects and materials) into scene objects, and drives the
// translation of a whole set of files into a config.Scene.

package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/specialistvlad/framegridgo/internal/config"
	"github.com/specialistvlad/framegridgo/internal/ctxlog"
	"github.com/specialistvlad/framegridgo/internal/scene"
)

// sceneTranslator carries the name tables while a scene is resolved.
type sceneTranslator struct {
	conv *Converter
	out  *config.Scene

	shaders map[string]*scene.ShaderProgram
	effects map[string]*scene.Effect

	// Declaration order, for deterministic registration.
	layerOrder    []*scene.Layer
	shaderOrder   []*scene.ShaderProgram
	bufferOrder   []*scene.Buffer
	textureOrder  []*scene.Texture
	materialOrder []*scene.Material
}

// translate resolves the decoded files into one scene. Resources may be
// referenced from any file.
func (l *Loader) translate(ctx context.Context, roots []*fileRoot) (*config.Scene, error) {
	logger := ctxlog.FromContext(ctx)
	t := &sceneTranslator{
		conv: l.converter,
		out: &config.Scene{
			Entities:  make(map[string]*scene.Entity),
			Layers:    make(map[string]*scene.Layer),
			Materials: make(map[string]*scene.Material),
			Buffers:   make(map[string]*scene.Buffer),
			Textures:  make(map[string]*scene.Texture),
		},
		shaders: make(map[string]*scene.ShaderProgram),
		effects: make(map[string]*scene.Effect),
	}

	// Resources first: every later block may reference them.
	for _, root := range roots {
		if err := t.translateResources(ctx, root); err != nil {
			return nil, err
		}
	}
	for _, root := range roots {
		for _, e := range root.Effects {
			if err := t.translateEffect(ctx, e); err != nil {
				return nil, err
			}
		}
	}
	for _, root := range roots {
		for _, m := range root.Materials {
			if err := t.translateMaterial(ctx, m); err != nil {
				return nil, err
			}
		}
	}

	sceneRoot := scene.NewEntity("scene")
	managers := scene.NewManagers(sceneRoot)
	for _, layer := range t.layerOrder {
		managers.RegisterLayer(layer)
	}
	for _, s := range t.shaderOrder {
		managers.RegisterShader(s)
	}
	for _, b := range t.bufferOrder {
		managers.RegisterBuffer(b)
	}
	for _, tex := range t.textureOrder {
		managers.RegisterTexture(tex)
	}
	for _, m := range t.materialOrder {
		managers.RegisterMaterial(m)
	}

	for _, root := range roots {
		for _, eb := range root.Entities {
			e, err := t.translateEntity(ctx, eb)
			if err != nil {
				return nil, err
			}
			sceneRoot.AddChild(e)
		}
	}
	managers.RegisterSubtree(sceneRoot)
	t.out.Managers = managers

	var fg *FrameGraphBlock
	for _, root := range roots {
		if root.FrameGraph == nil {
			continue
		}
		if fg != nil {
			return nil, fmt.Errorf("only one framegraph block is allowed")
		}
		fg = root.FrameGraph
	}
	if fg == nil || len(fg.Nodes) == 0 {
		return nil, fmt.Errorf("a framegraph block with at least one node is required")
	}
	frameGraph, err := t.translateFrameGraph(ctx, fg)
	if err != nil {
		return nil, err
	}
	t.out.FrameGraph = frameGraph

	logger.Debug("Scene loading complete.",
		"entities", len(t.out.Entities),
		"materials", len(t.out.Materials),
		"layers", len(t.out.Layers),
		"views", len(t.out.Leaves()),
	)
	return t.out, nil
}

func (t *sceneTranslator) translateResources(ctx context.Context, root *fileRoot) error {
	for _, b := range root.Layers {
		if _, dup := t.out.Layers[b.Name]; dup {
			return fmt.Errorf("duplicate layer '%s'", b.Name)
		}
		layer := &scene.Layer{ID: scene.NewID(), Name: b.Name, Recursive: b.Recursive}
		t.out.Layers[b.Name] = layer
		t.layerOrder = append(t.layerOrder, layer)
	}
	for _, b := range root.Shaders {
		if _, dup := t.shaders[b.Name]; dup {
			return fmt.Errorf("duplicate shader '%s'", b.Name)
		}
		s := &scene.ShaderProgram{ID: scene.NewID(), Name: b.Name, Declared: b.Uniforms}
		t.shaders[b.Name] = s
		t.shaderOrder = append(t.shaderOrder, s)
	}
	for _, b := range root.Buffers {
		if _, dup := t.out.Buffers[b.Name]; dup {
			return fmt.Errorf("duplicate buffer '%s'", b.Name)
		}
		buf := &scene.Buffer{ID: scene.NewID(), Name: b.Name, Dirty: b.Dirty}
		t.out.Buffers[b.Name] = buf
		t.bufferOrder = append(t.bufferOrder, buf)
	}
	for _, b := range root.Textures {
		if _, dup := t.out.Textures[b.Name]; dup {
			return fmt.Errorf("duplicate texture '%s'", b.Name)
		}
		tex := &scene.Texture{ID: scene.NewID(), Name: b.Name, Dirty: b.Dirty}
		t.out.Textures[b.Name] = tex
		t.textureOrder = append(t.textureOrder, tex)
	}
	ctxlog.FromContext(ctx).Debug("Translated resource blocks.",
		"layers", len(root.Layers),
		"shaders", len(root.Shaders),
		"buffers", len(root.Buffers),
		"textures", len(root.Textures),
	)
	return nil
}

// translateEffect converts an effect with its techniques and render passes.
func (t *sceneTranslator) translateEffect(ctx context.Context, b *EffectBlock) error {
	if _, dup := t.effects[b.Name]; dup {
		return fmt.Errorf("duplicate effect '%s'", b.Name)
	}
	params, err := t.conv.Parameters(b.Parameters)
	if err != nil {
		return fmt.Errorf("in effect '%s': %w", b.Name, err)
	}
	effect := &scene.Effect{ID: scene.NewID(), Name: b.Name, Parameters: params}

	for _, tb := range b.Techniques {
		tech, err := t.translateTechnique(ctx, tb)
		if err != nil {
			return fmt.Errorf("in effect '%s', technique '%s': %w", b.Name, tb.Name, err)
		}
		effect.Techniques = append(effect.Techniques, tech)
	}
	t.effects[b.Name] = effect
	return nil
}

func (t *sceneTranslator) translateTechnique(ctx context.Context, b *TechniqueBlock) (*scene.Technique, error) {
	keys, err := t.conv.FilterKeys(b.FilterKeys)
	if err != nil {
		return nil, err
	}
	params, err := t.conv.Parameters(b.Parameters)
	if err != nil {
		return nil, err
	}
	api := b.API
	if api == "" {
		api = "opengl"
	}
	tech := &scene.Technique{
		ID:         scene.NewID(),
		Name:       b.Name,
		API:        scene.GraphicsAPI{Name: api, Major: b.Major, Minor: b.Minor},
		FilterKeys: keys,
		Parameters: params,
	}
	for _, pb := range b.Passes {
		pass, err := t.translateRenderPass(ctx, pb)
		if err != nil {
			return nil, fmt.Errorf("render pass '%s': %w", pb.Name, err)
		}
		tech.Passes = append(tech.Passes, pass)
	}
	return tech, nil
}

func (t *sceneTranslator) translateRenderPass(ctx context.Context, b *RenderPassBlock) (*scene.RenderPass, error) {
	enabled, err := boolAttr(ctx, b.Enabled, "enabled", true)
	if err != nil {
		return nil, err
	}
	keys, err := t.conv.FilterKeys(b.FilterKeys)
	if err != nil {
		return nil, err
	}
	params, err := t.conv.Parameters(b.Parameters)
	if err != nil {
		return nil, err
	}
	pass := &scene.RenderPass{
		ID:         scene.NewID(),
		Name:       b.Name,
		Enabled:    enabled,
		FilterKeys: keys,
		Parameters: params,
		StateCount: b.StateCount,
	}
	if b.Shader != "" {
		shader, ok := t.shaders[b.Shader]
		if !ok {
			return nil, fmt.Errorf("unknown shader '%s'", b.Shader)
		}
		pass.Shader = shader
	}
	return pass, nil
}

func (t *sceneTranslator) translateMaterial(ctx context.Context, b *MaterialBlock) error {
	if _, dup := t.out.Materials[b.Name]; dup {
		return fmt.Errorf("duplicate material '%s'", b.Name)
	}
	effect, ok := t.effects[b.Effect]
	if !ok {
		return fmt.Errorf("in material '%s': unknown effect '%s'", b.Name, b.Effect)
	}
	enabled, err := boolAttr(ctx, b.Enabled, "enabled", true)
	if err != nil {
		return fmt.Errorf("in material '%s': %w", b.Name, err)
	}
	params, err := t.conv.Parameters(b.Parameters)
	if err != nil {
		return fmt.Errorf("in material '%s': %w", b.Name, err)
	}
	m := &scene.Material{
		ID:         scene.NewID(),
		Name:       b.Name,
		Enabled:    enabled,
		Effect:     effect,
		Parameters: params,
	}
	t.out.Materials[b.Name] = m
	t.materialOrder = append(t.materialOrder, m)
	return nil
}
