// Package config defines the format-agnostic result of loading a scene
// description, along with the Loader interface that produces it.
//
// A Scene holds a fully resolved scene: the entity tree registered in
// scene.Managers, and the frame graph that decides which render views are
// built every frame. Name-based references in the source (materials,
// layers, cameras) have already been resolved to the objects they point
// at. Concrete loaders, such as the HCL one, live in separate packages.
package config
