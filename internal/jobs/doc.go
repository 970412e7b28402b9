// Package jobs contains the bodies of the per-render-view jobs: the
// render-view initializer, entity filters (layer, proximity, component),
// frustum culling, light and material gathering, and render command
// building.
//
// Jobs do not know about each other. The builder package wires them into a
// graph and moves state between them through its sync jobs, so every job
// here can be constructed and run in isolation.
package jobs
