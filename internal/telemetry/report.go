package telemetry

import (
	"github.com/specialistvlad/framegridgo/internal/renderer"
)

// ViewSummary describes one render view of a frame.
type ViewSummary struct {
	Index    int    `json:"index"`
	Leaf     string `json:"leaf"`
	Camera   string `json:"camera,omitempty"`
	Commands int    `json:"commands"`
	Lights   int    `json:"lights"`
	Compute  bool   `json:"compute"`
	NoDraw   bool   `json:"noDraw"`
}

// Report is the payload handed to publishers.
type Report struct {
	Stats renderer.FrameStats `json:"stats"`
	Views []ViewSummary       `json:"views"`
}

// NewReport summarizes a completed frame.
func NewReport(f *renderer.Frame) Report {
	r := Report{Stats: f.Stats, Views: make([]ViewSummary, 0, len(f.Views))}
	for _, rv := range f.Views {
		s := ViewSummary{
			Index:    rv.Index(),
			Commands: len(rv.Commands),
			Lights:   len(rv.Lights),
			Compute:  rv.Compute,
			NoDraw:   rv.NoDraw,
		}
		if leaf := rv.Leaf(); leaf != nil {
			s.Leaf = leaf.Name
		}
		if rv.CameraEntity != nil {
			s.Camera = rv.CameraEntity.Name
		}
		r.Views = append(r.Views, s)
	}
	return r
}
