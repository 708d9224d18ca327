package render

import (
	"github.com/MIBbrandon/Athena/pkg/domain"
	"github.com/MIBbrandon/Athena/pkg/ports"
)

type multi []ports.Renderer

// Multi returns a renderer that forwards every call to each of renderers.
func Multi(renderers ...ports.Renderer) ports.Renderer {
	out := make(multi, 0, len(renderers))
	for _, r := range renderers {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

func (m multi) Configure(style domain.Style) {
	for _, r := range m {
		r.Configure(style)
	}
}

func (m multi) Resize(size domain.NodeSize, slots ...int) {
	for _, r := range m {
		r.Resize(size, slots...)
	}
}

func (m multi) AddEdges(edges ...domain.Edge) {
	for _, r := range m {
		r.AddEdges(edges...)
	}
}

func (m multi) RemoveEdges(ids ...domain.EdgeID) {
	for _, r := range m {
		r.RemoveEdges(ids...)
	}
}

func (m multi) Relabel(slot int, label domain.Label) {
	for _, r := range m {
		r.Relabel(slot, label)
	}
}

func (m multi) Select(slots ...int) {
	for _, r := range m {
		r.Select(slots...)
	}
}

func (m multi) Notify(msg domain.Message) {
	for _, r := range m {
		r.Notify(msg)
	}
}

func (m multi) Controls(c domain.Controls) {
	for _, r := range m {
		r.Controls(c)
	}
}
