package render

import (
	"sync"

	"github.com/MIBbrandon/Athena/pkg/domain"
	"github.com/MIBbrandon/Athena/pkg/ports"
)

var _ ports.Renderer = (*Recorder)(nil)

// Recorder stores every renderer call as a domain.Effect.
// Safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	effects []domain.Effect
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) add(e domain.Effect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.effects = append(r.effects, e)
}

// Effects returns a copy of the recorded effects.
func (r *Recorder) Effects() []domain.Effect {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Effect, len(r.effects))
	copy(out, r.effects)
	return out
}

// Drain returns the recorded effects and clears the recorder.
func (r *Recorder) Drain() []domain.Effect {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.effects
	r.effects = nil
	return out
}

// Messages returns the recorded messages in order.
func (r *Recorder) Messages() []domain.Message {
	var msgs []domain.Message
	for _, e := range r.Effects() {
		if e.Op == domain.OpNotify && e.Message != nil {
			msgs = append(msgs, *e.Message)
		}
	}
	return msgs
}

func (r *Recorder) Configure(style domain.Style) {
	r.add(domain.Effect{Op: domain.OpConfigure, Style: &style})
}

func (r *Recorder) Resize(size domain.NodeSize, slots ...int) {
	r.add(domain.Effect{Op: domain.OpResize, Size: size, Slots: append([]int(nil), slots...)})
}

func (r *Recorder) AddEdges(edges ...domain.Edge) {
	r.add(domain.Effect{Op: domain.OpAddEdges, Edges: append([]domain.Edge(nil), edges...)})
}

func (r *Recorder) RemoveEdges(ids ...domain.EdgeID) {
	r.add(domain.Effect{Op: domain.OpRemoveEdges, EdgeIDs: append([]domain.EdgeID(nil), ids...)})
}

func (r *Recorder) Relabel(slot int, label domain.Label) {
	r.add(domain.Effect{Op: domain.OpRelabel, Slots: []int{slot}, Label: label})
}

func (r *Recorder) Select(slots ...int) {
	r.add(domain.Effect{Op: domain.OpSelect, Slots: append([]int(nil), slots...)})
}

func (r *Recorder) Notify(msg domain.Message) {
	r.add(domain.Effect{Op: domain.OpNotify, Message: &msg})
}

func (r *Recorder) Controls(c domain.Controls) {
	r.add(domain.Effect{Op: domain.OpControls, Controls: &c})
}

// Replay sends recorded effects to another renderer, in order.
func Replay(effects []domain.Effect, to ports.Renderer) {
	for _, e := range effects {
		switch e.Op {
		case domain.OpConfigure:
			if e.Style != nil {
				to.Configure(*e.Style)
			}
		case domain.OpResize:
			to.Resize(e.Size, e.Slots...)
		case domain.OpAddEdges:
			to.AddEdges(e.Edges...)
		case domain.OpRemoveEdges:
			to.RemoveEdges(e.EdgeIDs...)
		case domain.OpRelabel:
			if len(e.Slots) == 1 {
				to.Relabel(e.Slots[0], e.Label)
			}
		case domain.OpSelect:
			to.Select(e.Slots...)
		case domain.OpNotify:
			if e.Message != nil {
				to.Notify(*e.Message)
			}
		case domain.OpControls:
			if e.Controls != nil {
				to.Controls(*e.Controls)
			}
		}
	}
}
