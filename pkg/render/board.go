package render

import (
	"sort"
	"sync"

	"github.com/MIBbrandon/Athena/pkg/domain"
	"github.com/MIBbrandon/Athena/pkg/ports"
)

var _ ports.Renderer = (*Board)(nil)

// Board keeps the visual state that a graph widget would show.
type Board struct {
	mu sync.RWMutex

	style    domain.Style
	labels   map[int]domain.Label
	sizes    map[int]domain.NodeSize
	edges    map[domain.EdgeID]domain.Edge
	selected []int
	status   *domain.Message
	action   *domain.Message
	controls domain.Controls
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	return &Board{
		labels: make(map[int]domain.Label),
		sizes:  make(map[int]domain.NodeSize),
		edges:  make(map[domain.EdgeID]domain.Edge),
	}
}

func (b *Board) Configure(style domain.Style) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.style = style
	b.status, b.action = nil, nil
}

func (b *Board) Resize(size domain.NodeSize, slots ...int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range slots {
		if size == domain.SizeNormal {
			delete(b.sizes, s)
			continue
		}
		b.sizes[s] = size
	}
}

func (b *Board) AddEdges(edges ...domain.Edge) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, e := range edges {
		b.edges[e.ID] = e
	}
}

func (b *Board) RemoveEdges(ids ...domain.EdgeID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, id := range ids {
		delete(b.edges, id)
	}
}

func (b *Board) Relabel(slot int, label domain.Label) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.labels[slot] = label
}

func (b *Board) Select(slots ...int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selected = append(b.selected[:0], slots...)
}

func (b *Board) Notify(msg domain.Message) {
	b.mu.Lock()
	defer b.mu.Unlock()
	m := msg
	if msg.Kind == domain.MessageAction {
		b.action = &m
		return
	}
	b.status = &m
}

func (b *Board) Controls(c domain.Controls) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.controls = c
}

// Labels returns the labels by slot, ordered by slot.
func (b *Board) Labels() []domain.Label {
	b.mu.RLock()
	defer b.mu.RUnlock()
	slots := make([]int, 0, len(b.labels))
	for s := range b.labels {
		slots = append(slots, s)
	}
	sort.Ints(slots)
	out := make([]domain.Label, len(slots))
	for i, s := range slots {
		out[i] = b.labels[s]
	}
	return out
}

// Size returns the drawn size of slot.
func (b *Board) Size(slot int) domain.NodeSize {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if size, ok := b.sizes[slot]; ok {
		return size
	}
	return domain.SizeNormal
}

// Edges returns the transient edges ordered by id.
func (b *Board) Edges() []domain.Edge {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]domain.Edge, 0, len(b.edges))
	for _, e := range b.edges {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Selected returns the selected slots.
func (b *Board) Selected() []int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]int(nil), b.selected...)
}

// Status returns the latest status or error line, if any.
func (b *Board) Status() (domain.Message, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.status == nil {
		return domain.Message{}, false
	}
	return *b.status, true
}

// Action returns the description of the latest step, if any.
func (b *Board) Action() (domain.Message, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.action == nil {
		return domain.Message{}, false
	}
	return *b.action, true
}

// ControlState returns the latest available directions.
func (b *Board) ControlState() domain.Controls {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.controls
}

// Style returns the style of the installed solution.
func (b *Board) Style() domain.Style {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.style
}
