package domain

// EdgeID identifies an edge drawn by the renderer.
type EdgeID int

// Reserved synthetic identifiers for transient playback edges.
// They sit far above any real graph edge id.
const (
	EdgePrimary   EdgeID = 99999 // swap arrow a->b, or the "done" arrow of an interaction
	EdgeSecondary EdgeID = 99998 // swap arrow b->a
)

// TransientEdges lists every reserved edge id.
var TransientEdges = []EdgeID{EdgePrimary, EdgeSecondary}

// EdgeKind selects the style of a transient edge.
type EdgeKind string

const (
	EdgeSwap EdgeKind = "swap"
	EdgeDone EdgeKind = "done"
)

// Edge is a directed transient edge between two slots.
type Edge struct {
	ID   EdgeID   `json:"id"`
	From int      `json:"from"`
	To   int      `json:"to"`
	Kind EdgeKind `json:"kind"`
}

// NodeSize is the font size a node label is drawn with.
type NodeSize int

const (
	SizeNormal   NodeSize = 50
	SizeEnlarged NodeSize = 100
)

// EffectOp names one renderer command.
type EffectOp string

const (
	OpConfigure   EffectOp = "configure"
	OpResize      EffectOp = "resize"
	OpAddEdges    EffectOp = "add_edges"
	OpRemoveEdges EffectOp = "remove_edges"
	OpRelabel     EffectOp = "relabel"
	OpSelect      EffectOp = "select"
	OpNotify      EffectOp = "notify"
	OpControls    EffectOp = "controls"
)

// Controls says which step directions are currently available.
type Controls struct {
	Forward  bool `json:"forward"`
	Backward bool `json:"backward"`
}

// Effect is the data form of a single renderer command, used to ship
// playback output over the wire.
type Effect struct {
	Op       EffectOp  `json:"op"`
	Slots    []int     `json:"slots,omitempty"`
	Size     NodeSize  `json:"size,omitempty"`
	Edges    []Edge    `json:"edges,omitempty"`
	EdgeIDs  []EdgeID  `json:"edge_ids,omitempty"`
	Label    Label     `json:"label,omitempty"`
	Message  *Message  `json:"message,omitempty"`
	Controls *Controls `json:"controls,omitempty"`
	Style    *Style    `json:"style,omitempty"`
}
