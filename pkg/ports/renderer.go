package ports

import "github.com/MIBbrandon/Athena/pkg/domain"

// Renderer consumes the visual effects of playback.
// Every call is a fire-and-forget command; playback never reads rendering state back.
type Renderer interface {
	// Configure forwards the opaque node/edge style of a new solution.
	Configure(style domain.Style)

	// Resize draws the given slots at size.
	Resize(size domain.NodeSize, slots ...int)

	// AddEdges draws transient directed edges (ids are the reserved domain.Edge* values).
	AddEdges(edges ...domain.Edge)

	// RemoveEdges removes transient edges. Removing an absent edge is a no-op.
	RemoveEdges(ids ...domain.EdgeID)

	// Relabel shows label on the node at slot.
	Relabel(slot int, label domain.Label)

	// Select highlights the given slots.
	Select(slots ...int)

	// Notify displays a short message.
	Notify(msg domain.Message)

	// Controls reports which step directions are available.
	Controls(c domain.Controls)
}
