package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"

	"github.com/MIBbrandon/Athena/pkg/domain"
	"github.com/MIBbrandon/Athena/pkg/render"
)

// View draws a board as terminal text.
type View struct {
	profile termenv.Profile
}

// NewView returns a view colouring output for profile. termenv.Ascii disables colour.
func NewView(profile termenv.Profile) *View {
	return &View{profile: profile}
}

// Render returns the board as a multi-line frame: nodes, transient edges,
// messages and the available keys.
func (v *View) Render(b *render.Board) string {
	styles, err := render.DecodeStyle(b.Style())
	if err != nil {
		styles = render.DefaultStyles()
	}
	labels := b.Labels()
	edges := b.Edges()

	// Endpoint colours follow the edge that touches the node.
	colours := make(map[int]string)
	for _, e := range edges {
		switch e.Kind {
		case domain.EdgeDone:
			colours[e.From] = styles.Node.ColourFromDone
			colours[e.To] = styles.Node.ColourToDone
		case domain.EdgeSwap:
			if e.ID == domain.EdgePrimary {
				colours[e.From] = styles.Node.ColourFromStd
				colours[e.To] = styles.Node.ColourToStd
			}
		}
	}

	var out strings.Builder
	nodes := make([]string, len(labels))
	for slot, label := range labels {
		cell := v.profile.String(fmt.Sprintf("[%s]", label))
		if b.Size(slot) == domain.SizeEnlarged {
			cell = cell.Bold()
			if c, ok := colours[slot]; ok {
				cell = cell.Foreground(v.profile.Color(c))
			}
		}
		nodes[slot] = cell.String()
	}
	out.WriteString(strings.Join(nodes, " "))
	out.WriteString("\n")

	for _, e := range edges {
		if e.ID == domain.EdgeSecondary {
			continue
		}
		arrow := "<->"
		if e.Kind == domain.EdgeDone {
			arrow = "->"
		}
		line := fmt.Sprintf("  %s %s %s", labelAt(labels, e.From), arrow, labelAt(labels, e.To))
		out.WriteString(v.profile.String(line).Foreground(v.profile.Color(styles.EdgeColour(e.Kind))).String())
		out.WriteString("\n")
	}

	if msg, ok := b.Action(); ok {
		out.WriteString(msg.Text)
		out.WriteString("\n")
	}
	if msg, ok := b.Status(); ok {
		line := v.profile.String(msg.Text)
		if msg.Kind == domain.MessageError {
			line = line.Foreground(v.profile.Color("#ff5555"))
		} else {
			line = line.Faint()
		}
		out.WriteString(line.String())
		out.WriteString("\n")
	}

	out.WriteString(v.keys(b.ControlState()))
	return out.String()
}

func (v *View) keys(c domain.Controls) string {
	key := func(text string, enabled bool) string {
		s := v.profile.String(text)
		if !enabled {
			s = s.Faint()
		}
		return s.String()
	}
	return strings.Join([]string{
		key("[p] back", c.Backward),
		key("[n] next", c.Forward),
		key("[q] quit", true),
	}, "  ")
}

func labelAt(labels []domain.Label, slot int) string {
	if slot < 0 || slot >= len(labels) {
		return "?"
	}
	return string(labels[slot])
}
