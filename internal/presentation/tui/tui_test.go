package tui_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MIBbrandon/Athena/internal/presentation/tui"
	"github.com/MIBbrandon/Athena/pkg/domain"
	"github.com/MIBbrandon/Athena/pkg/render"
)

func TestView_Render(t *testing.T) {
	b := render.NewBoard()
	for slot, l := range []domain.Label{"2", "1", "3"} {
		b.Relabel(slot, l)
	}
	b.Resize(domain.SizeEnlarged, 0, 1)
	b.AddEdges(
		domain.Edge{ID: domain.EdgePrimary, From: 0, To: 1, Kind: domain.EdgeSwap},
		domain.Edge{ID: domain.EdgeSecondary, From: 1, To: 0, Kind: domain.EdgeSwap},
	)
	b.Notify(domain.SwappedMessage("1", "2"))
	b.Controls(domain.Controls{Forward: true})

	out := tui.NewView(termenv.Ascii).Render(b)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "[2] [1] [3]", lines[0])
	assert.Equal(t, "  2 <-> 1", lines[1], "secondary swap edge is folded into the primary")
	assert.Equal(t, "swapped (1, 2)", lines[2])
	assert.Equal(t, "[p] back  [n] next  [q] quit", lines[3])
}

func TestView_RenderDoneEdgeAndError(t *testing.T) {
	b := render.NewBoard()
	b.Relabel(0, "1")
	b.Relabel(1, "2")
	b.AddEdges(domain.Edge{ID: domain.EdgePrimary, From: 1, To: 0, Kind: domain.EdgeDone})
	b.Notify(domain.Message{Kind: domain.MessageError, Text: domain.TextInternalError})

	out := tui.NewView(termenv.Ascii).Render(b)
	assert.Contains(t, out, "  2 -> 1\n")
	assert.Contains(t, out, domain.TextInternalError)
}

func TestView_ColourProfile(t *testing.T) {
	b := render.NewBoard()
	b.Relabel(0, "1")
	b.Resize(domain.SizeEnlarged, 0)

	out := tui.NewView(termenv.TrueColor).Render(b)
	assert.Contains(t, out, "\x1b[", "enlarged nodes are styled")
}

func TestStepsMarkdown(t *testing.T) {
	sol := &domain.Solution{
		Steps: domain.StepSequence{
			domain.Swap("1", "2"),
			domain.InteractionCompleted(),
			domain.InteractionAlreadyEstablished(),
		},
	}
	soddi := domain.SoddiList{{Source: "2", Target: "1"}, {Source: "3", Target: "4"}}

	md := tui.StepsMarkdown(sol, soddi)
	assert.Contains(t, md, "Total swaps: **1**")
	assert.Contains(t, md, "| 1 | (1, 2) | 2->1 |")
	assert.Contains(t, md, "| 2 | # | 2->1 |")
	assert.Contains(t, md, "| 3 | Done already | 3->4 |")

	empty := tui.StepsMarkdown(&domain.Solution{}, nil)
	assert.Contains(t, empty, "No steps required")
}

func TestNewRenderer(t *testing.T) {
	out, err := tui.NewRenderer(80)("# Solution")
	require.NoError(t, err)
	assert.Contains(t, out, "Solution")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf, termenv.Ascii)
	assert.Contains(t, buf.String(), `/_/   \_\__|_|`)
}
