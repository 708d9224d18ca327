package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/MIBbrandon/Athena/pkg/domain"
)

// NewRenderer returns a function that renders markdown using glamour.
// When no terminal renderer can be built the markdown is returned as is.
func NewRenderer(width int) func(string) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// StepsMarkdown lists every step of a solution with the desired interaction it serves.
func StepsMarkdown(sol *domain.Solution, soddi domain.SoddiList) string {
	var b strings.Builder
	b.WriteString("# Solution\n\n")
	fmt.Fprintf(&b, "Total swaps: **%d**\n\n", sol.Steps.Swaps())
	if len(sol.Steps) == 0 {
		b.WriteString("_No steps required._\n")
		return b.String()
	}

	b.WriteString("| # | Step | Interaction |\n")
	b.WriteString("|---|------|-------------|\n")
	closed := 0
	for i, step := range sol.Steps {
		idx := closed
		if step.IsSentinel() {
			closed++
		}
		interaction := "-"
		if len(soddi) > 0 {
			idx = min(max(idx, 0), len(soddi)-1)
			interaction = soddi[idx].String()
		}
		fmt.Fprintf(&b, "| %d | %s | %s |\n", i+1, escapeCell(step.String()), escapeCell(interaction))
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
