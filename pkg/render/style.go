package render

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/MIBbrandon/Athena/pkg/domain"
)

// EdgeStyle is the typed form of a solution's edge attributes.
type EdgeStyle struct {
	ColourStd  string  `mapstructure:"edge_colour_std"`
	WidthStd   float64 `mapstructure:"edge_width_std"`
	ColourDone string  `mapstructure:"edge_colour_done"`
	WidthDone  float64 `mapstructure:"edge_width_done"`
}

// NodeStyle is the typed form of a solution's node attributes.
type NodeStyle struct {
	ColourFromStd  string  `mapstructure:"node_colour_from_std"`
	ColourToStd    string  `mapstructure:"node_colour_to_std"`
	SizeFromStd    float64 `mapstructure:"node_size_from_std"`
	SizeToStd      float64 `mapstructure:"node_size_to_std"`
	ColourFromDone string  `mapstructure:"node_colour_from_done"`
	ColourToDone   string  `mapstructure:"node_colour_to_done"`
}

// Styles groups the decoded edge and node styles.
type Styles struct {
	Edge EdgeStyle
	Node NodeStyle
}

// DefaultStyles mirrors what the reference solver sends.
func DefaultStyles() Styles {
	return Styles{
		Edge: EdgeStyle{
			ColourStd:  "#ffffff",
			WidthStd:   10,
			ColourDone: "#1df505",
			WidthDone:  10,
		},
		Node: NodeStyle{
			ColourFromStd:  "#ffa600",
			ColourToStd:    "#f5c07a",
			SizeFromStd:    30,
			SizeToStd:      30,
			ColourFromDone: "#43f707",
			ColourToDone:   "#43f707",
		},
	}
}

// DecodeStyle overlays style on DefaultStyles. Unknown keys are ignored and
// numeric values may arrive as numbers or numeric strings.
func DecodeStyle(style domain.Style) (Styles, error) {
	out := DefaultStyles()
	if err := decodeInto(style.Edge, &out.Edge); err != nil {
		return out, fmt.Errorf("failed to decode edge attributes: %w", err)
	}
	if err := decodeInto(style.Node, &out.Node); err != nil {
		return out, fmt.Errorf("failed to decode node attributes: %w", err)
	}
	return out, nil
}

func decodeInto(in map[string]any, out any) error {
	if len(in) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(in)
}

// EdgeColour picks the colour for an edge of the given kind.
func (s Styles) EdgeColour(kind domain.EdgeKind) string {
	if kind == domain.EdgeDone {
		return s.Edge.ColourDone
	}
	return s.Edge.ColourStd
}
