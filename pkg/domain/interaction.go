package domain

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// DesiredInteraction is an ordered pair of labels the puzzle requires to interact.
type DesiredInteraction struct {
	Source Label `json:"source"`
	Target Label `json:"target"`
}

func (d DesiredInteraction) String() string {
	return fmt.Sprintf("%s->%s", d.Source, d.Target)
}

// SoddiList is the sequence of desired direct interactions, in order.
type SoddiList []DesiredInteraction

// ParseSoddi decodes the user's SODDI text, e.g. "[(2,1),(4,3)]".
// Parentheses are rewritten as brackets and the result is decoded as a flow
// sequence of pairs. YAML flow syntax is a superset of JSON, so quoted labels
// such as [('a','b')] are accepted as well. Labels keep their source text:
// 1.0 stays "1.0", matching how solver payloads are decoded.
func ParseSoddi(text string) (SoddiList, error) {
	prepped := strings.NewReplacer("(", "[", ")", "]").Replace(text)

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(prepped), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSoddi, err)
	}
	if len(doc.Content) == 0 {
		return SoddiList{}, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%w: expected a list of pairs", ErrInvalidSoddi)
	}

	list := make(SoddiList, 0, len(root.Content))
	for i, pair := range root.Content {
		if pair.Kind != yaml.SequenceNode || len(pair.Content) != 2 {
			return nil, fmt.Errorf("%w: entry %d is not a pair of labels", ErrInvalidSoddi, i)
		}
		src, err := scalarLabel(pair.Content[0])
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrInvalidSoddi, i, err)
		}
		dst, err := scalarLabel(pair.Content[1])
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrInvalidSoddi, i, err)
		}
		list = append(list, DesiredInteraction{Source: src, Target: dst})
	}
	return list, nil
}

func scalarLabel(n *yaml.Node) (Label, error) {
	if n.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("label must be a scalar")
	}
	if n.ShortTag() == "!!null" {
		return "", fmt.Errorf("label is null")
	}
	return Label(n.Value), nil
}
