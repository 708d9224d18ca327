package domain

import (
	"encoding/json"
	"fmt"
)

// Permutation is a slot <-> label bijection.
// Both directions are indexed so lookups are O(1). Swap is the only mutation.
type Permutation struct {
	labels []Label
	slots  map[Label]int
}

// NewPermutation builds a permutation where slot i holds labels[i].
// It fails with ErrDuplicateLabel if a label repeats.
func NewPermutation(labels []Label) (*Permutation, error) {
	p := &Permutation{
		labels: make([]Label, len(labels)),
		slots:  make(map[Label]int, len(labels)),
	}
	for i, l := range labels {
		if prev, dup := p.slots[l]; dup {
			return nil, fmt.Errorf("%w: %q at slots %d and %d", ErrDuplicateLabel, l, prev, i)
		}
		p.labels[i] = l
		p.slots[l] = i
	}
	return p, nil
}

// Len returns the number of slots.
func (p *Permutation) Len() int {
	return len(p.labels)
}

// LabelAt returns the label held by slot.
func (p *Permutation) LabelAt(slot int) (Label, error) {
	if slot < 0 || slot >= len(p.labels) {
		return "", fmt.Errorf("slot %d out of range [0, %d)", slot, len(p.labels))
	}
	return p.labels[slot], nil
}

// SlotOf returns the slot currently holding label.
// A miss means the step data and the permutation disagree, never a user error.
func (p *Permutation) SlotOf(label Label) (int, error) {
	slot, ok := p.slots[label]
	if !ok {
		return -1, fmt.Errorf("%w: %q", ErrLabelNotFound, label)
	}
	return slot, nil
}

// Swap exchanges the labels at two slots. Applying it twice restores the prior state.
func (p *Permutation) Swap(a, b int) error {
	n := len(p.labels)
	if a < 0 || a >= n || b < 0 || b >= n {
		return fmt.Errorf("swap (%d, %d) out of range [0, %d)", a, b, n)
	}
	la, lb := p.labels[a], p.labels[b]
	p.labels[a], p.labels[b] = lb, la
	p.slots[la], p.slots[lb] = b, a
	return nil
}

// Labels returns a copy of the slot -> label array.
func (p *Permutation) Labels() []Label {
	out := make([]Label, len(p.labels))
	copy(out, p.labels)
	return out
}

// Clone returns an independent copy.
func (p *Permutation) Clone() *Permutation {
	c, _ := NewPermutation(p.labels)
	return c
}

// IsBijectionOver reports whether the permutation holds exactly the given label set.
func (p *Permutation) IsBijectionOver(set []Label) bool {
	if len(set) != len(p.labels) || len(p.slots) != len(p.labels) {
		return false
	}
	for _, l := range set {
		slot, ok := p.slots[l]
		if !ok || p.labels[slot] != l {
			return false
		}
	}
	return true
}

// MarshalJSON writes the slot -> label array.
func (p *Permutation) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.labels)
}

// UnmarshalJSON rebuilds both indexes from a slot -> label array.
func (p *Permutation) UnmarshalJSON(data []byte) error {
	var labels []Label
	if err := json.Unmarshal(data, &labels); err != nil {
		return err
	}
	built, err := NewPermutation(labels)
	if err != nil {
		return err
	}
	*p = *built
	return nil
}
