package domain

// Cursor is the playback position.
// StepIndex is -1 before the first step. SoddiIndex counts the sentinel steps
// at positions <= StepIndex.
type Cursor struct {
	StepIndex  int `json:"step_index"`
	SoddiIndex int `json:"soddi_index"`
}

// StartCursor is the position right after a reset.
func StartCursor() Cursor {
	return Cursor{StepIndex: -1, SoddiIndex: 0}
}
