package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MIBbrandon/Athena/pkg/domain"
)

func TestSession_SnapshotIsDeep(t *testing.T) {
	started := time.Now().UTC()
	sess := domain.NewSession("s")
	sess.Solution = &domain.Solution{
		Steps:     domain.StepSequence{domain.Swap("1", "2")},
		IDs:       []domain.Label{"1", "2"},
		NodeAttrs: map[string]any{"node_size_from_std": 30},
		EdgeAttrs: map[string]any{"edge_colour_std": "#ffffff"},
	}
	sess.Cursor = &domain.Cursor{StepIndex: 0}
	sess.SolveStartedAt = &started

	c := sess.Snapshot()
	c.Solution.NodeAttrs["node_size_from_std"] = 99
	c.Solution.EdgeAttrs["edge_colour_std"] = "#000000"
	c.Solution.IDs[0] = "x"
	c.Cursor.StepIndex = 5
	*c.SolveStartedAt = started.Add(time.Hour)

	assert.Equal(t, 30, sess.Solution.NodeAttrs["node_size_from_std"])
	assert.Equal(t, "#ffffff", sess.Solution.EdgeAttrs["edge_colour_std"])
	assert.Equal(t, domain.Label("1"), sess.Solution.IDs[0])
	assert.Equal(t, 0, sess.Cursor.StepIndex)
	require.NotNil(t, sess.SolveStartedAt)
	assert.Equal(t, started, *sess.SolveStartedAt)
}
