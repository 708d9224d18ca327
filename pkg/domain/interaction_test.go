package domain_test

import (
	"testing"

	"github.com/MIBbrandon/Athena/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSoddi(t *testing.T) {
	tests := []struct {
		name string
		text string
		want domain.SoddiList
	}{
		{
			name: "tuples",
			text: "[(2,1),(4,3)]",
			want: domain.SoddiList{{Source: "2", Target: "1"}, {Source: "4", Target: "3"}},
		},
		{
			name: "lists with spaces",
			text: "[ [0, 5] ]",
			want: domain.SoddiList{{Source: "0", Target: "5"}},
		},
		{
			name: "quoted labels",
			text: "[('a','b')]",
			want: domain.SoddiList{{Source: "a", Target: "b"}},
		},
		{
			name: "numeric text kept verbatim",
			text: "[(1.0, 1e3), (0x1F, 007)]",
			want: domain.SoddiList{{Source: "1.0", Target: "1e3"}, {Source: "0x1F", Target: "007"}},
		},
		{
			name: "empty",
			text: "[]",
			want: domain.SoddiList{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParseSoddi(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSoddi_Invalid(t *testing.T) {
	for _, text := range []string{"[(1,2,3)]", "[(1,2)", "[[null, 1]]", "[[[1], 2]]", "{a: b}"} {
		_, err := domain.ParseSoddi(text)
		assert.ErrorIs(t, err, domain.ErrInvalidSoddi, text)
	}
}

func TestDesiredInteraction_String(t *testing.T) {
	assert.Equal(t, "2->1", domain.DesiredInteraction{Source: "2", Target: "1"}.String())
}

func TestParseSoddi_MatchesSolverLabels(t *testing.T) {
	sol, err := domain.DecodeSolution([]byte(`{"totalSwaps": 0, "swapSteps": ["#"], "ids": [1.0, 2.5]}`))
	require.NoError(t, err)

	soddi, err := domain.ParseSoddi("[(1.0, 2.5)]")
	require.NoError(t, err)
	assert.NoError(t, sol.Validate(soddi))
}
