package solver_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MIBbrandon/Athena/pkg/adapters/solver"
	"github.com/MIBbrandon/Athena/pkg/domain"
)

const solutionBody = `{
	"totalSwaps": 2,
	"swapSteps": [[1, 2], "#", [3, 4], "Done already"],
	"ids": [1, 2, 3, 4],
	"edge_attributes": {"edge_colour_std": "#ffffff", "edge_width_std": 10},
	"node_attributes": {"node_colour_from_std": "#ffa600"}
}`

func newSolverServer(t *testing.T, handler http.HandlerFunc) *solver.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return solver.NewClient(srv.URL + "/")
}

func TestClient_Solve(t *testing.T) {
	var got domain.Puzzle
	client := newSolverServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/coreExecutionMethod", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(solutionBody))
	})

	puzzle := domain.Puzzle{
		SwapGraph:        "[(1,2),(2,3),(3,4)]",
		InteractionGraph: "[(2,1),(4,3)]",
		Soddi:            "[(2,1),\x1b(4,3)]",
	}
	sol, err := client.Solve(context.Background(), puzzle)
	require.NoError(t, err)

	assert.Equal(t, "[(2,1),(4,3)]", got.Soddi, "control characters are stripped before sending")
	assert.Equal(t, "[(1,2),(2,3),(3,4)]", got.SwapGraph)
	assert.Equal(t, 2, sol.TotalSwaps)
	assert.Equal(t, []domain.Label{"1", "2", "3", "4"}, sol.IDs)
	require.Len(t, sol.Steps, 4)
	assert.Equal(t, domain.Swap("1", "2"), sol.Steps[0])
	assert.Equal(t, domain.StepInteractionCompleted, sol.Steps[1].Kind)
	assert.Equal(t, domain.StepInteractionAlreadyEstablished, sol.Steps[3].Kind)
	assert.Equal(t, "#ffffff", sol.Style().Edge["edge_colour_std"])
}

func TestClient_SolveFailures(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "Rejected",
			status: http.StatusOK,
			body:   `{"ERROR": "INVALID INPUT"}`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrSolverRejected)
				assert.Contains(t, err.Error(), "INVALID INPUT")
			},
		},
		{
			name:   "Server Error",
			status: http.StatusInternalServerError,
			body:   `boom`,
			check: func(t *testing.T, err error) {
				var se *solver.StatusError
				require.True(t, errors.As(err, &se))
				assert.Equal(t, http.StatusInternalServerError, se.Code)
			},
		},
		{
			name:   "Unknown Sentinel",
			status: http.StatusOK,
			body:   `{"totalSwaps": 0, "swapSteps": ["nope"], "ids": [1]}`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, solver.ErrMalformedResponse)
			},
		},
		{
			name:   "Missing IDs",
			status: http.StatusOK,
			body:   `{"totalSwaps": 0, "swapSteps": []}`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, solver.ErrMalformedResponse)
			},
		},
		{
			name:   "Not JSON",
			status: http.StatusOK,
			body:   `<html>`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, solver.ErrMalformedResponse)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newSolverServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})
			_, err := client.Solve(context.Background(), domain.Puzzle{})
			require.Error(t, err)
			tc.check(t, err)
		})
	}
}

func TestClient_SolveTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	client := solver.NewClient(srv.URL, solver.WithTimeout(50*time.Millisecond))
	_, err := client.Solve(context.Background(), domain.Puzzle{})
	assert.Error(t, err)
}

func TestClient_Random(t *testing.T) {
	client := newSolverServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/obtainRandomValidInputMethod", r.URL.Path)
		var req domain.RandomRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 5, req.NumNodes)
		_, _ = w.Write([]byte(`{"gSwaps": "[(0, 1), (1, 2)]", "gInteractions": "[(2, 0)]", "soddi": "[(2, 0)]"}`))
	})

	p, err := client.Random(context.Background(), domain.RandomRequest{NumNodes: 5, SoddiLength: 1, SwapEdgeCreationChance: 0.5})
	require.NoError(t, err)
	assert.Equal(t, "[(0, 1), (1, 2)]", p.SwapGraph)
	assert.Equal(t, "[(2, 0)]", p.Soddi)

	soddi, err := domain.ParseSoddi(p.Soddi)
	require.NoError(t, err)
	assert.Len(t, soddi, 1)
}

func TestStatic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "solution.json")
	require.NoError(t, os.WriteFile(path, []byte(solutionBody), 0644))

	s, err := solver.LoadStatic(path)
	require.NoError(t, err)

	sol, err := s.Solve(context.Background(), domain.Puzzle{})
	require.NoError(t, err)
	sol.Steps[0] = domain.InteractionCompleted()

	again, err := s.Solve(context.Background(), domain.Puzzle{})
	require.NoError(t, err)
	assert.Equal(t, domain.Swap("1", "2"), again.Steps[0], "callers get copies")

	_, err = s.Random(context.Background(), domain.RandomRequest{})
	assert.ErrorIs(t, err, solver.ErrNoRandomPuzzle)

	require.NoError(t, os.WriteFile(path, []byte(`{"ERROR":"x"}`), 0644))
	_, err = solver.LoadStatic(path)
	assert.ErrorIs(t, err, domain.ErrSolverRejected)
}
