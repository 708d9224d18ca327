package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/MIBbrandon/Athena/internal/logging"
	"github.com/MIBbrandon/Athena/pkg/domain"
	"github.com/MIBbrandon/Athena/pkg/ports"
)

const (
	solvePath  = "/coreExecutionMethod"
	randomPath = "/obtainRandomValidInputMethod"

	// DefaultTimeout bounds one solver round trip.
	DefaultTimeout = 60 * time.Second

	maxResponseSize = 8 << 20
)

var _ ports.Solver = (*Client)(nil)

// ErrMalformedResponse is returned when a 200 response does not have the expected shape.
var ErrMalformedResponse = errors.New("malformed solver response")

// StatusError reports a non-200 solver response. Failures are not retried.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("solver returned %s", e.Status)
}

// Client talks to the solver service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

// WithTimeout sets the round-trip timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 {
			cl.http.Timeout = d
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(cl *Client) {
		if logger != nil {
			cl.logger = logger
		}
	}
}

// NewClient creates a solver client for the service at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Solve submits a puzzle and decodes the solution.
// The solver refusing the puzzle surfaces as domain.ErrSolverRejected.
func (c *Client) Solve(ctx context.Context, puzzle domain.Puzzle) (*domain.Solution, error) {
	clean, err := SanitizePuzzle(puzzle)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	body, err := c.post(ctx, solvePath, clean)
	if err != nil {
		return nil, err
	}
	if err := rejected(body); err != nil {
		return nil, err
	}
	if err := validate(solutionSchema, body); err != nil {
		return nil, err
	}
	sol, err := domain.DecodeSolution(body)
	if err != nil {
		return nil, err
	}

	c.logger.DebugContext(ctx, "solution received",
		"steps", sol.Steps.Len(),
		"total_swaps", sol.TotalSwaps,
		"duration", time.Since(start),
	)
	return sol, nil
}

type randomResponse struct {
	Swaps        string `json:"gSwaps"`
	Interactions string `json:"gInteractions"`
	Soddi        string `json:"soddi"`
}

// Random asks the solver to generate a valid puzzle instance.
func (c *Client) Random(ctx context.Context, req domain.RandomRequest) (*domain.Puzzle, error) {
	body, err := c.post(ctx, randomPath, req)
	if err != nil {
		return nil, err
	}
	if err := rejected(body); err != nil {
		return nil, err
	}
	if err := validate(randomSchema, body); err != nil {
		return nil, err
	}

	var resp randomResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &domain.Puzzle{
		SwapGraph:        resp.Swaps,
		InteractionGraph: resp.Interactions,
		Soddi:            resp.Soddi,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("solver request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.WarnContext(ctx, "solver error status", "path", path, "status", resp.StatusCode)
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read solver response: %w", err)
	}
	return body, nil
}

// rejected detects the solver's {"ERROR": "..."} answer.
func rejected(body []byte) error {
	var probe struct {
		Error string `json:"ERROR"`
	}
	if err := json.Unmarshal(body, &probe); err == nil && probe.Error != "" {
		return fmt.Errorf("%w: %s", domain.ErrSolverRejected, probe.Error)
	}
	return nil
}
