package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/MIBbrandon/Athena"
	"github.com/MIBbrandon/Athena/pkg/adapters/solver"
	"github.com/MIBbrandon/Athena/pkg/domain"
	"github.com/MIBbrandon/Athena/pkg/ports"
	"github.com/MIBbrandon/Athena/pkg/render"
)

// SessionResponse is the structured result of the session tools.
type SessionResponse struct {
	Session     *domain.Session `json:"session" jsonschema_description:"The stored session"`
	CanForward  bool            `json:"canForward" jsonschema_description:"Whether step_forward would move"`
	CanBackward bool            `json:"canBackward" jsonschema_description:"Whether step_backward would move"`
}

// StepResponse is the structured result of the step tools.
type StepResponse struct {
	SessionResponse
	Message domain.Message  `json:"message" jsonschema_description:"Status or action text produced by the step"`
	Effects []domain.Effect `json:"effects" jsonschema_description:"Renderer commands emitted by the step"`
}

// Player defines what the MCP server needs from the playback facade.
type Player interface {
	Create(ctx context.Context) (*domain.Session, error)
	Inspect(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]string, error)
	Submit(ctx context.Context, id string, puzzle domain.Puzzle, r ports.Renderer) (*domain.Session, error)
	Random(ctx context.Context, id string, req domain.RandomRequest) (*domain.Session, error)
	StepForward(ctx context.Context, id string, r ports.Renderer) (*domain.Session, domain.Message, error)
	StepBackward(ctx context.Context, id string, r ports.Renderer) (*domain.Session, domain.Message, error)
}

// Server exposes a Player as an MCP server.
type Server struct {
	player    Player
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance. A nil logger uses slog.Default.
func NewServer(player Player, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		player:    player,
		logger:    logger,
		mcpServer: server.NewMCPServer("athena-mcp", strings.TrimSpace(athena.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves MCP over SSE on port until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutdown signal received, stopping MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// SessionArgs selects a session.
type SessionArgs struct {
	SessionID string `json:"session_id"`
}

// SubmitArgs carries a puzzle for a session.
type SubmitArgs struct {
	SessionID    string `json:"session_id"`
	Swaps        string `json:"swaps"`
	Interactions string `json:"interactions"`
	Soddi        string `json:"soddi"`
}

// RandomArgs carries random puzzle parameters. Zero values use the defaults.
type RandomArgs struct {
	SessionID                     string  `json:"session_id"`
	NumNodes                      int     `json:"num_nodes"`
	SoddiLength                   int     `json:"soddi_length"`
	SwapEdgeCreationChance        float64 `json:"swap_edge_creation_chance"`
	InteractionEdgeCreationChance float64 `json:"interaction_edge_creation_chance"`
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("create_session",
		mcp.WithDescription("Create an idle playback session and return it."),
		mcp.WithOutputSchema[SessionResponse](),
	), mcp.NewStructuredToolHandler(s.handleCreate))

	s.mcpServer.AddTool(mcp.NewTool("get_session",
		mcp.WithDescription("Return the stored state of a session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithOutputSchema[SessionResponse](),
	), mcp.NewStructuredToolHandler(s.handleGet))

	s.mcpServer.AddTool(mcp.NewTool("submit",
		mcp.WithDescription("Solve a puzzle and install the solution into the session, resetting playback."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID; created if missing")),
		mcp.WithString("swaps", mcp.Required(), mcp.Description("Swap graph edges, e.g. [(1,2),(2,3)]")),
		mcp.WithString("interactions", mcp.Required(), mcp.Description("Interaction graph edges, e.g. [(2,1)]")),
		mcp.WithString("soddi", mcp.Required(), mcp.Description("Ordered desired interactions, e.g. [(2,1)]")),
		mcp.WithOutputSchema[SessionResponse](),
	), mcp.NewStructuredToolHandler(s.handleSubmit))

	s.mcpServer.AddTool(mcp.NewTool("random",
		mcp.WithDescription("Replace the session with a random valid puzzle from the solver."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID; created if missing")),
		mcp.WithNumber("num_nodes", mcp.Description("Number of nodes (minimum 2)")),
		mcp.WithNumber("soddi_length", mcp.Description("Number of desired interactions")),
		mcp.WithNumber("swap_edge_creation_chance", mcp.Description("Probability of each swap edge")),
		mcp.WithNumber("interaction_edge_creation_chance", mcp.Description("Probability of each interaction edge")),
		mcp.WithOutputSchema[SessionResponse](),
	), mcp.NewStructuredToolHandler(s.handleRandom))

	s.mcpServer.AddTool(mcp.NewTool("step_forward",
		mcp.WithDescription("Advance playback by one step."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithOutputSchema[StepResponse](),
	), mcp.NewStructuredToolHandler(s.handleForward))

	s.mcpServer.AddTool(mcp.NewTool("step_backward",
		mcp.WithDescription("Move playback one step back."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithOutputSchema[StepResponse](),
	), mcp.NewStructuredToolHandler(s.handleBackward))

	s.mcpServer.AddTool(mcp.NewTool("list_sessions",
		mcp.WithDescription("List stored session IDs."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ids, err := s.player.List(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(ids)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	s.mcpServer.AddTool(mcp.NewTool("delete_session",
		mcp.WithDescription("Delete a session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := request.GetString("session_id", "")
		if err := s.player.Delete(ctx, id); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("delete failed: %v", err)), nil
		}
		return mcp.NewToolResultText("deleted " + id), nil
	})
}

func sessionResponse(sess *domain.Session) SessionResponse {
	c := sess.Controls()
	return SessionResponse{Session: sess, CanForward: c.Forward, CanBackward: c.Backward}
}

func (s *Server) handleCreate(ctx context.Context, _ mcp.CallToolRequest, _ struct{}) (SessionResponse, error) {
	sess, err := s.player.Create(ctx)
	if err != nil {
		return SessionResponse{}, fmt.Errorf("create failed: %w", err)
	}
	return sessionResponse(sess), nil
}

func (s *Server) handleGet(ctx context.Context, _ mcp.CallToolRequest, args SessionArgs) (SessionResponse, error) {
	sess, err := s.player.Inspect(ctx, args.SessionID)
	if err != nil {
		return SessionResponse{}, fmt.Errorf("inspect failed: %w", err)
	}
	return sessionResponse(sess), nil
}

func (s *Server) handleSubmit(ctx context.Context, _ mcp.CallToolRequest, args SubmitArgs) (SessionResponse, error) {
	puzzle, err := solver.SanitizePuzzle(domain.Puzzle{
		SwapGraph:        args.Swaps,
		InteractionGraph: args.Interactions,
		Soddi:            args.Soddi,
	})
	if err != nil {
		s.logger.Warn("MCP submit: input rejected", "err", err)
		return SessionResponse{}, fmt.Errorf("input rejected: %w", err)
	}

	sess, err := s.player.Submit(ctx, args.SessionID, puzzle, nil)
	if err != nil {
		return SessionResponse{}, fmt.Errorf("submit failed: %w", err)
	}
	return sessionResponse(sess), nil
}

func (s *Server) handleRandom(ctx context.Context, _ mcp.CallToolRequest, args RandomArgs) (SessionResponse, error) {
	req := domain.DefaultRandomRequest()
	if args.NumNodes > 0 {
		req.NumNodes = args.NumNodes
	}
	if args.SoddiLength > 0 {
		req.SoddiLength = args.SoddiLength
	}
	if args.SwapEdgeCreationChance > 0 {
		req.SwapEdgeCreationChance = args.SwapEdgeCreationChance
	}
	if args.InteractionEdgeCreationChance > 0 {
		req.InteractionEdgeCreationChance = args.InteractionEdgeCreationChance
	}

	sess, err := s.player.Random(ctx, args.SessionID, req)
	if err != nil {
		return SessionResponse{}, fmt.Errorf("random failed: %w", err)
	}
	return sessionResponse(sess), nil
}

func (s *Server) handleForward(ctx context.Context, _ mcp.CallToolRequest, args SessionArgs) (StepResponse, error) {
	return s.step(ctx, args.SessionID, s.player.StepForward)
}

func (s *Server) handleBackward(ctx context.Context, _ mcp.CallToolRequest, args SessionArgs) (StepResponse, error) {
	return s.step(ctx, args.SessionID, s.player.StepBackward)
}

type stepFunc func(context.Context, string, ports.Renderer) (*domain.Session, domain.Message, error)

func (s *Server) step(ctx context.Context, id string, fn stepFunc) (StepResponse, error) {
	rec := render.NewRecorder()
	sess, msg, err := fn(ctx, id, rec)
	if err != nil {
		s.logger.Error("MCP step failed", "session_id", id, "err", err)
		return StepResponse{}, fmt.Errorf("step failed: %w", err)
	}
	effects := rec.Effects()
	if effects == nil {
		effects = []domain.Effect{}
	}
	return StepResponse{
		SessionResponse: sessionResponse(sess),
		Message:         msg,
		Effects:         effects,
	}, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("athena://sessions", "Stored Sessions",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ids, err := s.player.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list sessions: %w", err)
		}
		if ids == nil {
			ids = []string{}
		}
		jsonBytes, _ := json.Marshal(ids)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "athena://sessions",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
