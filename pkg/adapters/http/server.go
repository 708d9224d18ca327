package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MIBbrandon/Athena/pkg/domain"
	"github.com/MIBbrandon/Athena/pkg/ports"
	"github.com/MIBbrandon/Athena/pkg/render"
)

// maxBodySize bounds request bodies; puzzle texts are limited further by the solver adapter.
const maxBodySize = 1 << 20

// Player is the playback surface the server drives. *athena.Player satisfies it.
type Player interface {
	Create(ctx context.Context) (*domain.Session, error)
	Inspect(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]string, error)
	Submit(ctx context.Context, id string, puzzle domain.Puzzle, r ports.Renderer) (*domain.Session, error)
	Random(ctx context.Context, id string, req domain.RandomRequest) (*domain.Session, error)
	StepForward(ctx context.Context, id string, r ports.Renderer) (*domain.Session, domain.Message, error)
	StepBackward(ctx context.Context, id string, r ports.Renderer) (*domain.Session, domain.Message, error)
	Redraw(ctx context.Context, id string, r ports.Renderer) (*domain.Session, error)
}

// Server implements the HTTP API.
type Server struct {
	player  Player
	version string
	metrics http.Handler
	logger  *slog.Logger
	streams *StreamManager
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithVersion sets the version reported by GET /info.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = v
	}
}

// WithMetricsHandler mounts h at GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// NewServer creates a new HTTP server for the given player.
func NewServer(player Player, opts ...Option) *Server {
	s := &Server{
		player:  player,
		version: "dev",
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.streams = NewStreamManager(s.logger)
	return s
}

// Streams returns the SSE stream manager.
func (s *Server) Streams() *StreamManager {
	return s.streams
}

// Handler returns the routed handler with CORS applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.CreateSession)
		r.Get("/", s.ListSessions)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetSession)
			r.Delete("/", s.DeleteSession)
			r.Post("/submit", s.Submit)
			r.Post("/random", s.Random)
			r.Post("/forward", s.StepForward)
			r.Post("/backward", s.StepBackward)
			r.Get("/events", s.SubscribeEvents)
		})
	})

	return enableCORS(r)
}

// SessionView is the JSON form of a session.
type SessionView struct {
	*domain.Session
	CanForward  bool `json:"canForward"`
	CanBackward bool `json:"canBackward"`
	TotalSwaps  int  `json:"totalSwaps"`
}

func viewOf(sess *domain.Session) SessionView {
	c := sess.Controls()
	v := SessionView{Session: sess, CanForward: c.Forward, CanBackward: c.Backward}
	if sess.Solution != nil {
		v.TotalSwaps = sess.Solution.Steps.Swaps()
	}
	return v
}

// StepResponse is returned by the step endpoints.
type StepResponse struct {
	Session SessionView     `json:"session"`
	Message domain.Message  `json:"message"`
	Effects []domain.Effect `json:"effects"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"name":    "athena",
		"version": s.version,
	})
}

func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.player.Create(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, viewOf(sess))
}

func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.player.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, ids)
}

func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.player.Inspect(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(sess))
}

func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.player.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) Submit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var puzzle domain.Puzzle
	if err := decodeBody(w, r, &puzzle); err != nil {
		s.fail(w, r, err)
		return
	}

	rec := render.NewRecorder()
	sess, err := s.player.Submit(r.Context(), id, puzzle, rec)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.publish(id, rec.Effects())
	writeJSON(w, http.StatusOK, viewOf(sess))
}

func (s *Server) Random(w http.ResponseWriter, r *http.Request) {
	req := domain.DefaultRandomRequest()
	if err := decodeBody(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	sess, err := s.player.Random(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(sess))
}

func (s *Server) StepForward(w http.ResponseWriter, r *http.Request) {
	s.step(w, r, s.player.StepForward)
}

func (s *Server) StepBackward(w http.ResponseWriter, r *http.Request) {
	s.step(w, r, s.player.StepBackward)
}

type stepFunc func(context.Context, string, ports.Renderer) (*domain.Session, domain.Message, error)

func (s *Server) step(w http.ResponseWriter, r *http.Request, fn stepFunc) {
	id := chi.URLParam(r, "id")
	rec := render.NewRecorder()
	sess, msg, err := fn(r.Context(), id, rec)
	// Effects drawn before a halt are still delivered to viewers.
	effects := rec.Effects()
	s.publish(id, effects)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if effects == nil {
		effects = []domain.Effect{}
	}
	writeJSON(w, http.StatusOK, StepResponse{
		Session: viewOf(sess),
		Message: msg,
		Effects: effects,
	})
}

// SubscribeEvents streams effect batches for a session. The first frame
// redraws the full current state.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	flusher, ok := w.(http.Flusher)
	if !ok {
		s.fail(w, r, errors.New("streaming not supported"))
		return
	}

	rec := render.NewRecorder()
	if _, err := s.player.Redraw(r.Context(), id, rec); err != nil {
		s.fail(w, r, err)
		return
	}

	ch, unsubscribe := s.streams.Subscribe(id)
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	if frame, err := json.Marshal(rec.Effects()); err == nil {
		fmt.Fprintf(w, "event: effects\ndata: %s\n\n", frame)
	}
	flusher.Flush()

	s.logger.Debug("SSE: client connected", "session_id", id)
	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE: client disconnected", "session_id", id)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: effects\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func (s *Server) publish(id string, effects []domain.Effect) {
	if len(effects) == 0 || s.streams.Subscribers(id) == 0 {
		return
	}
	data, err := json.Marshal(effects)
	if err != nil {
		s.logger.Error("SSE: failed to encode effects", "session_id", id, "err", err)
		return
	}
	s.streams.Broadcast(id, data)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := StatusFor(err)
	if code >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	} else {
		s.logger.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "status", code, "err", err)
	}
	writeJSON(w, code, errorResponse{Error: err.Error()})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func enableCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		h.ServeHTTP(w, r)
	})
}
