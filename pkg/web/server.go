// Package web serves the moodgraph page: the mood rotation API, the
// diagram state and pointer-drag API, SSE state streams, and the embedded
// static UI.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/mkarlsen/moodgraph/pkg/diagram"
	"github.com/mkarlsen/moodgraph/pkg/geometry"
	"github.com/mkarlsen/moodgraph/pkg/logging"
	"github.com/mkarlsen/moodgraph/pkg/mood"
	"github.com/mkarlsen/moodgraph/pkg/pubsub"
	"github.com/mkarlsen/moodgraph/pkg/render"
)

//go:embed static/*
var staticFiles embed.FS

// Server owns the mounted diagram and serializes all model mutation behind
// its mutex: each pointer event commits a single node assignment before the
// next is handled, so readers never observe a torn update.
type Server struct {
	router    *mux.Router
	publisher *pubsub.SSEPublisher
	selector  *mood.Selector
	viewport  geometry.Viewport

	mu        sync.Mutex
	current   mood.Mood
	diag      *diagram.Diagram
	dragToken string
	overrides map[string]map[string]diagram.Position
}

// NewServer creates the server around a selector. No mood is mounted until
// Rotate or ShowMood runs.
func NewServer(selector *mood.Selector) *Server {
	publisher := pubsub.NewSSEPublisher()

	// Late subscribers only need the current state, not history.
	publisher.ConfigureTopic(pubsub.TopicDiagram, pubsub.TopicConfig{
		BufferSize: 5,
		ReplayAll:  false,
	})
	publisher.ConfigureTopic(pubsub.TopicMood, pubsub.TopicConfig{
		BufferSize: 1,
		ReplayAll:  false,
	})

	s := &Server{
		router:    mux.NewRouter(),
		publisher: publisher,
		selector:  selector,
		viewport:  geometry.Viewport{CanvasW: diagram.CanvasW, CanvasH: diagram.CanvasH},
		overrides: make(map[string]map[string]diagram.Position),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/api/subscribe/diagram", s.subscribeHandler(pubsub.TopicDiagram)).Methods("GET")
	s.router.HandleFunc("/api/subscribe/mood", s.subscribeHandler(pubsub.TopicMood)).Methods("GET")

	s.router.HandleFunc("/api/moods", s.handleMoods).Methods("GET")
	s.router.HandleFunc("/api/moods/next", s.handleNextMood).Methods("POST")
	s.router.HandleFunc("/api/diagram", s.handleDiagram).Methods("GET")
	s.router.HandleFunc("/api/diagram/svg", s.handleDiagramSVG).Methods("GET")
	s.router.HandleFunc("/api/pointer/down", s.handlePointerDown).Methods("POST")
	s.router.HandleFunc("/api/pointer/move", s.handlePointerMove).Methods("POST")
	s.router.HandleFunc("/api/pointer/up", s.handlePointerUp).Methods("POST")

	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		logging.Fatal("failed to mount embedded static files", "error", err)
	}
	s.router.PathPrefix("/").Handler(http.FileServer(http.FS(staticFS)))
}

// Handler returns the router wrapped in request logging. Pointer moves are
// logged at trace; everything else at info.
func (s *Server) Handler() http.Handler {
	return logging.RequestMiddleware("/api/pointer/move")(s.router)
}

// Start blocks serving HTTP on the given port.
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	logging.Info("listening", "addr", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// Rotate applies the rotation selector against the currently mounted mood
// and mounts the result.
func (s *Server) Rotate(ctx context.Context) (mood.Mood, error) {
	s.mu.Lock()
	current := s.current.ID
	s.mu.Unlock()

	next := s.selector.Next(current)
	if err := s.mount(ctx, next); err != nil {
		return mood.Mood{}, err
	}
	return next, nil
}

// ShowMood mounts a specific mood by ID, bypassing rotation.
func (s *Server) ShowMood(ctx context.Context, id mood.ID) error {
	m, ok := s.selector.Lookup(id)
	if !ok {
		return fmt.Errorf("unknown mood %q", id)
	}
	return s.mount(ctx, m)
}

// mount loads a mood's diagram, applies any layout override, terminates
// any in-flight drag, and publishes the new state.
func (s *Server) mount(ctx context.Context, m mood.Mood) error {
	d, err := m.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading mood %s: %w", m.ID, err)
	}

	s.mu.Lock()
	if positions, ok := s.overrides[string(m.ID)]; ok {
		d.ApplyPositions(positions)
	}
	s.current = m
	s.diag = d
	s.dragToken = ""
	snap := d.Snapshot()
	s.mu.Unlock()

	logging.Info("mounted mood", "mood", m.ID)
	s.publishMood(m)
	s.publishSnapshot(snap)
	return nil
}

// ApplyOverride loads a layout override file, remembers it for future
// mounts, and repositions the current diagram when it targets the mounted
// mood. Reload errors keep the old layout.
func (s *Server) ApplyOverride(moodID, path string) error {
	positions, err := diagram.LoadOverride(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.overrides[moodID] = positions

	var snap *diagram.Snapshot
	if s.diag != nil && string(s.current.ID) == moodID {
		applied := s.diag.ApplyPositions(positions)
		logging.Info("applied layout override", "mood", moodID, "nodes", applied)
		sn := s.diag.Snapshot()
		snap = &sn
	}
	s.mu.Unlock()

	if snap != nil {
		s.publishSnapshot(*snap)
	}
	return nil
}

func (s *Server) publishSnapshot(snap diagram.Snapshot) {
	if err := s.publisher.Publish(pubsub.TopicDiagram, "state", snap); err != nil {
		logging.Warn("failed to publish diagram state", "error", err)
	}
}

func (s *Server) publishMood(m mood.Mood) {
	ev := pubsub.MoodEvent{ID: string(m.ID), Title: m.Title}
	if err := s.publisher.Publish(pubsub.TopicMood, "rotated", ev); err != nil {
		logging.Warn("failed to publish mood event", "error", err)
	}
}

// subscribeHandler streams a topic over SSE.
func (s *Server) subscribeHandler(topic string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("Access-Control-Allow-Origin", "*")

		// Initial comment establishes the stream (Safari compatibility).
		fmt.Fprintf(w, ": connected\n\n")
		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}

		sub, err := s.publisher.Subscribe(r.Context(), topic)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		defer sub.Close()

		for event := range sub.Events() {
			if err := pubsub.WriteSSE(w, event); err != nil {
				logging.DebugContext(r.Context(), "SSE write failed", "topic", topic, "error", err)
				return
			}
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}
		}
	}
}

// moodInfo is the catalog listing entry.
type moodInfo struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Current bool   `json:"current,omitempty"`
}

func (s *Server) handleMoods(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	current := s.current.ID
	s.mu.Unlock()

	moods := make([]moodInfo, 0)
	for _, m := range s.selector.Moods() {
		moods = append(moods, moodInfo{
			ID:      string(m.ID),
			Title:   m.Title,
			Current: m.ID == current,
		})
	}
	writeJSON(w, moods)
}

func (s *Server) handleNextMood(w http.ResponseWriter, r *http.Request) {
	m, err := s.Rotate(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, moodInfo{ID: string(m.ID), Title: m.Title, Current: true})
}

func (s *Server) handleDiagram(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	if s.diag == nil {
		s.mu.Unlock()
		http.Error(w, "no mood mounted", http.StatusServiceUnavailable)
		return
	}
	snap := s.diag.Snapshot()
	s.mu.Unlock()

	writeJSON(w, snap)
}

func (s *Server) handleDiagramSVG(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	if s.diag == nil {
		s.mu.Unlock()
		http.Error(w, "no mood mounted", http.StatusServiceUnavailable)
		return
	}
	snap := s.diag.Snapshot()
	s.mu.Unlock()

	w.Header().Set("Content-Type", "image/svg+xml")
	render.WriteSVG(w, snap)
}

// pointerRequest carries a device-space pointer event. Container is the
// live size of the drawing surface, used to invert the viewport transform
// per event.
type pointerRequest struct {
	Session   string  `json:"session,omitempty"`
	Node      string  `json:"node,omitempty"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Container struct {
		W float64 `json:"w"`
		H float64 `json:"h"`
	} `json:"container"`
}

// pointerResponse returns the drag session token, empty when no drag
// started.
type pointerResponse struct {
	Session string `json:"session"`
}

func (s *Server) decodePointer(w http.ResponseWriter, r *http.Request) (pointerRequest, r2.Vec, bool) {
	var req pointerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad pointer event: "+err.Error(), http.StatusBadRequest)
		return req, r2.Vec{}, false
	}
	canvasPt := s.viewport.ToCanvas(r2.Vec{X: req.X, Y: req.Y}, req.Container.W, req.Container.H)
	return req, canvasPt, true
}

func (s *Server) handlePointerDown(w http.ResponseWriter, r *http.Request) {
	req, canvasPt, ok := s.decodePointer(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.diag == nil {
		writeJSON(w, pointerResponse{})
		return
	}

	s.diag.BeginDrag(req.Node, canvasPt)
	if _, active := s.diag.Dragging(); !active {
		// Unknown node: a grab on stale state is absorbed, not an error.
		s.dragToken = ""
		writeJSON(w, pointerResponse{})
		return
	}

	s.dragToken = uuid.New().String()
	writeJSON(w, pointerResponse{Session: s.dragToken})
}

func (s *Server) handlePointerMove(w http.ResponseWriter, r *http.Request) {
	req, canvasPt, ok := s.decodePointer(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	if s.diag == nil || s.dragToken == "" || req.Session != s.dragToken {
		// Stale or sessionless moves are dropped silently.
		s.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.diag.UpdateDrag(canvasPt)
	snap := s.diag.Snapshot()
	s.mu.Unlock()

	s.publishSnapshot(snap)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePointerUp(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	if s.diag != nil {
		s.diag.EndDrag()
	}
	s.dragToken = ""
	s.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn("failed to encode response", "error", err)
	}
}
