package web

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mkarlsen/moodgraph/pkg/diagram"
	"github.com/mkarlsen/moodgraph/pkg/mood"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	selector, err := mood.NewSelector(mood.BuiltinCatalog())
	if err != nil {
		t.Fatalf("NewSelector failed: %v", err)
	}
	return NewServer(selector)
}

func doJSON(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func TestDiagramUnavailableBeforeMount(t *testing.T) {
	s := testServer(t)

	rec := doJSON(t, s, "GET", "/api/diagram", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 before first mount, got %d", rec.Code)
	}
}

func TestFirstRotationMountsLastMood(t *testing.T) {
	s := testServer(t)

	rec := doJSON(t, s, "POST", "/api/moods/next", map[string]string{"current": ""})
	if rec.Code != http.StatusOK {
		t.Fatalf("Rotation failed with %d: %s", rec.Code, rec.Body.String())
	}

	var m moodInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("Bad rotation response: %v", err)
	}
	// First call returns the last catalog entry regardless of current.
	if m.ID != "pulse" {
		t.Errorf("Expected first rotation to mount pulse, got %s", m.ID)
	}

	rec = doJSON(t, s, "GET", "/api/diagram", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Diagram fetch failed with %d", rec.Code)
	}
	var snap diagram.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("Bad snapshot: %v", err)
	}
	if snap.Name != "pulse" {
		t.Errorf("Expected pulse snapshot, got %s", snap.Name)
	}
}

func TestRotationNeverRepeats(t *testing.T) {
	s := testServer(t)

	m, err := s.Rotate(context.Background())
	if err != nil {
		t.Fatalf("Rotate failed: %v", err)
	}
	current := m.ID

	for i := 0; i < 50; i++ {
		m, err = s.Rotate(context.Background())
		if err != nil {
			t.Fatalf("Rotate failed: %v", err)
		}
		if m.ID == current {
			t.Fatalf("Iteration %d: rotation repeated %s", i, current)
		}
		current = m.ID
	}
}

func TestMoodListing(t *testing.T) {
	s := testServer(t)
	if _, err := s.Rotate(context.Background()); err != nil {
		t.Fatalf("Rotate failed: %v", err)
	}

	rec := doJSON(t, s, "GET", "/api/moods", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Listing failed with %d", rec.Code)
	}

	var moods []moodInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &moods); err != nil {
		t.Fatalf("Bad listing: %v", err)
	}
	if len(moods) != 5 {
		t.Fatalf("Expected 5 moods, got %d", len(moods))
	}

	currents := 0
	for _, m := range moods {
		if m.Current {
			currents++
		}
	}
	if currents != 1 {
		t.Errorf("Expected exactly one current mood, got %d", currents)
	}
}

func pointerBody(session, node string, x, y float64) map[string]interface{} {
	return map[string]interface{}{
		"session":   session,
		"node":      node,
		"x":         x,
		"y":         y,
		"container": map[string]float64{"w": 1000, "h": 600},
	}
}

func TestPointerDragFlow(t *testing.T) {
	s := testServer(t)
	if err := s.ShowMood(context.Background(), "pulse"); err != nil {
		t.Fatalf("ShowMood failed: %v", err)
	}

	// Container matches the canvas, so screen space == canvas space.
	// Grab the emitter somewhere inside its rectangle.
	rec := doJSON(t, s, "POST", "/api/pointer/down", pointerBody("", "emitter", 450, 100))
	if rec.Code != http.StatusOK {
		t.Fatalf("Pointer down failed with %d", rec.Code)
	}
	var res pointerResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("Bad pointer response: %v", err)
	}
	if res.Session == "" {
		t.Fatal("Pointer down on a known node returned no session")
	}

	rec = doJSON(t, s, "POST", "/api/pointer/move", pointerBody(res.Session, "", 550, 200))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("Pointer move failed with %d", rec.Code)
	}

	snapRec := doJSON(t, s, "GET", "/api/diagram", nil)
	var snap diagram.Snapshot
	if err := json.Unmarshal(snapRec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("Bad snapshot: %v", err)
	}
	var emitter *diagram.NodeView
	for i := range snap.Nodes {
		if snap.Nodes[i].ID == "emitter" {
			emitter = &snap.Nodes[i]
		}
	}
	if emitter == nil {
		t.Fatal("Emitter missing from snapshot")
	}
	// The node moved by the pointer delta (+100, +100) from (400, 60).
	if emitter.X != 500 || emitter.Y != 160 {
		t.Errorf("Expected emitter at (500, 160), got (%g, %g)", emitter.X, emitter.Y)
	}

	rec = doJSON(t, s, "POST", "/api/pointer/up", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("Pointer up failed with %d", rec.Code)
	}

	// Moves after release are absorbed.
	doJSON(t, s, "POST", "/api/pointer/move", pointerBody(res.Session, "", 900, 500))
	snapRec = doJSON(t, s, "GET", "/api/diagram", nil)
	if err := json.Unmarshal(snapRec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("Bad snapshot: %v", err)
	}
	for _, n := range snap.Nodes {
		if n.ID == "emitter" && (n.X != 500 || n.Y != 160) {
			t.Errorf("Node moved after pointer up: (%g, %g)", n.X, n.Y)
		}
	}
}

func TestPointerDownUnknownNode(t *testing.T) {
	s := testServer(t)
	if err := s.ShowMood(context.Background(), "flow"); err != nil {
		t.Fatalf("ShowMood failed: %v", err)
	}

	rec := doJSON(t, s, "POST", "/api/pointer/down", pointerBody("", "ghost", 10, 10))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected silent absorption, got %d", rec.Code)
	}
	var res pointerResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("Bad pointer response: %v", err)
	}
	if res.Session != "" {
		t.Errorf("Unknown node produced a drag session %q", res.Session)
	}
}

func TestPointerMoveWithStaleSession(t *testing.T) {
	s := testServer(t)
	if err := s.ShowMood(context.Background(), "flow"); err != nil {
		t.Fatalf("ShowMood failed: %v", err)
	}

	rec := doJSON(t, s, "POST", "/api/pointer/move", pointerBody("stale-token", "", 100, 100))
	if rec.Code != http.StatusNoContent {
		t.Errorf("Stale move should be absorbed with 204, got %d", rec.Code)
	}
}

func TestMoodSwitchTerminatesDrag(t *testing.T) {
	s := testServer(t)
	if err := s.ShowMood(context.Background(), "pulse"); err != nil {
		t.Fatalf("ShowMood failed: %v", err)
	}

	rec := doJSON(t, s, "POST", "/api/pointer/down", pointerBody("", "emitter", 450, 100))
	var res pointerResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("Bad pointer response: %v", err)
	}

	if _, err := s.Rotate(context.Background()); err != nil {
		t.Fatalf("Rotate failed: %v", err)
	}

	rec = doJSON(t, s, "POST", "/api/pointer/move", pointerBody(res.Session, "", 500, 200))
	if rec.Code != http.StatusNoContent {
		t.Errorf("Move against unmounted diagram should be absorbed, got %d", rec.Code)
	}
}

func TestDiagramSVG(t *testing.T) {
	s := testServer(t)
	if err := s.ShowMood(context.Background(), "mesh"); err != nil {
		t.Fatalf("ShowMood failed: %v", err)
	}

	rec := doJSON(t, s, "GET", "/api/diagram/svg", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("SVG fetch failed with %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Expected SVG content type, got %q", ct)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("<svg")) {
		t.Error("Response is not an SVG document")
	}
}
