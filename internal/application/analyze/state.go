package analyze

import (
	"sync"

	"github.com/litholens/prospector/internal/domain/rocks"
)

// Status enum untuk state machine analisis
type Status string

const (
	StatusIdle      Status = "idle"
	StatusAnalyzing Status = "analyzing"
	StatusSuccess   Status = "success"
	StatusError     Status = "error"
)

// Snapshot is the externally visible analysis state. Exactly one status is
// active at a time; transitions drive the view.
type Snapshot struct {
	Status       Status          `json:"status"`
	ImagePreview string          `json:"imagePreview,omitempty"`
	Data         *rocks.Analysis `json:"data,omitempty"`
	Error        string          `json:"error,omitempty"`
}

// State is the per-session analysis state machine. Every Begin and Reset
// bumps a generation counter; completions carrying a stale generation are
// ignored, so a response that lands after a reset never clobbers the
// current view.
type State struct {
	mu      sync.Mutex
	gen     uint64
	status  Status
	preview string
	data    *rocks.Analysis
	errMsg  string
}

func NewState() *State {
	return &State{status: StatusIdle}
}

// Begin moves to analyzing with the given preview image and returns the
// generation token the eventual completion must present.
func (s *State) Begin(preview string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.status = StatusAnalyzing
	s.preview = preview
	s.data = nil
	s.errMsg = ""
	return s.gen
}

// Succeed commits an analysis result. Returns false (no state change) when
// the generation is stale.
func (s *State) Succeed(gen uint64, a rocks.Analysis) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	s.status = StatusSuccess
	s.data = &a
	s.errMsg = ""
	return true
}

// Fail commits an error message. Returns false when the generation is stale.
func (s *State) Fail(gen uint64, msg string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	s.status = StatusError
	s.errMsg = msg
	return true
}

// Show replaces the current view with a saved entry opened from the
// collection. The copy is read-only for the viewer; the collection keeps
// ownership.
func (s *State) Show(r rocks.SavedRock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.status = StatusSuccess
	s.preview = r.Image
	a := r.Analysis
	s.data = &a
	s.errMsg = ""
}

// Reset abandons any pending result and returns to idle.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.status = StatusIdle
	s.preview = ""
	s.data = nil
	s.errMsg = ""
}

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		Status:       s.status,
		ImagePreview: s.preview,
		Error:        s.errMsg,
	}
	if s.data != nil {
		d := *s.data
		snap.Data = &d
	}
	return snap
}
