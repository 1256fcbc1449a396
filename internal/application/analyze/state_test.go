package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/litholens/prospector/internal/domain/rocks"
)

func TestStateStartsIdle(t *testing.T) {
	s := NewState()
	snap := s.Snapshot()
	assert.Equal(t, StatusIdle, snap.Status)
	assert.Empty(t, snap.ImagePreview)
	assert.Nil(t, snap.Data)
	assert.Empty(t, snap.Error)
}

func TestStateHappyPath(t *testing.T) {
	s := NewState()

	gen := s.Begin("data:image/jpeg;base64,AAA")
	assert.Equal(t, StatusAnalyzing, s.Snapshot().Status)
	assert.Equal(t, "data:image/jpeg;base64,AAA", s.Snapshot().ImagePreview)

	ok := s.Succeed(gen, rocks.Analysis{Name: "Granite"})
	assert.True(t, ok)

	snap := s.Snapshot()
	assert.Equal(t, StatusSuccess, snap.Status)
	assert.Equal(t, "Granite", snap.Data.Name)
	assert.Empty(t, snap.Error)
}

func TestStateFailure(t *testing.T) {
	s := NewState()
	gen := s.Begin("preview")

	ok := s.Fail(gen, "Failed to identify the image. Please try again.")
	assert.True(t, ok)

	snap := s.Snapshot()
	assert.Equal(t, StatusError, snap.Status)
	assert.Equal(t, "Failed to identify the image. Please try again.", snap.Error)
	assert.Nil(t, snap.Data)
}

func TestStateStaleCompletionIgnoredAfterReset(t *testing.T) {
	s := NewState()
	gen := s.Begin("preview")

	s.Reset()

	assert.False(t, s.Succeed(gen, rocks.Analysis{Name: "Late"}))
	assert.False(t, s.Fail(gen, "late error"))

	snap := s.Snapshot()
	assert.Equal(t, StatusIdle, snap.Status)
	assert.Nil(t, snap.Data)
	assert.Empty(t, snap.Error)
}

func TestStateStaleCompletionIgnoredAfterNewBegin(t *testing.T) {
	s := NewState()
	gen1 := s.Begin("first")
	gen2 := s.Begin("second")

	assert.False(t, s.Succeed(gen1, rocks.Analysis{Name: "Stale"}))
	assert.True(t, s.Succeed(gen2, rocks.Analysis{Name: "Fresh"}))
	assert.Equal(t, "Fresh", s.Snapshot().Data.Name)
}

func TestStateShowSavedEntry(t *testing.T) {
	s := NewState()
	gen := s.Begin("pending")

	s.Show(rocks.SavedRock{
		Analysis: rocks.Analysis{Name: "Amethyst"},
		ID:       "id-1",
		Image:    "data:image/jpeg;base64,BBB",
	})

	snap := s.Snapshot()
	assert.Equal(t, StatusSuccess, snap.Status)
	assert.Equal(t, "Amethyst", snap.Data.Name)
	assert.Equal(t, "data:image/jpeg;base64,BBB", snap.ImagePreview)

	// the pending analysis may not clobber the opened entry
	assert.False(t, s.Succeed(gen, rocks.Analysis{Name: "Late"}))
	assert.Equal(t, "Amethyst", s.Snapshot().Data.Name)
}

func TestSnapshotReturnsCopy(t *testing.T) {
	s := NewState()
	gen := s.Begin("p")
	s.Succeed(gen, rocks.Analysis{Name: "Granite"})

	snap := s.Snapshot()
	snap.Data.Name = "Mutated"

	assert.Equal(t, "Granite", s.Snapshot().Data.Name)
}
