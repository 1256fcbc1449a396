package analyze

import (
	"context"
	"errors"
	"io"

	domai "github.com/litholens/prospector/internal/domain/ai"
	"github.com/litholens/prospector/internal/domain/rocks"
)

// Fallback message shown when the backend error carries nothing readable.
// Raw provider errors are never shown to the user.
const genericFailure = "Failed to identify the image. Please try again."

// Service implements the analyze use-case: normalize foto → vision backend →
// sanitized analysis. Safe for concurrent use.
type Service struct {
	Normalizer rocks.Normalizer
	Identifier domai.Identifier
	State      *State
}

func NewService(n rocks.Normalizer, id domai.Identifier) *Service {
	return &Service{Normalizer: n, Identifier: id, State: NewState()}
}

// Result of one analyze round-trip.
type Result struct {
	Analysis rocks.Analysis        `json:"analysis"`
	Image    rocks.NormalizedImage `json:"-"`
}

// Analyze runs the full pipeline. A normalization failure leaves the state
// machine untouched (the user stays on the selection step); a backend
// failure transitions to error with a human-readable message. If Reset is
// called while the backend call is in flight, the late completion is
// discarded by the generation guard.
func (s *Service) Analyze(ctx context.Context, r io.Reader, location string) (Result, error) {
	img, err := s.Normalizer.Normalize(ctx, r)
	if err != nil {
		return Result{}, err
	}

	gen := s.State.Begin(img.DataURI)

	analysis, err := s.Identifier.Identify(ctx, domai.Image{Data: img.JPEG, MIMEType: "image/jpeg"}, location)
	if err != nil {
		s.State.Fail(gen, userMessage(err))
		return Result{}, err
	}

	s.State.Succeed(gen, analysis)
	return Result{Analysis: analysis, Image: img}, nil
}

// Reset abandons pending work and returns the idle screen's fresh fact.
func (s *Service) Reset() string {
	s.State.Reset()
	return rocks.RandomFact()
}

// userMessage coerces a backend failure into display text. Known sentinels
// keep their wording, anything else collapses to the generic message.
func userMessage(err error) string {
	switch {
	case errors.Is(err, domai.ErrQuotaExceeded):
		return "The analysis service is over its quota. Please try again later."
	case errors.Is(err, domai.ErrEmptyResponse):
		return genericFailure
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "The analysis was interrupted. Please try again."
	default:
		return genericFailure
	}
}
