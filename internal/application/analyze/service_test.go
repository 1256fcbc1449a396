package analyze

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domai "github.com/litholens/prospector/internal/domain/ai"
	"github.com/litholens/prospector/internal/domain/rocks"
)

type stubNormalizer struct {
	img rocks.NormalizedImage
	err error
}

func (s stubNormalizer) Normalize(ctx context.Context, r io.Reader) (rocks.NormalizedImage, error) {
	return s.img, s.err
}

type stubIdentifier struct {
	analysis rocks.Analysis
	err      error
}

func (s stubIdentifier) Identify(ctx context.Context, img domai.Image, location string) (rocks.Analysis, error) {
	return s.analysis, s.err
}

func okNormalizer() stubNormalizer {
	return stubNormalizer{img: rocks.NormalizedImage{
		JPEG:    []byte{0xff, 0xd8},
		DataURI: "data:image/jpeg;base64,/9g=",
		Width:   100,
		Height:  100,
		Quality: 85,
	}}
}

func TestAnalyzeSuccess(t *testing.T) {
	svc := NewService(okNormalizer(), stubIdentifier{analysis: rocks.Analysis{Name: "Granite", IsRock: true}})

	res, err := svc.Analyze(context.Background(), nil, "")
	require.NoError(t, err)
	assert.Equal(t, "Granite", res.Analysis.Name)

	snap := svc.State.Snapshot()
	assert.Equal(t, StatusSuccess, snap.Status)
	assert.Equal(t, "data:image/jpeg;base64,/9g=", snap.ImagePreview)
	assert.Equal(t, "Granite", snap.Data.Name)
}

func TestAnalyzeNormalizerFailureLeavesStateIdle(t *testing.T) {
	notImage := errors.New("not an image")
	svc := NewService(stubNormalizer{err: notImage}, stubIdentifier{})

	_, err := svc.Analyze(context.Background(), nil, "")
	assert.ErrorIs(t, err, notImage)

	// the user stays on the selection step
	assert.Equal(t, StatusIdle, svc.State.Snapshot().Status)
}

func TestAnalyzeBackendFailureProducesReadableMessage(t *testing.T) {
	svc := NewService(okNormalizer(), stubIdentifier{err: errors.New("google: rpc error 500 internal")})

	_, err := svc.Analyze(context.Background(), nil, "")
	require.Error(t, err)

	snap := svc.State.Snapshot()
	assert.Equal(t, StatusError, snap.Status)
	assert.Equal(t, "Failed to identify the image. Please try again.", snap.Error)
	assert.NotContains(t, snap.Error, "rpc")
}

func TestAnalyzeQuotaMessage(t *testing.T) {
	svc := NewService(okNormalizer(), stubIdentifier{err: domai.ErrQuotaExceeded})

	_, err := svc.Analyze(context.Background(), nil, "")
	assert.ErrorIs(t, err, domai.ErrQuotaExceeded)
	assert.Equal(t, "The analysis service is over its quota. Please try again later.", svc.State.Snapshot().Error)
}

func TestResetReturnsFact(t *testing.T) {
	svc := NewService(okNormalizer(), stubIdentifier{analysis: rocks.Analysis{Name: "Granite"}})
	_, err := svc.Analyze(context.Background(), nil, "")
	require.NoError(t, err)

	fact := svc.Reset()
	assert.NotEmpty(t, fact)
	assert.Equal(t, StatusIdle, svc.State.Snapshot().Status)
}
