package rocks

import (
	"context"
	"errors"
	"io"
)

// ErrNotPersisted indicates a collection mutation succeeded in memory but the
// backing store rejected the write (quota, IO error). Surfaced to the user as
// a warning, never retried automatically.
var ErrNotPersisted = errors.New("collection entry was not durably saved")

// Repository port (interface untuk persistence koleksi)
type Repository interface {
	List(ctx context.Context) ([]SavedRock, error)
	Insert(ctx context.Context, r SavedRock) error
	Delete(ctx context.Context, id RockID) error
}

// NormalizedImage is the upload-ready form of a user photo.
type NormalizedImage struct {
	JPEG    []byte
	DataURI string
	Width   int
	Height  int
	Quality int
}

// Normalizer port (interface untuk downscale/re-encode gambar)
type Normalizer interface {
	Normalize(ctx context.Context, r io.Reader) (NormalizedImage, error)
}

// ImageArchive port (interface untuk arsip gambar eksternal, opsional)
type ImageArchive interface {
	PutImage(ctx context.Context, key string, jpeg []byte) (string, error)
}
