package imaging

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	stddraw "image/draw"
	"image/jpeg"
	"io"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/litholens/prospector/internal/domain/rocks"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// ErrNotImage indicates the payload could not be decoded as an image.
var ErrNotImage = errors.New("file is not a readable image")

// Defaults mirror what the vision backend needs: nothing above 1500px helps
// identification, and inline uploads should stay under 3 MiB.
const (
	DefaultMaxDimension = 1500
	DefaultMaxBytes     = 3 << 20
	initialQuality      = 85
	qualityStep         = 10
	minQuality          = 20
)

// Normalizer downsamples and re-encodes user photos into upload-ready JPEG
// data URIs. No network or storage access; the zero value is not usable,
// construct with New.
type Normalizer struct {
	MaxDimension int
	MaxBytes     int
}

func New() *Normalizer {
	return &Normalizer{MaxDimension: DefaultMaxDimension, MaxBytes: DefaultMaxBytes}
}

// Normalize decodes, scales so neither dimension exceeds MaxDimension
// (never upscaling), composites onto opaque white (JPEG has no alpha) and
// encodes at descending quality until the data URI fits MaxBytes or quality
// reaches the floor. The floor is a safety bound: a pathologically
// high-entropy image may still exceed the ceiling at floor quality.
func (n *Normalizer) Normalize(ctx context.Context, r io.Reader) (rocks.NormalizedImage, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return rocks.NormalizedImage{}, fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	if err := ctx.Err(); err != nil {
		return rocks.NormalizedImage{}, err
	}

	w, h := targetSize(src.Bounds().Dx(), src.Bounds().Dy(), n.MaxDimension)
	dst := flattenWhite(src, w, h)

	quality := initialQuality
	jpg, uri, err := encode(dst, quality)
	if err != nil {
		return rocks.NormalizedImage{}, fmt.Errorf("encode image: %w", err)
	}
	for len(uri) > n.MaxBytes && quality > minQuality {
		quality -= qualityStep
		if quality < minQuality {
			quality = minQuality
		}
		if jpg, uri, err = encode(dst, quality); err != nil {
			return rocks.NormalizedImage{}, fmt.Errorf("encode image: %w", err)
		}
	}

	return rocks.NormalizedImage{
		JPEG:    jpg,
		DataURI: uri,
		Width:   w,
		Height:  h,
		Quality: quality,
	}, nil
}

// targetSize scales proportionally so the larger dimension equals max.
// Inputs already within bounds come back untouched.
func targetSize(w, h, max int) (int, int) {
	if w <= max && h <= max {
		return w, h
	}
	if w > h {
		return max, int(math.Round(float64(h) * float64(max) / float64(w)))
	}
	return int(math.Round(float64(w) * float64(max) / float64(h))), max
}

// flattenWhite renders the source onto an opaque white canvas at the target
// size so transparent regions do not turn into artifacts in the JPEG.
func flattenWhite(src image.Image, w, h int) *image.RGBA {
	rect := image.Rect(0, 0, w, h)
	dst := image.NewRGBA(rect)
	stddraw.Draw(dst, rect, image.White, image.Point{}, stddraw.Src)
	if src.Bounds().Dx() == w && src.Bounds().Dy() == h {
		stddraw.Draw(dst, rect, src, src.Bounds().Min, stddraw.Over)
		return dst
	}
	xdraw.CatmullRom.Scale(dst, rect, src, src.Bounds(), xdraw.Over, nil)
	return dst
}

func encode(img *image.RGBA, quality int) ([]byte, string, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, "", err
	}
	uri := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
	return buf.Bytes(), uri, nil
}
