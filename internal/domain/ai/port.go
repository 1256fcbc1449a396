package ai

import (
	"context"

	"github.com/litholens/prospector/internal/domain/rocks"
)

// Image is one inline, MIME-typed photo sent to the vision backend.
type Image struct {
	Data     []byte
	MIMEType string
}

// Identifier is the vision backend port: one image in, one sanitized
// analysis out. Location is optional context that narrows the
// identification to species plausible for the region.
type Identifier interface {
	Identify(ctx context.Context, img Image, location string) (rocks.Analysis, error)
}
