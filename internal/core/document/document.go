// Package document holds the core of the wrapper: a Document is an ordered
// frame sequence plus a format identifier, and its operations normalize
// flexible argument shapes before delegating all pixel work to the injected
// codec collaborator.
package document

import (
	"context"
	"errors"
	"fmt"

	"imgdoc/internal/core/domain"
	"imgdoc/internal/core/port"

	"github.com/rs/zerolog/log"
)

// Document owns its frames exclusively: Load creates them, Scale replaces
// them wholesale and Write/Bytes read them. A Document is not safe for
// concurrent mutation; callers needing that must serialize externally.
type Document struct {
	codec  port.Codec
	frames []port.Frame
	format string
}

// Load decodes the source through the codec and builds a Document. The
// format identifier is taken from the first frame's format tag, falling back
// to the hint when the codec did not set one.
func Load(ctx context.Context, codec port.Codec, src domain.Source, hint string) (*Document, error) {
	frames, err := codec.Decode(ctx, src, hint)
	if err != nil {
		return nil, &domain.DecodeError{Err: err}
	}

	if len(frames) == 0 {
		return nil, &domain.DecodeError{Err: errors.New("codec returned no frames")}
	}

	d := &Document{codec: codec, frames: frames, format: hint}
	if v := frames[0].Tags(domain.TagFormat); len(v) > 0 {
		d.format = v[0]
	}

	log.Debug().Str("format", d.format).Int("frames", len(frames)).Msg("document loaded")

	return d, nil
}

// Format returns the document's format identifier.
func (d *Document) Format() string {
	return d.format
}

// SetFormat overrides the format identifier used on export.
func (d *Document) SetFormat(format string) {
	d.format = format
}

// Frames returns the document's current frame sequence.
func (d *Document) Frames() []port.Frame {
	return d.frames
}

// Clone is a placeholder and always fails.
func (d *Document) Clone() (*Document, error) {
	return nil, fmt.Errorf("clone: %w", domain.ErrNotImplemented)
}
