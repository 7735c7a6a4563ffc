package port

import (
	"context"

	"imgdoc/internal/core/domain"
)

type Frame interface {
	// Tags returns every value the frame holds for the named tag. An absent
	// tag yields an empty slice, never an error.
	Tags(name string) []string
	// AddTag appends a value for the named tag.
	AddTag(name, value string)
	// DeleteTag removes every value of the named tag.
	DeleteTag(name string)
	// Width returns the frame width in pixels.
	Width() int
	// Height returns the frame height in pixels.
	Height() int
}

type Codec interface {
	// Decode reads an ordered frame sequence from the source, optionally
	// guided by a format hint.
	Decode(ctx context.Context, src domain.Source, hint string) ([]Frame, error)
	// Scale resamples a single frame per the normalized parameters and
	// returns an independent output frame, never an alias of the input.
	Scale(ctx context.Context, frame Frame, params domain.ScaleParams) (Frame, error)
	// Encode writes the frames in the given format to the destination, or
	// returns the encoded bytes when the destination is zero.
	Encode(ctx context.Context, dst domain.Destination, format string, frames []Frame, opts domain.EncodeOpts) ([]byte, error)
}
