package document

import (
	"context"

	"imgdoc/internal/core/domain"
)

// Write encodes the document to the destination in the document's format.
// The fixed threshold transparency options are applied on every export. A
// zero destination behaves exactly like Bytes: the encoded bytes are
// returned; otherwise the returned slice is nil.
func (d *Document) Write(ctx context.Context, dst domain.Destination) ([]byte, error) {
	opts := domain.EncodeOpts{
		Transp:    domain.TranspModeThreshold,
		Threshold: domain.DefaultTranspThreshold,
	}

	data, err := d.codec.Encode(ctx, dst, d.format, d.frames, opts)
	if err != nil {
		return nil, &domain.EncodeError{Err: err}
	}

	return data, nil
}

// Bytes encodes the document and returns the raw bytes.
func (d *Document) Bytes(ctx context.Context) ([]byte, error) {
	return d.Write(ctx, domain.Destination{})
}
