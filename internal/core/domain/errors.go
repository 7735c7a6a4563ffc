package domain

import "errors"

// ErrNotImplemented is returned by operations that exist as placeholders
// only, currently just Document.Clone.
var ErrNotImplemented = errors.New("not implemented")

// DecodeError wraps a failure reported by the codec while decoding a source.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "decode failed: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ScaleError wraps a failure reported by the codec while scaling a frame.
type ScaleError struct {
	Err error
}

func (e *ScaleError) Error() string {
	return "scale failed: " + e.Err.Error()
}

func (e *ScaleError) Unwrap() error {
	return e.Err
}

// EncodeError wraps a failure reported by the codec while encoding to a
// destination.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string {
	return "encode failed: " + e.Err.Error()
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}
