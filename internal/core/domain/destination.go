package domain

import "io"

// DestinationKind discriminates the output shapes accepted by a write. The
// zero value means no destination was supplied and the encoded bytes are
// returned to the caller instead.
type DestinationKind int

const (
	DestinationNone DestinationKind = iota
	DestinationPath
	DestinationBuffer
	DestinationWriter
	DestinationConsumer
)

// Consumer receives the encoded image bytes.
type Consumer func(data []byte) error

// Destination is a tagged union over the output shapes accepted by a write.
type Destination struct {
	Kind     DestinationKind
	Path     string
	Buffer   *[]byte
	Writer   io.Writer
	Consumer Consumer
}

// ToPath builds a Destination writing to a file path.
func ToPath(path string) Destination {
	return Destination{Kind: DestinationPath, Path: path}
}

// ToBuffer builds a Destination storing the encoded bytes into the referenced
// slice.
func ToBuffer(buf *[]byte) Destination {
	return Destination{Kind: DestinationBuffer, Buffer: buf}
}

// ToWriter builds a Destination pushing to a stream.
func ToWriter(w io.Writer) Destination {
	return Destination{Kind: DestinationWriter, Writer: w}
}

// ToConsumer builds a Destination handing the encoded bytes to a
// caller-supplied consumer function.
func ToConsumer(c Consumer) Destination {
	return Destination{Kind: DestinationConsumer, Consumer: c}
}

// IsZero reports whether no destination was supplied.
func (d Destination) IsZero() bool {
	return d.Kind == DestinationNone
}
