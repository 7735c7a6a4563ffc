package domain

import "io"

// SourceKind discriminates the four input shapes accepted by a load.
type SourceKind int

const (
	SourceNone SourceKind = iota
	SourcePath
	SourceBytes
	SourceReader
	SourceProducer
)

// Producer supplies encoded image bytes on demand.
type Producer func() ([]byte, error)

// Source is a tagged union over the input shapes accepted by a load. Exactly
// one payload field is set, matching Kind; codecs switch on the tag instead
// of inspecting runtime types.
type Source struct {
	Kind     SourceKind
	Path     string
	Data     []byte
	Reader   io.Reader
	Producer Producer
}

// FromPath builds a Source reading from a file path.
func FromPath(path string) Source {
	return Source{Kind: SourcePath, Path: path}
}

// FromBytes builds a Source reading from an in-memory buffer.
func FromBytes(data []byte) Source {
	return Source{Kind: SourceBytes, Data: data}
}

// FromReader builds a Source pulling from a stream.
func FromReader(r io.Reader) Source {
	return Source{Kind: SourceReader, Reader: r}
}

// FromProducer builds a Source that obtains its bytes from a caller-supplied
// producer function.
func FromProducer(p Producer) Source {
	return Source{Kind: SourceProducer, Producer: p}
}
