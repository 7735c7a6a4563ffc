package codec

import "image"

// frame wraps a decoded image together with its metadata tags. Tags are a
// plain multi-valued map; nothing outside this package ever touches the
// pixel data.
type frame struct {
	img  image.Image
	tags map[string][]string
}

func newFrame(img image.Image) *frame {
	return &frame{img: img, tags: make(map[string][]string)}
}

func (f *frame) Tags(name string) []string {
	return f.tags[name]
}

func (f *frame) AddTag(name, value string) {
	f.tags[name] = append(f.tags[name], value)
}

func (f *frame) DeleteTag(name string) {
	delete(f.tags, name)
}

func (f *frame) Width() int {
	return f.img.Bounds().Dx()
}

func (f *frame) Height() int {
	return f.img.Bounds().Dy()
}
