package codec

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"imgdoc/internal/core/domain"
	"imgdoc/internal/core/port"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 7), G: uint8(y * 7), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodeSourceKinds(t *testing.T) {
	c := NewImaging()
	data := pngBytes(t, 8, 6)

	path := filepath.Join(t.TempDir(), "in.png")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	tests := []struct {
		name string
		src  domain.Source
	}{
		{name: "path", src: domain.FromPath(path)},
		{name: "bytes", src: domain.FromBytes(data)},
		{name: "reader", src: domain.FromReader(bytes.NewReader(data))},
		{name: "producer", src: domain.FromProducer(func() ([]byte, error) { return data, nil })},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			frames, err := c.Decode(t.Context(), tc.src, "")
			require.NoError(t, err)

			require.Len(t, frames, 1)
			assert.Equal(t, []string{"png"}, frames[0].Tags(domain.TagFormat))
			assert.Equal(t, 8, frames[0].Width())
			assert.Equal(t, 6, frames[0].Height())
		})
	}
}

func TestDecodeInvalidData(t *testing.T) {
	c := NewImaging()

	_, err := c.Decode(t.Context(), domain.FromBytes([]byte("not an image")), "")
	require.Error(t, err)
}

func TestDecodeHintMismatch(t *testing.T) {
	c := NewImaging()

	// PNG data forced through the GIF decoder must fail.
	_, err := c.Decode(t.Context(), domain.FromBytes(pngBytes(t, 4, 4)), "gif")
	require.Error(t, err)
}

func TestDecodeMissingFile(t *testing.T) {
	c := NewImaging()

	_, err := c.Decode(t.Context(), domain.FromPath(filepath.Join(t.TempDir(), "nope.png")), "")
	require.Error(t, err)
}

func decodeSingle(t *testing.T, c *Imaging, w, h int) port.Frame {
	t.Helper()

	frames, err := c.Decode(t.Context(), domain.FromBytes(pngBytes(t, w, h)), "")
	require.NoError(t, err)
	require.Len(t, frames, 1)
	return frames[0]
}

func TestScaleTargetDimensions(t *testing.T) {
	c := NewImaging()

	tests := []struct {
		name   string
		params domain.ScaleParams
		wantW  int
		wantH  int
	}{
		{
			name:   "width only keeps aspect",
			params: domain.ScaleParams{Width: intp(50)},
			wantW:  50, wantH: 25,
		},
		{
			name:   "height only keeps aspect",
			params: domain.ScaleParams{Height: intp(25)},
			wantW:  50, wantH: 25,
		},
		{
			name:   "both dims default constrain fits inside",
			params: domain.ScaleParams{Width: intp(50), Height: intp(50)},
			wantW:  50, wantH: 25,
		},
		{
			name:   "constrain max covers",
			params: domain.ScaleParams{Width: intp(50), Height: intp(50), Constrain: "max"},
			wantW:  100, wantH: 50,
		},
		{
			name:   "constrain nonprop is exact",
			params: domain.ScaleParams{Width: intp(30), Height: intp(40), Constrain: "nonprop"},
			wantW:  30, wantH: 40,
		},
		{
			name:   "scalefactor",
			params: domain.ScaleParams{ScaleFactor: floatp(0.5)},
			wantW:  50, wantH: 25,
		},
		{
			name:   "xscalefactor mirrors to y",
			params: domain.ScaleParams{XScaleFactor: floatp(2)},
			wantW:  200, wantH: 100,
		},
		{
			name:   "independent factors",
			params: domain.ScaleParams{XScaleFactor: floatp(2), YScaleFactor: floatp(0.5)},
			wantW:  200, wantH: 25,
		},
		{
			name:   "preview quality",
			params: domain.ScaleParams{Width: intp(10), QType: "preview"},
			wantW:  10, wantH: 5,
		},
		{
			name:   "mixing quality",
			params: domain.ScaleParams{Width: intp(10), QType: "mixing"},
			wantW:  10, wantH: 5,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			src := decodeSingle(t, c, 100, 50)

			out, err := c.Scale(t.Context(), src, tc.params)
			require.NoError(t, err)

			assert.Equal(t, tc.wantW, out.Width())
			assert.Equal(t, tc.wantH, out.Height())
		})
	}
}

func TestScaleAlgorithms(t *testing.T) {
	c := NewImaging()

	for _, name := range []string{"lanczos", "box", "linear", "catmullrom", "mitchell", "nearest"} {
		t.Run(name, func(t *testing.T) {
			src := decodeSingle(t, c, 20, 20)

			out, err := c.Scale(t.Context(), src, domain.ScaleParams{Width: intp(10), Algorithm: name})
			require.NoError(t, err)
			assert.Equal(t, 10, out.Width())
		})
	}
}

func TestScaleRejectsBadParams(t *testing.T) {
	c := NewImaging()

	tests := []struct {
		name   string
		params domain.ScaleParams
	}{
		{name: "no dimensions", params: domain.ScaleParams{}},
		{name: "unknown algorithm", params: domain.ScaleParams{Width: intp(10), Algorithm: "bogus"}},
		{name: "unknown quality mode", params: domain.ScaleParams{Width: intp(10), QType: "bogus"}},
		{name: "unknown constrain", params: domain.ScaleParams{Width: intp(10), Height: intp(10), Constrain: "bogus"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			src := decodeSingle(t, c, 20, 20)

			_, err := c.Scale(t.Context(), src, tc.params)
			require.Error(t, err)
		})
	}
}

func TestScaleReturnsIndependentFrame(t *testing.T) {
	c := NewImaging()
	src := decodeSingle(t, c, 20, 20)

	out, err := c.Scale(t.Context(), src, domain.ScaleParams{Width: intp(20), Height: intp(20)})
	require.NoError(t, err)

	assert.NotSame(t, src, out)
	assert.Empty(t, out.Tags(domain.TagFormat))
}

func TestScaleRejectsForeignFrame(t *testing.T) {
	c := NewImaging()

	_, err := c.Scale(t.Context(), foreignFrame{}, domain.ScaleParams{Width: intp(10)})
	require.Error(t, err)
}

type foreignFrame struct{}

func (foreignFrame) Tags(string) []string  { return nil }
func (foreignFrame) AddTag(string, string) {}
func (foreignFrame) DeleteTag(string)      {}
func (foreignFrame) Width() int            { return 1 }
func (foreignFrame) Height() int           { return 1 }

func TestEncodeFormats(t *testing.T) {
	c := NewImaging()

	for _, format := range []string{"png", "jpg", "jpeg", "bmp", "tif", "gif"} {
		t.Run(format, func(t *testing.T) {
			frames := []port.Frame{decodeSingle(t, c, 8, 8)}

			data, err := c.Encode(t.Context(), domain.Destination{}, format, frames, domain.EncodeOpts{})
			require.NoError(t, err)
			assert.NotEmpty(t, data)
		})
	}
}

func TestEncodeUnsupportedFormat(t *testing.T) {
	c := NewImaging()
	frames := []port.Frame{decodeSingle(t, c, 8, 8)}

	_, err := c.Encode(t.Context(), domain.Destination{}, "xpm", frames, domain.EncodeOpts{})
	require.Error(t, err)
}

func TestEncodeNoFrames(t *testing.T) {
	c := NewImaging()

	_, err := c.Encode(t.Context(), domain.Destination{}, "png", nil, domain.EncodeOpts{})
	require.Error(t, err)
}

func TestEncodeDestinations(t *testing.T) {
	c := NewImaging()
	frames := []port.Frame{decodeSingle(t, c, 8, 8)}

	want, err := c.Encode(t.Context(), domain.Destination{}, "png", frames, domain.EncodeOpts{})
	require.NoError(t, err)

	t.Run("path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.png")

		data, err := c.Encode(t.Context(), domain.ToPath(path), "png", frames, domain.EncodeOpts{})
		require.NoError(t, err)
		assert.Nil(t, data)

		onDisk, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, want, onDisk)
	})

	t.Run("buffer", func(t *testing.T) {
		var buf []byte

		_, err := c.Encode(t.Context(), domain.ToBuffer(&buf), "png", frames, domain.EncodeOpts{})
		require.NoError(t, err)
		assert.Equal(t, want, buf)
	})

	t.Run("writer", func(t *testing.T) {
		var w bytes.Buffer

		_, err := c.Encode(t.Context(), domain.ToWriter(&w), "png", frames, domain.EncodeOpts{})
		require.NoError(t, err)
		assert.Equal(t, want, w.Bytes())
	})

	t.Run("consumer", func(t *testing.T) {
		var got []byte

		_, err := c.Encode(t.Context(), domain.ToConsumer(func(data []byte) error {
			got = data
			return nil
		}), "png", frames, domain.EncodeOpts{})
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func intp(v int) *int {
	return &v
}

func floatp(v float64) *float64 {
	return &v
}
