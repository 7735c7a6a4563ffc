// Package codec implements the imaging collaborator port on top of
// disintegration/imaging, with stdlib GIF handling for multi-frame documents
// and bild for the fast quality modes.
package codec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"os"
	"strings"

	"imgdoc/internal/core/domain"
	"imgdoc/internal/core/port"

	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"

	// Extra decoders beyond the stdlib gif/jpeg/png set.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type Imaging struct{}

func NewImaging() *Imaging {
	return &Imaging{}
}

// filters maps algorithm names to imaging's resampling filters.
var filters = map[string]imaging.ResampleFilter{
	"lanczos":    imaging.Lanczos,
	"box":        imaging.Box,
	"linear":     imaging.Linear,
	"catmullrom": imaging.CatmullRom,
	"mitchell":   imaging.MitchellNetravali,
	"gaussian":   imaging.Gaussian,
	"nearest":    imaging.NearestNeighbor,
	"hermite":    imaging.Hermite,
	"bspline":    imaging.BSpline,
	"hamming":    imaging.Hamming,
	"hann":       imaging.Hann,
	"welch":      imaging.Welch,
	"cosine":     imaging.Cosine,
	"bartlett":   imaging.Bartlett,
	"blackman":   imaging.Blackman,
}

const defaultAlgorithm = "lanczos"

// Decode reads the source into memory and decodes it into one frame, or one
// frame per animation frame for GIF input. The hint forces the format;
// without it the format is sniffed from the data.
func (c *Imaging) Decode(_ context.Context, src domain.Source, hint string) ([]port.Frame, error) {
	data, err := readSource(src)
	if err != nil {
		return nil, err
	}

	format := strings.ToLower(hint)
	if format == "" {
		_, format, err = image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("unrecognized image data: %w", err)
		}
	}

	if format == "gif" {
		return decodeGIF(data)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	f := newFrame(img)
	f.AddTag(domain.TagFormat, format)

	return []port.Frame{f}, nil
}

// Scale resamples a single frame. The quality mode selects the resampler:
// the normal path uses imaging's filter named by the algorithm, preview and
// mixing use bild's parallel nearest-neighbor and linear resizers.
func (c *Imaging) Scale(_ context.Context, pf port.Frame, params domain.ScaleParams) (port.Frame, error) {
	src, ok := pf.(*frame)
	if !ok {
		return nil, errors.New("frame was not produced by this codec")
	}

	w, h, err := targetSize(src.Width(), src.Height(), params)
	if err != nil {
		return nil, err
	}

	var out image.Image

	switch strings.ToLower(params.QType) {
	case "", "normal":
		name := strings.ToLower(params.Algorithm)
		if name == "" {
			name = defaultAlgorithm
		}
		filter, ok := filters[name]
		if !ok {
			return nil, fmt.Errorf("unknown scaling algorithm %q", params.Algorithm)
		}
		out = imaging.Resize(src.img, w, h, filter)
	case "preview":
		out = transform.Resize(src.img, w, h, transform.NearestNeighbor)
	case "mixing":
		out = transform.Resize(src.img, w, h, transform.Linear)
	default:
		return nil, fmt.Errorf("unknown quality mode %q", params.QType)
	}

	return newFrame(out), nil
}

// Encode renders the frames in the given format and dispatches the bytes to
// the destination. Only GIF supports more than one frame; for the other
// formats the first frame is written.
func (c *Imaging) Encode(_ context.Context, dst domain.Destination, format string, frames []port.Frame, opts domain.EncodeOpts) ([]byte, error) {
	if len(frames) == 0 {
		return nil, errors.New("no frames to encode")
	}

	var buf bytes.Buffer

	if strings.ToLower(format) == "gif" {
		if err := encodeGIF(&buf, frames, opts); err != nil {
			return nil, err
		}
	} else {
		fm, err := imaging.FormatFromExtension(format)
		if err != nil {
			return nil, fmt.Errorf("unsupported output format %q: %w", format, err)
		}

		first, ok := frames[0].(*frame)
		if !ok {
			return nil, errors.New("frame was not produced by this codec")
		}
		if len(frames) > 1 {
			log.Warn().Int("frames", len(frames)).Str("format", format).
				Msg("format holds a single image, dropping extra frames")
		}

		if err := imaging.Encode(&buf, first.img, fm); err != nil {
			return nil, err
		}
	}

	return writeDestination(dst, buf.Bytes())
}

func readSource(src domain.Source) ([]byte, error) {
	switch src.Kind {
	case domain.SourcePath:
		return os.ReadFile(src.Path)
	case domain.SourceBytes:
		return src.Data, nil
	case domain.SourceReader:
		return io.ReadAll(src.Reader)
	case domain.SourceProducer:
		return src.Producer()
	default:
		return nil, fmt.Errorf("unsupported source kind %d", src.Kind)
	}
}

func writeDestination(dst domain.Destination, data []byte) ([]byte, error) {
	switch dst.Kind {
	case domain.DestinationNone:
		return data, nil
	case domain.DestinationPath:
		return nil, os.WriteFile(dst.Path, data, 0o644)
	case domain.DestinationBuffer:
		*dst.Buffer = data
		return nil, nil
	case domain.DestinationWriter:
		_, err := dst.Writer.Write(data)
		return nil, err
	case domain.DestinationConsumer:
		return nil, dst.Consumer(data)
	default:
		return nil, fmt.Errorf("unsupported destination kind %d", dst.Kind)
	}
}

// targetSize resolves the normalized parameters against the source
// dimensions. Factor parameters take priority over pixel dimensions; with
// both pixel dimensions present the constrain mode decides between fitting
// inside the box (min, the default), covering it (max) or ignoring the
// aspect ratio (nonprop).
func targetSize(srcW, srcH int, p domain.ScaleParams) (int, int, error) {
	if p.XScaleFactor != nil || p.YScaleFactor != nil {
		var xf, yf float64
		switch {
		case p.XScaleFactor != nil && p.YScaleFactor != nil:
			xf, yf = *p.XScaleFactor, *p.YScaleFactor
		case p.XScaleFactor != nil:
			xf = *p.XScaleFactor
			yf = xf
		default:
			yf = *p.YScaleFactor
			xf = yf
		}
		return scaleDim(srcW, xf), scaleDim(srcH, yf), nil
	}

	if p.ScaleFactor != nil {
		return scaleDim(srcW, *p.ScaleFactor), scaleDim(srcH, *p.ScaleFactor), nil
	}

	switch {
	case p.Width != nil && p.Height != nil:
		w, h := *p.Width, *p.Height
		switch p.Constrain {
		case "", "min":
			r := math.Min(float64(w)/float64(srcW), float64(h)/float64(srcH))
			return scaleDim(srcW, r), scaleDim(srcH, r), nil
		case "max":
			r := math.Max(float64(w)/float64(srcW), float64(h)/float64(srcH))
			return scaleDim(srcW, r), scaleDim(srcH, r), nil
		case "nonprop":
			return atLeastOne(w), atLeastOne(h), nil
		default:
			return 0, 0, fmt.Errorf("unknown constrain mode %q", p.Constrain)
		}
	case p.Width != nil:
		w := *p.Width
		if p.Constrain == "nonprop" {
			return atLeastOne(w), srcH, nil
		}
		return atLeastOne(w), scaleDim(srcH, float64(w)/float64(srcW)), nil
	case p.Height != nil:
		h := *p.Height
		if p.Constrain == "nonprop" {
			return srcW, atLeastOne(h), nil
		}
		return scaleDim(srcW, float64(h)/float64(srcH)), atLeastOne(h), nil
	default:
		return 0, 0, errors.New("no scale dimensions supplied")
	}
}

func scaleDim(dim int, factor float64) int {
	return atLeastOne(int(math.Floor(float64(dim)*factor + 0.5)))
}

func atLeastOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
