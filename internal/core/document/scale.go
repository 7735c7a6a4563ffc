package document

import (
	"context"
	"math"
	"strconv"

	"imgdoc/internal/core/domain"
	"imgdoc/internal/core/port"

	"github.com/rs/zerolog/log"
)

// Scale resamples every frame through the codec and replaces the document's
// frame sequence with the result, returning the receiver for chaining.
//
// A zero positional width, height or algorithm means the argument is absent
// and its named aliases in opts are consulted instead; a non-zero positional
// value wins over every alias. The whole call aborts with a ScaleError on the
// first frame that fails, leaving the document's previous frames in place.
func (d *Document) Scale(ctx context.Context, width, height int, algorithm string, opts *domain.ScaleOpts) (*Document, error) {
	params := domain.ResolveScaleParams(width, height, algorithm, opts)

	out := make([]port.Frame, len(d.frames))
	for i, src := range d.frames {
		scaled, err := d.codec.Scale(ctx, src, params)
		if err != nil {
			return nil, &domain.ScaleError{Err: err}
		}

		propagateTags(src, scaled)
		out[i] = scaled
	}

	d.frames = out

	log.Debug().Int("frames", len(out)).Str("algorithm", params.Algorithm).Msg("document scaled")

	return d, nil
}

// propagateTags copies the fixed allow-list of tags from a source frame to
// its scaled output and rescales the positional tag pairs by the computed
// width/height ratios.
func propagateTags(src, dst port.Frame) {
	for _, name := range domain.CopiedTags {
		copyTag(src, dst, name)
	}

	factorX := float64(dst.Width()) / float64(src.Width())
	factorY := float64(dst.Height()) / float64(src.Height())

	for _, name := range domain.HorizontalTags {
		rescaleTag(src, dst, name, factorX)
	}
	for _, name := range domain.VerticalTags {
		rescaleTag(src, dst, name, factorY)
	}
}

func copyTag(src, dst port.Frame, name string) {
	dst.DeleteTag(name)
	for _, v := range src.Tags(name) {
		dst.AddTag(name, v)
	}
}

// rescaleTag multiplies every numeric value of the tag by factor, rounding
// half up. Values that do not parse as numbers are carried over unchanged,
// and an absent source tag stays absent.
func rescaleTag(src, dst port.Frame, name string, factor float64) {
	values := src.Tags(name)
	if len(values) == 0 {
		return
	}

	dst.DeleteTag(name)
	for _, v := range values {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			dst.AddTag(name, v)
			continue
		}

		dst.AddTag(name, strconv.Itoa(int(math.Floor(n*factor+0.5))))
	}
}
