package codec

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"math"
	"strconv"

	"imgdoc/internal/core/domain"
	"imgdoc/internal/core/port"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// decodeGIF expands an animated GIF into one frame per animation frame,
// attaching the gif tag family so a later scale can propagate and rescale
// the frame geometry.
func decodeGIF(data []byte) ([]port.Frame, error) {
	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	frames := make([]port.Frame, 0, len(g.Image))
	for i, img := range g.Image {
		f := newFrame(img)
		f.AddTag(domain.TagFormat, "gif")
		f.AddTag(domain.TagGIFDelay, strconv.Itoa(g.Delay[i]))
		if i < len(g.Disposal) {
			f.AddTag(domain.TagGIFDisposal, strconv.Itoa(int(g.Disposal[i])))
		}

		b := img.Bounds()
		f.AddTag(domain.TagGIFLeft, strconv.Itoa(b.Min.X))
		f.AddTag(domain.TagGIFTop, strconv.Itoa(b.Min.Y))
		f.AddTag(domain.TagGIFScreenWidth, strconv.Itoa(g.Config.Width))
		f.AddTag(domain.TagGIFScreenHeight, strconv.Itoa(g.Config.Height))
		f.AddTag(domain.TagGIFLoop, strconv.Itoa(g.LoopCount))
		if bg := backgroundHex(g); bg != "" {
			f.AddTag(domain.TagGIFBackground, bg)
		}

		frames = append(frames, f)
	}

	return frames, nil
}

// encodeGIF rebuilds an animated GIF from the frames and their gif tags,
// quantizing non-paletted frames and applying the threshold transparency
// mode before quantization.
func encodeGIF(w io.Writer, frames []port.Frame, opts domain.EncodeOpts) error {
	g := &gif.GIF{}

	maxW, maxH := 0, 0
	for _, pf := range frames {
		f, ok := pf.(*frame)
		if !ok {
			return errors.New("frame was not produced by this codec")
		}

		pal, ok := f.img.(*image.Paletted)
		if !ok {
			img := f.img
			if opts.Transp == domain.TranspModeThreshold {
				img = thresholdAlpha(img, opts.Threshold)
			}
			pal = quantize(img)
		}

		// Place the frame on the logical screen per its offset tags.
		left := intTag(f, domain.TagGIFLeft, pal.Rect.Min.X)
		top := intTag(f, domain.TagGIFTop, pal.Rect.Min.Y)
		if pal.Rect.Min.X != left || pal.Rect.Min.Y != top {
			shifted := *pal
			shifted.Rect = image.Rect(left, top, left+pal.Rect.Dx(), top+pal.Rect.Dy())
			pal = &shifted
		}

		g.Image = append(g.Image, pal)
		g.Delay = append(g.Delay, intTag(f, domain.TagGIFDelay, 0))
		g.Disposal = append(g.Disposal, byte(intTag(f, domain.TagGIFDisposal, 0)))

		if m := pal.Bounds().Max; m.X > maxW {
			maxW = m.X
		}
		if m := pal.Bounds().Max; m.Y > maxH {
			maxH = m.Y
		}
	}

	first := frames[0].(*frame)
	g.LoopCount = intTag(first, domain.TagGIFLoop, 0)

	// The logical screen must cover every frame; the screen tags can lag by
	// a pixel after rescale rounding.
	cfgW := intTag(first, domain.TagGIFScreenWidth, maxW)
	cfgH := intTag(first, domain.TagGIFScreenHeight, maxH)
	if cfgW < maxW {
		cfgW = maxW
	}
	if cfgH < maxH {
		cfgH = maxH
	}

	g.Config = image.Config{
		ColorModel: g.Image[0].Palette,
		Width:      cfgW,
		Height:     cfgH,
	}

	if bg := first.Tags(domain.TagGIFBackground); len(bg) > 0 {
		g.BackgroundIndex = nearestPaletteIndex(g.Image[0].Palette, bg[0])
	}

	return gif.EncodeAll(w, g)
}

// backgroundHex resolves the GIF background index against the global palette
// into a hex color string.
func backgroundHex(g *gif.GIF) string {
	p, ok := g.Config.ColorModel.(color.Palette)
	if !ok || int(g.BackgroundIndex) >= len(p) {
		return ""
	}

	c, ok := colorful.MakeColor(p[g.BackgroundIndex])
	if !ok {
		return ""
	}

	return c.Hex()
}

// nearestPaletteIndex picks the palette entry closest to the hex color in
// Lab space. An unparseable color falls back to index 0.
func nearestPaletteIndex(pal color.Palette, hex string) byte {
	target, err := colorful.Hex(hex)
	if err != nil {
		return 0
	}

	best := 0
	bestDist := math.MaxFloat64
	for i, entry := range pal {
		c, ok := colorful.MakeColor(entry)
		if !ok {
			continue
		}
		if d := target.DistanceLab(c); d < bestDist {
			best, bestDist = i, d
		}
	}

	return byte(best)
}

// quantize converts a frame to a paletted image over the Plan 9 palette plus
// a transparent slot, dithering with Floyd-Steinberg.
func quantize(img image.Image) *image.Paletted {
	b := img.Bounds()
	pal := make(color.Palette, 0, 256)
	pal = append(pal, color.RGBA{})
	pal = append(pal, palette.Plan9[:255]...)

	out := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), pal)
	draw.FloydSteinberg.Draw(out, out.Bounds(), img, b.Min)

	return out
}

// thresholdAlpha snaps every pixel fully opaque or fully transparent around
// the percentage threshold. GIF transparency is binary.
func thresholdAlpha(img image.Image, threshold int) image.Image {
	b := img.Bounds()
	cutoff := uint8(threshold * 0xff / 100)

	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A >= cutoff {
				c.A = 0xff
			} else {
				c = color.NRGBA{}
			}
			out.SetNRGBA(x-b.Min.X, y-b.Min.Y, c)
		}
	}

	return out
}

func intTag(f *frame, name string, def int) int {
	v := f.Tags(name)
	if len(v) == 0 {
		return def
	}

	n, err := strconv.Atoi(v[0])
	if err != nil {
		return def
	}

	return n
}
