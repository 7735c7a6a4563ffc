package domain

// ScaleOpts carries the named scale arguments. Pointer fields distinguish an
// absent value from an explicit zero. X/XPixels/Width, Y/YPixels/Height and
// Type are aliases for the positional width, height and algorithm arguments;
// the remaining fields are named-only.
type ScaleOpts struct {
	X       *int
	XPixels *int
	Width   *int

	Y       *int
	YPixels *int
	Height  *int

	Type string

	Constrain    string
	ScaleFactor  *float64
	XScaleFactor *float64
	YScaleFactor *float64
	QType        string
}

// ScaleParams is the canonical parameter set handed to the codec after
// normalization. Nil Width/Height means the dimension was not supplied.
type ScaleParams struct {
	Width     *int
	Height    *int
	Algorithm string

	Constrain    string
	ScaleFactor  *float64
	XScaleFactor *float64
	YScaleFactor *float64
	QType        string
}

// ResolveScaleParams normalizes the flexible scale arguments. For width,
// height and algorithm a positional value always wins over its named aliases;
// when the positional value is absent (zero) the aliases are checked in a
// fixed order and the first defined one is taken. The alias that lost is
// ignored entirely, never merged. Named-only options pass through only when
// explicitly present.
func ResolveScaleParams(width, height int, algorithm string, opts *ScaleOpts) ScaleParams {
	if opts == nil {
		opts = &ScaleOpts{}
	}

	p := ScaleParams{
		Width:        firstInt(positional(width), opts.X, opts.XPixels, opts.Width),
		Height:       firstInt(positional(height), opts.Y, opts.YPixels, opts.Height),
		Algorithm:    algorithm,
		Constrain:    opts.Constrain,
		ScaleFactor:  opts.ScaleFactor,
		XScaleFactor: opts.XScaleFactor,
		YScaleFactor: opts.YScaleFactor,
		QType:        opts.QType,
	}

	if p.Algorithm == "" {
		p.Algorithm = opts.Type
	}

	return p
}

func positional(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}

func firstInt(candidates ...*int) *int {
	for _, c := range candidates {
		if c != nil {
			return c
		}
	}
	return nil
}
