package domain

// Tag names used by the post-scale metadata propagation pass. The codec may
// attach further tags; only these survive a scale.
const (
	TagFormat      = "format"
	TagXResolution = "x_resolution"
	TagYResolution = "y_resolution"
	TagAspectOnly  = "aspect_only"

	TagGIFBackground      = "gif_background"
	TagGIFComment         = "gif_comment"
	TagGIFDelay           = "gif_delay"
	TagGIFDisposal        = "gif_disposal"
	TagGIFEliminateUnused = "gif_eliminate_unused"
	TagGIFInterlace       = "gif_interlace"
	TagGIFLoop            = "gif_loop"

	TagGIFLeft         = "gif_left"
	TagGIFTop          = "gif_top"
	TagGIFScreenWidth  = "gif_screen_width"
	TagGIFScreenHeight = "gif_screen_height"
)

// CopiedTags is the allow-list of tags copied verbatim from a source frame to
// its scaled output frame, every value of a multi-valued tag included.
var CopiedTags = []string{
	TagFormat,
	TagXResolution,
	TagYResolution,
	TagAspectOnly,
	TagGIFBackground,
	TagGIFComment,
	TagGIFDelay,
	TagGIFDisposal,
	TagGIFEliminateUnused,
	TagGIFInterlace,
	TagGIFLoop,
}

// HorizontalTags are rescaled by the output/source width ratio,
// VerticalTags by the height ratio.
var (
	HorizontalTags = []string{TagGIFLeft, TagGIFScreenWidth}
	VerticalTags   = []string{TagGIFTop, TagGIFScreenHeight}
)
