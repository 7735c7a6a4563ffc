package domain

// Transparency handling passed to the codec on every export.
const (
	TranspModeThreshold = "threshold"

	// DefaultTranspThreshold is the alpha cutoff in percent.
	DefaultTranspThreshold = 50
)

// EncodeOpts carries the fixed export options.
type EncodeOpts struct {
	Transp    string
	Threshold int
}
