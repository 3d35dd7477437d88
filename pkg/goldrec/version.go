package goldrec

var (
	// Version is set by build flags.
	Version = "v0.1.0"

	// Build is set by build flags.
	Build = "n/a"
)
