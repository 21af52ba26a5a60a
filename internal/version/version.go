package version

// Overridden at build time with -ldflags "-X chemviz/internal/version.VERSION=...".
var (
	VERSION = "0.1.0"
	COMMIT  = "unknown"
)
