package version

// set via ldflags during release builds
var (
	Version   = "dev"
	GitCommit = "none"
	BuildDate = "unknown"
)

var FullVersion = Version + " (" + GitCommit + ", " + BuildDate + ")"
