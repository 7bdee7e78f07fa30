package probe

// Probe is a single existence check against the filesystem.
type Probe interface {
	Exec() error
}

// LogTag is attached as the "tag" field to every diagnostic line
// emitted while probing paths.
const LogTag = "RootCheckerNative"

const (
	markerPresent = "PRESENT"
	markerAbsent  = "Absent"
)

type Config struct {
	// LogDebugMessages enables one diagnostic line per probed path.
	LogDebugMessages bool
}

// DefaultConfig has debug messages enabled.
func DefaultConfig() Config {
	return Config{LogDebugMessages: true}
}

type PathResult struct {
	Path  string `json:"path"`
	Found bool   `json:"found"`
}
