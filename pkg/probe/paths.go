package probe

import (
	"sync/atomic"

	log "github.com/sirupsen/logrus"
)

// PathProbe checks a list of paths for openability.
type PathProbe struct {
	debug  atomic.Bool
	logger log.FieldLogger
}

// NewPathProbe creates a probe logging to logger. A nil logger falls back
// to the logrus standard logger.
func NewPathProbe(cfg Config, logger log.FieldLogger) *PathProbe {
	if logger == nil {
		logger = log.StandardLogger()
	}

	p := &PathProbe{logger: logger}
	p.debug.Store(cfg.LogDebugMessages)
	return p
}

func (p *PathProbe) SetLogDebugMessages(enabled bool) {
	p.debug.Store(enabled)
}

func (p *PathProbe) LogDebugMessages() bool {
	return p.debug.Load()
}

// CheckPaths reports for every path whether it could be opened for
// reading. The result has the same length and order as paths. A file
// that exists but is not readable is reported as absent.
func (p *PathProbe) CheckPaths(paths []string) []bool {
	results := make([]bool, len(paths))

	for i, path := range paths {
		results[i] = p.check(path)
	}

	return results
}

// CheckPathResults is CheckPaths with each flag paired to its path.
func (p *PathProbe) CheckPathResults(paths []string) []PathResult {
	found := p.CheckPaths(paths)
	results := make([]PathResult, len(paths))
	for i := range paths {
		results[i] = PathResult{Path: paths[i], Found: found[i]}
	}
	return results
}

func (p *PathProbe) check(path string) bool {
	found := newFilesystemProbe(path, p.logger).Exec() == nil

	if p.debug.Load() {
		marker := markerAbsent
		if found {
			marker = markerPresent
		}
		p.logger.WithField("tag", LogTag).Infof("LOOKING FOR BINARY: %s %s", path, marker)
	}

	return found
}
