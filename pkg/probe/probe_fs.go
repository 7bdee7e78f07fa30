package probe

import (
	"os"

	log "github.com/sirupsen/logrus"
)

type filesystemProbe struct {
	path   string
	logger log.FieldLogger
	close  func(*os.File) error
}

// Exec opens the path for reading and closes it right away. Only the open
// decides the outcome; a failing close is logged.
func (f *filesystemProbe) Exec() error {
	file, err := os.Open(f.path)
	if err != nil {
		return err
	}

	if err := f.close(file); err != nil {
		f.logger.WithFields(log.Fields{"kind": "probe", "path": f.path}).WithError(err).Warn("failed to close probed path")
	}
	return nil
}

// NewFilesystemProbe returns a probe that succeeds when path can be
// opened for reading.
func NewFilesystemProbe(path string) Probe {
	return newFilesystemProbe(path, log.StandardLogger())
}

func newFilesystemProbe(path string, logger log.FieldLogger) *filesystemProbe {
	return &filesystemProbe{
		path:   path,
		logger: logger,
		close:  (*os.File).Close,
	}
}
