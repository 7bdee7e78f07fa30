package detect

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Mount struct {
	Device     string
	MountPoint string
	Options    []string
}

func (m Mount) IsWritable() bool {
	for _, o := range m.Options {
		if strings.EqualFold(o, "rw") {
			return true
		}
	}
	return false
}

// ReadMounts parses a mounts table in /proc/mounts format. Lines with less
// than four fields are logged and skipped.
func ReadMounts(file string, logger log.FieldLogger) ([]Mount, error) {
	contents, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read mounts file %q", file)
	}

	return ParseMounts(string(contents), logger), nil
}

func ParseMounts(table string, logger log.FieldLogger) []Mount {
	var mounts []Mount

	for _, line := range strings.Split(table, "\n") {
		if line == "" {
			continue
		}

		fields := strings.Split(line, " ")
		if len(fields) < 4 {
			logger.WithField("kind", "detect").Errorf("error formatting mount line: %s", line)
			continue
		}

		mounts = append(mounts, Mount{
			Device:     fields[0],
			MountPoint: fields[1],
			Options:    strings.Split(fields[3], ","),
		})
	}

	return mounts
}
