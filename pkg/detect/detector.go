package detect

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mittwald/rootcheck/internal/config"
	"github.com/mittwald/rootcheck/pkg/probe"
	log "github.com/sirupsen/logrus"
)

// Detector combines the path based root heuristics into a single report.
type Detector struct {
	cfg    *config.Ignition
	probe  *probe.PathProbe
	logger log.FieldLogger
	getenv func(string) string
	now    func() time.Time
}

type Option func(*Detector)

func WithLogger(logger log.FieldLogger) Option {
	return func(d *Detector) {
		d.logger = logger
	}
}

// WithGetenv replaces os.Getenv for looking up PATH.
func WithGetenv(getenv func(string) string) Option {
	return func(d *Detector) {
		d.getenv = getenv
	}
}

func WithClock(now func() time.Time) Option {
	return func(d *Detector) {
		d.now = now
	}
}

// NewDetector expects cfg to have its defaults applied.
func NewDetector(cfg *config.Ignition, p *probe.PathProbe, opts ...Option) *Detector {
	d := &Detector{
		cfg:    cfg,
		probe:  p,
		logger: log.StandardLogger(),
		getenv: os.Getenv,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *Detector) Probe() *probe.PathProbe {
	return d.probe
}

// Run executes every check. Checks never abort each other; a failing
// check only contributes nothing to the report.
func (d *Detector) Run() (*Report, error) {
	report := &Report{
		ID:        uuid.New().String(),
		CreatedAt: d.now(),
		Reasons:   []string{},
	}

	for i := range d.cfg.Probes {
		report.add(d.checkBinary(&d.cfg.Probes[i]))
	}

	native, err := d.checkNative()
	if err != nil {
		return nil, err
	}
	report.add(native)

	if d.cfg.SearchPathEnabled() {
		report.add(d.checkSearchPath())
	}

	if d.cfg.Mounts != nil {
		report.add(d.checkMounts())
	}

	d.logger.WithFields(log.Fields{"kind": "detect", "id": report.ID, "rooted": report.Rooted}).Info("detection finished")
	return report, nil
}

func (d *Detector) checkBinary(cfg *config.Probe) CheckResult {
	var paths []string
	if cfg.Binary != "" {
		paths = config.JoinBinary(cfg.Directories, cfg.Binary)
	}
	paths = append(paths, cfg.Paths...)
	result := CheckResult{Name: cfg.Name}

	for i, found := range d.probe.CheckPaths(paths) {
		if found {
			result.Found = true
			result.Reasons = append(result.Reasons, paths[i]+" binary detected")
		}
	}

	d.logger.WithFields(log.Fields{"kind": "detect", "name": cfg.Name, "found": result.Found}).Debug("checked for binary")
	return result
}

func (d *Detector) nativeDirectories() []string {
	for i := range d.cfg.Probes {
		if d.cfg.Probes[i].Binary == "su" && len(d.cfg.Probes[i].Directories) > 0 {
			return d.cfg.Probes[i].Directories
		}
	}
	return config.SuDirectories
}

func (d *Detector) checkNative() (CheckResult, error) {
	paths := config.JoinBinary(d.nativeDirectories(), "su")
	entries := make([]*string, len(paths))
	for i := range paths {
		entries[i] = &paths[i]
	}

	values, err := d.probe.CheckForRootNative(entries)
	if err != nil {
		return CheckResult{}, err
	}

	result := CheckResult{Name: CheckNameNative}
	for i, v := range values {
		if v == 1 {
			result.Found = true
			result.Reasons = append(result.Reasons, "Native found binary: "+paths[i])
		}
	}

	return result, nil
}

func (d *Detector) checkSearchPath() CheckResult {
	var paths []string
	for _, dir := range strings.Split(d.getenv("PATH"), ":") {
		if dir == "" {
			continue
		}
		paths = append(paths, filepath.Join(dir, "su"))
	}

	result := CheckResult{Name: CheckNameSearchPath}
	for _, found := range d.probe.CheckPaths(paths) {
		if found {
			result.Found = true
			result.Reasons = []string{"Path SU found"}
			break
		}
	}

	d.logger.WithFields(log.Fields{"kind": "detect", "name": CheckNameSearchPath, "found": result.Found}).Debug("checked search path")
	return result
}

func (d *Detector) checkMounts() CheckResult {
	result := CheckResult{Name: CheckNameMounts}

	mounts, err := ReadMounts(d.cfg.Mounts.File, d.logger)
	if err != nil {
		d.logger.WithError(err).Warn("could not read mounts table")
		return result
	}

	for _, path := range d.cfg.Mounts.Paths {
		for _, m := range mounts {
			if strings.EqualFold(m.MountPoint, path) && m.IsWritable() {
				d.logger.WithFields(log.Fields{"kind": "detect", "mountPoint": path}).Info("path is mounted with rw permissions")
				result.Found = true
				result.Reasons = append(result.Reasons, "Following RW path was detected: "+path)
				break
			}
		}
	}

	return result
}
