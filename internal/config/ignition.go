package config

import (
	"os"
	"strings"

	"github.com/hashicorp/hcl"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// GenerateFromConfigDir merges every .hcl file below configDir into the
// ignition config and applies defaults. A missing directory only applies
// the defaults.
func (ignitionConfig *Ignition) GenerateFromConfigDir(configDir string) error {
	configDir = strings.TrimRight(configDir, "/")

	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		log.Infof("config dir %s does not exist, using built-in defaults", configDir)
		ignitionConfig.ApplyDefaults()
		return nil
	}

	matches, err := findFilesInPath(configDir)
	if err != nil {
		return err
	}

	for _, m := range matches {
		log.Infof("found config file: %s", m)

		contents, err := os.ReadFile(m)
		if err != nil {
			return errors.Wrapf(err, "could not read configuration file %s", m)
		}

		if err := hcl.Unmarshal(contents, ignitionConfig); err != nil {
			return errors.Wrapf(err, "could not parse configuration file %s", m)
		}
	}

	ignitionConfig.ApplyDefaults()
	return nil
}
