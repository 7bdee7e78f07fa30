package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

func findFilesInPath(configDir string) ([]string, error) {
	var matches []string

	err := filepath.Walk(configDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(info.Name(), ".hcl") {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return matches, errors.Wrapf(err, "could not search configuration files in %s", configDir)
	}

	return matches, nil
}
