package helper

import (
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

func ResolveEnv(in string) string {
	if strings.HasPrefix(in, "ENV:") {
		return os.Getenv(in[4:])
	}
	return in
}

func SetDefaultStringIfEmpty(value, defaultValue, field, kind string) string {
	if len(value) == 0 {
		log.Infof("no %s specified for %s or env variable not found, assuming default %s", field, kind, defaultValue)
		return defaultValue
	}
	return value
}
