package publish

import (
	"context"
	"fmt"

	"github.com/mittwald/rootcheck/internal/config"
	"github.com/mittwald/rootcheck/pkg/detect"
	log "github.com/sirupsen/logrus"
)

func FromConfig(cfgs []config.Publish) ([]Publisher, error) {
	var result []Publisher

	for i := range cfgs {
		var p Publisher

		switch cfgs[i].Kind {
		case KindRedis:
			p = NewRedisPublisher(&cfgs[i])
		case KindAmqp:
			p = NewAmqpPublisher(&cfgs[i])
		default:
			CloseAll(result)
			return nil, fmt.Errorf("unknown publisher kind %q", cfgs[i].Kind)
		}

		result = append(result, p)
	}

	return result, nil
}

// PublishAll hands the report to every publisher. Failures are logged and do
// not stop the remaining publishers; the first error is returned.
func PublishAll(ctx context.Context, publishers []Publisher, report *detect.Report) error {
	var first error

	for _, p := range publishers {
		if err := p.Publish(ctx, report); err != nil {
			log.WithFields(log.Fields{"kind": "publish", "report": report.ID}).WithError(err).Warn("failed to publish report")
			if first == nil {
				first = err
			}
		}
	}

	return first
}

func CloseAll(publishers []Publisher) {
	for _, p := range publishers {
		if err := p.Close(); err != nil {
			log.WithField("kind", "publish").WithError(err).Warn("failed to close publisher")
		}
	}
}
