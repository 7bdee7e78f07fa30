package publish

import (
	"context"

	"github.com/mittwald/rootcheck/pkg/detect"
)

const (
	KindRedis = "redis"
	KindAmqp  = "amqp"
)

// Publisher forwards detection reports to an external system.
type Publisher interface {
	Publish(ctx context.Context, report *detect.Report) error
	Close() error
}
