package publish

import (
	"context"
	"encoding/json"
	"net"

	"github.com/go-redis/redis"
	"github.com/mittwald/rootcheck/internal/config"
	"github.com/mittwald/rootcheck/internal/helper"
	"github.com/mittwald/rootcheck/pkg/detect"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type redisPublisher struct {
	addr    string
	channel string
	client  *redis.Client
}

func NewRedisPublisher(cfg *config.Publish) *redisPublisher {
	cfg.Hostname = helper.SetDefaultStringIfEmpty(helper.ResolveEnv(cfg.Hostname), "localhost", "hostname", "redis")
	cfg.Port = helper.SetDefaultStringIfEmpty(helper.ResolveEnv(cfg.Port), "6379", "port", "redis")
	cfg.Password = helper.ResolveEnv(cfg.Password)
	cfg.Channel = helper.SetDefaultStringIfEmpty(helper.ResolveEnv(cfg.Channel), "rootcheck", "channel", "redis")

	addr := net.JoinHostPort(cfg.Hostname, cfg.Port)

	return &redisPublisher{
		addr:    addr,
		channel: cfg.Channel,
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: cfg.Password,
			DB:       cfg.Database,
		}),
	}
}

func (r *redisPublisher) Publish(ctx context.Context, report *detect.Report) error {
	body, err := json.Marshal(report)
	if err != nil {
		return errors.Wrap(err, "failed to encode report")
	}

	if err := r.client.WithContext(ctx).Publish(r.channel, body).Err(); err != nil {
		return errors.Wrapf(err, "failed to publish report to redis %s", r.addr)
	}

	log.WithFields(log.Fields{"kind": "publish", "name": KindRedis, "channel": r.channel, "report": report.ID}).Debug("published report")
	return nil
}

func (r *redisPublisher) Close() error {
	return r.client.Close()
}
