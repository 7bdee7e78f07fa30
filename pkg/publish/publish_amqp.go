package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"

	"github.com/mittwald/rootcheck/internal/config"
	"github.com/mittwald/rootcheck/internal/helper"
	"github.com/mittwald/rootcheck/pkg/detect"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

const (
	defaultVirtualHost = "/"
)

type amqpPublisher struct {
	url        url.URL
	exchange   string
	routingKey string

	lock          sync.Mutex
	conn          *amqp.Connection
	channel       *amqp.Channel
	connClosed    chan *amqp.Error
	channelClosed chan *amqp.Error
}

func NewAmqpPublisher(cfg *config.Publish) *amqpPublisher {
	cfg.User = helper.ResolveEnv(cfg.User)
	cfg.Password = helper.ResolveEnv(cfg.Password)
	cfg.Hostname = helper.SetDefaultStringIfEmpty(helper.ResolveEnv(cfg.Hostname), "localhost", "hostname", "amqp")
	cfg.Port = helper.SetDefaultStringIfEmpty(helper.ResolveEnv(cfg.Port), "5672", "port", "amqp")
	cfg.VirtualHost = helper.ResolveEnv(cfg.VirtualHost)
	if cfg.VirtualHost == "" {
		cfg.VirtualHost = defaultVirtualHost
	}
	cfg.Exchange = helper.SetDefaultStringIfEmpty(helper.ResolveEnv(cfg.Exchange), "rootcheck", "exchange", "amqp")
	cfg.RoutingKey = helper.SetDefaultStringIfEmpty(helper.ResolveEnv(cfg.RoutingKey), "report", "routingKey", "amqp")

	u := url.URL{
		Scheme: "amqp",
		Host:   fmt.Sprintf("%s:%s", cfg.Hostname, cfg.Port),
		Path:   cfg.VirtualHost,
	}
	if cfg.User != "" && cfg.Password != "" {
		u.User = url.UserPassword(cfg.User, cfg.Password)
	}

	return &amqpPublisher{
		url:        u,
		exchange:   cfg.Exchange,
		routingKey: cfg.RoutingKey,
	}
}

// connect dials on first use and after either the connection or the
// channel was closed by the broker. The caller must hold a.lock.
func (a *amqpPublisher) connect() error {
	if a.channel != nil {
		select {
		case <-a.connClosed:
			log.WithField("kind", "publish").Warn("amqp connection was closed, reconnecting")
		case <-a.channelClosed:
			log.WithField("kind", "publish").Warn("amqp channel was closed, reconnecting")
		default:
			return nil
		}
		a.reset()
	}

	conn, err := amqp.Dial(a.url.String())
	if err != nil {
		return errors.Wrapf(err, "failed to dial amqp with url '%s'", a.url.Redacted())
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return errors.Wrap(err, "failed to open amqp channel")
	}

	if err := ch.ExchangeDeclare(a.exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return errors.Wrapf(err, "failed to declare exchange %s", a.exchange)
	}

	a.conn = conn
	a.channel = ch
	a.connClosed = conn.NotifyClose(make(chan *amqp.Error, 1))
	a.channelClosed = ch.NotifyClose(make(chan *amqp.Error, 1))
	return nil
}

// reset drops the current connection so the next publish dials again.
// The caller must hold a.lock.
func (a *amqpPublisher) reset() {
	if a.conn != nil {
		_ = a.conn.Close()
	}
	a.conn = nil
	a.channel = nil
	a.connClosed = nil
	a.channelClosed = nil
}

func (a *amqpPublisher) Publish(ctx context.Context, report *detect.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(report)
	if err != nil {
		return errors.Wrap(err, "failed to encode report")
	}

	a.lock.Lock()
	defer a.lock.Unlock()

	if err := a.connect(); err != nil {
		return err
	}

	err = a.channel.Publish(a.exchange, a.routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    report.ID,
		Timestamp:    report.CreatedAt,
		Body:         body,
	})
	if err != nil {
		a.reset()
		return errors.Wrapf(err, "failed to publish report to exchange %s", a.exchange)
	}

	log.WithFields(log.Fields{"kind": "publish", "name": KindAmqp, "exchange": a.exchange, "report": report.ID}).Debug("published report")
	return nil
}

func (a *amqpPublisher) Close() error {
	a.lock.Lock()
	defer a.lock.Unlock()

	if a.conn == nil {
		return nil
	}

	err := a.conn.Close()
	a.conn = nil
	a.channel = nil
	a.connClosed = nil
	a.channelClosed = nil
	if err != nil && err != amqp.ErrClosed {
		return err
	}
	return nil
}
