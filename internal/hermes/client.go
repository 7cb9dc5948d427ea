package hermes

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Client publishes advisory events and receives intake messages.
// A nil Client disables both.
type Client interface {
	Publish(subject string, data interface{}) error
	Subscribe(subject string, handler func(subject string, data []byte)) error
	Close()
}

// QueueGroup spreads intake messages across advisory instances so each
// tender is registered once.
const QueueGroup = "advisory"

const drainTimeout = 10 * time.Second

type NATSClient struct {
	conn   *nats.Conn
	js     jetstream.JetStream
	closed chan struct{}
	logger *slog.Logger
}

func NewNATSClient(ctx context.Context, url string, logger *slog.Logger) (*NATSClient, error) {
	closed := make(chan struct{})
	nc, err := nats.Connect(url,
		nats.Name("advisory"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2*time.Second),
		nats.DrainTimeout(drainTimeout),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("hermes disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("hermes reconnected", "url", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(*nats.Conn) { close(closed) }),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	c := &NATSClient{conn: nc, js: js, closed: closed, logger: logger}
	if err := c.ensureStream(ctx); err != nil {
		logger.Warn("failed to ensure stream", "stream", StreamName, "error", err)
	}
	return c, nil
}

func (c *NATSClient) ensureStream(ctx context.Context) error {
	maxAge, err := time.ParseDuration(StreamMaxAge)
	if err != nil {
		return fmt.Errorf("stream max age: %w", err)
	}
	_, err = c.js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     StreamName,
		Subjects: StreamSubjects(),
		MaxAge:   maxAge,
	})
	return err
}

func (c *NATSClient) Publish(subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode %s: %w", subject, err)
	}
	if err := c.conn.Publish(subject, payload); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	return nil
}

// Subscribe joins QueueGroup on subject.
func (c *NATSClient) Subscribe(subject string, handler func(string, []byte)) error {
	_, err := c.conn.QueueSubscribe(subject, QueueGroup, func(msg *nats.Msg) {
		handler(msg.Subject, msg.Data)
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", subject, err)
	}
	return nil
}

// Close drains the connection: subscriptions stop taking new messages, the
// ones already received are handled and pending publishes are flushed.
func (c *NATSClient) Close() {
	if err := c.conn.Drain(); err != nil {
		c.logger.Warn("hermes drain failed, closing", "error", err)
		c.conn.Close()
		return
	}
	select {
	case <-c.closed:
	case <-time.After(drainTimeout + time.Second):
		c.logger.Warn("hermes drain timed out")
		c.conn.Close()
	}
}
