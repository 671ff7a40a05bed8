// internal/common/rabbitmq/client.go
package rabbitmq

import (
	"fmt"
	"sync"
	"time"

	"question-service/internal/common/config"
	"question-service/internal/common/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Client is a RabbitMQ connector with publisher confirms and auto-reconnect.
// The publish channel is shared by all in-flight handlers; PublishMessage is
// safe for concurrent use.
type Client struct {
	url    string
	cfg    config.MatchingConfig
	logger logger.Logger

	mu      sync.RWMutex
	conn    *amqp.Connection
	pubChan *amqp.Channel

	pubMu       sync.Mutex
	pubConfirms chan amqp.Confirmation

	closeOnce sync.Once
	closed    chan struct{}
	reconnect chan struct{}
}

// Connect establishes the connection, declares topology, and starts a
// background watcher that reconnects on failures.
func Connect(cfg *config.Config, log logger.Logger) (*Client, error) {
	client := &Client{
		url:       cfg.RabbitMQ.URL(),
		cfg:       cfg.Matching,
		logger:    log.WithFields(map[string]interface{}{"component": "rabbitmq"}),
		closed:    make(chan struct{}),
		reconnect: make(chan struct{}, 1),
	}

	if err := client.connectOnce(); err != nil {
		return nil, err
	}

	go client.watch()

	return client, nil
}

// Close gracefully stops the watcher and closes AMQP resources. Safe to call
// more than once. The confirm listener channel belongs to the library and is
// closed by the channel shutdown, never here.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.closed)

		c.mu.Lock()
		if c.pubChan != nil {
			_ = c.pubChan.Close()
			c.pubChan = nil
		}
		if c.conn != nil {
			_ = c.conn.Close()
			c.conn = nil
		}
		c.mu.Unlock()
	})
}

func (c *Client) connectOnce() error {
	conn, err := amqp.DialConfig(c.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(30 * time.Second),
	})
	if err != nil {
		c.logger.WithError(err).Error("failed to dial rabbitmq", nil)
		return fmt.Errorf("rabbitmq dial failed: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		c.logger.WithError(err).Error("failed to open rabbitmq channel", nil)
		return fmt.Errorf("rabbitmq: failed to open channel: %w", err)
	}

	if err := declareTopology(ch, c.cfg); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		c.logger.WithError(err).Error("failed to declare rabbitmq topology", nil)
		return fmt.Errorf("rabbitmq: failed to declare topology: %w", err)
	}

	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		c.logger.WithError(err).Error("failed to enable publisher confirms", nil)
		return fmt.Errorf("rabbitmq: failed to enable confirms: %w", err)
	}

	// the previous listener channel, if any, was closed by the library when
	// its AMQP channel died; just swap in the new one
	c.pubMu.Lock()
	c.pubConfirms = ch.NotifyPublish(make(chan amqp.Confirmation, 1))
	c.pubMu.Unlock()

	// unroutable messages published with mandatory=true come back here
	returns := ch.NotifyReturn(make(chan amqp.Return, 1))
	go func() {
		for r := range returns {
			c.logger.Error("message returned as unroutable", map[string]interface{}{
				"exchange":   r.Exchange,
				"routingKey": r.RoutingKey,
				"replyCode":  r.ReplyCode,
				"replyText":  r.ReplyText,
			})
		}
	}()

	c.mu.Lock()
	if c.pubChan != nil && !c.pubChan.IsClosed() {
		_ = c.pubChan.Close()
	}
	c.conn = conn
	c.pubChan = ch
	c.mu.Unlock()

	go func(conn *amqp.Connection, ch *amqp.Channel) {
		connClosed := conn.NotifyClose(make(chan *amqp.Error, 1))
		chClosed := ch.NotifyClose(make(chan *amqp.Error, 1))
		select {
		case <-c.closed:
			return
		case <-connClosed:
		case <-chClosed:
		}
		select {
		case c.reconnect <- struct{}{}:
		default:
		}
	}(conn, ch)

	c.logger.Info("rabbitmq connection established", nil)
	return nil
}

// watch runs in background and attempts reconnects with exponential backoff.
func (c *Client) watch() {
	backoff := time.Second
	for {
		select {
		case <-c.closed:
			return
		case <-c.reconnect:
			for {
				select {
				case <-c.closed:
					return
				default:
				}

				if err := c.connectOnce(); err == nil {
					backoff = time.Second
					c.logger.Info("rabbitmq reconnected", nil)
					break
				} else {
					c.logger.WithError(err).Warn("rabbitmq reconnect failed, retrying", map[string]interface{}{
						"backoff": backoff.String(),
					})
				}

				time.Sleep(backoff)
				if backoff < 30*time.Second {
					backoff *= 2
					if backoff > 30*time.Second {
						backoff = 30 * time.Second
					}
				}
			}
		}
	}
}
