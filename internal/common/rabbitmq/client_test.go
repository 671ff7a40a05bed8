package rabbitmq

import (
	"sync"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"

	"question-service/internal/common/logger"
)

func newTestClient() *Client {
	return &Client{
		logger:    logger.NewNoOpLogger(),
		closed:    make(chan struct{}),
		reconnect: make(chan struct{}, 1),
	}
}

// NotifyPublish listener channels are owned by the library and closed when
// the AMQP channel shuts down; Close must not touch them.
func TestClient_Close_AfterConfirmStreamShutdown(t *testing.T) {
	confirms := make(chan amqp.Confirmation)
	close(confirms)

	c := newTestClient()
	c.pubConfirms = confirms

	assert.NotPanics(t, func() { c.Close() })
}

func TestClient_Close_Idempotent(t *testing.T) {
	c := newTestClient()

	assert.NotPanics(t, func() {
		c.Close()
		c.Close()
	})
}

func TestClient_Close_Concurrent(t *testing.T) {
	c := newTestClient()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NotPanics(t, func() { c.Close() })
		}()
	}
	wg.Wait()

	select {
	case <-c.closed:
	default:
		t.Fatal("closed signal not set after Close")
	}
}
