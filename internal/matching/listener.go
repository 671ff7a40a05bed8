// internal/matching/listener.go
package matching

import (
	"context"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"question-service/internal/common/config"
	"question-service/internal/common/logger"
	"question-service/internal/common/rabbitmq"
)

// Listener binds the handler to the matching-requests queue. One delivery is
// one independent unit of work; no ordering between deliveries is assumed.
type Listener struct {
	client   *rabbitmq.Client
	handler  *Handler
	queue    string
	prefetch int
	logger   logger.Logger
}

func NewListener(client *rabbitmq.Client, handler *Handler, cfg *config.Config, log logger.Logger) *Listener {
	return &Listener{
		client:   client,
		handler:  handler,
		queue:    cfg.Matching.RequestQueue,
		prefetch: cfg.RabbitMQ.Prefetch,
		logger:   log.WithFields(map[string]interface{}{"component": "match-listener"}),
	}
}

// Run consumes until ctx is cancelled or the channel dies. Dispatched
// requests always run to completion; cancellation only stops intake.
func (l *Listener) Run(ctx context.Context) error {
	tag := "question-service-" + uuid.NewString()
	l.logger.Info("match listener starting", map[string]interface{}{
		"queue":       l.queue,
		"consumerTag": tag,
	})

	return l.client.Consume(ctx, l.queue, tag, l.prefetch, func(ctx context.Context, d amqp.Delivery) {
		l.handler.HandleDelivery(ctx, d.Body)
	})
}
