// internal/common/rabbitmq/topology.go
package rabbitmq

import (
	"fmt"

	"question-service/internal/common/config"

	amqp "github.com/rabbitmq/amqp091-go"
)

// declareTopology declares the matching request queue and the reply exchange
// with its bound queue. Declared on every (re)connect so either side of the
// bus can start first.
func declareTopology(ch *amqp.Channel, cfg config.MatchingConfig) error {
	if _, err := ch.QueueDeclare(
		cfg.RequestQueue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		return fmt.Errorf("declare queue %s: %w", cfg.RequestQueue, err)
	}

	if err := ch.ExchangeDeclare(
		cfg.ReplyExchange,
		"direct",
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	); err != nil {
		return fmt.Errorf("declare exchange %s: %w", cfg.ReplyExchange, err)
	}

	if _, err := ch.QueueDeclare(cfg.ReplyQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", cfg.ReplyQueue, err)
	}

	if err := ch.QueueBind(cfg.ReplyQueue, cfg.ReplyKey, cfg.ReplyExchange, false, nil); err != nil {
		return fmt.Errorf("bind queue %s: %w", cfg.ReplyQueue, err)
	}

	return nil
}
