// internal/matching/emitter.go
package matching

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"question-service/internal/common/config"
	"question-service/internal/common/rabbitmq"
)

// ReplyPublisher is the outbound side of the protocol. Implementations must
// be safe for concurrent use; replies to different requests are emitted from
// concurrent handlers. The process-wide bus client stays behind this
// interface so tests can substitute an in-memory fake.
type ReplyPublisher interface {
	PublishReply(ctx context.Context, reply *MatchReply) error
}

// RabbitReplyPublisher publishes replies to the reply exchange with a
// confirmed, persistent publish.
type RabbitReplyPublisher struct {
	client   *rabbitmq.Client
	exchange string
	key      string
}

func NewRabbitReplyPublisher(client *rabbitmq.Client, cfg config.MatchingConfig) *RabbitReplyPublisher {
	return &RabbitReplyPublisher{
		client:   client,
		exchange: cfg.ReplyExchange,
		key:      cfg.ReplyKey,
	}
}

func (p *RabbitReplyPublisher) PublishReply(ctx context.Context, reply *MatchReply) error {
	body, err := json.Marshal(reply)
	if err != nil {
		return fmt.Errorf("marshal reply: %w", err)
	}
	return p.client.PublishMessage(ctx, p.exchange, p.key, reply.CorrelationID, uuid.NewString(), body)
}
