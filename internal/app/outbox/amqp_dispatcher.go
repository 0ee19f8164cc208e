package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher is the subset of *amqp.Channel used for dispatch.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQPDispatcher publishes the request to a durable queue on the default exchange.
type AMQPDispatcher struct {
	ch    Publisher
	queue string
}

func NewAMQPDispatcher(ch Publisher, queue string) *AMQPDispatcher {
	return &AMQPDispatcher{ch: ch, queue: queue}
}

func (d *AMQPDispatcher) Dispatch(ctx context.Context, req RunRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal run request: %w", err)
	}
	err = d.ch.PublishWithContext(ctx, "", d.queue, false, false, amqp.Publishing{
		ContentType:   "application/json",
		DeliveryMode:  amqp.Persistent,
		MessageId:     uuid.NewString(),
		CorrelationId: strconv.Itoa(req.SubmissionID),
		Body:          body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish run request to %s: %w", d.queue, err)
	}
	return nil
}
