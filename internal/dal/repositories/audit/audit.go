package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/storefront-labs/order/internal/dal/rabbitmq"
	"github.com/storefront-labs/order/internal/service/models/auditlog"
	"github.com/storefront-labs/order/internal/service/models/order"
	"github.com/streadway/amqp"
)

// QueueOrderCreated is the queue carrying order-created audit events.
const QueueOrderCreated = "storefront.order.created"

type AuditRabbitMQRepository struct {
	client *rabbitmq.Client
	queue  amqp.Queue
}

func NewAuditRabbitMQRepository(client *rabbitmq.Client) *AuditRabbitMQRepository {
	queue, err := client.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:       QueueOrderCreated,
		Durable:    true,
		Exclusive:  false,
		AutoDelete: false,
	})
	if err != nil {
		panic(err)
	}

	return &AuditRabbitMQRepository{
		client: client,
		queue:  queue,
	}
}

// LogOrderCreated publishes the order-created event. The request context is
// ignored on purpose: audit delivery must not be cut short by a caller that
// already got its response.
func (r *AuditRabbitMQRepository) LogOrderCreated(_ context.Context, o order.Order) error {
	event := auditlog.OrderCreatedEvent{
		EventID:         uuid.NewString(),
		OrderID:         o.ID,
		UserID:          o.UserID,
		Status:          o.Status.String(),
		TotalPriceCents: o.TotalPriceCents,
		ItemCount:       len(o.OrderItems),
		DateOrdered:     o.DateOrdered,
		EmittedAt:       time.Now(),
		Order:           o,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return r.client.Channel().Publish(
		"",
		r.queue.Name,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        payload,
		},
	)
}
