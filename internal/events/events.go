// Package events publishes domain events to RabbitMQ.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
)

const (
	NotificationsExchange      = "notifications"
	ApplicationUpdatesExchange = "application_updates"
	ApplicationsQueue          = "applications"
)

// ApplicationMessage asks the screening worker to review one application.
type ApplicationMessage struct {
	ApplicationID uuid.UUID `json:"application_id"`
}

type NotificationEvent struct {
	ID          uuid.UUID  `json:"id"`
	RecipientID uuid.UUID  `json:"recipient_id"`
	ActorID     *uuid.UUID `json:"actor_id,omitempty"`
	Type        string     `json:"type"`
	EntityID    *uuid.UUID `json:"entity_id,omitempty"`
	Message     string     `json:"message"`
	CreatedAt   time.Time  `json:"created_at"`
}

type ApplicationUpdate struct {
	ApplicationID uuid.UUID `json:"application_id"`
	Status        string    `json:"status"`
	Message       string    `json:"message"`
	Timestamp     time.Time `json:"timestamp"`
}

type Publisher interface {
	PublishNotification(ctx context.Context, event NotificationEvent) error
	QueueScreening(ctx context.Context, msg ApplicationMessage) error
	PublishApplicationUpdate(ctx context.Context, update ApplicationUpdate) error
}

func NotificationRoutingKey(recipientID uuid.UUID) string {
	return fmt.Sprintf("user.%s", recipientID)
}

func ApplicationRoutingKey(applicationID uuid.UUID) string {
	return fmt.Sprintf("application.%s", applicationID)
}

type AMQPPublisher struct {
	conn *amqp.Connection
}

// NewAMQPPublisher declares the exchanges and queue it publishes to.
func NewAMQPPublisher(conn *amqp.Connection) (*AMQPPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	for _, name := range []string{NotificationsExchange, ApplicationUpdatesExchange} {
		if err := ch.ExchangeDeclare(name, "topic", true, false, false, false, nil); err != nil {
			return nil, fmt.Errorf("declare exchange %s: %w", name, err)
		}
	}
	if _, err := DeclareApplicationsQueue(ch); err != nil {
		return nil, err
	}
	return &AMQPPublisher{conn: conn}, nil
}

// DeclareApplicationsQueue declares the durable screening queue.
func DeclareApplicationsQueue(ch *amqp.Channel) (amqp.Queue, error) {
	q, err := ch.QueueDeclare(
		ApplicationsQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return amqp.Queue{}, fmt.Errorf("declare queue %s: %w", ApplicationsQueue, err)
	}
	return q, nil
}

func (p *AMQPPublisher) PublishNotification(ctx context.Context, event NotificationEvent) error {
	return p.publish(NotificationsExchange, NotificationRoutingKey(event.RecipientID), event)
}

func (p *AMQPPublisher) QueueScreening(ctx context.Context, msg ApplicationMessage) error {
	// default exchange routes by queue name
	return p.publish("", ApplicationsQueue, msg)
}

func (p *AMQPPublisher) PublishApplicationUpdate(ctx context.Context, update ApplicationUpdate) error {
	return p.publish(ApplicationUpdatesExchange, ApplicationRoutingKey(update.ApplicationID), update)
}

func (p *AMQPPublisher) publish(exchange, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	return ch.Publish(
		exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
}

// Nop drops every event. Used when no broker is configured.
type Nop struct{}

func (Nop) PublishNotification(context.Context, NotificationEvent) error { return nil }
func (Nop) QueueScreening(context.Context, ApplicationMessage) error { return nil }
func (Nop) PublishApplicationUpdate(context.Context, ApplicationUpdate) error { return nil }
