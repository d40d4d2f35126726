package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"
)

// Publisher sends analysis requests and progress updates. It holds one
// connection and opens a short-lived channel per publish, so a channel
// killed by a broker error never poisons later publishes.
type Publisher struct {
	conn *amqp.Connection
}

// Dial connects to the broker and declares the queue and exchange.
func Dial(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dialing broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("opening channel: %w", err)
	}
	defer ch.Close()

	if err := declareRequestQueue(ch); err != nil {
		conn.Close()
		return nil, fmt.Errorf("declaring request queue: %w", err)
	}
	if err := declareUpdatesExchange(ch); err != nil {
		conn.Close()
		return nil, fmt.Errorf("declaring updates exchange: %w", err)
	}
	return &Publisher{conn: conn}, nil
}

// Close shuts the broker connection down.
func (p *Publisher) Close() error {
	return p.conn.Close()
}

// PublishRequest enqueues one analysis request.
func (p *Publisher) PublishRequest(req AnalysisRequest) error {
	if req.RequestedAt.IsZero() {
		req.RequestedAt = time.Now().UTC()
	}
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("opening channel: %w", err)
	}
	defer ch.Close()

	err = ch.Publish(
		"", // default exchange routes by queue name
		RequestQueue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publishing request: %w", err)
	}
	return nil
}

// PublishUpdate emits a progress event for one resume. Updates are
// best-effort; callers log failures and move on.
func (p *Publisher) PublishUpdate(update Update) error {
	if update.Timestamp.IsZero() {
		update.Timestamp = time.Now().UTC()
	}
	body, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("encoding update: %w", err)
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("opening channel: %w", err)
	}
	defer ch.Close()

	err = ch.Publish(
		UpdatesExchange,
		RoutingKey(update.ResumeID),
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("publishing update: %w", err)
	}
	return nil
}
