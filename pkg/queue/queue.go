package queue

import (
	"fmt"
	"time"

	"github.com/streadway/amqp"
)

// Broker names. The request queue is durable so pending analyses
// survive a broker restart; updates are fire-and-forget.
const (
	RequestQueue    = "analysis_requests"
	UpdatesExchange = "analysis_updates"
)

// Update statuses published to the updates exchange.
const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// AnalysisRequest asks the worker to run one engine against one resume.
// JobID is set for match analyses only.
type AnalysisRequest struct {
	ResumeID    string    `json:"resume_id"`
	Kind        string    `json:"kind"`
	JobID       string    `json:"job_id,omitempty"`
	RequestedAt time.Time `json:"requested_at"`
}

// Update is one progress event for a resume's analysis.
type Update struct {
	ResumeID  string    `json:"resume_id"`
	Kind      string    `json:"kind"`
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// RoutingKey returns the updates-exchange key for a resume.
func RoutingKey(resumeID string) string {
	return "resume." + resumeID
}

// Retry runs fn up to attempts times with linear backoff. It exists for
// the transient failures around broker and network calls; permanent
// errors just cost a few retries.
func Retry[T any](attempts int, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for i := 0; i < attempts; i++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		time.Sleep(time.Duration(500*(i+1)) * time.Millisecond)
	}
	return zero, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}

// declareRequestQueue makes the request queue exist on the given
// channel. Declaration is idempotent; publisher and consumer both call
// it so either side can start first.
func declareRequestQueue(ch *amqp.Channel) error {
	_, err := ch.QueueDeclare(
		RequestQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	return err
}

// declareUpdatesExchange makes the updates topic exchange exist.
func declareUpdatesExchange(ch *amqp.Channel) error {
	return ch.ExchangeDeclare(
		UpdatesExchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
}
