package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/streadway/amqp"
)

// Handler processes one analysis request. Returning an error marks the
// request failed; the consumer does not redeliver.
type Handler func(ctx context.Context, req AnalysisRequest) error

// Consumer runs a pool of workers against the request queue.
type Consumer struct {
	url     string
	workers int
	logger  *slog.Logger
}

// NewConsumer builds a consumer. workers below 1 is treated as 1.
func NewConsumer(url string, workers int, logger *slog.Logger) *Consumer {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Consumer{url: url, workers: workers, logger: logger}
}

// Run consumes until ctx is cancelled or the broker connection drops.
// Each worker gets its own channel on a shared connection.
func (c *Consumer) Run(ctx context.Context, handle Handler) error {
	conn, err := amqp.Dial(c.url)
	if err != nil {
		return fmt.Errorf("dialing broker: %w", err)
	}
	defer conn.Close()

	// closing the connection on cancel ends every worker's deliveries
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < c.workers; i++ {
		ch, err := conn.Channel()
		if err != nil {
			return fmt.Errorf("opening channel for worker %d: %w", i+1, err)
		}
		if err := declareRequestQueue(ch); err != nil {
			return fmt.Errorf("declaring request queue: %w", err)
		}
		// fair dispatch: a worker holds at most one unacked message
		if err := ch.Qos(1, 0, false); err != nil {
			return fmt.Errorf("setting qos: %w", err)
		}

		deliveries, err := ch.Consume(
			RequestQueue,
			"",    // consumer tag
			false, // manual ack so a crash requeues the message
			false, // exclusive
			false, // no-local
			false, // no-wait
			nil,
		)
		if err != nil {
			return fmt.Errorf("starting consumer %d: %w", i+1, err)
		}

		wg.Add(1)
		go c.worker(ctx, i+1, deliveries, handle, &wg)
	}

	wg.Wait()
	return ctx.Err()
}

func (c *Consumer) worker(ctx context.Context, id int, deliveries <-chan amqp.Delivery, handle Handler, wg *sync.WaitGroup) {
	defer wg.Done()

	for msg := range deliveries {
		var req AnalysisRequest
		if err := json.Unmarshal(msg.Body, &req); err != nil {
			c.logger.Error("dropping malformed analysis request", "worker", id, "error", err)
			msg.Nack(false, false)
			continue
		}

		c.logger.Info("processing analysis request",
			"worker", id, "resume_id", req.ResumeID, "kind", req.Kind)

		if err := handle(ctx, req); err != nil {
			c.logger.Error("analysis request failed",
				"worker", id, "resume_id", req.ResumeID, "kind", req.Kind, "error", err)
		}
		// ack either way: the handler owns failure bookkeeping and a
		// poisoned message must not loop forever
		msg.Ack(false)
	}
}
