// Package worker consumes domain events from Kafka and forwards them to a sink such as Loki.
package worker

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// Reader is the part of *kafka.Reader the worker uses.
type Reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Sink receives one raw event payload.
type Sink interface {
	PushEventJSON(ctx context.Context, raw []byte) error
}

// NewKafkaReader returns a consumer-group reader for topic.
func NewKafkaReader(brokers []string, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  time.Second,
	})
}

// Worker moves messages from Reader to Sink. A message is committed after the sink
// accepts it or after MaxAttempts failed pushes, so a poison message cannot stall the partition.
type Worker struct {
	Reader      Reader
	Sink        Sink
	PushTimeout time.Duration
	MaxAttempts int
	Backoff     time.Duration
}

// Run processes messages until ctx is cancelled. It returns nil on cancellation.
func (w *Worker) Run(ctx context.Context) error {
	timeout := w.PushTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	attempts := w.MaxAttempts
	if attempts <= 0 {
		attempts = 3
	}
	for {
		msg, err := w.Reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			log.Printf("worker: kafka read error: %v", err)
			continue
		}
		w.deliver(ctx, msg, timeout, attempts)
		if err := w.Reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			log.Printf("worker: commit offset %d failed: %v", msg.Offset, err)
		}
	}
}

func (w *Worker) deliver(ctx context.Context, msg kafka.Message, timeout time.Duration, attempts int) {
	for i := 1; i <= attempts; i++ {
		pushCtx, cancel := context.WithTimeout(ctx, timeout)
		err := w.Sink.PushEventJSON(pushCtx, msg.Value)
		cancel()
		if err == nil {
			return
		}
		log.Printf("worker: push offset %d attempt %d/%d failed: %v", msg.Offset, i, attempts, err)
		if i < attempts && w.Backoff > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(w.Backoff):
			}
		}
	}
	log.Printf("worker: dropping offset %d after %d attempts", msg.Offset, attempts)
}
