// Worker consumes domain events from Kafka and pushes them to Loki.
// Set KAFKA_BROKERS, EVENTS_KAFKA_TOPIC, KAFKA_GROUP_ID and LOKI_URL.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"healthtrack/backend/internal/config"
	"healthtrack/backend/internal/telemetry/loki"
	"healthtrack/backend/internal/telemetry/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	brokers := cfg.KafkaBrokersList()
	if len(brokers) == 0 {
		log.Fatal("worker: KAFKA_BROKERS is required")
	}
	if cfg.LokiURL == "" {
		log.Fatal("worker: LOKI_URL is required")
	}

	reader := worker.NewKafkaReader(brokers, cfg.EventsKafkaTopic, cfg.KafkaGroupID)
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := &worker.Worker{
		Reader:  reader,
		Sink:    loki.NewClient(cfg.LokiURL),
		Backoff: time.Second,
	}
	log.Printf("worker: consuming from %s (group %s), pushing to %s", cfg.EventsKafkaTopic, cfg.KafkaGroupID, cfg.LokiURL)
	if err := w.Run(ctx); err != nil {
		log.Fatalf("worker: %v", err)
	}
	log.Println("worker: stopped")
}
