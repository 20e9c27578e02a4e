package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	mongoadapter "github.com/mkraev/booking-wizard/internal/adapters/mongo"
	"github.com/mkraev/booking-wizard/internal/adapters/rabbit"
	"github.com/mkraev/booking-wizard/internal/config"
	"github.com/mkraev/booking-wizard/internal/export"
	"github.com/mkraev/booking-wizard/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	shutdownOtel, err := observability.SetupOTel(context.Background(), cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("failed to setup otel: %v", err)
	}
	defer shutdownOtel()

	logger := observability.NewLogger()

	conn, err := amqp.Dial(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to rabbitmq: %v", err)
	}
	defer conn.Close()

	consumer, err := rabbit.NewConsumer(conn, "export.q", export.KeyPDFRequested)
	if err != nil {
		log.Fatalf("failed to create consumer: %v", err)
	}

	var audit *mongoadapter.AuditLogger
	if cfg.MongoURI != "" {
		mongoClient, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			log.Fatalf("failed to connect to mongo: %v", err)
		}
		defer mongoClient.Disconnect(context.Background())
		audit = mongoadapter.NewAuditLogger(mongoClient.Database("bookingwizard"), logger)
	}

	worker := NewExportWorker(consumer, audit, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go worker.Run(ctx)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info("Shutdown export worker")
}

type ExportWorker struct {
	consumer *rabbit.Consumer
	audit    *mongoadapter.AuditLogger
	logger   observability.Logger
}

func NewExportWorker(consumer *rabbit.Consumer, audit *mongoadapter.AuditLogger, logger observability.Logger) *ExportWorker {
	return &ExportWorker{consumer: consumer, audit: audit, logger: logger}
}

// Run drains export requests. Rendering itself lives outside this repo; the
// worker acknowledges the hand-off and records the outcome in the audit
// trail.
func (w *ExportWorker) Run(ctx context.Context) {
	deliveries, err := w.consumer.Consume(ctx)
	if err != nil {
		w.logger.WithError(err).Error("failed to start consuming")
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case delivery, ok := <-deliveries:
			if !ok {
				return
			}
			w.handle(ctx, delivery)
		}
	}
}

func (w *ExportWorker) handle(ctx context.Context, delivery amqp.Delivery) {
	var req export.Request
	if err := json.Unmarshal(delivery.Body, &req); err != nil {
		w.logger.WithError(err).Warn("dropping malformed export request")
		delivery.Nack(false, false)
		return
	}

	w.logger.WithField("filename", req.Filename).
		WithField("destination", req.Booking.Destination).
		Info("export request received")
	if w.audit != nil {
		w.audit.LogExportRequested(ctx, req.Filename, req.Booking.Destination)
	}
	delivery.Ack(false)
}
