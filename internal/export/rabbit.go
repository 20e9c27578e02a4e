package export

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/mkraev/booking-wizard/internal/adapters/rabbit"
	"github.com/mkraev/booking-wizard/internal/domain"
	"github.com/mkraev/booking-wizard/internal/observability"
)

// Request is the payload published for the export worker.
type Request struct {
	Filename    string              `json:"filename"`
	Booking     domain.BookingState `json:"booking"`
	RequestedAt time.Time           `json:"requestedAt"`
}

// RabbitExporter hands export requests to the broker. Rendering happens in
// a separate worker; a successful publish is a successful hand-off.
type RabbitExporter struct {
	pub *rabbit.Publisher
}

func NewRabbitExporter(pub *rabbit.Publisher) *RabbitExporter {
	return &RabbitExporter{pub: pub}
}

func (e *RabbitExporter) ExportPDF(ctx context.Context, booking domain.BookingState, filename string) error {
	payload, err := json.Marshal(Request{
		Filename:    filename,
		Booking:     booking,
		RequestedAt: time.Now(),
	})
	if err != nil {
		return errors.Wrap(err, "marshal export request")
	}
	msg := amqp.Publishing{
		MessageId:   uuid.NewString(),
		ContentType: "application/json",
		Body:        payload,
	}
	if err := e.pub.Publish(ctx, KeyPDFRequested, msg); err != nil {
		return errors.Wrap(err, "publish export request")
	}
	observability.ExportRequests.Inc()
	return nil
}

func (e *RabbitExporter) Print(ctx context.Context) error {
	msg := amqp.Publishing{
		MessageId:   uuid.NewString(),
		ContentType: "application/json",
		Body:        []byte(`{}`),
	}
	return e.pub.Publish(ctx, KeyPrintRequested, msg)
}
