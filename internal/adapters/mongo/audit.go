// Package mongo records an audit trail of booking lifecycle events.
// Auditing is advisory: failures are logged and never surfaced to the
// caller.
package mongo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mkraev/booking-wizard/internal/domain"
	"github.com/mkraev/booking-wizard/internal/observability"
)

type AuditLogger struct {
	coll   *mongo.Collection
	logger observability.Logger
}

func NewAuditLogger(db *mongo.Database, logger observability.Logger) *AuditLogger {
	return &AuditLogger{
		coll:   db.Collection("audit_logs"),
		logger: logger,
	}
}

type AuditLog struct {
	ID        uuid.UUID `bson:"_id"`
	Action    string    `bson:"action"`
	Timestamp time.Time `bson:"timestamp"`
	Data      bson.M    `bson:"data"`
}

func (a *AuditLogger) LogEvent(ctx context.Context, action string, data map[string]interface{}) {
	entry := AuditLog{
		ID:        uuid.New(),
		Action:    action,
		Timestamp: time.Now(),
		Data:      bson.M(data),
	}
	if _, err := a.coll.InsertOne(ctx, entry); err != nil {
		a.logger.WithError(err).WithField("action", action).Error("failed to insert audit log")
	}
}

func (a *AuditLogger) LogSaved(ctx context.Context, record domain.SavedBooking) {
	a.LogEvent(ctx, "booking.saved", map[string]interface{}{
		"booking_id":  record.ID,
		"destination": record.Destination,
		"start_date":  record.StartDate,
		"num_days":    record.NumDays,
		"board_type":  string(record.BoardType),
	})
}

func (a *AuditLogger) LogDeleted(ctx context.Context, id string) {
	a.LogEvent(ctx, "booking.deleted", map[string]interface{}{"booking_id": id})
}

func (a *AuditLogger) LogExportRequested(ctx context.Context, filename string, destination string) {
	a.LogEvent(ctx, "booking.export.requested", map[string]interface{}{
		"filename":    filename,
		"destination": destination,
	})
}
