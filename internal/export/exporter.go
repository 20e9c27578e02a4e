// Package export is the boundary to the external PDF/print collaborator.
// The wizard fires a request and moves on; success or failure is reported
// back, but no transition ever waits on it.
package export

import (
	"context"

	"github.com/mkraev/booking-wizard/internal/domain"
)

const (
	KeyPDFRequested   = "booking.export.requested"
	KeyPrintRequested = "booking.print.requested"
)

type Exporter interface {
	ExportPDF(ctx context.Context, booking domain.BookingState, filename string) error
	Print(ctx context.Context) error
}

// Noop satisfies Exporter when no broker is configured; every request
// reports success.
type Noop struct{}

func (Noop) ExportPDF(ctx context.Context, booking domain.BookingState, filename string) error {
	return nil
}

func (Noop) Print(ctx context.Context) error { return nil }
