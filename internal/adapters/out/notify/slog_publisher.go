// Package notify implements the case progress-event publisher. The current
// implementation writes structured log records; a message broker can replace
// it behind the same port without touching the command handlers.
package notify

import (
	"context"
	"log/slog"

	"returns/internal/core/ports"
)

// SlogCaseEventPublisher publishes case change events as structured log
// records.
type SlogCaseEventPublisher struct {
	logger *slog.Logger
}

// NewSlogCaseEventPublisher creates a publisher writing to the given logger.
func NewSlogCaseEventPublisher(logger *slog.Logger) *SlogCaseEventPublisher {
	return &SlogCaseEventPublisher{logger: logger}
}

// PublishCaseChanged emits one record per event. Never fails; events are an
// optimization for presentation layers, not a correctness channel.
func (p *SlogCaseEventPublisher) PublishCaseChanged(ctx context.Context, event ports.CaseChangedEvent) error {
	attrs := []any{
		slog.String("parcel_id", event.ParcelID.String()),
		slog.String("case_id", event.CaseID.String()),
		slog.String("state", event.State),
		slog.Int64("version", event.Version),
	}

	if event.ReverseTrackNumber != nil {
		attrs = append(attrs, slog.String("reverse_track_number", *event.ReverseTrackNumber))
	}
	if event.Comment != nil {
		attrs = append(attrs, slog.String("comment", *event.Comment))
	}
	if event.ReceiptConfirmed != nil {
		attrs = append(attrs, slog.Bool("receipt_confirmed", *event.ReceiptConfirmed))
	}

	p.logger.InfoContext(ctx, "case changed", attrs...)
	return nil
}
