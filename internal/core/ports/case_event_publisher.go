package ports

import (
	"context"

	"returns/internal/core/domain/model/kernel"
)

// CaseChangedEvent is the row-level partial update published after a
// successful command. Presentation layers may subscribe to it for cheap
// incremental refresh. It is an optimization, not a correctness channel:
// any caller can always fetch the full snapshot to recover truth.
//
// Optional fields are nil when the command did not touch them.
type CaseChangedEvent struct {
	ParcelID kernel.UUID
	CaseID   kernel.UUID
	State    string
	Version  int64

	ReverseTrackNumber *string
	Comment            *string
	ReceiptConfirmed   *bool
}

// CaseEventPublisher pushes case progress events to interested consumers.
// Publishing happens after the command's transaction committed; failures are
// logged, never propagated to the caller.
type CaseEventPublisher interface {
	PublishCaseChanged(ctx context.Context, event CaseChangedEvent) error
}
