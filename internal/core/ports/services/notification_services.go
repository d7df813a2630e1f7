package services

import (
	"context"

	"github.com/SecuForce/guard_workforce_app/internal/core/domain"
)

// NotificationDispatcher is the outbound port to the notification system.
// Dispatch is a synchronous call with a bounded timeout; a failure is logged
// by the caller and retried out-of-band by the dispatcher itself, never by
// the engine, and never rolls back the state transition that produced the
// event.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, event domain.Event) error
}
