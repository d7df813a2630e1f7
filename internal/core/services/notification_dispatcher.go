package services

import (
	"context"
	"log/slog"

	"github.com/SecuForce/guard_workforce_app/internal/core/domain"
	portssvc "github.com/SecuForce/guard_workforce_app/internal/core/ports/services"
)

// logNotificationDispatcher is the default NotificationDispatcher: it records
// the event for the delivery system to pick up. The real inbox delivery is an
// external collaborator; swapping this implementation out is a wiring change
// in the service container.
type logNotificationDispatcher struct {
	logger *slog.Logger
}

// NewLogNotificationDispatcher creates a dispatcher that logs dispatched events.
func NewLogNotificationDispatcher(logger *slog.Logger) portssvc.NotificationDispatcher {
	return &logNotificationDispatcher{logger: logger}
}

// Ensure logNotificationDispatcher implements the NotificationDispatcher interface
var _ portssvc.NotificationDispatcher = (*logNotificationDispatcher)(nil)

// Dispatch logs the event. Credentials are redacted: the temporary password
// must never appear in logs.
func (d *logNotificationDispatcher) Dispatch(ctx context.Context, event domain.Event) error {
	attrs := []any{
		slog.String("event_type", string(event.Type)),
		slog.String("recipient_id", event.RecipientID),
		slog.Time("occurred_at", event.OccurredAt),
	}
	if event.SupervisorRecordID != "" {
		attrs = append(attrs, slog.String("supervisor_record_id", event.SupervisorRecordID))
	}
	if event.AssignmentID != "" {
		attrs = append(attrs, slog.String("assignment_id", event.AssignmentID))
	}
	if event.Reason != "" {
		attrs = append(attrs, slog.String("reason", event.Reason))
	}
	if event.Credentials != nil {
		attrs = append(attrs, slog.String("employee_id", event.Credentials.EmployeeID))
	}
	d.logger.InfoContext(ctx, "Domain event dispatched", attrs...)
	return nil
}
