package domain

import "time"

// EventType identifies an outbound domain event.
type EventType string

const (
	EventSupervisorApproved    EventType = "SUPERVISOR_APPROVED"
	EventSupervisorRejected    EventType = "SUPERVISOR_REJECTED"
	EventAssignmentCreated     EventType = "ASSIGNMENT_CREATED"
	EventAssignmentEnded       EventType = "ASSIGNMENT_ENDED"
	EventAssignmentTransferred EventType = "ASSIGNMENT_TRANSFERRED"
)

// Event is a domain event handed to the notification dispatcher. Delivery is
// best-effort and out-of-band; a delivery failure never rolls back the state
// transition that produced the event.
type Event struct {
	Type        EventType `json:"type"`
	RecipientID string    `json:"recipientID"` // AccountID the notification is addressed to
	OccurredAt  time.Time `json:"occurredAt"`

	// Payload fields, populated depending on Type.
	SupervisorRecordID string       `json:"supervisorRecordID,omitempty"`
	AssignmentID       string       `json:"assignmentID,omitempty"`
	Reason             string       `json:"reason,omitempty"`
	Credentials        *Credentials `json:"credentials,omitempty"` // SUPERVISOR_APPROVED only
}
