package models

// SupervisorRecord is the database representation of a supervisory registration.
type SupervisorRecord struct {
	SupervisorRecordID  string  `db:"supervisor_record_id"`
	AccountID           string  `db:"account_id"`
	SupervisorType      string  `db:"supervisor_type"`
	ApprovalStatus      string  `db:"approval_status"`
	RegisteredBy        string  `db:"registered_by"`
	GeneralSupervisorID *string `db:"general_supervisor_id"`
	LocationID          *string `db:"location_id"`
	RegionAssigned      string  `db:"region_assigned"`
	RejectionReason     string  `db:"rejection_reason"`
	DecidedBy           string  `db:"decided_by"`
	AuditFields
}
