package domain

// SupervisorType distinguishes the two supervisory tiers a registration can create.
type SupervisorType string

const (
	GeneralSupervisor SupervisorType = "GENERAL_SUPERVISOR"
	Supervisor        SupervisorType = "SUPERVISOR"
)

// ApprovalStatus is the state of a registration in the approval workflow.
// PENDING transitions exactly once to APPROVED or REJECTED; both are terminal.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

// IsTerminal reports whether the approval status permits no further transition.
func (s ApprovalStatus) IsTerminal() bool {
	return s == ApprovalApproved || s == ApprovalRejected
}

// registrationAuthority maps the supervisor type being registered to the role
// allowed to submit it and the role required to decide it. Kept as an explicit
// table rather than branching scattered across the workflow.
var registrationAuthority = map[SupervisorType]struct {
	Submitter Role
	Approver  Role
}{
	GeneralSupervisor: {Submitter: RoleManager, Approver: RoleDirector},
	Supervisor:        {Submitter: RoleGeneralSupervisor, Approver: RoleManager},
}

// RequiredSubmitterRole returns the role allowed to submit a registration of
// the given supervisor type, and whether the type is known.
func RequiredSubmitterRole(t SupervisorType) (Role, bool) {
	entry, ok := registrationAuthority[t]
	return entry.Submitter, ok
}

// RequiredApproverRole returns the role allowed to decide a registration of
// the given supervisor type, and whether the type is known.
func RequiredApproverRole(t SupervisorType) (Role, bool) {
	entry, ok := registrationAuthority[t]
	return entry.Approver, ok
}

// DecidableTypeForRole is the inverse lookup: which supervisor type the given
// approver role may decide. Used to scope pending-registration listings.
func DecidableTypeForRole(r Role) (SupervisorType, bool) {
	for t, entry := range registrationAuthority {
		if entry.Approver == r {
			return t, true
		}
	}
	return "", false
}

// SupervisorRecord represents a General Supervisor or Supervisor registration
// and, once approved, the supervisory record itself.
type SupervisorRecord struct {
	SupervisorRecordID  string         `json:"supervisorRecordID"` // Primary Key (UUID)
	AccountID           string         `json:"accountID"`          // FK -> accounts.account_id
	SupervisorType      SupervisorType `json:"supervisorType"`
	ApprovalStatus      ApprovalStatus `json:"approvalStatus"`
	RegisteredBy        string         `json:"registeredBy"`                  // AccountID of the submitter
	GeneralSupervisorID *string        `json:"generalSupervisorID,omitempty"` // SUPERVISOR only; FK -> supervisor_records
	LocationID          *string        `json:"locationID,omitempty"`          // SUPERVISOR only; nil means location-agnostic
	RegionAssigned      string         `json:"regionAssigned,omitempty"`      // GENERAL_SUPERVISOR only
	RejectionReason     string         `json:"rejectionReason,omitempty"`     // Set only when REJECTED
	DecidedBy           string         `json:"decidedBy,omitempty"`
	AuditFields
}
