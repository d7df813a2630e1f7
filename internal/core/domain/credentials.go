package domain

// Credentials is the one-time artifact produced when a registration is
// approved. The temporary password exists in plaintext only in this value,
// for the single delivery to the notification dispatcher; at rest only its
// bcrypt hash is stored on the account.
type Credentials struct {
	EmployeeID        string `json:"employeeID"`
	Email             string `json:"email"`
	TemporaryPassword string `json:"temporaryPassword"`
}
