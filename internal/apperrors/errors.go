package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrForbidden indicates that the acting account's role does not permit the
// attempted operation.
var ErrForbidden = errors.New("operation not permitted for this role")

// ErrInvalidState indicates that an operation was attempted on a record that
// is not in the required state (e.g. deciding a registration that is no
// longer PENDING).
var ErrInvalidState = errors.New("record is not in the required state")

// ErrConflict indicates a resource-level conflict: beat capacity reached,
// employee ID collisions exhausting retries, or a concurrent writer winning
// the same state transition.
var ErrConflict = errors.New("resource conflict")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")
