package dto

import (
	"github.com/SecuForce/guard_workforce_app/internal/core/domain"
)

// LoginRequest carries credential-based login input.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the access token for an authenticated account.
type LoginResponse struct {
	Token              string `json:"token"`
	AccountID          string `json:"accountID"`
	Role               string `json:"role"`
	MustChangePassword bool   `json:"mustChangePassword"`
}

// ChangePasswordRequest carries a password change for the calling account.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=10"`
}

// AccountResponse is the API representation of an account.
type AccountResponse struct {
	AccountID          string `json:"accountID"`
	EmployeeID         string `json:"employeeID,omitempty"`
	Email              string `json:"email"`
	FullName           string `json:"fullName"`
	Phone              string `json:"phone,omitempty"`
	Role               string `json:"role"`
	Status             string `json:"status"`
	MustChangePassword bool   `json:"mustChangePassword"`
}

// ToAccountResponse converts a domain.Account to its API representation.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:          a.AccountID,
		EmployeeID:         a.EmployeeID,
		Email:              a.Email,
		FullName:           a.FullName,
		Phone:              a.Phone,
		Role:               string(a.Role),
		Status:             string(a.Status),
		MustChangePassword: a.MustChangePassword,
	}
}
