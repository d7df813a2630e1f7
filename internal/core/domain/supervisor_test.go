package domain_test

import (
	"testing"

	"github.com/SecuForce/guard_workforce_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestRegistrationAuthority(t *testing.T) {
	tests := []struct {
		name           string
		supervisorType domain.SupervisorType
		wantSubmitter  domain.Role
		wantApprover   domain.Role
		wantKnown      bool
	}{
		{
			name:           "general supervisor registered by manager, decided by director",
			supervisorType: domain.GeneralSupervisor,
			wantSubmitter:  domain.RoleManager,
			wantApprover:   domain.RoleDirector,
			wantKnown:      true,
		},
		{
			name:           "supervisor registered by general supervisor, decided by manager",
			supervisorType: domain.Supervisor,
			wantSubmitter:  domain.RoleGeneralSupervisor,
			wantApprover:   domain.RoleManager,
			wantKnown:      true,
		},
		{
			name:           "unknown supervisor type",
			supervisorType: domain.SupervisorType("CHIEF"),
			wantKnown:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			submitter, ok := domain.RequiredSubmitterRole(tt.supervisorType)
			assert.Equal(t, tt.wantKnown, ok)
			approver, ok := domain.RequiredApproverRole(tt.supervisorType)
			assert.Equal(t, tt.wantKnown, ok)
			if tt.wantKnown {
				assert.Equal(t, tt.wantSubmitter, submitter)
				assert.Equal(t, tt.wantApprover, approver)
			}
		})
	}
}

func TestDecidableTypeForRole(t *testing.T) {
	tests := []struct {
		name     string
		role     domain.Role
		wantType domain.SupervisorType
		wantOK   bool
	}{
		{
			name:     "director decides general supervisor registrations",
			role:     domain.RoleDirector,
			wantType: domain.GeneralSupervisor,
			wantOK:   true,
		},
		{
			name:     "manager decides supervisor registrations",
			role:     domain.RoleManager,
			wantType: domain.Supervisor,
			wantOK:   true,
		},
		{
			name:   "general supervisor decides nothing",
			role:   domain.RoleGeneralSupervisor,
			wantOK: false,
		},
		{
			name:   "secretary decides nothing",
			role:   domain.RoleSecretary,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := domain.DecidableTypeForRole(tt.role)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantType, got)
			}
		})
	}
}

func TestApprovalStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		name   string
		status domain.ApprovalStatus
		want   bool
	}{
		{name: "pending is not terminal", status: domain.ApprovalPending, want: false},
		{name: "approved is terminal", status: domain.ApprovalApproved, want: true},
		{name: "rejected is terminal", status: domain.ApprovalRejected, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.IsTerminal())
		})
	}
}

func TestRole_IsSupervisory(t *testing.T) {
	tests := []struct {
		role domain.Role
		want bool
	}{
		{role: domain.RoleDirector, want: true},
		{role: domain.RoleManager, want: true},
		{role: domain.RoleGeneralSupervisor, want: true},
		{role: domain.RoleSupervisor, want: true},
		{role: domain.RoleOperator, want: false},
		{role: domain.RoleSecretary, want: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.IsSupervisory())
		})
	}
}
