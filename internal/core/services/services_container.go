package services

import (
	"log/slog"

	portsrepo "github.com/SecuForce/guard_workforce_app/internal/core/ports/repositories"
	portssvc "github.com/SecuForce/guard_workforce_app/internal/core/ports/services"
	"github.com/SecuForce/guard_workforce_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, logger *slog.Logger) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Notifier = NewLogNotificationDispatcher(logger)

	// Hierarchy first: both engines depend on its consistency checks.
	container.Hierarchy = NewHierarchyService(
		repos.AccountRepo,
		repos.SupervisorRepo,
		repos.LocationRepo,
		repos.BeatRepo,
	)

	container.Account = NewAccountService(repos.AccountRepo)
	container.Credential = NewCredentialService(repos.AccountRepo, cfg.EmployeeIDPrefix)

	container.Approval = NewApprovalService(
		repos.AccountRepo,
		repos.SupervisorRepo,
		repos.LocationRepo,
		container.Credential,
		container.Notifier,
	)

	container.Assignment = NewAssignmentService(
		repos.AccountRepo,
		repos.BeatRepo,
		repos.AssignmentRepo,
		container.Hierarchy,
		container.Notifier,
		WithCapacityEnforcement(cfg.EnforceBeatCapacity),
	)

	return container
}
