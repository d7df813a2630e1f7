package pgsql

import (
	portsrepo "github.com/SecuForce/guard_workforce_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider creates all pgsql-backed repositories over one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		AccountRepo:    newPgxAccountRepository(dbPool),
		SupervisorRepo: newPgxSupervisorRepository(dbPool),
		LocationRepo:   newPgxLocationRepository(dbPool),
		BeatRepo:       newPgxBeatRepository(dbPool),
		AssignmentRepo: newPgxAssignmentRepository(dbPool),
	}
}
