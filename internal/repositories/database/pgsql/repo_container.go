package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/veloxrp/econ_backend/internal/core/ports/repositories"
	portssvc "github.com/veloxrp/econ_backend/internal/core/ports/services"
)

// NewRepositoryProvider wires all pgsql repositories over one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:   newPgxAccountRepository(dbPool),
		LedgerRepo:    newPgxLedgerRepository(dbPool),
		CharacterRepo: newPgxCharacterRepository(dbPool),
	}
}

// NewCashInventory exposes the pgsql-backed cash holding adapter.
func NewCashInventory(dbPool *pgxpool.Pool) portssvc.CashInventory {
	return newPgxCashRepository(dbPool)
}
