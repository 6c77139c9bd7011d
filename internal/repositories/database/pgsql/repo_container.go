package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/rkalra23/workshop_mgmt_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	customerRepo := newPgxCustomerRepository(dbPool)
	vehicleRepo := newPgxVehicleRepository(dbPool)
	stockRepo := newPgxStockRepository(dbPool)
	orderRepo := newPgxOrderRepository(dbPool)
	obligationRepo := newPgxObligationRepository(dbPool)
	cashRepo := newPgxCashRepository(dbPool)

	return portsrepo.RepositoryProvider{
		CustomerRepo:   customerRepo,
		VehicleRepo:    vehicleRepo,
		StockRepo:      stockRepo,
		OrderRepo:      orderRepo,
		ObligationRepo: obligationRepo,
		CashRepo:       cashRepo,
	}
}
