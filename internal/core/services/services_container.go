package services

import (
	portsrepo "github.com/rkalra23/workshop_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/rkalra23/workshop_mgmt_app/internal/core/ports/services"
	"github.com/rkalra23/workshop_mgmt_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Customer service first since vehicles, orders and obligations depend on it
	container.Customer = NewCustomerService(repos.CustomerRepo)
	container.Vehicle = NewVehicleService(repos.VehicleRepo, container.Customer)
	container.Inventory = NewInventoryService(repos.StockRepo)
	container.Cash = NewCashService(repos.CashRepo)
	container.Accounts = NewAccountsService(repos.ObligationRepo, container.Customer)
	container.Order = NewOrderService(repos.OrderRepo, repos.StockRepo, container.Customer, container.Vehicle)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.CustomerSvcFacade  = (*customerService)(nil)
	_ portssvc.InventorySvcFacade = (*inventoryService)(nil)
	_ portssvc.OrderSvcFacade     = (*orderService)(nil)
	_ portssvc.AccountsSvcFacade  = (*accountsService)(nil)
	_ portssvc.CashSvcFacade      = (*cashService)(nil)
)
