package router

import (
	"github.com/sandiprv9898/salon-flow-pos/internal/config"
	"github.com/sandiprv9898/salon-flow-pos/internal/infra"
	"github.com/sandiprv9898/salon-flow-pos/internal/repository"
	"github.com/sandiprv9898/salon-flow-pos/internal/service"
	"github.com/sandiprv9898/salon-flow-pos/internal/settlement"
)

// Deps are the process-level collaborators the services need.
type Deps struct {
	Config   *config.Config
	Metrics  *infra.Metrics
	Receipts service.ReceiptQueue
	IDs      settlement.IDSource
}

// App holds every service of the running POS.
type App struct {
	Auth         service.AuthService
	Catalog      service.CatalogService
	Customers    service.CustomerService
	Inventory    service.InventoryService
	Register     service.RegisterService
	Checkout     service.CheckoutService
	Staff        service.StaffService
	Appointments service.AppointmentService
	Waitlist     service.WaitlistService
}

// NewApp wires repositories loaded with the demo data into services.
// Dependency graph: Handler ← Service ← Repository ← seed data
func NewApp(d Deps) *App {
	cfg := d.Config

	// ── Repositories ─────────────────────────────────────────────────────────
	catalogRepo := repository.NewSeededCatalogRepository()
	customerRepo := repository.NewCustomerRepository(repository.SeedCustomers())
	employeeRepo := repository.NewEmployeeRepository(repository.SeedEmployees())
	appointmentRepo := repository.NewAppointmentRepository(repository.SeedAppointments())
	waitlistRepo := repository.NewWaitlistRepository(repository.SeedWaitlist())

	// ── Services ─────────────────────────────────────────────────────────────
	catalogSvc := service.NewCatalogService(catalogRepo)
	registerSvc := service.NewRegisterService(d.Metrics)
	checkoutSvc := service.NewCheckoutService(
		service.CheckoutConfig{
			TaxRate:          cfg.TaxRateDecimal(),
			MaxSplitPayments: cfg.MaxSplitPayments,
			IDs:              d.IDs,
		},
		catalogSvc, customerRepo, employeeRepo, registerSvc, d.Receipts, d.Metrics,
	)
	appointmentSvc := service.NewAppointmentService(appointmentRepo, customerRepo, employeeRepo, catalogRepo)

	return &App{
		Auth:         service.NewAuthService(employeeRepo, registerSvc, cfg),
		Catalog:      catalogSvc,
		Customers:    service.NewCustomerService(customerRepo),
		Inventory:    service.NewInventoryService(catalogRepo),
		Register:     registerSvc,
		Checkout:     checkoutSvc,
		Staff:        service.NewStaffService(employeeRepo),
		Appointments: appointmentSvc,
		Waitlist:     service.NewWaitlistService(waitlistRepo, appointmentSvc, customerRepo, employeeRepo, catalogRepo),
	}
}
