package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fadhlanhapp/fleetpay-backend/authz"
	"github.com/fadhlanhapp/fleetpay-backend/repository"
	"github.com/fadhlanhapp/fleetpay-backend/services"
)

// HandlerServices contains all service dependencies
type HandlerServices struct {
	PayrollService   *services.PayrollService
	DriverService    *services.DriverService
	LedgerService    *services.LedgerService
	TripService      *services.TripService
	WorkspaceService *services.WorkspaceService
}

// NewHandlerServices wires the repositories and services on top of db
func NewHandlerServices(db *sql.DB, authorizer *authz.Authorizer, log *zap.Logger) *HandlerServices {
	stores := services.Stores{
		Drivers:    repository.NewDriverRepository(db),
		Ledger:     repository.NewLedgerRepository(db),
		Trips:      repository.NewTripRepository(db),
		Payroll:    repository.NewPayrollRepository(db),
		Workspaces: repository.NewWorkspaceRepository(db),
		Managers:   repository.NewManagerRepository(db),
	}
	gate := services.NewGate(authorizer)

	return &HandlerServices{
		PayrollService:   services.NewPayrollService(services.NewPayrollEngine(), gate, stores, services.NewExcelService(), log.Named("payroll")),
		DriverService:    services.NewDriverService(gate, stores.Drivers, log.Named("drivers")),
		LedgerService:    services.NewLedgerService(gate, stores.Drivers, stores.Ledger, log.Named("ledger")),
		TripService:      services.NewTripService(gate, stores.Drivers, stores.Trips, log.Named("trips")),
		WorkspaceService: services.NewWorkspaceService(gate, stores.Workspaces, stores.Managers, log.Named("workspaces")),
	}
}

var handlerServices *HandlerServices

// InitHandlers sets the services used by the handlers
func InitHandlers(s *HandlerServices) {
	handlerServices = s
}

// Health reports that the process is serving requests
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
