package handler

import "github.com/EngOsamaQazan/Archeef/internal/service"

// Handler aggregates all HTTP handlers.
type Handler struct {
	Auth        *AuthHandler
	Employee    *EmployeeHandler
	Contract    *ContractHandler
	Transaction *TransactionHandler
	Report      *ReportHandler
	Dashboard   *DashboardHandler
	Export      *ExportHandler
}

// NewHandler wires every handler against the service aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(svc.Auth),
		Employee:    NewEmployeeHandler(svc.Employee),
		Contract:    NewContractHandler(svc.Contract),
		Transaction: NewTransactionHandler(svc.Transaction),
		Report:      NewReportHandler(svc.Report),
		Dashboard:   NewDashboardHandler(svc.Dashboard),
		Export:      NewExportHandler(svc.Export),
	}
}
