package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/cobranza-api/internal/application/reconciliation"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ReconcileUC  *reconciliation.ReconcilePaymentUseCase
	DistributeUC *reconciliation.DistributeUseCase
	QueryUC      *reconciliation.LedgerQueryUseCase
	ReceiptUC    *reconciliation.ReceiptUseCase
	Evaluator    *reconciliation.SettlementEvaluator
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Payments (protegido): conciliación, vista previa, consulta y recibo
	payments := protected.Group("/payments")
	paymentHandler := NewPaymentHandler(deps.ReconcileUC, deps.DistributeUC, deps.QueryUC, deps.ReceiptUC)
	payments.Post("/reconcile", paymentHandler.Reconcile)
	payments.Post("/distribute", paymentHandler.Distribute)
	payments.Get("/:id", paymentHandler.GetByID)
	payments.Get("/:id/receipt", paymentHandler.Receipt)

	// Invoices (protegido): cuotas y re-evaluación de liquidación
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.QueryUC, deps.Evaluator)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Post("/:id/evaluate", invoiceHandler.Evaluate)

	// Contracts (protegido): progreso del contrato
	contracts := protected.Group("/contracts")
	contractHandler := NewContractHandler(deps.QueryUC)
	contracts.Get("/:id", contractHandler.GetByID)
}
