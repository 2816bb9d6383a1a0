package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/cobranza-api/internal/application/dto"
	"github.com/tu-usuario/cobranza-api/internal/application/reconciliation"
	"github.com/tu-usuario/cobranza-api/internal/domain"
)

// InvoiceHandler maneja las peticiones HTTP sobre cuotas (protegido).
type InvoiceHandler struct {
	queryUC   *reconciliation.LedgerQueryUseCase
	evaluator *reconciliation.SettlementEvaluator
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(queryUC *reconciliation.LedgerQueryUseCase, evaluator *reconciliation.SettlementEvaluator) *InvoiceHandler {
	return &InvoiceHandler{queryUC: queryUC, evaluator: evaluator}
}

// List lista cuotas por contrato o por estado.
// GET /api/invoices?contract_id=...&status=pending&limit=20&offset=0
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	invoices, err := h.queryUC.ListInvoices(c.Context(), c.Query("contract_id"), c.Query("status"), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(invoices)
}

// GetByID obtiene una cuota con su saldo pendiente.
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	invoice, err := h.queryUC.GetInvoice(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cuota no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(invoice)
}

// Evaluate re-ejecuta la liquidación de una cuota (idempotente).
// POST /api/invoices/:id/evaluate
func (h *InvoiceHandler) Evaluate(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	settled, status, err := h.evaluator.Evaluate(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cuota no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.EvaluateResponse{InvoiceID: id, Status: status, Settled: settled})
}
