package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/cobranza-api/internal/application/dto"
	"github.com/tu-usuario/cobranza-api/internal/application/reconciliation"
	"github.com/tu-usuario/cobranza-api/internal/domain"
)

// PaymentHandler maneja las peticiones HTTP de recaudo (protegido).
type PaymentHandler struct {
	reconcileUC  *reconciliation.ReconcilePaymentUseCase
	distributeUC *reconciliation.DistributeUseCase
	queryUC      *reconciliation.LedgerQueryUseCase
	receiptUC    *reconciliation.ReceiptUseCase
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(
	reconcileUC *reconciliation.ReconcilePaymentUseCase,
	distributeUC *reconciliation.DistributeUseCase,
	queryUC *reconciliation.LedgerQueryUseCase,
	receiptUC *reconciliation.ReceiptUseCase,
) *PaymentHandler {
	return &PaymentHandler{
		reconcileUC:  reconcileUC,
		distributeUC: distributeUC,
		queryUC:      queryUC,
		receiptUC:    receiptUC,
	}
}

// Reconcile registra un pago y lo aplica sobre las cuotas del plan.
// POST /api/payments/reconcile
func (h *PaymentHandler) Reconcile(c *fiber.Ctx) error {
	var in dto.ReconcileRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.reconcileUC.Reconcile(c.Context(), in)
	if err != nil {
		var unbalanced *domain.UnbalancedAllocationError
		if errors.As(err, &unbalanced) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code:       "UNBALANCED_PLAN",
				Message:    unbalanced.Error(),
				Difference: unbalanced.Difference.StringFixed(2),
			})
		}
		var invalidLine *domain.InvalidLineError
		if errors.As(err, &invalidLine) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code:      "INVALID_LINE",
				Message:   invalidLine.Error(),
				InvoiceID: invalidLine.InvoiceID,
			})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cuota o contrato no encontrado"})
		}
		if errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// Distribute propone un plan de distribución (deuda más vieja primero).
// POST /api/payments/distribute
func (h *PaymentHandler) Distribute(c *fiber.Ctx) error {
	var in dto.DistributeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	plan, err := h.distributeUC.Distribute(c.Context(), in.ContractID, in.Amount)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "contract_id y amount positivo requeridos"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "contrato no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(plan)
}

// GetByID obtiene un pago con sus aplicaciones.
// GET /api/payments/:id
func (h *PaymentHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	payment, err := h.queryUC.GetPayment(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pago no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(payment)
}

// Receipt descarga el recibo del pago en PDF.
// GET /api/payments/:id/receipt
func (h *PaymentHandler) Receipt(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	pdfBytes, filename, err := h.receiptUC.DownloadReceipt(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pago no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
