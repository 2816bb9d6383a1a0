package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/cobranza-api/internal/application/dto"
	"github.com/tu-usuario/cobranza-api/internal/application/reconciliation"
	"github.com/tu-usuario/cobranza-api/internal/domain"
)

// ContractHandler maneja las peticiones HTTP sobre contratos (protegido).
// Solo lectura: el motor de conciliación no crea contratos.
type ContractHandler struct {
	queryUC *reconciliation.LedgerQueryUseCase
}

// NewContractHandler construye el handler.
func NewContractHandler(queryUC *reconciliation.LedgerQueryUseCase) *ContractHandler {
	return &ContractHandler{queryUC: queryUC}
}

// GetByID obtiene el progreso de un contrato (semanas pagadas / total).
// GET /api/contracts/:id
func (h *ContractHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	contract, err := h.queryUC.GetContract(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "contrato no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(contract)
}
