package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrUnauthorized = errors.New("no autorizado")
)

// UnbalancedAllocationError indica que el plan de distribución no suma el
// monto del pago. Difference es exacta y con signo: positiva = falta por
// distribuir, negativa = se distribuyó de más. Se rechaza antes de cualquier
// escritura; el caller corrige el plan y reintenta.
type UnbalancedAllocationError struct {
	Difference decimal.Decimal
}

func (e *UnbalancedAllocationError) Error() string {
	if e.Difference.IsPositive() {
		return fmt.Sprintf("plan desbalanceado: faltan %s por distribuir", e.Difference.StringFixed(2))
	}
	return fmt.Sprintf("plan desbalanceado: %s distribuidos de más", e.Difference.Neg().StringFixed(2))
}

// InvalidLineError indica que una línea del plan es inválida (monto no
// positivo, cuota desconocida o repetida, o monto mayor al saldo pendiente).
// Rechaza el plan completo antes de cualquier escritura.
type InvalidLineError struct {
	InvoiceID string
	Reason    string
}

func (e *InvalidLineError) Error() string {
	return fmt.Sprintf("línea inválida (cuota %s): %s", e.InvoiceID, e.Reason)
}
