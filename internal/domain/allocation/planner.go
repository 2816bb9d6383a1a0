// Package allocation implementa el planificador de distribución de pagos:
// cómo un monto recibido se reparte entre las cuotas pendientes de un cliente.
//
// Todo aquí es puro y determinista: sin I/O, sin estado compartido. El caller
// (orquestador de conciliación) es quien carga las cuotas candidatas y decide
// qué hacer con el resultado.
package allocation

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/cobranza-api/internal/domain"
)

// Candidate es una cuota elegible para recibir parte de un pago.
// Remaining = monto total de la cuota menos las aplicaciones no anuladas.
type Candidate struct {
	InvoiceID string
	DueDate   time.Time
	Remaining decimal.Decimal
}

// Line es una pareja (cuota, monto) dentro de un plan de distribución.
type Line struct {
	InvoiceID string
	Amount    decimal.Decimal
}

// AutoDistribute reparte amount entre las candidatas con la política
// "primero la deuda más vieja": ordena por fecha de vencimiento ascendente
// (desempate por ID para que el resultado sea determinista) y en cada paso
// asigna min(restante del pago, saldo de la cuota) hasta agotar el pago o las
// candidatas. Si el pago excede la deuda total, el exceso queda simplemente
// sin distribuir: esta función nunca retorna error, solo reparte lo que puede.
func AutoDistribute(amount decimal.Decimal, candidates []Candidate) []Line {
	if !amount.IsPositive() || len(candidates) == 0 {
		return nil
	}

	sorted := make([]Candidate, len(candidates))
	copy(sorted, candidates)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].DueDate.Equal(sorted[j].DueDate) {
			return sorted[i].InvoiceID < sorted[j].InvoiceID
		}
		return sorted[i].DueDate.Before(sorted[j].DueDate)
	})

	var plan []Line
	left := amount
	for _, c := range sorted {
		if !left.IsPositive() {
			break
		}
		if !c.Remaining.IsPositive() {
			continue
		}
		alloc := decimal.Min(left, c.Remaining)
		plan = append(plan, Line{InvoiceID: c.InvoiceID, Amount: alloc})
		left = left.Sub(alloc)
	}
	return plan
}

// Difference retorna amount - sum(plan), con signo y en decimal exacto
// (igualdad decimal estricta, nunca tolerancia de punto flotante).
// Cero significa plan balanceado: es la única compuerta que el orquestador
// consulta antes de escribir algo.
func Difference(plan []Line, amount decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range plan {
		sum = sum.Add(l.Amount)
	}
	return amount.Sub(sum)
}

// Validate verifica el balance del plan contra el monto del pago.
// Retorna *domain.UnbalancedAllocationError con la diferencia exacta si no
// cuadra, nil si está balanceado.
func Validate(plan []Line, amount decimal.Decimal) error {
	if diff := Difference(plan, amount); !diff.IsZero() {
		return &domain.UnbalancedAllocationError{Difference: diff}
	}
	return nil
}

// CheckLines valida cada línea contra las candidatas: monto positivo, cuota
// conocida, sin cuotas repetidas y monto dentro del saldo pendiente.
// Retorna *domain.InvalidLineError en la primera línea inválida.
// Nota: el saldo aquí es el calculado al armar el plan; el orquestador lo
// re-lee bajo bloqueo de fila justo antes de escribir (carrera de doble gasto).
func CheckLines(plan []Line, candidates []Candidate) error {
	byID := make(map[string]Candidate, len(candidates))
	for _, c := range candidates {
		byID[c.InvoiceID] = c
	}
	seen := make(map[string]bool, len(plan))
	for _, l := range plan {
		if !l.Amount.IsPositive() {
			return &domain.InvalidLineError{InvoiceID: l.InvoiceID, Reason: "el monto debe ser mayor que cero"}
		}
		c, ok := byID[l.InvoiceID]
		if !ok {
			return &domain.InvalidLineError{InvoiceID: l.InvoiceID, Reason: "cuota desconocida o sin saldo pendiente"}
		}
		if seen[l.InvoiceID] {
			return &domain.InvalidLineError{InvoiceID: l.InvoiceID, Reason: "cuota repetida en el plan"}
		}
		seen[l.InvoiceID] = true
		if l.Amount.GreaterThan(c.Remaining) {
			return &domain.InvalidLineError{
				InvoiceID: l.InvoiceID,
				Reason:    "el monto excede el saldo pendiente (" + c.Remaining.StringFixed(2) + ")",
			}
		}
	}
	return nil
}
