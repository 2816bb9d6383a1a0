package dto

import "github.com/shopspring/decimal"

// AllocationLineRequest una pareja (cuota, monto) dentro del plan.
type AllocationLineRequest struct {
	InvoiceID string          `json:"invoice_id"`
	Amount    decimal.Decimal `json:"amount"`
}

// ReconcileRequest body para POST /api/payments/reconcile.
// El plan puede venir armado a mano en la UI o generado previamente con
// POST /api/payments/distribute; en ambos casos debe sumar exactamente Amount.
type ReconcileRequest struct {
	Amount    decimal.Decimal         `json:"amount"`
	Date      string                  `json:"date"` // YYYY-MM-DD; vacío = hoy
	Method    string                  `json:"method"`
	Reference string                  `json:"reference,omitempty"`
	Lines     []AllocationLineRequest `json:"lines"`
}

// AppliedLineResponse resultado por cuota tras conciliar.
type AppliedLineResponse struct {
	ApplicationID string          `json:"application_id"`
	InvoiceID     string          `json:"invoice_id"`
	Amount        decimal.Decimal `json:"amount"`
	InvoiceStatus string          `json:"invoice_status"`
	Settled       bool            `json:"settled"` // true si esta conciliación completó la cuota
}

// ReconcileResponse respuesta de POST /api/payments/reconcile.
type ReconcileResponse struct {
	PaymentID    string                `json:"payment_id"`
	Kind         string                `json:"kind"` // single | multiple
	Amount       decimal.Decimal       `json:"amount"`
	AppliedLines []AppliedLineResponse `json:"applied_lines"`
}

// DistributeRequest body para POST /api/payments/distribute (vista previa).
type DistributeRequest struct {
	ContractID string          `json:"contract_id"`
	Amount     decimal.Decimal `json:"amount"`
}

// PlanLineResponse línea propuesta por el planificador.
type PlanLineResponse struct {
	InvoiceID string          `json:"invoice_id"`
	DueDate   string          `json:"due_date"`
	Remaining decimal.Decimal `json:"remaining"`
	Amount    decimal.Decimal `json:"amount"`
}

// DistributeResponse plan propuesto. Unallocated > 0 significa que el pago
// excede la deuda pendiente del contrato: el caller debe agregar más cuotas
// candidatas o rechazar el plan.
type DistributeResponse struct {
	Lines       []PlanLineResponse `json:"lines"`
	Allocated   decimal.Decimal    `json:"allocated"`
	Unallocated decimal.Decimal    `json:"unallocated"`
}

// PaymentResponse pago con sus aplicaciones (GET /api/payments/:id).
type PaymentResponse struct {
	ID           string                `json:"id"`
	Amount       decimal.Decimal       `json:"amount"`
	Date         string                `json:"date"`
	Method       string                `json:"method"`
	Reference    string                `json:"reference,omitempty"`
	Kind         string                `json:"kind"`
	Applications []ApplicationResponse `json:"applications"`
}

// ApplicationResponse aplicación de pago en respuestas.
type ApplicationResponse struct {
	ID            string          `json:"id"`
	InvoiceID     string          `json:"invoice_id"`
	Amount        decimal.Decimal `json:"amount"`
	InvoiceLabel  string          `json:"invoice_label,omitempty"`
	ContractLabel string          `json:"contract_label,omitempty"`
	ClientName    string          `json:"client_name,omitempty"`
	Voided        bool            `json:"voided,omitempty"`
}

// InvoiceResponse cuota con saldo calculado (GET /api/invoices/:id).
type InvoiceResponse struct {
	ID         string          `json:"id"`
	ContractID string          `json:"contract_id"`
	ClientID   string          `json:"client_id"`
	ClientName string          `json:"client_name,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Applied    decimal.Decimal `json:"applied"`
	Remaining  decimal.Decimal `json:"remaining"`
	DueDate    string          `json:"due_date"`
	Status     string          `json:"status"`
	PaidAt     string          `json:"paid_at,omitempty"`
	PaidMethod string          `json:"paid_method,omitempty"`
}

// EvaluateResponse resultado de re-evaluar la liquidación de una cuota.
type EvaluateResponse struct {
	InvoiceID string `json:"invoice_id"`
	Status    string `json:"status"`
	Settled   bool   `json:"settled"` // true solo si ESTA evaluación hizo la transición
}

// ContractResponse progreso del contrato (GET /api/contracts/:id).
type ContractResponse struct {
	ID           string          `json:"id"`
	ClientID     string          `json:"client_id"`
	ClientName   string          `json:"client_name"`
	VehicleLabel string          `json:"vehicle_label,omitempty"`
	WeeklyAmount decimal.Decimal `json:"weekly_amount"`
	WeeksPaid    int             `json:"weeks_paid"`
	TotalWeeks   int             `json:"total_weeks"`
}
