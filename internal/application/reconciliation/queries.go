package reconciliation

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/cobranza-api/internal/application/dto"
	"github.com/tu-usuario/cobranza-api/internal/domain"
	"github.com/tu-usuario/cobranza-api/internal/domain/entity"
	"github.com/tu-usuario/cobranza-api/internal/domain/repository"
)

// LedgerQueryUseCase lecturas del libro mayor para la UI: pagos con sus
// aplicaciones, cuotas con saldo calculado y progreso de contratos.
type LedgerQueryUseCase struct {
	paymentRepo  repository.PaymentRepository
	invoiceRepo  repository.InvoiceRepository
	appRepo      repository.PaymentApplicationRepository
	contractRepo repository.ContractRepository
}

// NewLedgerQueryUseCase construye el caso de uso.
func NewLedgerQueryUseCase(
	paymentRepo repository.PaymentRepository,
	invoiceRepo repository.InvoiceRepository,
	appRepo repository.PaymentApplicationRepository,
	contractRepo repository.ContractRepository,
) *LedgerQueryUseCase {
	return &LedgerQueryUseCase{
		paymentRepo:  paymentRepo,
		invoiceRepo:  invoiceRepo,
		appRepo:      appRepo,
		contractRepo: contractRepo,
	}
}

// GetPayment retorna un pago con todas sus aplicaciones.
func (uc *LedgerQueryUseCase) GetPayment(ctx context.Context, id string) (*dto.PaymentResponse, error) {
	p, err := uc.paymentRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("leer pago: %w", err)
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	apps, err := uc.appRepo.ListByPayment(id)
	if err != nil {
		return nil, fmt.Errorf("listar aplicaciones: %w", err)
	}
	resp := &dto.PaymentResponse{
		ID:           p.ID,
		Amount:       p.Amount,
		Date:         p.Date.Format("2006-01-02"),
		Method:       p.Method,
		Reference:    p.Reference,
		Kind:         p.Kind,
		Applications: make([]dto.ApplicationResponse, 0, len(apps)),
	}
	for _, a := range apps {
		resp.Applications = append(resp.Applications, dto.ApplicationResponse{
			ID:            a.ID,
			InvoiceID:     a.InvoiceID,
			Amount:        a.Amount,
			InvoiceLabel:  a.InvoiceLabel,
			ContractLabel: a.ContractLabel,
			ClientName:    a.ClientName,
			Voided:        a.Voided,
		})
	}
	return resp, nil
}

// GetInvoice retorna una cuota con su monto aplicado y saldo pendiente.
func (uc *LedgerQueryUseCase) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("leer cuota: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	applied, err := uc.appRepo.SumAppliedByInvoice(id)
	if err != nil {
		return nil, fmt.Errorf("sumar aplicaciones: %w", err)
	}
	return uc.toInvoiceResponse(inv, applied), nil
}

// ListInvoices lista cuotas por estado (o por contrato si contractID no es vacío).
func (uc *LedgerQueryUseCase) ListInvoices(ctx context.Context, contractID, status string, page dto.PageRequest) ([]dto.InvoiceResponse, error) {
	page.DefaultPage()
	var invoices []*entity.Invoice
	var err error
	if contractID != "" {
		invoices, err = uc.invoiceRepo.ListOutstandingByContract(contractID)
	} else {
		if status == "" {
			status = entity.InvoiceStatusPending
		}
		invoices, err = uc.invoiceRepo.ListByStatus(status, page.Limit, page.Offset)
	}
	if err != nil {
		return nil, fmt.Errorf("listar cuotas: %w", err)
	}
	out := make([]dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		applied, err := uc.appRepo.SumAppliedByInvoice(inv.ID)
		if err != nil {
			return nil, fmt.Errorf("sumar aplicaciones de %s: %w", inv.ID, err)
		}
		out = append(out, *uc.toInvoiceResponse(inv, applied))
	}
	return out, nil
}

// GetContract retorna el progreso de un contrato (semanas pagadas / total).
func (uc *LedgerQueryUseCase) GetContract(ctx context.Context, id string) (*dto.ContractResponse, error) {
	c, err := uc.contractRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("leer contrato: %w", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.ContractResponse{
		ID:           c.ID,
		ClientID:     c.ClientID,
		ClientName:   c.ClientName,
		VehicleLabel: c.VehicleLabel,
		WeeklyAmount: c.WeeklyAmount,
		WeeksPaid:    c.WeeksPaid,
		TotalWeeks:   c.TotalWeeks,
	}, nil
}

func (uc *LedgerQueryUseCase) toInvoiceResponse(inv *entity.Invoice, applied decimal.Decimal) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:         inv.ID,
		ContractID: inv.ContractID,
		ClientID:   inv.ClientID,
		ClientName: inv.ClientName,
		Amount:     inv.Amount,
		Applied:    applied,
		Remaining:  inv.Amount.Sub(applied),
		DueDate:    inv.DueDate.Format("2006-01-02"),
		Status:     inv.Status,
		PaidMethod: inv.PaidMethod,
	}
	if inv.PaidAt != nil {
		resp.PaidAt = inv.PaidAt.Format("2006-01-02")
	}
	return resp
}
