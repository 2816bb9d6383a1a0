package reconciliation

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/cobranza-api/internal/application/dto"
	"github.com/tu-usuario/cobranza-api/internal/domain"
	"github.com/tu-usuario/cobranza-api/internal/domain/allocation"
	"github.com/tu-usuario/cobranza-api/internal/domain/entity"
	"github.com/tu-usuario/cobranza-api/internal/domain/repository"
)

// DistributeUseCase arma la vista previa de distribución automática: carga las
// cuotas pendientes del contrato, calcula sus saldos y deja que el
// planificador puro reparta el monto (deuda más vieja primero).
// No escribe nada: el plan resultante se envía después a Reconcile.
type DistributeUseCase struct {
	contractRepo repository.ContractRepository
	invoiceRepo  repository.InvoiceRepository
	appRepo      repository.PaymentApplicationRepository
}

// NewDistributeUseCase construye el caso de uso.
func NewDistributeUseCase(
	contractRepo repository.ContractRepository,
	invoiceRepo repository.InvoiceRepository,
	appRepo repository.PaymentApplicationRepository,
) *DistributeUseCase {
	return &DistributeUseCase{contractRepo: contractRepo, invoiceRepo: invoiceRepo, appRepo: appRepo}
}

// Distribute propone un plan para pagar amount contra las cuotas pendientes
// del contrato. Si el monto excede la deuda total, Unallocated lo reporta y la
// UI decide (agregar cuotas de otro contrato o rechazar).
func (uc *DistributeUseCase) Distribute(ctx context.Context, contractID string, amount decimal.Decimal) (*dto.DistributeResponse, error) {
	if contractID == "" || !amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	contract, err := uc.contractRepo.GetByID(contractID)
	if err != nil {
		return nil, fmt.Errorf("leer contrato: %w", err)
	}
	if contract == nil {
		return nil, domain.ErrNotFound
	}

	invoices, err := uc.invoiceRepo.ListOutstandingByContract(contractID)
	if err != nil {
		return nil, fmt.Errorf("listar cuotas pendientes: %w", err)
	}

	candidates := make([]allocation.Candidate, 0, len(invoices))
	byID := make(map[string]*entity.Invoice, len(invoices))
	for _, inv := range invoices {
		sum, err := uc.appRepo.SumAppliedByInvoice(inv.ID)
		if err != nil {
			return nil, fmt.Errorf("sumar aplicaciones de %s: %w", inv.ID, err)
		}
		remaining := inv.Amount.Sub(sum)
		if !remaining.IsPositive() {
			continue
		}
		byID[inv.ID] = inv
		candidates = append(candidates, allocation.Candidate{
			InvoiceID: inv.ID,
			DueDate:   inv.DueDate,
			Remaining: remaining,
		})
	}

	plan := allocation.AutoDistribute(amount, candidates)

	remainingByID := make(map[string]decimal.Decimal, len(candidates))
	for _, c := range candidates {
		remainingByID[c.InvoiceID] = c.Remaining
	}

	resp := &dto.DistributeResponse{
		Lines:     make([]dto.PlanLineResponse, 0, len(plan)),
		Allocated: decimal.Zero,
	}
	for _, l := range plan {
		inv := byID[l.InvoiceID]
		resp.Lines = append(resp.Lines, dto.PlanLineResponse{
			InvoiceID: l.InvoiceID,
			DueDate:   inv.DueDate.Format("2006-01-02"),
			Remaining: remainingByID[l.InvoiceID],
			Amount:    l.Amount,
		})
		resp.Allocated = resp.Allocated.Add(l.Amount)
	}
	resp.Unallocated = amount.Sub(resp.Allocated)
	return resp, nil
}
