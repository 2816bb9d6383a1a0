package reconciliation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/cobranza-api/internal/application/dto"
	"github.com/tu-usuario/cobranza-api/internal/domain"
	"github.com/tu-usuario/cobranza-api/internal/domain/allocation"
	"github.com/tu-usuario/cobranza-api/internal/domain/entity"
	"github.com/tu-usuario/cobranza-api/internal/domain/repository"
	"github.com/tu-usuario/cobranza-api/pkg/logger"
)

// ReconcilePaymentUseCase ejecuta el flujo completo de conciliación: registra
// el pago, lo aplica sobre las cuotas del plan y dispara la liquidación de
// cada cuota tocada, todo dentro de una sola transacción.
//
// La validación (balance del plan y líneas) ocurre ANTES de abrir la
// transacción: un plan rechazado nunca produce escrituras. El saldo de cada
// cuota se re-lee bajo bloqueo de fila justo antes de insertar su aplicación,
// nunca se confía en el saldo calculado al armar el plan.
type ReconcilePaymentUseCase struct {
	txRunner     LedgerTxRunner
	invoiceRepo  repository.InvoiceRepository
	appRepo      repository.PaymentApplicationRepository
	contractRepo repository.ContractRepository
	evaluator    *SettlementEvaluator
	log          *logger.Logger
}

// NewReconcilePaymentUseCase construye el caso de uso.
func NewReconcilePaymentUseCase(
	txRunner LedgerTxRunner,
	invoiceRepo repository.InvoiceRepository,
	appRepo repository.PaymentApplicationRepository,
	contractRepo repository.ContractRepository,
	evaluator *SettlementEvaluator,
	log *logger.Logger,
) *ReconcilePaymentUseCase {
	return &ReconcilePaymentUseCase{
		txRunner:     txRunner,
		invoiceRepo:  invoiceRepo,
		appRepo:      appRepo,
		contractRepo: contractRepo,
		evaluator:    evaluator,
		log:          log,
	}
}

// Reconcile valida el plan y, si cuadra, persiste pago + aplicaciones y
// liquida las cuotas completadas. Commit o rollback como unidad.
func (uc *ReconcilePaymentUseCase) Reconcile(ctx context.Context, in dto.ReconcileRequest) (*dto.ReconcileResponse, error) {
	// ── 1. Metadatos del pago ────────────────────────────────────────────────
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("el monto del pago debe ser positivo: %w", domain.ErrInvalidInput)
	}
	if !entity.ValidPaymentMethod(in.Method) {
		return nil, fmt.Errorf("método de pago desconocido %q: %w", in.Method, domain.ErrInvalidInput)
	}
	if len(in.Lines) == 0 {
		return nil, fmt.Errorf("el plan no tiene líneas: %w", domain.ErrInvalidInput)
	}
	payDate := time.Now()
	if in.Date != "" {
		d, err := time.Parse("2006-01-02", in.Date)
		if err != nil {
			return nil, fmt.Errorf("fecha inválida %q: %w", in.Date, domain.ErrInvalidInput)
		}
		payDate = d
	}

	plan := make([]allocation.Line, len(in.Lines))
	for i, l := range in.Lines {
		plan[i] = allocation.Line{InvoiceID: l.InvoiceID, Amount: l.Amount}
	}

	// ── 2. Compuerta de validación (cero escrituras si falla) ────────────────
	// Candidatas con saldo calculado desde el libro mayor. Este saldo es
	// provisional: dentro de la transacción se re-lee bajo FOR UPDATE.
	candidates, invoicesByID, err := uc.loadCandidates(plan)
	if err != nil {
		return nil, err
	}
	if err := allocation.CheckLines(plan, candidates); err != nil {
		return nil, err
	}
	if err := allocation.Validate(plan, in.Amount); err != nil {
		return nil, err
	}

	// Etiquetas denormalizadas por contrato (para las aplicaciones).
	contractsByID := make(map[string]*entity.Contract)
	for _, inv := range invoicesByID {
		if _, ok := contractsByID[inv.ContractID]; ok {
			continue
		}
		c, err := uc.contractRepo.GetByID(inv.ContractID)
		if err != nil {
			return nil, fmt.Errorf("leer contrato %s: %w", inv.ContractID, err)
		}
		contractsByID[inv.ContractID] = c
	}

	kind := entity.PaymentKindSingle
	if len(plan) > 1 {
		kind = entity.PaymentKindMultiple
	}
	payment := &entity.Payment{
		ID:        uuid.New().String(),
		Amount:    in.Amount,
		Date:      payDate,
		Method:    in.Method,
		Reference: in.Reference,
		Kind:      kind,
		CreatedAt: time.Now(),
	}

	// ── 3. Secuencia de escritura (una sola transacción) ────────────────────
	applied := make([]dto.AppliedLineResponse, 0, len(plan))
	err = uc.txRunner.Run(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
		appRepo repository.PaymentApplicationRepository,
		contractRepo repository.ContractRepository,
	) error {
		if err := paymentRepo.Create(payment); err != nil {
			return fmt.Errorf("crear pago: %w", err)
		}

		for _, line := range plan {
			// Guarda contra doble gasto: bloquear la fila y recomputar el
			// saldo AHORA, no con el valor de cuando se armó el plan.
			inv, err := invoiceRepo.GetForUpdate(line.InvoiceID)
			if err != nil {
				return fmt.Errorf("aplicación a %s: leer cuota: %w", line.InvoiceID, err)
			}
			if inv == nil {
				return fmt.Errorf("aplicación a %s: %w", line.InvoiceID, domain.ErrNotFound)
			}
			sum, err := appRepo.SumAppliedByInvoice(line.InvoiceID)
			if err != nil {
				return fmt.Errorf("aplicación a %s: sumar aplicaciones: %w", line.InvoiceID, err)
			}
			if line.Amount.GreaterThan(inv.Amount.Sub(sum)) {
				return fmt.Errorf("cuota %s: el saldo cambió concurrentemente y la línea ya no cabe: %w",
					line.InvoiceID, domain.ErrConflict)
			}

			contract := contractsByID[inv.ContractID]
			app := &entity.PaymentApplication{
				ID:            uuid.New().String(),
				PaymentID:     payment.ID,
				InvoiceID:     line.InvoiceID,
				Amount:        line.Amount,
				InvoiceLabel:  invoiceLabel(inv),
				ContractLabel: contractLabel(contract),
				ClientName:    inv.ClientName,
				Method:        payment.Method,
				Date:          payment.Date,
				Reference:     payment.Reference,
				CreatedAt:     time.Now(),
			}
			if err := appRepo.Create(app); err != nil {
				return fmt.Errorf("aplicación a %s: %w", line.InvoiceID, err)
			}
			applied = append(applied, dto.AppliedLineResponse{
				ApplicationID: app.ID,
				InvoiceID:     line.InvoiceID,
				Amount:        line.Amount,
			})
		}

		// Cascada de liquidación, una vez por cuota distinta (CheckLines ya
		// garantizó que no hay repetidas, así que el plan es la lista).
		for i, line := range plan {
			settled, status, err := uc.evaluator.SettleInTx(
				invoiceRepo, appRepo, contractRepo,
				line.InvoiceID, payment.Date, payment.Method,
			)
			if err != nil {
				return err
			}
			applied[i].Settled = settled
			applied[i].InvoiceStatus = status
		}
		return nil
	})
	if err != nil {
		uc.log.Error().Err(err).
			Str("payment_id", payment.ID).
			Str("method", payment.Method).
			Msg("conciliación revertida")
		return nil, err
	}

	uc.log.Info().
		Str("payment_id", payment.ID).
		Str("kind", kind).
		Int("lines", len(applied)).
		Str("amount", payment.Amount.StringFixed(2)).
		Msg("pago conciliado")

	return &dto.ReconcileResponse{
		PaymentID:    payment.ID,
		Kind:         kind,
		Amount:       payment.Amount,
		AppliedLines: applied,
	}, nil
}

// loadCandidates carga las cuotas referenciadas por el plan y calcula su saldo
// pendiente (total − aplicaciones no anuladas). Las cuotas anuladas o ya
// pagadas se rechazan aquí con la razón exacta.
func (uc *ReconcilePaymentUseCase) loadCandidates(plan []allocation.Line) ([]allocation.Candidate, map[string]*entity.Invoice, error) {
	candidates := make([]allocation.Candidate, 0, len(plan))
	invoicesByID := make(map[string]*entity.Invoice, len(plan))
	for _, line := range plan {
		if _, ok := invoicesByID[line.InvoiceID]; ok {
			continue // repetida; CheckLines la reporta
		}
		inv, err := uc.invoiceRepo.GetByID(line.InvoiceID)
		if err != nil {
			return nil, nil, fmt.Errorf("leer cuota %s: %w", line.InvoiceID, err)
		}
		if inv == nil {
			return nil, nil, &domain.InvalidLineError{InvoiceID: line.InvoiceID, Reason: "cuota desconocida o sin saldo pendiente"}
		}
		if inv.Status == entity.InvoiceStatusCancelled {
			return nil, nil, &domain.InvalidLineError{InvoiceID: line.InvoiceID, Reason: "cuota anulada"}
		}
		sum, err := uc.appRepo.SumAppliedByInvoice(line.InvoiceID)
		if err != nil {
			return nil, nil, fmt.Errorf("sumar aplicaciones de %s: %w", line.InvoiceID, err)
		}
		remaining := inv.Amount.Sub(sum)
		if !remaining.IsPositive() {
			return nil, nil, &domain.InvalidLineError{InvoiceID: line.InvoiceID, Reason: "la cuota no tiene saldo pendiente"}
		}
		invoicesByID[line.InvoiceID] = inv
		candidates = append(candidates, allocation.Candidate{
			InvoiceID: inv.ID,
			DueDate:   inv.DueDate,
			Remaining: remaining,
		})
	}
	return candidates, invoicesByID, nil
}

func invoiceLabel(inv *entity.Invoice) string {
	return "Cuota " + inv.DueDate.Format("2006-01-02")
}

func contractLabel(c *entity.Contract) string {
	if c == nil {
		return ""
	}
	if c.VehicleLabel != "" {
		return c.VehicleLabel
	}
	return c.ID
}
