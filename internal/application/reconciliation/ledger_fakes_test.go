package reconciliation_test

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/cobranza-api/internal/application/reconciliation"
	"github.com/tu-usuario/cobranza-api/internal/domain"
	"github.com/tu-usuario/cobranza-api/internal/domain/entity"
	"github.com/tu-usuario/cobranza-api/internal/domain/repository"
)

// ledger es un libro mayor en memoria compartido por los repositorios falsos.
// Reproduce los contratos de los adaptadores reales: (nil, nil) cuando no
// existe la fila, copias en las lecturas, ErrDuplicate en la pareja
// (payment_id, invoice_id) y MarkPaid condicional.
type ledger struct {
	invoices  map[string]*entity.Invoice
	payments  map[string]*entity.Payment
	apps      []*entity.PaymentApplication
	contracts map[string]*entity.Contract
}

func newLedger() *ledger {
	return &ledger{
		invoices:  make(map[string]*entity.Invoice),
		payments:  make(map[string]*entity.Payment),
		contracts: make(map[string]*entity.Contract),
	}
}

func (l *ledger) snapshot() *ledger {
	s := newLedger()
	for id, inv := range l.invoices {
		cp := *inv
		s.invoices[id] = &cp
	}
	for id, p := range l.payments {
		cp := *p
		s.payments[id] = &cp
	}
	for _, a := range l.apps {
		cp := *a
		s.apps = append(s.apps, &cp)
	}
	for id, c := range l.contracts {
		cp := *c
		s.contracts[id] = &cp
	}
	return s
}

func (l *ledger) restore(s *ledger) {
	l.invoices = s.invoices
	l.payments = s.payments
	l.apps = s.apps
	l.contracts = s.contracts
}

// ── repositorios falsos ──────────────────────────────────────────────────────

type fakeInvoiceRepo struct{ l *ledger }

var _ repository.InvoiceRepository = (*fakeInvoiceRepo)(nil)

func (r *fakeInvoiceRepo) Create(inv *entity.Invoice) error {
	cp := *inv
	r.l.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	inv, ok := r.l.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInvoiceRepo) GetForUpdate(id string) (*entity.Invoice, error) {
	return r.GetByID(id)
}

func (r *fakeInvoiceRepo) ListOutstandingByContract(contractID string) ([]*entity.Invoice, error) {
	var list []*entity.Invoice
	for _, inv := range r.l.invoices {
		if inv.ContractID != contractID {
			continue
		}
		if inv.Status != entity.InvoiceStatusPending && inv.Status != entity.InvoiceStatusOverdue {
			continue
		}
		cp := *inv
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].DueDate.Equal(list[j].DueDate) {
			return list[i].ID < list[j].ID
		}
		return list[i].DueDate.Before(list[j].DueDate)
	})
	return list, nil
}

func (r *fakeInvoiceRepo) ListByStatus(status string, limit, offset int) ([]*entity.Invoice, error) {
	var list []*entity.Invoice
	for _, inv := range r.l.invoices {
		if inv.Status == status {
			cp := *inv
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *fakeInvoiceRepo) MarkPaid(id string, paidAt time.Time, method string) (bool, error) {
	inv, ok := r.l.invoices[id]
	if !ok || inv.Status == entity.InvoiceStatusPaid {
		return false, nil
	}
	inv.Status = entity.InvoiceStatusPaid
	inv.PaidAt = &paidAt
	inv.PaidMethod = method
	inv.UpdatedAt = time.Now()
	return true, nil
}

type fakePaymentRepo struct{ l *ledger }

var _ repository.PaymentRepository = (*fakePaymentRepo)(nil)

func (r *fakePaymentRepo) Create(p *entity.Payment) error {
	cp := *p
	r.l.payments[p.ID] = &cp
	return nil
}

func (r *fakePaymentRepo) GetByID(id string) (*entity.Payment, error) {
	p, ok := r.l.payments[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePaymentRepo) List(limit, offset int) ([]*entity.Payment, error) {
	var list []*entity.Payment
	for _, p := range r.l.payments {
		cp := *p
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Date.After(list[j].Date) })
	return list, nil
}

type fakeAppRepo struct{ l *ledger }

var _ repository.PaymentApplicationRepository = (*fakeAppRepo)(nil)

func (r *fakeAppRepo) Create(app *entity.PaymentApplication) error {
	for _, a := range r.l.apps {
		if a.PaymentID == app.PaymentID && a.InvoiceID == app.InvoiceID {
			return fmt.Errorf("aplicación ya existe para (pago %s, cuota %s): %w",
				app.PaymentID, app.InvoiceID, domain.ErrDuplicate)
		}
	}
	cp := *app
	r.l.apps = append(r.l.apps, &cp)
	return nil
}

func (r *fakeAppRepo) SumAppliedByInvoice(invoiceID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, a := range r.l.apps {
		if a.InvoiceID == invoiceID && !a.Voided {
			sum = sum.Add(a.Amount)
		}
	}
	return sum, nil
}

func (r *fakeAppRepo) ListByPayment(paymentID string) ([]*entity.PaymentApplication, error) {
	var list []*entity.PaymentApplication
	for _, a := range r.l.apps {
		if a.PaymentID == paymentID {
			cp := *a
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *fakeAppRepo) ListByInvoice(invoiceID string) ([]*entity.PaymentApplication, error) {
	var list []*entity.PaymentApplication
	for _, a := range r.l.apps {
		if a.InvoiceID == invoiceID {
			cp := *a
			list = append(list, &cp)
		}
	}
	return list, nil
}

type fakeContractRepo struct{ l *ledger }

var _ repository.ContractRepository = (*fakeContractRepo)(nil)

func (r *fakeContractRepo) Create(c *entity.Contract) error {
	cp := *c
	r.l.contracts[c.ID] = &cp
	return nil
}

func (r *fakeContractRepo) GetByID(id string) (*entity.Contract, error) {
	c, ok := r.l.contracts[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeContractRepo) IncrementWeeksPaid(id string) error {
	c, ok := r.l.contracts[id]
	if !ok {
		return fmt.Errorf("increment weeks paid: contrato %s no existe", id)
	}
	c.WeeksPaid++
	c.UpdatedAt = time.Now()
	return nil
}

// fakeTxRunner ejecuta fn sobre el mismo libro mayor con semántica de
// transacción: toma una instantánea antes y la restaura si fn falla, así los
// tests pueden afirmar "cero escrituras" también en fallas dentro de la tx.
//
// beforeTx permite simular una escritura concurrente que se cuela entre la
// compuerta de validación y la apertura de la transacción.
type fakeTxRunner struct {
	l        *ledger
	beforeTx func()
}

var _ reconciliation.LedgerTxRunner = (*fakeTxRunner)(nil)

func (t *fakeTxRunner) Run(ctx context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	appRepo repository.PaymentApplicationRepository,
	contractRepo repository.ContractRepository,
) error) error {
	if t.beforeTx != nil {
		t.beforeTx()
		t.beforeTx = nil
	}
	snap := t.l.snapshot()
	err := fn(&fakeInvoiceRepo{t.l}, &fakePaymentRepo{t.l}, &fakeAppRepo{t.l}, &fakeContractRepo{t.l})
	if err != nil {
		t.l.restore(snap)
	}
	return err
}
