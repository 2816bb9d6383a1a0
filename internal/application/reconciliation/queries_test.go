package reconciliation_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/cobranza-api/internal/application/dto"
	"github.com/tu-usuario/cobranza-api/internal/application/reconciliation"
	"github.com/tu-usuario/cobranza-api/internal/domain"
	"github.com/tu-usuario/cobranza-api/internal/domain/entity"
)

func newQueryUC(f *fixture) *reconciliation.LedgerQueryUseCase {
	return reconciliation.NewLedgerQueryUseCase(
		&fakePaymentRepo{f.l},
		&fakeInvoiceRepo{f.l},
		&fakeAppRepo{f.l},
		&fakeContractRepo{f.l},
	)
}

// TestGetInvoice_SaldoCalculado: el saldo pendiente es total menos aplicaciones
// vigentes; las anuladas no descuentan.
func TestGetInvoice_SaldoCalculado(t *testing.T) {
	f := newFixture()
	f.addContract("c-1", 0)
	f.addInvoice("inv-1", "c-1", "300.00", day(2), entity.InvoiceStatusPending)
	f.addApplication("pay-1", "inv-1", "120.00", false)
	f.addApplication("pay-2", "inv-1", "500.00", true)

	resp, err := newQueryUC(f).GetInvoice(context.Background(), "inv-1")
	require.NoError(t, err)

	assert.True(t, resp.Applied.Equal(d("120.00")))
	assert.True(t, resp.Remaining.Equal(d("180.00")))
	assert.Equal(t, "2026-03-02", resp.DueDate)
	assert.Equal(t, entity.InvoiceStatusPending, resp.Status)
	assert.Empty(t, resp.PaidAt)
}

// TestGetPayment_ConAplicaciones: el pago se consulta con el detalle de cómo
// se repartió, incluidas las etiquetas históricas.
func TestGetPayment_ConAplicaciones(t *testing.T) {
	f := newFixture()
	f.addContract("c-1", 0)
	f.addInvoice("inv-1", "c-1", "300.00", day(2), entity.InvoiceStatusPending)
	f.addInvoice("inv-2", "c-1", "300.00", day(9), entity.InvoiceStatusPending)

	resp, err := f.uc.Reconcile(context.Background(), dto.ReconcileRequest{
		Amount: d("400.00"),
		Method: entity.PaymentMethodTransfer,
		Lines: []dto.AllocationLineRequest{
			{InvoiceID: "inv-1", Amount: d("300.00")},
			{InvoiceID: "inv-2", Amount: d("100.00")},
		},
	})
	require.NoError(t, err)

	payment, err := newQueryUC(f).GetPayment(context.Background(), resp.PaymentID)
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentKindMultiple, payment.Kind)
	require.Len(t, payment.Applications, 2)
	assert.Equal(t, "inv-1", payment.Applications[0].InvoiceID)
	assert.Equal(t, "Cuota 2026-03-02", payment.Applications[0].InvoiceLabel)
	assert.True(t, payment.Applications[1].Amount.Equal(d("100.00")))
}

func TestGetPayment_Inexistente(t *testing.T) {
	f := newFixture()
	_, err := newQueryUC(f).GetPayment(context.Background(), "fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestGetContract_Progreso: el progreso refleja los avances de la liquidación.
func TestGetContract_Progreso(t *testing.T) {
	f := newFixture()
	f.addContract("c-1", 4)
	f.addInvoice("inv-1", "c-1", "300.00", day(2), entity.InvoiceStatusPending)

	_, err := f.uc.Reconcile(context.Background(), dto.ReconcileRequest{
		Amount: d("300.00"),
		Method: entity.PaymentMethodCash,
		Lines:  []dto.AllocationLineRequest{{InvoiceID: "inv-1", Amount: d("300.00")}},
	})
	require.NoError(t, err)

	resp, err := newQueryUC(f).GetContract(context.Background(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, 5, resp.WeeksPaid)
	assert.Equal(t, 52, resp.TotalWeeks)
}
