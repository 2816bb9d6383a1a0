package reconciliation_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/cobranza-api/internal/application/reconciliation"
	"github.com/tu-usuario/cobranza-api/internal/domain"
	"github.com/tu-usuario/cobranza-api/internal/domain/entity"
)

func newDistributeUC(f *fixture) *reconciliation.DistributeUseCase {
	return reconciliation.NewDistributeUseCase(
		&fakeContractRepo{f.l},
		&fakeInvoiceRepo{f.l},
		&fakeAppRepo{f.l},
	)
}

// TestDistribute_DeudaMasViejaPrimero: la vista previa reparte contra las
// cuotas pendientes del contrato en orden de vencimiento, descontando lo ya
// aplicado.
func TestDistribute_DeudaMasViejaPrimero(t *testing.T) {
	f := newFixture()
	f.addContract("c-1", 0)
	f.addInvoice("inv-1", "c-1", "300.00", day(2), entity.InvoiceStatusOverdue)
	f.addInvoice("inv-2", "c-1", "300.00", day(9), entity.InvoiceStatusPending)
	f.addInvoice("inv-3", "c-1", "300.00", day(16), entity.InvoiceStatusPending)
	f.addApplication("pay-prev", "inv-1", "100.00", false)

	resp, err := newDistributeUC(f).Distribute(context.Background(), "c-1", d("350.00"))
	require.NoError(t, err)

	require.Len(t, resp.Lines, 2)
	assert.Equal(t, "inv-1", resp.Lines[0].InvoiceID)
	assert.True(t, resp.Lines[0].Amount.Equal(d("200.00")), "solo el saldo restante de la más vieja")
	assert.True(t, resp.Lines[0].Remaining.Equal(d("200.00")))
	assert.Equal(t, "2026-03-02", resp.Lines[0].DueDate)
	assert.Equal(t, "inv-2", resp.Lines[1].InvoiceID)
	assert.True(t, resp.Lines[1].Amount.Equal(d("150.00")))
	assert.True(t, resp.Allocated.Equal(d("350.00")))
	assert.True(t, resp.Unallocated.IsZero())
}

// TestDistribute_ExcesoReportado: si el monto supera la deuda del contrato, el
// exceso se reporta en Unallocated y la UI decide.
func TestDistribute_ExcesoReportado(t *testing.T) {
	f := newFixture()
	f.addContract("c-1", 0)
	f.addInvoice("inv-1", "c-1", "300.00", day(2), entity.InvoiceStatusPending)

	resp, err := newDistributeUC(f).Distribute(context.Background(), "c-1", d("1000.00"))
	require.NoError(t, err)

	assert.True(t, resp.Allocated.Equal(d("300.00")))
	assert.True(t, resp.Unallocated.Equal(d("700.00")))
}

// TestDistribute_IgnoraCuotasSinSaldo: cuotas totalmente cubiertas (aunque aún
// no marcadas "paid") no son candidatas.
func TestDistribute_IgnoraCuotasSinSaldo(t *testing.T) {
	f := newFixture()
	f.addContract("c-1", 0)
	f.addInvoice("inv-1", "c-1", "300.00", day(2), entity.InvoiceStatusPending)
	f.addInvoice("inv-2", "c-1", "300.00", day(9), entity.InvoiceStatusPending)
	f.addApplication("pay-prev", "inv-1", "300.00", false)

	resp, err := newDistributeUC(f).Distribute(context.Background(), "c-1", d("100.00"))
	require.NoError(t, err)

	require.Len(t, resp.Lines, 1)
	assert.Equal(t, "inv-2", resp.Lines[0].InvoiceID)
}

// TestDistribute_NoEscribeNada: la vista previa nunca persiste.
func TestDistribute_NoEscribeNada(t *testing.T) {
	f := newFixture()
	f.addContract("c-1", 3)
	f.addInvoice("inv-1", "c-1", "300.00", day(2), entity.InvoiceStatusPending)

	_, err := newDistributeUC(f).Distribute(context.Background(), "c-1", d("300.00"))
	require.NoError(t, err)
	f.assertNoWrites(t, 3)
	assert.Equal(t, entity.InvoiceStatusPending, f.l.invoices["inv-1"].Status)
}

func TestDistribute_EntradasInvalidas(t *testing.T) {
	f := newFixture()
	f.addContract("c-1", 0)
	uc := newDistributeUC(f)

	_, err := uc.Distribute(context.Background(), "", d("100"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Distribute(context.Background(), "c-1", decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Distribute(context.Background(), "inexistente", d("100"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
