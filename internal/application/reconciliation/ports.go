package reconciliation

import (
	"context"

	"github.com/tu-usuario/cobranza-api/internal/domain/entity"
	"github.com/tu-usuario/cobranza-api/internal/domain/repository"
)

// CompanyInfo datos de la empresa para el encabezado del recibo (vienen de
// configuración, no del libro mayor).
type CompanyInfo struct {
	Name    string
	TaxID   string
	Address string
	Phone   string
}

// ReceiptPDFGenerator genera el recibo de pago en PDF.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(
		ctx context.Context,
		company CompanyInfo,
		payment *entity.Payment,
		applications []*entity.PaymentApplication,
	) ([]byte, error)
}

// LedgerTxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que pago, aplicaciones y liquidación
// se confirman o se revierten como una sola unidad: el libro mayor nunca queda
// con un pago a medio aplicar.
type LedgerTxRunner interface {
	Run(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
		appRepo repository.PaymentApplicationRepository,
		contractRepo repository.ContractRepository,
	) error) error
}
