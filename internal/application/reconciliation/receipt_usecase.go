package reconciliation

import (
	"context"
	"fmt"

	"github.com/tu-usuario/cobranza-api/internal/domain"
	"github.com/tu-usuario/cobranza-api/internal/domain/repository"
)

// ReceiptUseCase genera el recibo de pago en PDF: el comprobante que se
// entrega al cliente con el desglose de cuotas cubiertas por el pago.
type ReceiptUseCase struct {
	paymentRepo repository.PaymentRepository
	appRepo     repository.PaymentApplicationRepository
	generator   ReceiptPDFGenerator
	company     CompanyInfo
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(
	paymentRepo repository.PaymentRepository,
	appRepo repository.PaymentApplicationRepository,
	generator ReceiptPDFGenerator,
	company CompanyInfo,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		paymentRepo: paymentRepo,
		appRepo:     appRepo,
		generator:   generator,
		company:     company,
	}
}

// DownloadReceipt recupera el pago con sus aplicaciones y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrNotFound        si el pago no existe.
func (uc *ReceiptUseCase) DownloadReceipt(ctx context.Context, paymentID string) (pdfBytes []byte, filename string, err error) {
	p, err := uc.paymentRepo.GetByID(paymentID)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: leer pago: %w", err)
	}
	if p == nil {
		return nil, "", domain.ErrNotFound
	}
	apps, err := uc.appRepo.ListByPayment(paymentID)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: listar aplicaciones: %w", err)
	}

	pdfBytes, err = uc.generator.GenerateReceiptPDF(ctx, uc.company, p, apps)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: generar PDF: %w", err)
	}
	filename = fmt.Sprintf("recibo-%s.pdf", p.ID)
	return pdfBytes, filename, nil
}
