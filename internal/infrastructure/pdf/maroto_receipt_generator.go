// Package pdf implementa la generación del recibo de pago que se entrega al
// cliente tras conciliar un recaudo.
//
// Layout de la página A5 horizontal:
//
//	┌──────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + NIT       │  RECIBO N° + Fecha        │
//	│  ──────────────────────────────────────────────────────  │
//	│  PAGADOR: Nombre del cliente │ Método | Referencia        │
//	│  ──────────────────────────────────────────────────────  │
//	│  TABLA: Cuota | Contrato | Monto aplicado                 │
//	│  ──────────────────────────────────────────────────────  │
//	│  TOTAL RECIBIDO                                           │
//	└──────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/tu-usuario/cobranza-api/internal/application/reconciliation"
	"github.com/tu-usuario/cobranza-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 16, Green: 78, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ reconciliation.ReceiptPDFGenerator = (*MarotoReceiptGenerator)(nil)

// MarotoReceiptGenerator implementa reconciliation.ReceiptPDFGenerator usando Maroto v2.
type MarotoReceiptGenerator struct{}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// GenerateReceiptPDF genera el PDF del recibo y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(
	_ context.Context,
	company reconciliation.CompanyInfo,
	payment *entity.Payment,
	applications []*entity.PaymentApplication,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Recibo de pago", true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(company, payment))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(payerRow(payment, applications))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range applicationRows(applications) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(payment))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa + NIT (izq) y número de recibo + fecha (der).
func headerRow(company reconciliation.CompanyInfo, payment *entity.Payment) core.Row {
	fecha := payment.Date.Format("02/01/2006")
	return row.New(16).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New("NIT: "+nonEmpty(company.TaxID, "—"), props.Text{
				Size: 8, Top: 8, Color: colorGray,
			}),
			text.New(nonEmpty(company.Address, ""), props.Text{
				Size: 8, Top: 12, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("RECIBO DE PAGO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(payment.ID, props.Text{
				Size: 7, Align: align.Right, Top: 7, Color: colorGray,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

// payerRow: cliente + método y referencia del pago.
func payerRow(payment *entity.Payment, applications []*entity.PaymentApplication) core.Row {
	clientName := "—"
	if len(applications) > 0 && applications[0].ClientName != "" {
		clientName = applications[0].ClientName
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("RECIBIDO DE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   Método: %s   |   Ref: %s",
				clientName, methodLabel(payment.Method), nonEmpty(payment.Reference, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de aplicaciones.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cuota", 5, align.Left),
		h("Contrato", 4, align.Left),
		h("Aplicado", 3, align.Right),
	)
}

// applicationRows: una fila por aplicación del pago.
func applicationRows(applications []*entity.PaymentApplication) []core.Row {
	result := make([]core.Row, 0, len(applications))
	for _, a := range applications {
		label := a.InvoiceLabel
		if a.Voided {
			label += " (ANULADA)"
		}
		result = append(result, row.New(7).Add(
			col.New(5).Add(text.New(
				nonEmpty(label, a.InvoiceID),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				nonEmpty(a.ContractLabel, "—"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				"$"+a.Amount.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalRow: total recibido, alineado a la derecha.
func totalRow(payment *entity.Payment) core.Row {
	return row.New(10).Add(
		col.New(9).Add(text.New("TOTAL RECIBIDO", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(3).Add(text.New("$"+payment.Amount.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

func methodLabel(m string) string {
	switch m {
	case entity.PaymentMethodTransfer:
		return "Transferencia"
	case entity.PaymentMethodDeposit:
		return "Consignación"
	case entity.PaymentMethodCheck:
		return "Cheque"
	case entity.PaymentMethodCash:
		return "Efectivo"
	case entity.PaymentMethodCard:
		return "Tarjeta"
	}
	return m
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
