package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ErrorResponse cuerpo de error HTTP.
// Difference se incluye solo en planes desbalanceados para que la UI pueda
// guiar la corrección ("faltan 45.00 por distribuir").
type ErrorResponse struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Difference string `json:"difference,omitempty"`
	InvoiceID  string `json:"invoice_id,omitempty"`
}
