package services

import "facturation-backend/models"

// Totals carries the derived amounts for one invoice. HT is the pre-tax
// subtotal, TTC the tax-inclusive grand total. No rounding here; two-decimal
// formatting is a presentation concern (see utils.Round2).
type Totals struct {
	HT  float64 `json:"total_ht"`
	VAT float64 `json:"total_vat"`
	TTC float64 `json:"total_ttc"`
}

// ComputeTotals derives subtotal, tax, and grand total from the invoice's
// lines and VAT settings.
func ComputeTotals(invoice *models.Invoice) Totals {
	var t Totals
	if invoice == nil {
		return t
	}
	for _, line := range invoice.Lines {
		t.HT += float64(line.Quantity) * line.UnitPrice
	}
	if invoice.VatActive {
		t.VAT = t.HT * invoice.VatRate / 100
	}
	t.TTC = t.HT + t.VAT
	return t
}
