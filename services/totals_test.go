package services

import (
	"testing"

	"facturation-backend/models"
)

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name      string
		lines     []models.InvoiceLine
		vatActive bool
		vatRate   float64
		wantHT    float64
		wantVAT   float64
		wantTTC   float64
	}{
		{
			name: "empty invoice",
		},
		{
			name: "two lines with 10% VAT",
			lines: []models.InvoiceLine{
				{Quantity: 2, UnitPrice: 100},
				{Quantity: 3, UnitPrice: 50},
			},
			vatActive: true,
			vatRate:   10,
			wantHT:    350,
			wantVAT:   35,
			wantTTC:   385,
		},
		{
			name: "VAT inactive ignores the rate",
			lines: []models.InvoiceLine{
				{Quantity: 2, UnitPrice: 100},
			},
			vatActive: false,
			vatRate:   20,
			wantHT:    200,
			wantVAT:   0,
			wantTTC:   200,
		},
		{
			name: "zero quantity contributes nothing",
			lines: []models.InvoiceLine{
				{Quantity: 0, UnitPrice: 999},
				{Quantity: 1, UnitPrice: 80},
			},
			vatActive: true,
			vatRate:   25,
			wantHT:    80,
			wantVAT:   20,
			wantTTC:   100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &models.Invoice{
				VatActive: tt.vatActive,
				VatRate:   tt.vatRate,
				Lines:     tt.lines,
			}
			got := ComputeTotals(inv)
			if got.HT != tt.wantHT || got.VAT != tt.wantVAT || got.TTC != tt.wantTTC {
				t.Errorf("ComputeTotals = %+v, want HT=%v VAT=%v TTC=%v",
					got, tt.wantHT, tt.wantVAT, tt.wantTTC)
			}
		})
	}
}

func TestComputeTotalsNil(t *testing.T) {
	if got := ComputeTotals(nil); got != (Totals{}) {
		t.Errorf("ComputeTotals(nil) = %+v, want zero", got)
	}
}
