package services

import (
	"testing"
	"time"

	"facturation-backend/models"
)

func invoiceWithTotal(name string, status int, invoiceDate string, total float64) models.Invoice {
	return models.Invoice{
		Name:        name,
		Status:      status,
		InvoiceDate: invoiceDate,
		Lines:       []models.InvoiceLine{{Quantity: 1, UnitPrice: total}},
	}
}

func TestFilterAmountBuckets(t *testing.T) {
	invoices := []models.Invoice{
		invoiceWithTotal("small", models.StatusPending, dateFromNow(0), 5000),
		invoiceWithTotal("mid", models.StatusPending, dateFromNow(0), 25000),
		invoiceWithTotal("big", models.StatusPending, dateFromNow(0), 60000),
	}

	tests := []struct {
		bucket string
		want   []string
	}{
		{AmountLow, []string{"small"}},
		{AmountMedium, []string{"mid"}},
		{AmountHigh, []string{"big"}},
		{FilterAll, []string{"small", "mid", "big"}},
		{"", []string{"small", "mid", "big"}},
	}
	for _, tt := range tests {
		t.Run("bucket_"+tt.bucket, func(t *testing.T) {
			got := InvoiceFilter{Amount: tt.bucket}.Apply(invoices)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d invoices, want %d", len(got), len(tt.want))
			}
			for i, name := range tt.want {
				if got[i].Name != name {
					t.Errorf("got[%d] = %s, want %s", i, got[i].Name, name)
				}
			}
		})
	}
}

func TestFilterAmountBoundaries(t *testing.T) {
	now := time.Now()
	atTen := invoiceWithTotal("at-10k", models.StatusPending, "", 10000)
	atFifty := invoiceWithTotal("at-50k", models.StatusPending, "", 50000)

	if (InvoiceFilter{Amount: AmountLow}).Match(&atTen, now) {
		t.Error("10000 must not be low")
	}
	if !(InvoiceFilter{Amount: AmountMedium}).Match(&atTen, now) {
		t.Error("10000 must be medium")
	}
	if (InvoiceFilter{Amount: AmountMedium}).Match(&atFifty, now) {
		t.Error("50000 must not be medium")
	}
	if !(InvoiceFilter{Amount: AmountHigh}).Match(&atFifty, now) {
		t.Error("50000 must be high")
	}
}

func TestFilterSearchCaseInsensitive(t *testing.T) {
	invoices := []models.Invoice{
		invoiceWithTotal("Facture Avril", models.StatusDraft, "", 100),
		invoiceWithTotal("Devis chantier", models.StatusDraft, "", 100),
	}
	got := InvoiceFilter{Search: "AVRIL"}.Apply(invoices)
	if len(got) != 1 || got[0].Name != "Facture Avril" {
		t.Fatalf("got %v", got)
	}
	if n := len(InvoiceFilter{}.Apply(invoices)); n != 2 {
		t.Fatalf("empty search should match all, got %d", n)
	}
}

func TestFilterStatus(t *testing.T) {
	invoices := []models.Invoice{
		invoiceWithTotal("a", models.StatusPending, "", 100),
		invoiceWithTotal("b", models.StatusPaid, "", 100),
	}
	got := InvoiceFilter{Status: "3"}.Apply(invoices)
	if len(got) != 1 || got[0].Name != "b" {
		t.Fatalf("got %v", got)
	}
	if n := len(InvoiceFilter{Status: FilterAll}.Apply(invoices)); n != 2 {
		t.Fatalf("status all should match everything, got %d", n)
	}
}

func TestFilterDateBuckets(t *testing.T) {
	now := time.Now()
	today := invoiceWithTotal("today", models.StatusPending, dateFromNow(0), 100)
	threeDays := invoiceWithTotal("3d", models.StatusPending, dateFromNow(-3), 100)
	twentyDays := invoiceWithTotal("20d", models.StatusPending, dateFromNow(-20), 100)
	ancient := invoiceWithTotal("old", models.StatusPending, "2001-01-01", 100)
	undated := invoiceWithTotal("undated", models.StatusPending, "", 100)

	cases := []struct {
		bucket  string
		invoice *models.Invoice
		want    bool
	}{
		{DateToday, &today, true},
		{DateToday, &threeDays, false},
		{DateWeek, &threeDays, true},
		{DateWeek, &twentyDays, false},
		{DateMonth, &twentyDays, true},
		{DateMonth, &ancient, false},
		// Missing dates read as the epoch, so any window excludes them.
		{DateToday, &undated, false},
		{DateMonth, &undated, false},
		{FilterAll, &undated, true},
	}
	for _, tt := range cases {
		if got := (InvoiceFilter{Date: tt.bucket}).Match(tt.invoice, now); got != tt.want {
			t.Errorf("bucket %q invoice %q: got %v, want %v", tt.bucket, tt.invoice.Name, got, tt.want)
		}
	}
}

func TestFilterComposition(t *testing.T) {
	invoices := []models.Invoice{
		invoiceWithTotal("mid pending", models.StatusPending, dateFromNow(0), 25000),
		invoiceWithTotal("mid paid", models.StatusPaid, dateFromNow(0), 25000),
		invoiceWithTotal("big pending", models.StatusPending, dateFromNow(0), 60000),
	}

	got := InvoiceFilter{Amount: AmountMedium}.Apply(invoices)
	if len(got) != 2 {
		t.Fatalf("amount only: got %d, want 2", len(got))
	}

	// Both predicates must hold.
	got = InvoiceFilter{Amount: AmountMedium, Status: "2"}.Apply(invoices)
	if len(got) != 1 || got[0].Name != "mid pending" {
		t.Fatalf("amount+status: got %v", got)
	}
}
