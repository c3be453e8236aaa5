package services

import (
	"strconv"
	"strings"
	"time"

	"facturation-backend/models"
)

// FilterAll is the sentinel matching everything; an empty string reads the
// same way so unset query parameters don't filter.
const FilterAll = "all"

// Date buckets, day-granular, lower bound inclusive.
const (
	DateToday = "today"
	DateWeek  = "week"  // last 7 days
	DateMonth = "month" // last 30 days
)

// Amount buckets over the computed grand total.
const (
	AmountLow    = "low"    // < 10 000
	AmountMedium = "medium" // [10 000, 50 000)
	AmountHigh   = "high"   // ≥ 50 000
)

// InvoiceFilter is a predicate composition over an invoice list; all active
// filters must hold (logical AND).
type InvoiceFilter struct {
	Search string
	Status string
	Date   string
	Amount string
}

func active(v string) bool {
	return v != "" && v != FilterAll
}

// Match reports whether one invoice passes every active filter, evaluated
// against the given "now".
func (f InvoiceFilter) Match(invoice *models.Invoice, now time.Time) bool {
	if f.Search != "" && !strings.Contains(strings.ToLower(invoice.Name), strings.ToLower(f.Search)) {
		return false
	}

	if active(f.Status) {
		want, err := strconv.Atoi(f.Status)
		if err != nil || invoice.Status != want {
			return false
		}
	}

	if active(f.Date) {
		invoiceDate := time.Unix(0, 0).UTC() // missing date sorts to the epoch
		if d, err := time.ParseInLocation(DateLayout, invoice.InvoiceDate, time.UTC); err == nil {
			invoiceDate = d
		}
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

		switch f.Date {
		case DateToday:
			if invoiceDate.Before(today) || !invoiceDate.Before(today.AddDate(0, 0, 1)) {
				return false
			}
		case DateWeek:
			if invoiceDate.Before(today.AddDate(0, 0, -7)) {
				return false
			}
		case DateMonth:
			if invoiceDate.Before(today.AddDate(0, 0, -30)) {
				return false
			}
		}
	}

	if active(f.Amount) {
		total := ComputeTotals(invoice).TTC
		switch f.Amount {
		case AmountLow:
			if total >= 10000 {
				return false
			}
		case AmountMedium:
			if total < 10000 || total >= 50000 {
				return false
			}
		case AmountHigh:
			if total < 50000 {
				return false
			}
		}
	}

	return true
}

// Apply filters the list in order, keeping invoices that pass every active
// predicate.
func (f InvoiceFilter) Apply(invoices []models.Invoice) []models.Invoice {
	now := time.Now()
	out := make([]models.Invoice, 0, len(invoices))
	for i := range invoices {
		if f.Match(&invoices[i], now) {
			out = append(out, invoices[i])
		}
	}
	return out
}
