package services

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"facturation-backend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DateLayout is the date-only format invoices store their dates in.
const DateLayout = "2006-01-02"

// statusSnapshot is what we keep in the audit trail alongside a transition:
// the inputs that drove the decision.
type statusSnapshot struct {
	DueDate     string    `json:"due_date"`
	IssuerName  string    `json:"issuer_name"`
	ClientName  string    `json:"client_name"`
	LineCount   int       `json:"line_count"`
	EvaluatedAt time.Time `json:"evaluated_at"`
}

// EvaluateStatus derives the status an invoice should carry right now. The
// second return is false when the due date is absent or unparseable, in which
// case the stored status stands.
//
// Rules, in order, each reading the running value of the previous one:
//  1. complete (issuer, client, ≥1 line) and DRAFT      → PENDING
//  2. PENDING and due date passed                       → UNPAID
//  3. UNPAID and due date moved back to today or later  → PENDING
//  4. stored status PAID or CANCELLED                   → kept, overriding 1–3
func EvaluateStatus(invoice *models.Invoice, now time.Time) (int, bool) {
	if strings.TrimSpace(invoice.DueDate) == "" {
		return invoice.Status, false
	}
	due, err := time.ParseInLocation(DateLayout, invoice.DueDate, time.UTC)
	if err != nil {
		return invoice.Status, false
	}

	// Date-only comparison: both sides normalized to midnight.
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	complete := invoice.IssuerName != "" && invoice.ClientName != "" && len(invoice.Lines) > 0

	status := invoice.Status
	if complete && status == models.StatusDraft {
		status = models.StatusPending
	}
	if status == models.StatusPending && due.Before(today) {
		status = models.StatusUnpaid
	}
	if status == models.StatusUnpaid && !due.Before(today) {
		status = models.StatusPending
	}
	if invoice.Status == models.StatusPaid || invoice.Status == models.StatusCancelled {
		status = invoice.Status
	}
	return status, true
}

// RefreshStatus re-derives the invoice status and persists it when it moved,
// appending a StatusChange audit row. Runs on every read and after every save;
// there is no background job, so recomputation is pull-based. Any failure is
// logged and the invoice's last known-good state is returned.
func RefreshStatus(db *gorm.DB, invoice *models.Invoice) *models.Invoice {
	now := time.Now()
	next, ok := EvaluateStatus(invoice, now)
	if !ok || next == invoice.Status {
		return invoice
	}

	snap, _ := json.Marshal(statusSnapshot{
		DueDate:     invoice.DueDate,
		IssuerName:  invoice.IssuerName,
		ClientName:  invoice.ClientName,
		LineCount:   len(invoice.Lines),
		EvaluatedAt: now.UTC(),
	})

	if err := db.Model(&models.Invoice{}).Where("id = ?", invoice.Id).Update("status", next).Error; err != nil {
		log.Printf("refresh status: persist %s failed: %v", invoice.Id, err)
		return invoice
	}
	change := models.StatusChange{
		InvoiceId:  invoice.Id,
		FromStatus: invoice.Status,
		ToStatus:   next,
		Snapshot:   datatypes.JSON(snap),
	}
	if err := db.Create(&change).Error; err != nil {
		// Audit is best-effort; the transition itself already stuck.
		log.Printf("refresh status: audit row for %s failed: %v", invoice.Id, err)
	}

	var fresh models.Invoice
	if err := db.Preload("Lines").Where("id = ?", invoice.Id).First(&fresh).Error; err != nil {
		log.Printf("refresh status: reload %s failed: %v", invoice.Id, err)
		invoice.Status = next
		return invoice
	}
	return &fresh
}

// StatusHistory lists the automatic transitions recorded for an invoice,
// newest first.
func StatusHistory(db *gorm.DB, invoiceId string) []models.StatusChange {
	if invoiceId == "" {
		return []models.StatusChange{}
	}
	var changes []models.StatusChange
	if err := db.Where("invoice_id = ?", invoiceId).Order("created_at DESC").Find(&changes).Error; err != nil {
		log.Printf("status history: load %s failed: %v", invoiceId, err)
		return []models.StatusChange{}
	}
	return changes
}
