package services

import (
	"errors"
	"log"
	"time"

	"facturation-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LinePayload is one submitted invoice line. A zero-valued line (blank
// description, quantity 0, price 0) is a UI placeholder row and is ignored.
type LinePayload struct {
	Id          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price" validate:"gte=0"`
	ProductId   string  `json:"product_id"`
}

// InvoicePayload is the full-replace update submitted by the caller. Missing
// fields fall back to documented defaults on write (text→"", vat_rate→10,
// status→DRAFT) rather than being skipped.
type InvoicePayload struct {
	Id            string        `json:"id" validate:"required"`
	IssuerName    string        `json:"issuer_name"`
	IssuerAddress string        `json:"issuer_address"`
	ClientName    string        `json:"client_name"`
	ClientAddress string        `json:"client_address"`
	InvoiceDate   string        `json:"invoice_date"`
	DueDate       string        `json:"due_date"`
	VatActive     bool          `json:"vat_active"`
	VatRate       float64       `json:"vat_rate" validate:"gte=0"`
	Status        int           `json:"status" validate:"gte=0,lte=5"`
	Lines         []LinePayload `json:"lines" validate:"dive"`
}

func (l LinePayload) empty() bool {
	return l.Description == "" && l.Quantity == 0 && l.UnitPrice == 0
}

// productRef validates a submitted product reference. Anything that is not a
// well-formed UUID is treated as absent: the stored reference is left alone,
// never nulled.
func productRef(raw string) (string, bool) {
	if _, err := uuid.Parse(raw); err != nil {
		return "", false
	}
	return raw, true
}

// CreateEmptyInvoice lazily creates the owning user, then creates a blank
// DRAFT invoice dated today with a due date 30 days out. Returns the new
// invoice id, or "" on failure.
func CreateEmptyInvoice(db *gorm.DB, email, name string) string {
	if email == "" || name == "" {
		log.Println("create invoice: email and name are required")
		return ""
	}
	if !EnsureUser(db, email, name) {
		return ""
	}
	user, err := findUserByEmail(db, email)
	if err != nil {
		log.Printf("create invoice: user %s not found after creation: %v", email, err)
		return ""
	}

	today := time.Now()
	invoice := models.Invoice{
		Id:          GenerateInvoiceId(db),
		Name:        name,
		UserId:      user.Id,
		InvoiceDate: today.Format(DateLayout),
		DueDate:     today.AddDate(0, 0, 30).Format(DateLayout),
		VatActive:   false,
		VatRate:     10,
		Status:      models.StatusDraft,
	}
	if err := db.Create(&invoice).Error; err != nil {
		log.Printf("create invoice: %v", err)
		return ""
	}
	return invoice.Id
}

// ListInvoicesForUser returns the caller's invoices, each status-refreshed.
// Unknown user yields an empty slice; missing email or a persistence error
// yields nil.
func ListInvoicesForUser(db *gorm.DB, email string) []models.Invoice {
	if email == "" {
		log.Println("list invoices: email is required")
		return nil
	}
	user, err := findUserByEmail(db, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []models.Invoice{}
		}
		log.Printf("list invoices: lookup %s failed: %v", email, err)
		return nil
	}

	var invoices []models.Invoice
	if err := db.Preload("Lines.Product.Category").Where("user_id = ?", user.Id).Find(&invoices).Error; err != nil {
		log.Printf("list invoices: %v", err)
		return nil
	}
	for i := range invoices {
		invoices[i] = *RefreshStatus(db, &invoices[i])
	}
	return invoices
}

// GetInvoice loads one invoice with its lines, status-refreshed. Returns nil
// when absent or on error.
func GetInvoice(db *gorm.DB, invoiceId string) *models.Invoice {
	if invoiceId == "" {
		log.Println("get invoice: id is required")
		return nil
	}
	var invoice models.Invoice
	if err := db.Preload("Lines.Product.Category").Where("id = ?", invoiceId).First(&invoice).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("get invoice %s: %v", invoiceId, err)
		}
		return nil
	}
	return RefreshStatus(db, &invoice)
}

// SaveInvoice makes the persisted state match the submitted payload: lines
// are reconciled (delete absent, update changed, create new, skip
// placeholders), the scalar fields are overwritten with defaults substituted
// for missing values, and the status engine runs once on the result.
func SaveInvoice(db *gorm.DB, payload *InvoicePayload) bool {
	if payload == nil || payload.Id == "" {
		log.Println("save invoice: invalid payload")
		return false
	}

	var existing models.Invoice
	if err := db.Preload("Lines").Where("id = ?", payload.Id).First(&existing).Error; err != nil {
		log.Printf("save invoice %s: not found: %v", payload.Id, err)
		return false
	}

	if !reconcileLines(db, &existing, payload.Lines) {
		return false
	}

	// Falsy-default substitution per field, then unconditional overwrite.
	vatRate := payload.VatRate
	if vatRate == 0 {
		vatRate = 10
	}
	status := payload.Status
	if status == 0 {
		status = models.StatusDraft
	}
	updates := map[string]any{
		"issuer_name":    payload.IssuerName,
		"issuer_address": payload.IssuerAddress,
		"client_name":    payload.ClientName,
		"client_address": payload.ClientAddress,
		"invoice_date":   payload.InvoiceDate,
		"due_date":       payload.DueDate,
		"vat_active":     payload.VatActive,
		"vat_rate":       vatRate,
		"status":         status,
	}
	if err := db.Model(&models.Invoice{}).Where("id = ?", payload.Id).Updates(updates).Error; err != nil {
		log.Printf("save invoice %s: scalar update failed: %v", payload.Id, err)
		return false
	}

	// Re-evaluate on the freshly persisted state.
	var fresh models.Invoice
	if err := db.Preload("Lines").Where("id = ?", payload.Id).First(&fresh).Error; err != nil {
		log.Printf("save invoice %s: reload failed: %v", payload.Id, err)
		return false
	}
	RefreshStatus(db, &fresh)
	return true
}

// reconcileLines diffs the submitted line set against the persisted one and
// applies the minimal create/update/delete set.
func reconcileLines(db *gorm.DB, existing *models.Invoice, submitted []LinePayload) bool {
	submittedIds := make(map[string]bool, len(submitted))
	for _, line := range submitted {
		if line.Id != "" {
			submittedIds[line.Id] = true
		}
	}

	var staleIds []string
	persisted := make(map[string]models.InvoiceLine, len(existing.Lines))
	for _, line := range existing.Lines {
		persisted[line.Id] = line
		if !submittedIds[line.Id] {
			staleIds = append(staleIds, line.Id)
		}
	}
	if len(staleIds) > 0 {
		if err := db.Where("id IN ?", staleIds).Delete(&models.InvoiceLine{}).Error; err != nil {
			log.Printf("save invoice %s: line delete failed: %v", existing.Id, err)
			return false
		}
	}

	for _, line := range submitted {
		if line.empty() {
			continue // placeholder row, never filled in
		}
		ref, refOk := productRef(line.ProductId)

		if prev, ok := persisted[line.Id]; ok {
			changed := line.Description != prev.Description ||
				line.Quantity != prev.Quantity ||
				line.UnitPrice != prev.UnitPrice ||
				(refOk && (prev.ProductId == nil || *prev.ProductId != ref))
			if !changed {
				continue
			}
			updates := map[string]any{
				"description": line.Description,
				"quantity":    line.Quantity,
				"unit_price":  line.UnitPrice,
			}
			if refOk {
				updates["product_id"] = ref
			}
			if err := db.Model(&models.InvoiceLine{}).Where("id = ?", line.Id).Updates(updates).Error; err != nil {
				log.Printf("save invoice %s: line update failed: %v", existing.Id, err)
				return false
			}
			continue
		}

		created := models.InvoiceLine{
			InvoiceId:   existing.Id,
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
		}
		if refOk {
			created.ProductId = &ref
		}
		if err := db.Create(&created).Error; err != nil {
			log.Printf("save invoice %s: line create failed: %v", existing.Id, err)
			return false
		}
	}
	return true
}

// DeleteInvoice removes an invoice and its lines, lines first.
func DeleteInvoice(db *gorm.DB, invoiceId string) bool {
	if invoiceId == "" {
		log.Println("delete invoice: id is required")
		return false
	}
	var invoice models.Invoice
	if err := db.Preload("Lines").Where("id = ?", invoiceId).First(&invoice).Error; err != nil {
		log.Printf("delete invoice %s: not found: %v", invoiceId, err)
		return false
	}
	if len(invoice.Lines) > 0 {
		if err := db.Where("invoice_id = ?", invoiceId).Delete(&models.InvoiceLine{}).Error; err != nil {
			log.Printf("delete invoice %s: line delete failed: %v", invoiceId, err)
			return false
		}
	}
	if err := db.Delete(&models.Invoice{}, "id = ?", invoiceId).Error; err != nil {
		log.Printf("delete invoice %s: %v", invoiceId, err)
		return false
	}
	return true
}
