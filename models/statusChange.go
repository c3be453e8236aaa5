package models

import (
	"time"

	"gorm.io/datatypes"
)

// StatusChange is an append-only audit row written whenever the status engine
// moves an invoice automatically. Snapshot keeps the inputs that drove the
// decision (due date, completeness, prior status) for later inspection.
type StatusChange struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	InvoiceId  string         `json:"invoice_id" gorm:"index:idx_status_changes_invoice_created,priority:1"`
	FromStatus int            `json:"from_status"`
	ToStatus   int            `json:"to_status"`
	Snapshot   datatypes.JSON `json:"snapshot" gorm:"type:jsonb"`
	CreatedAt  time.Time      `json:"created_at" gorm:"index:idx_status_changes_invoice_created,priority:2"`
}
