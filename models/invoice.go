package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invoice statuses. Stored as plain ints; PAID and CANCELLED are terminal for
// automatic re-evaluation (see services.RefreshStatus).
const (
	StatusDraft     = 1
	StatusPending   = 2
	StatusPaid      = 3
	StatusCancelled = 4
	StatusUnpaid    = 5
)

// Invoice is the live state of a commercial document. Its id is an opaque
// base-36 token issued by services.GenerateInvoiceId, not a UUID.
type Invoice struct {
	Id     string `json:"id" gorm:"primaryKey"`
	Name   string `json:"name" gorm:"not null"`
	UserId string `json:"-" gorm:"index;not null"`
	User   User   `json:"-" gorm:"foreignKey:UserId;references:Id"`

	// Issuer and client are free text, denormalized on purpose.
	IssuerName    string `json:"issuer_name"`
	IssuerAddress string `json:"issuer_address"`
	ClientName    string `json:"client_name"`
	ClientAddress string `json:"client_address"`

	// Date-only strings, "2006-01-02". Time of day never matters here.
	InvoiceDate string `json:"invoice_date"`
	DueDate     string `json:"due_date"`

	VatActive bool    `json:"vat_active"`
	VatRate   float64 `json:"vat_rate"`
	Status    int     `json:"status"`

	Lines []InvoiceLine `json:"lines" gorm:"foreignKey:InvoiceId;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
}

// InvoiceLine copies description and unit price from the selected product at
// selection time; it is never re-synced when the product changes.
type InvoiceLine struct {
	Id          string   `json:"id" gorm:"primaryKey"`
	InvoiceId   string   `json:"-" gorm:"index;not null"`
	Description string   `json:"description"`
	Quantity    int      `json:"quantity"`
	UnitPrice   float64  `json:"unit_price" gorm:"type:numeric(12,2)"`
	ProductId   *string  `json:"product_id" gorm:"index"`
	Product     *Product `json:"product,omitempty" gorm:"foreignKey:ProductId;references:Id"`
}

func (line *InvoiceLine) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	if line.Id == "" {
		line.Id = uuid.NewString()
	}
	return
}
