package services

import (
	"log"
	"math/rand"
	"strconv"
	"time"

	"facturation-backend/models"

	"gorm.io/gorm"
)

const invoiceIdAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

func randomToken(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = invoiceIdAlphabet[rand.Intn(len(invoiceIdAlphabet))]
	}
	return string(b)
}

// GenerateInvoiceId issues an opaque base-36 token, probing the invoices table
// for collisions. After the retry budget is spent it falls back to a
// timestamp-prefixed token, which is unique enough in practice.
func GenerateInvoiceId(db *gorm.DB) string {
	const maxAttempts = 10

	for attempt := 0; attempt < maxAttempts; attempt++ {
		id := randomToken(24)

		var count int64
		if err := db.Model(&models.Invoice{}).Where("id = ?", id).Count(&count).Error; err != nil {
			log.Printf("generate invoice id: uniqueness probe failed: %v", err)
			continue
		}
		if count == 0 {
			return id
		}
	}

	return strconv.FormatInt(time.Now().UnixMilli(), 36) + "-" + randomToken(6)
}
