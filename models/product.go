package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	Id          string    `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	UnitPrice   float64   `json:"unit_price" gorm:"type:numeric(12,2)"`
	CategoryId  *string   `json:"category_id" gorm:"index"`
	Category    *Category `json:"category,omitempty" gorm:"foreignKey:CategoryId;references:Id"`
	UserId      string    `json:"-" gorm:"index;not null"`
	User        User      `json:"-" gorm:"foreignKey:UserId;references:Id"`
}

func (product *Product) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	if product.Id == "" {
		product.Id = uuid.NewString()
	}
	return
}
