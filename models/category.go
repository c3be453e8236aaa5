package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	Id          string `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description"`
	UserId      string `json:"-" gorm:"index;not null"`
	User        User   `json:"-" gorm:"foreignKey:UserId;references:Id"`
}

func (category *Category) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	if category.Id == "" {
		category.Id = uuid.NewString()
	}
	return
}
