package services

import (
	"errors"
	"log"

	"facturation-backend/models"

	"gorm.io/gorm"
)

// EnsureUser creates the user on first sight of an (email, name) pair and
// renames an existing one when the display name drifted. Users are never
// deleted here.
func EnsureUser(db *gorm.DB, email, name string) bool {
	if email == "" || name == "" {
		log.Println("ensure user: email and name are required")
		return false
	}

	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if err == nil {
		if user.Name != name {
			if e := db.Model(&user).Update("name", name).Error; e != nil {
				log.Printf("ensure user: rename %s failed: %v", email, e)
				return false
			}
		}
		return true
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("ensure user: lookup %s failed: %v", email, err)
		return false
	}

	user = models.User{Email: email, Name: name}
	if e := db.Create(&user).Error; e != nil {
		log.Printf("ensure user: create %s failed: %v", email, e)
		return false
	}
	return true
}

// findUserByEmail resolves the owner for owner-scoped operations.
func findUserByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
