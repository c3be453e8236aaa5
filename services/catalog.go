package services

import (
	"log"

	"facturation-backend/models"

	"gorm.io/gorm"
)

// Catalog operations are strictly owner-scoped: every call resolves the
// caller's email to a user first and fails (false / empty list) when none
// exists.

func CreateCategory(db *gorm.DB, email, name, description string) bool {
	if email == "" || name == "" {
		return false
	}
	user, err := findUserByEmail(db, email)
	if err != nil {
		log.Printf("create category: user %s not found: %v", email, err)
		return false
	}
	category := models.Category{Name: name, Description: description, UserId: user.Id}
	if err := db.Create(&category).Error; err != nil {
		log.Printf("create category: %v", err)
		return false
	}
	return true
}

func ListCategories(db *gorm.DB, email string) []models.Category {
	if email == "" {
		return []models.Category{}
	}
	user, err := findUserByEmail(db, email)
	if err != nil {
		return []models.Category{}
	}
	var categories []models.Category
	if err := db.Where("user_id = ?", user.Id).Find(&categories).Error; err != nil {
		log.Printf("list categories: %v", err)
		return []models.Category{}
	}
	return categories
}

func UpdateCategory(db *gorm.DB, email, categoryId, name, description string) bool {
	if email == "" || categoryId == "" || name == "" {
		return false
	}
	user, err := findUserByEmail(db, email)
	if err != nil {
		return false
	}
	res := db.Model(&models.Category{}).
		Where("id = ? AND user_id = ?", categoryId, user.Id).
		Updates(map[string]any{"name": name, "description": description})
	if res.Error != nil {
		log.Printf("update category %s: %v", categoryId, res.Error)
		return false
	}
	return res.RowsAffected > 0
}

func DeleteCategory(db *gorm.DB, email, categoryId string) bool {
	if email == "" || categoryId == "" {
		return false
	}
	user, err := findUserByEmail(db, email)
	if err != nil {
		return false
	}
	res := db.Where("id = ? AND user_id = ?", categoryId, user.Id).Delete(&models.Category{})
	if res.Error != nil {
		log.Printf("delete category %s: %v", categoryId, res.Error)
		return false
	}
	return res.RowsAffected > 0
}

func CreateProduct(db *gorm.DB, email, name string, unitPrice float64, categoryId, description string) bool {
	if email == "" || name == "" || unitPrice < 0 {
		return false
	}
	user, err := findUserByEmail(db, email)
	if err != nil {
		log.Printf("create product: user %s not found: %v", email, err)
		return false
	}
	product := models.Product{
		Name:        name,
		Description: description,
		UnitPrice:   unitPrice,
		UserId:      user.Id,
	}
	if categoryId != "" {
		product.CategoryId = &categoryId
	}
	if err := db.Create(&product).Error; err != nil {
		log.Printf("create product: %v", err)
		return false
	}
	return true
}

// ListProducts returns the owner's products, optionally narrowed to one
// category, with the category preloaded.
func ListProducts(db *gorm.DB, email, categoryId string) []models.Product {
	if email == "" {
		return []models.Product{}
	}
	user, err := findUserByEmail(db, email)
	if err != nil {
		return []models.Product{}
	}
	q := db.Preload("Category").Where("user_id = ?", user.Id)
	if categoryId != "" {
		q = q.Where("category_id = ?", categoryId)
	}
	var products []models.Product
	if err := q.Find(&products).Error; err != nil {
		log.Printf("list products: %v", err)
		return []models.Product{}
	}
	return products
}

func UpdateProduct(db *gorm.DB, email, productId, name string, unitPrice float64, categoryId, description string) bool {
	if email == "" || productId == "" || name == "" || unitPrice < 0 {
		return false
	}
	user, err := findUserByEmail(db, email)
	if err != nil {
		return false
	}
	updates := map[string]any{
		"name":        name,
		"description": description,
		"unit_price":  unitPrice,
	}
	if categoryId != "" {
		updates["category_id"] = categoryId
	}
	res := db.Model(&models.Product{}).
		Where("id = ? AND user_id = ?", productId, user.Id).
		Updates(updates)
	if res.Error != nil {
		log.Printf("update product %s: %v", productId, res.Error)
		return false
	}
	return res.RowsAffected > 0
}

func DeleteProduct(db *gorm.DB, email, productId string) bool {
	if email == "" || productId == "" {
		return false
	}
	user, err := findUserByEmail(db, email)
	if err != nil {
		return false
	}
	res := db.Where("id = ? AND user_id = ?", productId, user.Id).Delete(&models.Product{})
	if res.Error != nil {
		log.Printf("delete product %s: %v", productId, res.Error)
		return false
	}
	return res.RowsAffected > 0
}
