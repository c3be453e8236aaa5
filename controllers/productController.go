package controllers

import (
	"facturation-backend/database"
	"facturation-backend/middlewares"
	"facturation-backend/services"
	"facturation-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type ProductInput struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	UnitPrice   float64 `json:"unit_price" validate:"gte=0"`
	CategoryId  string  `json:"category_id"`
}

func CreateProduct(c *fiber.Ctx) error {
	var input ProductInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizeDTO(&input)

	email, _ := c.Locals("email").(string)
	db, err := database.RequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	if !services.CreateProduct(db, email, input.Name, input.UnitPrice, input.CategoryId, input.Description) {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{"message": "Could not create product"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "success"})
}

func GetProducts(c *fiber.Ctx) error {
	email, _ := c.Locals("email").(string)
	db, err := database.RequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	products := services.ListProducts(db, email, c.Query("category"))
	return c.JSON(fiber.Map{
		"products": products,
		"message":  "success",
	})
}

func UpdateProduct(c *fiber.Ctx) error {
	var input ProductInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizeDTO(&input)

	email, _ := c.Locals("email").(string)
	db, err := database.RequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	if !services.UpdateProduct(db, email, c.Params("id"), input.Name, input.UnitPrice, input.CategoryId, input.Description) {
		c.Status(fiber.StatusNotFound)
		return c.JSON(fiber.Map{"message": "Could not update product"})
	}
	return c.JSON(fiber.Map{"message": "success"})
}

func DeleteProduct(c *fiber.Ctx) error {
	email, _ := c.Locals("email").(string)
	db, err := database.RequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	if !services.DeleteProduct(db, email, c.Params("id")) {
		c.Status(fiber.StatusNotFound)
		return c.JSON(fiber.Map{"message": "Could not delete product"})
	}
	return c.JSON(fiber.Map{"message": "success"})
}
