package controllers

import (
	"facturation-backend/database"
	"facturation-backend/middlewares"
	"facturation-backend/services"
	"facturation-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type CategoryInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

func CreateCategory(c *fiber.Ctx) error {
	var input CategoryInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizeDTO(&input)

	email, _ := c.Locals("email").(string)
	db, err := database.RequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	if !services.CreateCategory(db, email, input.Name, input.Description) {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{"message": "Could not create category"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "success"})
}

func GetCategories(c *fiber.Ctx) error {
	email, _ := c.Locals("email").(string)
	db, err := database.RequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	categories := services.ListCategories(db, email)
	return c.JSON(fiber.Map{
		"categories": categories,
		"message":    "success",
	})
}

func UpdateCategory(c *fiber.Ctx) error {
	var input CategoryInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizeDTO(&input)

	email, _ := c.Locals("email").(string)
	db, err := database.RequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	if !services.UpdateCategory(db, email, c.Params("id"), input.Name, input.Description) {
		c.Status(fiber.StatusNotFound)
		return c.JSON(fiber.Map{"message": "Could not update category"})
	}
	return c.JSON(fiber.Map{"message": "success"})
}

func DeleteCategory(c *fiber.Ctx) error {
	email, _ := c.Locals("email").(string)
	db, err := database.RequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	if !services.DeleteCategory(db, email, c.Params("id")) {
		c.Status(fiber.StatusNotFound)
		return c.JSON(fiber.Map{"message": "Could not delete category"})
	}
	return c.JSON(fiber.Map{"message": "success"})
}
