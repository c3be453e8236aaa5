package controllers

import (
	"facturation-backend/database"
	"facturation-backend/middlewares"
	"facturation-backend/models"
	"facturation-backend/services"
	"facturation-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type CreateInvoiceInput struct {
	Name string `json:"name" validate:"required,max=60"`
}

// invoiceView decorates an invoice with its computed totals, rounded for
// display.
type invoiceView struct {
	models.Invoice
	Totals services.Totals `json:"totals"`
}

func viewOf(invoice models.Invoice) invoiceView {
	t := services.ComputeTotals(&invoice)
	t.HT = utils.Round2(t.HT)
	t.VAT = utils.Round2(t.VAT)
	t.TTC = utils.Round2(t.TTC)
	return invoiceView{Invoice: invoice, Totals: t}
}

func CreateInvoice(c *fiber.Ctx) error {
	var input CreateInvoiceInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	email, _ := c.Locals("email").(string)
	db, err := database.RequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	id := services.CreateEmptyInvoice(db, email, input.Name)
	if id == "" {
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{"message": "Could not create invoice"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

func GetInvoices(c *fiber.Ctx) error {
	email, _ := c.Locals("email").(string)
	name, _ := c.Locals("name").(string)

	db, err := database.RequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	// Mirror the page-load behavior: users exist from first sight.
	services.EnsureUser(db, email, name)

	invoices := services.ListInvoicesForUser(db, email)
	if invoices == nil {
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{"message": "Could not load invoices"})
	}

	filter := services.InvoiceFilter{
		Search: c.Query("search"),
		Status: c.Query("status"),
		Date:   c.Query("date"),
		Amount: c.Query("amount"),
	}
	invoices = filter.Apply(invoices)

	views := make([]invoiceView, 0, len(invoices))
	for _, invoice := range invoices {
		views = append(views, viewOf(invoice))
	}
	return c.JSON(fiber.Map{
		"invoices": views,
		"message":  "success",
	})
}

func GetInvoice(c *fiber.Ctx) error {
	db, err := database.RequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	invoice := services.GetInvoice(db, c.Params("id"))
	if invoice == nil {
		c.Status(fiber.StatusNotFound)
		return c.JSON(fiber.Map{"message": "Invoice not found"})
	}
	return c.JSON(viewOf(*invoice))
}

func UpdateInvoice(c *fiber.Ctx) error {
	var payload services.InvoicePayload
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	payload.Id = c.Params("id") // the path wins over any id in the body
	if err := middlewares.ValidateStruct(&payload); err != nil {
		return err
	}

	db, err := database.RequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	if !services.SaveInvoice(db, &payload) {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{"message": "Could not update invoice"})
	}

	invoice := services.GetInvoice(db, payload.Id)
	if invoice == nil {
		c.Status(fiber.StatusNotFound)
		return c.JSON(fiber.Map{"message": "Invoice not found"})
	}
	return c.JSON(viewOf(*invoice))
}

func DeleteInvoice(c *fiber.Ctx) error {
	db, err := database.RequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	if !services.DeleteInvoice(db, c.Params("id")) {
		c.Status(fiber.StatusNotFound)
		return c.JSON(fiber.Map{"message": "Invoice not found"})
	}
	return c.JSON(fiber.Map{"message": "success"})
}

func GetInvoiceHistory(c *fiber.Ctx) error {
	db, err := database.RequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	changes := services.StatusHistory(db, c.Params("id"))
	return c.JSON(fiber.Map{
		"history": changes,
		"message": "success",
	})
}
