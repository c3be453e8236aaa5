package routes

import (
	"github.com/gofiber/fiber/v2"

	"facturation-backend/controllers"
	"facturation-backend/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Public auth endpoints
	api.Post("/registration", controllers.Register)
	api.Post("/login", controllers.Login)
	api.Post("/logout", controllers.Logout)

	// Protected endpoints (JWT auth)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticatedHeader())

	// Idempotency guard FIRST (not tied to request TX)
	protected.Use(middlewares.Idempotency())

	// Then per-request transaction (commits/rolls back around the handler)
	protected.Use(middlewares.RequestTx())

	// Invoices
	protected.Post("/invoice", controllers.CreateInvoice)
	protected.Get("/invoices", controllers.GetInvoices) // ?search=&status=&date=&amount=
	protected.Get("/invoice/:id", controllers.GetInvoice)
	protected.Put("/invoice/:id", controllers.UpdateInvoice)
	protected.Delete("/invoice/:id", controllers.DeleteInvoice)
	protected.Get("/invoice/:id/history", controllers.GetInvoiceHistory)

	// Categories
	protected.Post("/category", controllers.CreateCategory)
	protected.Get("/categories", controllers.GetCategories)
	protected.Put("/category/:id", controllers.UpdateCategory)
	protected.Delete("/category/:id", controllers.DeleteCategory)

	// Products
	protected.Post("/product", controllers.CreateProduct)
	protected.Get("/products", controllers.GetProducts) // ?category=
	protected.Put("/product/:id", controllers.UpdateProduct)
	protected.Delete("/product/:id", controllers.DeleteProduct)
}
