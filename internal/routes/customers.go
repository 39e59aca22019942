package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bankcore/bank_core/internal/customer"
)

// RegisterCustomerRoutes wires customer directory endpoints.
func RegisterCustomerRoutes(r fiber.Router, h *customer.Handler) {
	r.Post("/customers", h.Create)
	r.Get("/customers/:customerId", h.Get)
	r.Get("/customers/:customerId/accounts", h.Accounts)
}
