package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bankcore/bank_core/internal/account"
)

// RegisterAccountRoutes wires account endpoints.
func RegisterAccountRoutes(r fiber.Router, h *account.Handler) {
	r.Post("/accounts", h.Create)
	r.Get("/accounts/:accountId", h.Get)
	r.Get("/accounts/:accountId/transactions", h.History)
}
