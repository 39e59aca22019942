package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bankcore/bank_core/internal/account"
)

// RegisterTransferRoutes wires the fund movement endpoint.
func RegisterTransferRoutes(r fiber.Router, h *account.Handler) {
	r.Post("/transfers", h.Transfer)
}
