package server

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/bankcore/bank_core/internal/apperr"
)

// errorBody is the JSON shape of every error response: the violation
// messages and the moment the failure was raised.
type errorBody struct {
	Date     string   `json:"date"`
	Messages []string `json:"messages"`
}

// ErrorHandler translates the service error taxonomy into HTTP responses.
// Business violations become 400s carrying every collected message; explicit
// fiber errors keep their status; anything else becomes a 500 with a fixed
// generic message so internal details never leak to clients.
func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if be, ok := apperr.AsBusiness(err); ok {
			return c.Status(http.StatusBadRequest).JSON(errorBody{
				Date:     be.Date.Format(time.RFC3339Nano),
				Messages: be.Messages,
			})
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(errorBody{
				Date:     time.Now().UTC().Format(time.RFC3339Nano),
				Messages: []string{fe.Message},
			})
		}

		if logger != nil {
			logger.Error("unexpected failure", "error", err, "method", c.Method(), "path", c.Path())
		}
		return c.Status(http.StatusInternalServerError).JSON(errorBody{
			Date:     time.Now().UTC().Format(time.RFC3339Nano),
			Messages: []string{apperr.MsgUnexpected},
		})
	}
}
