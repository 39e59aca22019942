package middleware

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/bankcore/bank_core/internal/logging"
)

func setupTestApp(t *testing.T) (*fiber.App, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}

	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	app := fiber.New()

	calls := 0
	app.Use(Idempotency(cache, time.Minute, logging.Discard()))
	app.Post("/transfers", func(c *fiber.Ctx) error {
		calls++
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"call": calls})
	})

	cleanup := func() {
		cache.Close()
		mr.Close()
	}
	return app, cleanup
}

func postTransfer(t *testing.T, app *fiber.App, key string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/transfers", strings.NewReader("{}"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if key != "" {
		req.Header.Set(idempotencyKeyHeader, key)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func TestIdempotencyWithoutHeaderPassesThrough(t *testing.T) {
	app, cleanup := setupTestApp(t)
	defer cleanup()

	status1, body1 := postTransfer(t, app, "")
	status2, body2 := postTransfer(t, app, "")

	if status1 != fiber.StatusAccepted || status2 != fiber.StatusAccepted {
		t.Fatalf("unexpected statuses: %d, %d", status1, status2)
	}
	if body1 == body2 {
		t.Fatalf("requests without a key must not be deduplicated")
	}
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	app, cleanup := setupTestApp(t)
	defer cleanup()

	status1, body1 := postTransfer(t, app, "abc123")
	if status1 != fiber.StatusAccepted {
		t.Fatalf("first request status %d", status1)
	}

	status2, body2 := postTransfer(t, app, "abc123")
	if status2 != fiber.StatusAccepted {
		t.Fatalf("replayed status %d", status2)
	}
	if body1 != body2 {
		t.Fatalf("expected replayed body %s, got %s", body1, body2)
	}

	// A different key executes the handler again.
	_, body3 := postTransfer(t, app, "other")
	if body3 == body1 {
		t.Fatalf("distinct keys must not share responses")
	}
}
