package routes

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/bankcore/bank_core/internal/account"
	"github.com/bankcore/bank_core/internal/config"
	"github.com/bankcore/bank_core/internal/customer"
	"github.com/bankcore/bank_core/internal/middleware"
	"github.com/bankcore/bank_core/internal/store"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes. Without a database
// the ledger runs on the in-memory store, which is only acceptable in dev.
func Setup(app *fiber.App, d Deps) error {
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.Env)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.Env)
		}
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	RegisterHealthRoutes(app, d)

	var ledgerStore store.Store
	if d.DB != nil {
		ledgerStore = store.NewPostgres(d.DB)
	} else {
		ledgerStore = store.NewInMemory()
	}

	customerHandler := customer.NewHandler(customer.NewService(ledgerStore))
	accountHandler := account.NewHandler(account.NewService(ledgerStore))

	api := app.Group("/api/v1")
	RegisterCustomerRoutes(api, customerHandler)
	RegisterAccountRoutes(api, accountHandler)
	RegisterTransferRoutes(api, accountHandler)

	return nil
}
