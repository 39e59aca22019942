package account

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/bankcore/bank_core/internal/store"
)

// Handler exposes account and transfer endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs an account HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	CustomerID int64           `json:"customer_id"`
	Balance    decimal.Decimal `json:"balance"`
}

type accountResponse struct {
	AccountID  int64  `json:"account_id"`
	CustomerID int64  `json:"customer_id"`
	Balance    string `json:"balance"`
}

type transferRequest struct {
	OriginAccountID      int64           `json:"origin_account_id"`
	DestinationAccountID int64           `json:"destination_account_id"`
	Amount               decimal.Decimal `json:"amount"`
}

type transactionResponse struct {
	OriginAccountID      int64     `json:"origin_account_id"`
	DestinationAccountID int64     `json:"destination_account_id"`
	Amount               string    `json:"amount"`
	Timestamp            time.Time `json:"timestamp"`
}

// Create opens a new account for an existing customer.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.Balance.GreaterThan(MaxAmount) {
		return fiber.NewError(http.StatusBadRequest, "balance exceeds the maximum allowed amount")
	}
	id, err := h.service.Create(c.UserContext(), req.CustomerID, req.Balance)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"account_id": id})
}

// Get returns account details or 404 when the account does not exist.
func (h *Handler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "accountId")
	if err != nil {
		return err
	}
	account, ok, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	if !ok {
		return fiber.NewError(http.StatusNotFound, "account not found")
	}
	return c.Status(http.StatusOK).JSON(toAccountResponse(account))
}

// History lists every transaction touching the account; 404 when there are
// none.
func (h *Handler) History(c *fiber.Ctx) error {
	id, err := parseID(c, "accountId")
	if err != nil {
		return err
	}
	transactions, err := h.service.TransferHistory(c.UserContext(), id)
	if err != nil {
		return err
	}
	if len(transactions) == 0 {
		return fiber.NewError(http.StatusNotFound, "no transactions for the account")
	}
	out := make([]transactionResponse, 0, len(transactions))
	for _, trx := range transactions {
		out = append(out, transactionResponse{
			OriginAccountID:      trx.OriginAccountID,
			DestinationAccountID: trx.DestinationAccountID,
			Amount:               trx.Amount.String(),
			Timestamp:            trx.Timestamp,
		})
	}
	return c.Status(http.StatusOK).JSON(out)
}

// Transfer executes a fund movement between two accounts.
func (h *Handler) Transfer(c *fiber.Ctx) error {
	var req transferRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.Amount.GreaterThan(MaxAmount) {
		return fiber.NewError(http.StatusBadRequest, "amount exceeds the maximum allowed amount")
	}
	if err := h.service.Transfer(c.UserContext(), req.OriginAccountID, req.DestinationAccountID, req.Amount); err != nil {
		return err
	}
	return c.SendStatus(http.StatusAccepted)
}

func toAccountResponse(a store.Account) accountResponse {
	return accountResponse{AccountID: a.ID, CustomerID: a.OwnerID, Balance: a.Balance.String()}
}

func parseID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil {
		return 0, fiber.NewError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
