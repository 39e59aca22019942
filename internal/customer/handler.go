package customer

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes customer endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a customer HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	Name string `json:"name"`
}

type customerResponse struct {
	CustomerID int64  `json:"customer_id"`
	Name       string `json:"name"`
}

type accountResponse struct {
	AccountID  int64  `json:"account_id"`
	CustomerID int64  `json:"customer_id"`
	Balance    string `json:"balance"`
}

// Create registers a new customer.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	id, err := h.service.Create(c.UserContext(), req.Name)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"customer_id": id})
}

// Get returns customer details or 404 when the customer does not exist.
func (h *Handler) Get(c *fiber.Ctx) error {
	id, err := parseCustomerID(c)
	if err != nil {
		return err
	}
	cust, ok, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	if !ok {
		return fiber.NewError(http.StatusNotFound, "customer not found")
	}
	return c.Status(http.StatusOK).JSON(customerResponse{CustomerID: cust.ID, Name: cust.Name})
}

// Accounts lists the customer's accounts; 404 when the customer owns none.
func (h *Handler) Accounts(c *fiber.Ctx) error {
	id, err := parseCustomerID(c)
	if err != nil {
		return err
	}
	accounts, err := h.service.Accounts(c.UserContext(), id)
	if err != nil {
		return err
	}
	if len(accounts) == 0 {
		return fiber.NewError(http.StatusNotFound, "no accounts for the customer")
	}
	out := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, accountResponse{AccountID: a.ID, CustomerID: a.OwnerID, Balance: a.Balance.String()})
	}
	return c.Status(http.StatusOK).JSON(out)
}

func parseCustomerID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("customerId"), 10, 64)
	if err != nil {
		return 0, fiber.NewError(http.StatusBadRequest, "invalid customerId")
	}
	return id, nil
}
