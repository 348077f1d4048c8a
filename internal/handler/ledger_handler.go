package handler

import (
	"errors"
	"time"

	"agrichain/internal/middleware"
	"agrichain/internal/model"
	"agrichain/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type LedgerHandler struct {
	service service.LedgerService
}

func NewLedgerHandler(s service.LedgerService) *LedgerHandler {
	return &LedgerHandler{service: s}
}

// transferBody is the wire shape of a sale. buyer_id may be a user id,
// null, or the legacy literal "customer"; the last two both mean the
// anonymous end customer.
type transferBody struct {
	ProductID string          `json:"product_id"`
	BuyerID   *string         `json:"buyer_id"`
	Price     decimal.Decimal `json:"price"`
	Quantity  decimal.Decimal `json:"quantity"`
	Date      string          `json:"date"`
}

func (b *transferBody) buyer() model.Buyer {
	if b.BuyerID == nil || *b.BuyerID == "" || *b.BuyerID == "customer" {
		return model.AnonymousCustomer()
	}
	return model.IdentifiedBuyer(*b.BuyerID)
}

// CreateProduct registers a new product batch
// POST /api/v1/products
func (h *LedgerHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	identity := middleware.CallerIdentity(c)
	product, err := h.service.CreateProduct(identity, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Product added successfully", "product": product})
}

// TransferProduct records one sale
// POST /api/v1/transfers
func (h *LedgerHandler) TransferProduct(c *fiber.Ctx) error {
	var body transferBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	date := time.Now()
	if body.Date != "" {
		parsed, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid date, expected YYYY-MM-DD"})
		}
		date = parsed
	}

	identity := middleware.CallerIdentity(c)
	req := &service.TransferRequest{
		ProductID: body.ProductID,
		Buyer:     body.buyer(),
		Price:     body.Price,
		Quantity:  body.Quantity,
		Date:      date,
	}

	transaction, err := h.service.TransferProduct(identity, req)
	if err != nil {
		return respondError(c, err)
	}

	message := "Product sold successfully"
	if transaction.Terminal() {
		message = "Sold to customer successfully"
	}
	return c.Status(201).JSON(fiber.Map{"message": message, "transaction": transaction})
}

// respondError maps business-rule errors onto HTTP statuses. Storage
// internals never reach the caller.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrForbidden):
		return c.Status(403).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrDuplicateProduct),
		errors.Is(err, service.ErrDuplicateUser):
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrProductNotInStock),
		errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrUnknownBuyer):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(500).JSON(fiber.Map{"error": "Internal server error"})
	}
}
