package handler

import (
	"agrichain/internal/middleware"
	"agrichain/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProvenanceHandler struct {
	service service.ProvenanceService
}

func NewProvenanceHandler(s service.ProvenanceService) *ProvenanceHandler {
	return &ProvenanceHandler{service: s}
}

// Track returns a product's full custody chain. Public: no auth.
// GET /api/v1/track/:productId
func (h *ProvenanceHandler) Track(c *fiber.Ctx) error {
	productID := c.Params("productId")

	view, err := h.service.Track(productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

// GetStock returns the caller's current holdings
// GET /api/v1/stock
func (h *ProvenanceHandler) GetStock(c *fiber.Ctx) error {
	identity := middleware.CallerIdentity(c)

	stocks, err := h.service.ListStock(identity.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stocks)
}

// GetTransactions returns the caller's history as seller or buyer,
// newest first
// GET /api/v1/transactions
func (h *ProvenanceHandler) GetTransactions(c *fiber.Ctx) error {
	identity := middleware.CallerIdentity(c)

	transactions, err := h.service.ListTransactions(identity.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transactions)
}

// GetSummary returns aggregate ledger activity for the caller
// GET /api/v1/summary
func (h *ProvenanceHandler) GetSummary(c *fiber.Ctx) error {
	identity := middleware.CallerIdentity(c)

	summary, err := h.service.Summary(identity.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
