package handler

import (
	"github.com/gin-gonic/gin"
	inventoryapp "github.com/souvikdhua/cosmeticking/internal/application/inventory"
)

// InventoryHandler serves the admin stock management surface.
type InventoryHandler struct {
	BaseHandler
	ledger    *inventoryapp.Service
	adminAuth gin.HandlerFunc
}

// NewInventoryHandler creates an inventory handler
func NewInventoryHandler(ledger *inventoryapp.Service, adminAuth gin.HandlerFunc) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, adminAuth: adminAuth}
}

// RegisterRoutes registers admin inventory routes
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin", h.adminAuth)
	admin.GET("/inventory", h.Get)
	admin.PUT("/inventory/:id", h.SetStock)
}

// SetStockRequest carries the new absolute stock level.
type SetStockRequest struct {
	Stock *int `json:"stock" binding:"required"`
}

// Get returns the full stock ledger.
func (h *InventoryHandler) Get(c *gin.Context) {
	h.Success(c, h.ledger.Snapshot())
}

// SetStock sets a product's stock level. Negative input is floored
// to zero before the write.
func (h *InventoryHandler) SetStock(c *gin.Context) {
	id, ok := h.productIDParam(c)
	if !ok {
		return
	}
	var req SetStockRequest
	if !h.bindJSON(c, &req) {
		return
	}

	qty := *req.Stock
	if qty < 0 {
		qty = 0
	}
	if err := h.ledger.SetStock(c.Request.Context(), id, qty); err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, gin.H{"id": id, "stock": qty})
}
