package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	cartapp "github.com/souvikdhua/cosmeticking/internal/application/cart"
	catalogapp "github.com/souvikdhua/cosmeticking/internal/application/catalog"
	"github.com/souvikdhua/cosmeticking/internal/application/checkout"
	catalogdomain "github.com/souvikdhua/cosmeticking/internal/domain/catalog"
	"github.com/souvikdhua/cosmeticking/internal/interfaces/http/middleware"
)

// CartHandler serves the session cart and checkout endpoints.
type CartHandler struct {
	BaseHandler
	carts    *cartapp.Service
	catalog  *catalogapp.Service
	stocks   StockReader
	checkout *checkout.Service
}

// NewCartHandler creates a cart handler
func NewCartHandler(carts *cartapp.Service, catalog *catalogapp.Service, stocks StockReader, checkoutSvc *checkout.Service) *CartHandler {
	return &CartHandler{
		carts:    carts,
		catalog:  catalog,
		stocks:   stocks,
		checkout: checkoutSvc,
	}
}

// RegisterRoutes registers cart and checkout routes
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/cart", h.Get)
	rg.POST("/cart/items", h.AddItem)
	rg.DELETE("/cart/items/:id", h.RemoveItem)
	rg.DELETE("/cart", h.Clear)
	rg.POST("/checkout", h.Checkout)
}

// AddItemRequest identifies the product to add to the cart.
type AddItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
}

// CartLineResponse is one cart entry with its product detail.
type CartLineResponse struct {
	Product   catalogdomain.Product `json:"product"`
	Quantity  int                   `json:"quantity"`
	LineTotal decimal.Decimal       `json:"line_total"`
}

// CartResponse is the full cart view for the current session.
type CartResponse struct {
	Items      []CartLineResponse `json:"items"`
	TotalItems int                `json:"total_items"`
	Total      decimal.Decimal    `json:"total"`
}

func (h *CartHandler) view(sessionID string) CartResponse {
	ct := h.carts.Get(sessionID)
	items := make([]CartLineResponse, 0, len(ct))
	for _, id := range ct.ProductIDs() {
		p, ok := h.catalog.Get(id)
		if !ok {
			continue
		}
		qty := ct[id]
		items = append(items, CartLineResponse{
			Product:   p,
			Quantity:  qty,
			LineTotal: p.Price.Mul(decimal.NewFromInt(int64(qty))),
		})
	}
	return CartResponse{
		Items:      items,
		TotalItems: ct.TotalItems(),
		Total:      ct.TotalPrice(h.catalog.Price),
	}
}

// Get returns the current session's cart.
func (h *CartHandler) Get(c *gin.Context) {
	h.Success(c, h.view(middleware.GetSessionID(c)))
}

// AddItem adds one unit of a product, capped at available stock.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if _, ok := h.catalog.Get(req.ProductID); !ok {
		h.NotFound(c, "Product not found")
		return
	}

	sessionID := middleware.GetSessionID(c)
	if err := h.carts.Add(sessionID, req.ProductID, h.stocks.Stock(req.ProductID)); err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, h.view(sessionID))
}

// RemoveItem removes one unit of a product from the cart.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, ok := h.productIDParam(c)
	if !ok {
		return
	}
	sessionID := middleware.GetSessionID(c)
	h.carts.Remove(sessionID, id)
	h.Success(c, h.view(sessionID))
}

// Clear empties the current session's cart.
func (h *CartHandler) Clear(c *gin.Context) {
	h.carts.Clear(middleware.GetSessionID(c))
	h.NoContent(c)
}

// Checkout places an order from the session cart, reconciles stock,
// and returns the receipt.
func (h *CartHandler) Checkout(c *gin.Context) {
	result, err := h.checkout.Checkout(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, result)
}
