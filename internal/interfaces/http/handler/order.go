package handler

import (
	"github.com/gin-gonic/gin"
	orderapp "github.com/souvikdhua/cosmeticking/internal/application/order"
)

// OrderHandler serves the admin order history surface.
type OrderHandler struct {
	BaseHandler
	history   *orderapp.Service
	adminAuth gin.HandlerFunc
}

// NewOrderHandler creates an order handler
func NewOrderHandler(history *orderapp.Service, adminAuth gin.HandlerFunc) *OrderHandler {
	return &OrderHandler{history: history, adminAuth: adminAuth}
}

// RegisterRoutes registers admin order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin", h.adminAuth)
	admin.GET("/orders", h.List)
	admin.DELETE("/orders", h.Clear)
}

// List returns all orders, newest first.
func (h *OrderHandler) List(c *gin.Context) {
	h.Success(c, h.history.List())
}

// Clear deletes the entire order history.
func (h *OrderHandler) Clear(c *gin.Context) {
	if err := h.history.Clear(c.Request.Context()); err != nil {
		h.DomainError(c, err)
		return
	}
	h.NoContent(c)
}
