package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/souvikdhua/cosmeticking/internal/application/identity"
	"github.com/souvikdhua/cosmeticking/internal/interfaces/http/middleware"
)

// AuthHandler serves the admin passphrase gate.
type AuthHandler struct {
	BaseHandler
	auth      *identity.Service
	adminAuth gin.HandlerFunc
}

// NewAuthHandler creates an auth handler
func NewAuthHandler(auth *identity.Service, adminAuth gin.HandlerFunc) *AuthHandler {
	return &AuthHandler{auth: auth, adminAuth: adminAuth}
}

// RegisterRoutes registers admin auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.POST("/login", h.Login)
	admin.POST("/logout", h.adminAuth, h.Logout)
}

// LoginRequest carries the admin passphrase.
type LoginRequest struct {
	Passphrase string `json:"passphrase" binding:"required"`
}

// Login checks the passphrase and issues an admin token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !h.bindJSON(c, &req) {
		return
	}

	token, err := h.auth.Login(req.Passphrase)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, gin.H{"token": token})
}

// Logout revokes the caller's admin token.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.auth.Logout(middleware.GetAdminToken(c))
	h.NoContent(c)
}
