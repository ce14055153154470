package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/souvikdhua/cosmeticking/internal/domain/shared"
	"github.com/souvikdhua/cosmeticking/internal/interfaces/http/dto"
	"github.com/souvikdhua/cosmeticking/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the given status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// ValidationError sends a 400 validation error response with details
func (h *BaseHandler) ValidationError(c *gin.Context, details []dto.ValidationDetail) {
	c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
		"Request validation failed",
		middleware.GetRequestID(c),
		details,
	))
}

// DomainError maps a domain error onto the HTTP envelope.
func (h *BaseHandler) DomainError(c *gin.Context, err error) {
	var de *shared.DomainError
	if !errors.As(err, &de) {
		h.InternalError(c, "Internal server error")
		return
	}
	code, status := translateDomainCode(de.Code)
	h.Error(c, status, code, de.Message)
}

func translateDomainCode(code string) (string, int) {
	switch code {
	case "NOT_FOUND":
		return dto.ErrCodeNotFound, http.StatusNotFound
	case "UNAUTHORIZED":
		return dto.ErrCodeUnauthorized, http.StatusUnauthorized
	case "OUT_OF_STOCK":
		return dto.ErrCodeOutOfStock, http.StatusConflict
	case "EMPTY_CART":
		return dto.ErrCodeEmptyCart, http.StatusUnprocessableEntity
	case "IMAGE_TOO_LARGE":
		return dto.ErrCodePayloadTooLarge, http.StatusRequestEntityTooLarge
	case "PRODUCT_WRITE_FAILED", "ORDER_WRITE_FAILED", "STOCK_UPDATE_FAILED", "STORE_WRITE_FAILED", "UPLOAD_FAILED":
		return dto.ErrCodeStoreWrite, http.StatusBadGateway
	case "INVALID_NAME", "INVALID_INPUT":
		return dto.ErrCodeValidation, http.StatusBadRequest
	default:
		return dto.ErrCodeInternal, http.StatusInternalServerError
	}
}
