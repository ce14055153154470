package handler

import (
	"io"
	"mime/multipart"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/souvikdhua/cosmeticking/internal/application/catalog"
	"github.com/souvikdhua/cosmeticking/internal/application/media"
	catalogdomain "github.com/souvikdhua/cosmeticking/internal/domain/catalog"
)

// CartEvictor drops a deleted product from every session cart.
type CartEvictor interface {
	Evict(productID int64)
}

// StockReader reads current stock levels for the product view.
type StockReader interface {
	Stock(id int64) int
}

// ProductHandler serves the public catalog view and the admin product
// mutation surface.
type ProductHandler struct {
	BaseHandler
	catalog   *catalogapp.Service
	media     *media.Service
	stocks    StockReader
	carts     CartEvictor
	adminAuth gin.HandlerFunc
}

// NewProductHandler creates a product handler
func NewProductHandler(catalog *catalogapp.Service, mediaSvc *media.Service, stocks StockReader, carts CartEvictor, adminAuth gin.HandlerFunc) *ProductHandler {
	return &ProductHandler{
		catalog:   catalog,
		media:     mediaSvc,
		stocks:    stocks,
		carts:     carts,
		adminAuth: adminAuth,
	}
}

// RegisterRoutes registers public and admin product routes
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/products", h.List)
	rg.GET("/categories", h.Categories)

	admin := rg.Group("/admin", h.adminAuth)
	admin.GET("/products", h.List)
	admin.POST("/products", h.Create)
	admin.PUT("/products/:id", h.Update)
	admin.DELETE("/products/:id", h.Delete)
	admin.PUT("/products/:id/discount", h.SetDiscount)
	admin.POST("/products/:id/image", h.UploadImage)
}

// ProductResponse is a catalog product plus its current stock level.
type ProductResponse struct {
	catalogdomain.Product
	Stock int `json:"stock"`
}

func (h *ProductHandler) toResponse(p catalogdomain.Product) ProductResponse {
	return ProductResponse{Product: p, Stock: h.stocks.Stock(p.ID)}
}

// List returns the catalog filtered by search term and category,
// newest first.
func (h *ProductHandler) List(c *gin.Context) {
	term := c.Query("search")
	category := c.Query("category")

	products := h.catalog.List(term, category)
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, h.toResponse(p))
	}
	h.Success(c, out)
}

// Categories returns the distinct category list including "All".
func (h *ProductHandler) Categories(c *gin.Context) {
	h.Success(c, h.catalog.Categories())
}

// Create adds a new product with defaulted fields and initial stock.
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if !h.bindJSON(c, &req) {
		return
	}

	p, err := h.catalog.Create(c.Request.Context(), req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, h.toResponse(*p))
}

// Update edits a product's descriptive fields.
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.productIDParam(c)
	if !ok {
		return
	}
	var req catalogapp.UpdateProductRequest
	if !h.bindJSON(c, &req) {
		return
	}

	p, err := h.catalog.Update(c.Request.Context(), id, req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, h.toResponse(*p))
}

// Delete removes a product permanently and drops it from all carts.
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := h.productIDParam(c)
	if !ok {
		return
	}
	if err := h.catalog.Delete(c.Request.Context(), id); err != nil {
		h.DomainError(c, err)
		return
	}
	h.carts.Evict(id)
	h.NoContent(c)
}

// SetDiscount updates the discount percent and recomputes the sale price.
func (h *ProductHandler) SetDiscount(c *gin.Context) {
	id, ok := h.productIDParam(c)
	if !ok {
		return
	}
	var req catalogapp.SetDiscountRequest
	if !h.bindJSON(c, &req) {
		return
	}

	p, err := h.catalog.SetDiscount(c.Request.Context(), id, *req.Off)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, h.toResponse(*p))
}

// UploadImage accepts a multipart image, uploads it to the media
// backend, and links the URL to the product.
func (h *ProductHandler) UploadImage(c *gin.Context) {
	id, ok := h.productIDParam(c)
	if !ok {
		return
	}
	if _, exists := h.catalog.Get(id); !exists {
		h.NotFound(c, "Product not found")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		h.BadRequest(c, "Image file is required")
		return
	}
	data, contentType, err := readUpload(fileHeader)
	if err != nil {
		h.BadRequest(c, "Failed to read uploaded file")
		return
	}

	url, err := h.media.UploadProductImage(c.Request.Context(), id, fileHeader.Filename, contentType, data)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, gin.H{"image": url})
}

func readUpload(fh *multipart.FileHeader) ([]byte, string, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}
	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return data, contentType, nil
}
