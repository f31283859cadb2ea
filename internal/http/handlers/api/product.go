package api

import (
	"github.com/storefront-api/internal/http/handlers/shared"
	"github.com/storefront-api/internal/http/response"
	"github.com/storefront-api/internal/models"
	"github.com/storefront-api/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateProductRequest 创建商品请求
type CreateProductRequest struct {
	Name        string        `json:"name"`
	CategoryID  *uint         `json:"categoryId"`
	Description *string       `json:"description"`
	Price       *models.Money `json:"price"`
	StockCount  *int          `json:"stockCount"`
	Brand       *string       `json:"brand"`
	ImageURL    *string       `json:"imageUrl"`
	IsAvailable *bool         `json:"isAvailable"`
}

// UpdateProductRequest 更新商品请求，未传字段保持不变
type UpdateProductRequest struct {
	Name        *string       `json:"name"`
	CategoryID  *uint         `json:"categoryId"`
	Description *string       `json:"description"`
	Price       *models.Money `json:"price"`
	StockCount  *int          `json:"stockCount"`
	Brand       *string       `json:"brand"`
	ImageURL    *string       `json:"imageUrl"`
	IsAvailable *bool         `json:"isAvailable"`
}

// ListProducts 商品列表
func (h *Handler) ListProducts(c *gin.Context) {
	isAvailable, ok := shared.QueryBool(c, "isAvailable")
	if !ok {
		respondError(c, response.CodeBadRequest, "isAvailable must be true or false", nil)
		return
	}
	categoryID, ok := shared.QueryUint(c, "categoryId")
	if !ok {
		respondError(c, response.CodeBadRequest, "categoryId must be a positive integer", nil)
		return
	}
	page, okPage := shared.QueryUint(c, "page")
	pageSize, okSize := shared.QueryUint(c, "pageSize")
	if !okPage || !okSize {
		respondError(c, response.CodeBadRequest, "page and pageSize must be positive integers", nil)
		return
	}
	normalizedPage, normalizedSize := shared.NormalizePagination(int(page), int(pageSize))

	products, err := h.ProductService.List(c.Request.Context(), service.ListProductsInput{
		SortBy:      c.Query("sortBy"),
		SortOrder:   c.Query("sortOrder"),
		IsAvailable: isAvailable,
		CategoryID:  categoryID,
		Page:        normalizedPage,
		PageSize:    normalizedSize,
	})
	if err != nil {
		respondWithMappedError(c, err, "Error while fetching products")
		return
	}
	response.OK(c, products)
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.ProductService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithMappedError(c, err, "Error while fetching product")
		return
	}
	response.OK(c, product)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	input := service.CreateProductInput{
		Name:        req.Name,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		StockCount:  req.StockCount,
		Brand:       req.Brand,
		ImageURL:    req.ImageURL,
		IsAvailable: req.IsAvailable,
		Price:       models.ZeroMoney(),
	}
	if req.Price != nil {
		input.Price = *req.Price
	}

	product, err := h.ProductService.Create(c.Request.Context(), input)
	if err != nil {
		respondWithMappedError(c, err, "Error while creating product")
		return
	}
	shared.RequestLog(c).Infow("product_created", "product_id", product.ID, "category_id", product.CategoryID)
	response.Created(c, product)
}

// UpdateProduct 部分更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	product, err := h.ProductService.Update(c.Request.Context(), c.Param("id"), service.UpdateProductInput{
		Name:        req.Name,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Price:       req.Price,
		StockCount:  req.StockCount,
		Brand:       req.Brand,
		ImageURL:    req.ImageURL,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		respondWithMappedError(c, err, "Error while updating product")
		return
	}
	response.OK(c, product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	product, err := h.ProductService.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithMappedError(c, err, "Error while deleting product")
		return
	}
	shared.RequestLog(c).Infow("product_deleted", "product_id", product.ID)
	response.NoContent(c)
}
