package api

import (
	"github.com/storefront-api/internal/http/handlers/shared"
	"github.com/storefront-api/internal/http/response"
	"github.com/storefront-api/internal/models"
	"github.com/storefront-api/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryRequest 创建/更新分类请求
type CategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// categoryWithProducts 分类详情，商品为空时输出空数组
type categoryWithProducts struct {
	*models.Category
	Products []models.Product `json:"products"`
}

// ListCategories 分类列表
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryService.List(c.Request.Context())
	if err != nil {
		respondWithMappedError(c, err, "Error while fetching categories")
		return
	}
	response.OK(c, categories)
}

// GetCategory 分类详情
func (h *Handler) GetCategory(c *gin.Context) {
	category, err := h.CategoryService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithMappedError(c, err, "Error while fetching category")
		return
	}
	response.OK(c, category)
}

// GetCategoryProducts 分类及其下全部商品
func (h *Handler) GetCategoryProducts(c *gin.Context) {
	category, err := h.CategoryService.GetWithProducts(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithMappedError(c, err, "Error while fetching category products")
		return
	}
	products := category.Products
	if products == nil {
		products = []models.Product{}
	}
	response.OK(c, categoryWithProducts{Category: category, Products: products})
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	input := service.CreateCategoryInput{Description: req.Description}
	if req.Name != nil {
		input.Name = *req.Name
	}
	category, err := h.CategoryService.Create(c.Request.Context(), input)
	if err != nil {
		respondWithMappedError(c, err, "Error while creating category")
		return
	}
	shared.RequestLog(c).Infow("category_created", "category_id", category.ID)
	response.Created(c, category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	category, err := h.CategoryService.Update(c.Request.Context(), c.Param("id"), service.UpdateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondWithMappedError(c, err, "Error while updating category")
		return
	}
	response.OK(c, gin.H{
		"message":  "Category updated successfully",
		"category": category,
	})
}

// DeleteCategory 删除分类，商品转移到兜底分类
func (h *Handler) DeleteCategory(c *gin.Context) {
	category, err := h.CategoryService.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithMappedError(c, err, "Error while deleting category")
		return
	}
	shared.RequestLog(c).Infow("category_deleted", "category_id", category.ID)
	response.Message(c, response.CodeOK, "Category deleted successfully")
}
