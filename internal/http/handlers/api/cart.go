package api

import (
	"github.com/storefront-api/internal/http/handlers/shared"
	"github.com/storefront-api/internal/http/response"
	"github.com/storefront-api/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加入购物车请求
type AddCartItemRequest struct {
	UserID    string `json:"userId"`
	ProductID uint   `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

// UpdateCartItemRequest 修改购物车数量请求
type UpdateCartItemRequest struct {
	UserID    string `json:"userId"`
	ProductID uint   `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

// GetCart 获取购物车视图
func (h *Handler) GetCart(c *gin.Context) {
	view, err := h.CartService.GetView(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondWithMappedError(c, err, "Error while fetching cart")
		return
	}
	response.OK(c, view)
}

// AddCartItem 加入购物车
func (h *Handler) AddCartItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	view, err := h.CartService.AddItem(c.Request.Context(), service.AddCartItemInput{
		UserID:    req.UserID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondWithMappedError(c, err, "Error while adding item to cart")
		return
	}
	response.Created(c, view)
}

// UpdateCartItem 修改购物车商品数量，数量小于等于 0 时移除
func (h *Handler) UpdateCartItem(c *gin.Context) {
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if req.Quantity == nil {
		respondWithMappedError(c, service.ErrCartUpdateFieldsRequired, "Error while updating cart")
		return
	}
	view, err := h.CartService.SetItemQuantity(c.Request.Context(), req.UserID, req.ProductID, *req.Quantity)
	if err != nil {
		respondWithMappedError(c, err, "Error while updating cart")
		return
	}
	response.OK(c, view)
}

// RemoveCartItem 移除购物车商品
func (h *Handler) RemoveCartItem(c *gin.Context) {
	productID, ok := shared.ParamUint(c, "productId")
	if !ok {
		respondWithMappedError(c, service.ErrInvalidID, "Error while removing item from cart")
		return
	}
	view, err := h.CartService.RemoveItem(c.Request.Context(), c.Param("userId"), productID)
	if err != nil {
		respondWithMappedError(c, err, "Error while removing item from cart")
		return
	}
	response.OK(c, view)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	result, err := h.CartService.Clear(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondWithMappedError(c, err, "Error while clearing cart")
		return
	}
	response.OK(c, result)
}
