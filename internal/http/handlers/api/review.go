package api

import (
	"bytes"
	"encoding/json"

	"github.com/storefront-api/internal/http/handlers/shared"
	"github.com/storefront-api/internal/http/response"
	"github.com/storefront-api/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateReviewRequest 创建评价请求
type CreateReviewRequest struct {
	UserID    uint            `json:"userId"`
	ProductID uint            `json:"productId"`
	Rating    json.RawMessage `json:"rating"`
	Comment   *string         `json:"comment"`
}

// UpdateReviewRequest 更新评价请求
type UpdateReviewRequest struct {
	Rating  json.RawMessage `json:"rating"`
	Comment *string         `json:"comment"`
}

// parseRating 评分必须是 1-5 的整数，缺省时返回 nil
func parseRating(raw json.RawMessage) (*int, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, true
	}
	if raw[0] != '-' && (raw[0] < '0' || raw[0] > '9') {
		return nil, false
	}
	var number json.Number
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	if err := decoder.Decode(&number); err != nil {
		return nil, false
	}
	value, err := number.Int64()
	if err != nil || !service.ValidRating(int(value)) {
		return nil, false
	}
	rating := int(value)
	return &rating, true
}

func respondInvalidRating(c *gin.Context) {
	respondError(c, response.CodeBadRequest, service.ErrInvalidRating.Error(), nil)
}

// ListReviews 评价列表
func (h *Handler) ListReviews(c *gin.Context) {
	reviews, err := h.ReviewService.List(c.Request.Context())
	if err != nil {
		respondWithMappedError(c, err, "Error while fetching reviews")
		return
	}
	response.OK(c, reviews)
}

// GetReview 评价详情
func (h *Handler) GetReview(c *gin.Context) {
	review, err := h.ReviewService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithMappedError(c, err, "Error while fetching review")
		return
	}
	response.OK(c, review)
}

// CreateReview 创建评价
func (h *Handler) CreateReview(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	rating, ok := parseRating(req.Rating)
	if !ok || rating == nil {
		respondInvalidRating(c)
		return
	}
	review, err := h.ReviewService.Create(c.Request.Context(), service.CreateReviewInput{
		UserID:    req.UserID,
		ProductID: req.ProductID,
		Rating:    *rating,
		Comment:   req.Comment,
	})
	if err != nil {
		respondWithMappedError(c, err, "Error while creating review")
		return
	}
	shared.RequestLog(c).Infow("review_created", "review_id", review.ID, "product_id", review.ProductID)
	response.Created(c, review)
}

// UpdateReview 更新评价
func (h *Handler) UpdateReview(c *gin.Context) {
	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	rating, ok := parseRating(req.Rating)
	if !ok {
		respondInvalidRating(c)
		return
	}
	review, err := h.ReviewService.Update(c.Request.Context(), c.Param("id"), service.UpdateReviewInput{
		Rating:  rating,
		Comment: req.Comment,
	})
	if err != nil {
		respondWithMappedError(c, err, "Error while updating review")
		return
	}
	response.OK(c, review)
}

// DeleteReview 删除评价
func (h *Handler) DeleteReview(c *gin.Context) {
	if err := h.ReviewService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondWithMappedError(c, err, "Error while deleting review")
		return
	}
	response.OK(c, "Review deleted successfully")
}
