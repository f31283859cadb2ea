package api

import (
	"github.com/storefront-api/internal/http/handlers/shared"
	"github.com/storefront-api/internal/http/response"
	"github.com/storefront-api/internal/models"
	"github.com/storefront-api/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateUserRequest 创建用户请求
type CreateUserRequest struct {
	Username  string  `json:"username"`
	Email     string  `json:"email" binding:"omitempty,email"`
	Password  string  `json:"password"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// UpdateUserRequest 更新用户请求
type UpdateUserRequest struct {
	Username  *string `json:"username"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Password  *string `json:"password"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// userWithReviews 用户详情，评价为空时输出空数组
type userWithReviews struct {
	*models.User
	Reviews []models.Review `json:"reviews"`
}

// ListUsers 用户列表
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.UserService.List(c.Request.Context())
	if err != nil {
		respondWithMappedError(c, err, "Error while fetching users")
		return
	}
	response.OK(c, users)
}

// GetUser 用户详情（含评价）
func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.UserService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithMappedError(c, err, "Error while fetching user")
		return
	}
	reviews := user.Reviews
	if reviews == nil {
		reviews = []models.Review{}
	}
	response.OK(c, userWithReviews{User: user, Reviews: reviews})
}

// CreateUser 创建用户
func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	user, err := h.UserService.Create(c.Request.Context(), service.CreateUserInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondWithMappedError(c, err, "Error while creating user")
		return
	}
	shared.RequestLog(c).Infow("user_created", "user_id", user.ID)
	response.Created(c, user)
}

// UpdateUser 部分更新用户
func (h *Handler) UpdateUser(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	user, err := h.UserService.Update(c.Request.Context(), c.Param("id"), service.UpdateUserInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondWithMappedError(c, err, "Error while updating user")
		return
	}
	response.OK(c, user)
}

// DeleteUser 删除用户
func (h *Handler) DeleteUser(c *gin.Context) {
	user, err := h.UserService.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithMappedError(c, err, "Error while deleting user")
		return
	}
	response.OK(c, gin.H{
		"message": "User deleted successfully",
		"id":      user.ID,
	})
}
