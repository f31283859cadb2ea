package response

import (
	"github.com/gin-gonic/gin"
)

// ErrorBody 错误响应结构
type ErrorBody struct {
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// OK 200 响应，直接输出资源本身
func OK(c *gin.Context, data interface{}) {
	c.JSON(CodeOK, data)
}

// Created 201 响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(CodeCreated, data)
}

// NoContent 204 响应
func NoContent(c *gin.Context) {
	c.Status(CodeNoContent)
}

// Message 仅包含提示消息的响应
func Message(c *gin.Context, statusCode int, msg string) {
	c.JSON(statusCode, gin.H{"message": msg})
}

// Error 错误响应
func Error(c *gin.Context, statusCode int, msg string) {
	c.JSON(statusCode, ErrorBody{
		Message:   msg,
		RequestID: requestID(c),
	})
}

// NotFound 404 响应
func NotFound(c *gin.Context, msg string) {
	Error(c, CodeNotFound, msg)
}

// BadRequest 400 响应
func BadRequest(c *gin.Context, msg string) {
	Error(c, CodeBadRequest, msg)
}

func requestID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if value, ok := c.Get("request_id"); ok {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}
