package api

import (
	"errors"
	"strings"

	handlershared "github.com/storefront-api/internal/http/handlers/shared"
	"github.com/storefront-api/internal/http/response"
	"github.com/storefront-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
}

// domainErrorRules 业务错误分类到状态码，命中时直接返回错误消息
var domainErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidArgument, code: response.CodeBadRequest},
	{target: service.ErrNotFound, code: response.CodeNotFound},
	{target: service.ErrConflict, code: response.CodeBadRequest},
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

// respondWithMappedError 未命中规则的错误按 500 返回并附带原始错误
func respondWithMappedError(c *gin.Context, err error, fallbackMsg string) {
	for _, rule := range domainErrorRules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, err.Error(), nil)
			return
		}
	}
	respondError(c, response.CodeInternal, fallbackMsg, err)
}

// respondBindError 请求体解析失败
func respondBindError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		fe := validationErrs[0]
		respondError(c, response.CodeBadRequest, validationMessage(fe), nil)
		return
	}
	handlershared.RequestLog(c).Debugw("request_bind_failed", "error", err)
	respondError(c, response.CodeBadRequest, "Invalid request body", nil)
}

func validationMessage(fe validator.FieldError) string {
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return "Invalid email format"
	default:
		return field + " is invalid"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
