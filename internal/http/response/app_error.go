package response

import "github.com/gin-gonic/gin"

// AppError 接口错误，Message 返回给客户端，Cause 仅用于日志
type AppError struct {
	Status  int
	Message string
	Cause   error
}

// Error 客户端可见的消息，有原始错误时追加在冒号之后
func (e *AppError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Write 输出错误响应
func (e *AppError) Write(c *gin.Context) {
	Error(c, e.Status, e.Error())
}

// WrapError 包装错误
func WrapError(status int, message string, cause error) *AppError {
	return &AppError{
		Status:  status,
		Message: message,
		Cause:   cause,
	}
}
