package service

import "errors"

// 错误分类，HTTP 层据此映射状态码
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
)

// domainError 业务错误，消息直接返回给客户端
type domainError struct {
	kind error
	msg  string
}

func (e *domainError) Error() string {
	return e.msg
}

func (e *domainError) Unwrap() error {
	return e.kind
}

func newDomainError(kind error, msg string) error {
	return &domainError{kind: kind, msg: msg}
}

// 通用
var (
	ErrInvalidID         = newDomainError(ErrInvalidArgument, "Invalid ID format")
	ErrInvalidPagination = newDomainError(ErrInvalidArgument, "Invalid pagination parameters")
	ErrNoFieldsToUpdate  = newDomainError(ErrInvalidArgument, "No fields to update")
)

// 商品
var (
	ErrProductNotFound     = newDomainError(ErrNotFound, "Product not found")
	ErrProductNameRequired = newDomainError(ErrInvalidArgument, "Product name is required")
	ErrInvalidPrice        = newDomainError(ErrInvalidArgument, "Price must be a non-negative number")
	ErrInvalidStockCount   = newDomainError(ErrInvalidArgument, "Stock count must be a non-negative integer")
	ErrInvalidSortField    = newDomainError(ErrInvalidArgument, "Invalid sort field")
	ErrUnknownCategory     = newDomainError(ErrInvalidArgument, "Category does not exist")
)

// 分类
var (
	ErrCategoryNotFound          = newDomainError(ErrNotFound, "Category not found")
	ErrCategoryNameRequired      = newDomainError(ErrInvalidArgument, "Category name is required")
	ErrCategoryNameExists        = newDomainError(ErrConflict, "Category name already exists")
	ErrSentinelCategoryProtected = newDomainError(ErrInvalidArgument, "The default category cannot be deleted")
)

// 用户
var (
	ErrUserNotFound       = newDomainError(ErrNotFound, "User not found")
	ErrUserFieldsRequired = newDomainError(ErrInvalidArgument, "username, email and password are required")
	ErrUserExists         = newDomainError(ErrConflict, "Username or email already exists")
	ErrWeakPassword       = newDomainError(ErrInvalidArgument, "Password does not meet the password policy")
)

// 评价
var (
	ErrReviewNotFound         = newDomainError(ErrNotFound, "Review not found")
	ErrInvalidRating          = newDomainError(ErrInvalidArgument, "Rating must be an integer between 1 and 5")
	ErrReviewReferenceInvalid = newDomainError(ErrInvalidArgument, "Referenced user or product does not exist")
)

// 购物车
var (
	ErrCartAddFieldsRequired    = newDomainError(ErrInvalidArgument, "userId and productId are required")
	ErrCartUpdateFieldsRequired = newDomainError(ErrInvalidArgument, "userId, productId and quantity are required")
	ErrCartUserRequired         = newDomainError(ErrInvalidArgument, "userId is required")
	ErrInvalidQuantity          = newDomainError(ErrInvalidArgument, "Quantity must be at least 1")
	ErrCartQuantityTooLarge     = newDomainError(ErrInvalidArgument, "Quantity is too large")
	ErrCartNotFound             = newDomainError(ErrNotFound, "Cart not found")
	ErrCartItemNotFound         = newDomainError(ErrNotFound, "Product not found in cart")
)
