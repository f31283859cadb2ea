package constants

import "time"

// 兜底分类常量
const (
	SentinelCategoryName        = "Uncategorized"
	SentinelCategoryDescription = "Default category for products"
)

// 购物车常量
const (
	// CartTTL 购物车无操作自动过期时间
	CartTTL = 7 * 24 * time.Hour
	// CartDefaultQuantity 添加商品未指定数量时的默认值
	CartDefaultQuantity = 1
	// CartUnavailableProductName 商品已删除时的占位名称
	CartUnavailableProductName = "Product no longer available"
)

// 购物车存储驱动
const (
	CartDriverMongo = "mongo"
	CartDriverRedis = "redis"
)

// 数据库驱动
const (
	DatabaseDriverSQLite   = "sqlite"
	DatabaseDriverPostgres = "postgres"
)

// 商品排序字段（对外名称）
const (
	ProductSortName       = "name"
	ProductSortPrice      = "price"
	ProductSortCreatedAt  = "createdAt"
	ProductSortStockCount = "stockCount"
)

// 排序方向
const (
	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// 评分范围
const (
	ReviewRatingMin = 1
	ReviewRatingMax = 5
)
