package repository

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page        int
	PageSize    int
	CategoryID  uint
	IsAvailable *bool
	// OrderBy 为已校验的列名，空表示按 id 升序
	OrderBy   string
	OrderDesc bool
}
