package models

import "time"

// Product 商品表
type Product struct {
	ID          uint      `gorm:"primarykey" json:"id"`                                     // 主键
	Name        string    `gorm:"type:varchar(255);not null;index" json:"name"`             // 商品名称
	CategoryID  uint      `gorm:"not null;index" json:"categoryId"`                         // 分类ID
	Description *string   `gorm:"type:text" json:"description"`                             // 描述
	Price       Money     `gorm:"type:decimal(20,2);not null;default:0;index" json:"price"` // 价格
	StockCount  int       `gorm:"not null;default:0;index" json:"stockCount"`               // 库存
	Brand       *string   `gorm:"type:varchar(255)" json:"brand"`                           // 品牌
	ImageURL    *string   `gorm:"type:varchar(1000)" json:"imageUrl"`                       // 图片地址
	IsAvailable bool      `gorm:"not null;index" json:"isAvailable"`                        // 是否可售（默认值由服务层填充）
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`                                   // 创建时间
	UpdatedAt   time.Time `json:"updatedAt"`                                                // 更新时间

	// 关联
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
