package models

import "time"

// Category 商品分类表
type Category struct {
	ID          uint      `gorm:"primarykey" json:"id"`                               // 主键
	Name        string    `gorm:"type:varchar(191);uniqueIndex;not null" json:"name"` // 分类名称（唯一）
	Description *string   `gorm:"type:text" json:"description"`                       // 描述
	CreatedAt   time.Time `json:"createdAt"`                                          // 创建时间
	UpdatedAt   time.Time `json:"updatedAt"`                                          // 更新时间

	// 关联
	Products []Product `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"products,omitempty"` // 分类下商品
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
