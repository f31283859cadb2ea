package models

import "time"

// Review 商品评价表
type Review struct {
	ID        uint      `gorm:"primarykey" json:"id"`            // 主键
	UserID    uint      `gorm:"not null;index" json:"userId"`    // 用户ID
	ProductID uint      `gorm:"not null;index" json:"productId"` // 商品ID
	Rating    int       `gorm:"not null" json:"rating"`          // 评分 1-5
	Comment   *string   `gorm:"type:text" json:"comment"`        // 评价内容
	CreatedAt time.Time `gorm:"index" json:"createdAt"`          // 创建时间
	UpdatedAt time.Time `json:"updatedAt"`                       // 更新时间

	// 关联
	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`                                   // 评价用户
	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product,omitempty"` // 评价商品
}

// TableName 指定表名
func (Review) TableName() string {
	return "reviews"
}
