package models

import "time"

// User 用户表
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`                                   // 主键
	Username     string    `gorm:"type:varchar(191);uniqueIndex;not null" json:"username"` // 用户名
	Email        string    `gorm:"type:varchar(191);uniqueIndex;not null" json:"email"`    // 邮箱
	PasswordHash string    `gorm:"not null" json:"-"`                                      // 密码哈希（不返回给前端）
	FirstName    *string   `gorm:"type:varchar(255)" json:"firstName"`                     // 名
	LastName     *string   `gorm:"type:varchar(255)" json:"lastName"`                      // 姓
	CreatedAt    time.Time `gorm:"index" json:"createdAt"`                                 // 创建时间
	UpdatedAt    time.Time `json:"updatedAt"`                                              // 更新时间

	// 关联
	Reviews []Review `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"` // 用户评价
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
