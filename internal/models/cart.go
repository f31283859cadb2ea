package models

import "time"

// CartItem 购物车条目，只保存商品引用与数量
type CartItem struct {
	ProductID uint `bson:"productId" json:"productId"`
	Quantity  int  `bson:"quantity" json:"quantity"`
}

// Cart 购物车文档，按 userId 唯一
type Cart struct {
	UserID    string     `bson:"userId" json:"userId"`
	Items     []CartItem `bson:"items" json:"items"`
	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// FindItem 返回商品在购物车中的下标，不存在返回 -1
func (c *Cart) FindItem(productID uint) int {
	if c == nil {
		return -1
	}
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// RemoveItemAt 移除指定下标的条目
func (c *Cart) RemoveItemAt(idx int) {
	if c == nil || idx < 0 || idx >= len(c.Items) {
		return
	}
	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
}

// Touch 刷新时间戳，首次保存时补齐创建时间
func (c *Cart) Touch(now time.Time) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
}
