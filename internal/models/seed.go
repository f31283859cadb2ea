package models

import (
	"github.com/storefront-api/internal/constants"
	"github.com/storefront-api/internal/logger"

	"gorm.io/gorm"
)

// SeedProduct 初始化商品数据
type SeedProduct struct {
	Name        string
	Category    string
	Description string
	Price       string
	StockCount  int
	Brand       string
	ImageURL    string
	IsAvailable bool
}

// DefaultSeedProducts 默认示例商品
var DefaultSeedProducts = []SeedProduct{
	{
		Name:        `MacBook Pro 16"`,
		Category:    "Laptopy",
		Description: "Laptop Apple z procesorem M1 Pro, 16GB RAM, 512GB SSD",
		Price:       "9999.99",
		StockCount:  15,
		Brand:       "Apple",
		ImageURL:    "https://example.com/macbook.jpg",
		IsAvailable: true,
	},
}

// SeedCatalog 写入兜底分类与示例商品，已存在的同名记录跳过
func SeedCatalog(db *gorm.DB, items []SeedProduct) (int, error) {
	created := 0
	err := db.Transaction(func(tx *gorm.DB) error {
		sentinelDesc := constants.SentinelCategoryDescription
		sentinel := Category{Name: constants.SentinelCategoryName, Description: &sentinelDesc}
		if err := tx.Where("name = ?", sentinel.Name).FirstOrCreate(&sentinel).Error; err != nil {
			return err
		}

		for _, item := range items {
			category := Category{Name: item.Category}
			if item.Category == "" {
				category = sentinel
			} else if err := tx.Where("name = ?", item.Category).FirstOrCreate(&category).Error; err != nil {
				return err
			}

			var count int64
			if err := tx.Model(&Product{}).Where("name = ?", item.Name).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}

			price, err := NewMoneyFromString(item.Price)
			if err != nil {
				return err
			}
			product := Product{
				Name:        item.Name,
				CategoryID:  category.ID,
				Price:       price,
				StockCount:  item.StockCount,
				IsAvailable: item.IsAvailable,
			}
			if item.Description != "" {
				description := item.Description
				product.Description = &description
			}
			if item.Brand != "" {
				brand := item.Brand
				product.Brand = &brand
			}
			if item.ImageURL != "" {
				imageURL := item.ImageURL
				product.ImageURL = &imageURL
			}
			if err := tx.Omit("Category").Create(&product).Error; err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	logger.Infow("catalog_seeded", "created", created, "total", len(items))
	return created, nil
}
