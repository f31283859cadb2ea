package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/storefront-api/internal/models"

	"gorm.io/gorm"
)

func TestCategoryReassignProducts(t *testing.T) {
	db := openTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	from := seedCategory(t, db, "Old")
	to := seedCategory(t, db, "Uncategorized")
	seedProduct(t, db, from.ID, "A", 1, 1, true)
	seedProduct(t, db, from.ID, "B", 1, 1, true)

	moved, err := repo.ReassignProducts(ctx, from.ID, to.ID)
	if err != nil {
		t.Fatalf("reassign failed: %v", err)
	}
	if moved != 2 {
		t.Fatalf("want 2 moved got %d", moved)
	}
	if err := repo.Delete(ctx, from.ID); err != nil {
		t.Fatalf("delete category failed: %v", err)
	}

	target, err := repo.GetWithProducts(ctx, to.ID)
	if err != nil || target == nil {
		t.Fatalf("load target category failed: %v", err)
	}
	if len(target.Products) != 2 {
		t.Fatalf("want 2 products in target got %d", len(target.Products))
	}
}

func TestCategoryDuplicateNameTranslated(t *testing.T) {
	db := openTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, &models.Category{Name: "Books"}); err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	err := repo.Create(ctx, &models.Category{Name: "Books"})
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("want ErrDuplicatedKey got %v", err)
	}
}

func TestCategoryGetByName(t *testing.T) {
	db := openTestDB(t)
	repo := NewCategoryRepository(db)
	seedCategory(t, db, "Games")

	got, err := repo.GetByName(context.Background(), "Games")
	if err != nil || got == nil {
		t.Fatalf("get by name failed: %v", err)
	}
	missing, err := repo.GetByName(context.Background(), "Nope")
	if err != nil || missing != nil {
		t.Fatalf("missing name should be nil, got %+v err=%v", missing, err)
	}
}

func TestCategoryEnsureByNameKeepsExisting(t *testing.T) {
	db := openTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	original := "first"
	created, isNew, err := repo.EnsureByName(ctx, &models.Category{Name: "Uncategorized", Description: &original})
	if err != nil || created == nil {
		t.Fatalf("ensure category failed: %v", err)
	}
	if !isNew {
		t.Fatalf("first ensure should create the category")
	}

	err = repo.Transaction(ctx, func(tx *gorm.DB) error {
		txRepo := repo.WithTx(tx)
		other := "second"
		existing, isNew, err := txRepo.EnsureByName(ctx, &models.Category{Name: "Uncategorized", Description: &other})
		if err != nil {
			return err
		}
		if isNew {
			t.Errorf("second ensure should not create a new category")
		}
		if existing.ID != created.ID {
			t.Errorf("want existing id %d got %d", created.ID, existing.ID)
		}
		if existing.Description == nil || *existing.Description != "first" {
			t.Errorf("existing description should be kept, got %v", existing.Description)
		}
		// 冲突后事务仍可继续使用
		return txRepo.Create(ctx, &models.Category{Name: "Books"})
	})
	if err != nil {
		t.Fatalf("transaction after conflicting ensure failed: %v", err)
	}

	books, err := repo.GetByName(ctx, "Books")
	if err != nil || books == nil {
		t.Fatalf("category created after ensure should be committed: %v", err)
	}
	var count int64
	db.Model(&models.Category{}).Where("name = ?", "Uncategorized").Count(&count)
	if count != 1 {
		t.Fatalf("want single sentinel row got %d", count)
	}
}
