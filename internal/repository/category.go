// Package repository implements the data access layer for the application.
package repository

import (
	"context"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository defines persistence operations for categories and
// their association with posts.
type CategoryRepository interface {
	CreateForPost(ctx context.Context, post *models.Post, category *models.Category) error
	ListByPost(ctx context.Context, postID uint) ([]models.Category, error)
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository returns a new CategoryRepository implementation.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// CreateForPost persists the category and its join row to the given
// post in a single transaction, so a failed association never leaves an
// orphaned category behind.
func (r *categoryRepository) CreateForPost(ctx context.Context, post *models.Post, category *models.Category) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(category).Error; err != nil {
			return err
		}
		return tx.Model(post).Association("Categories").Append(category)
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, post.ID)
	return nil
}

func (r *categoryRepository) ListByPost(ctx context.Context, postID uint) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).
		Model(&models.Post{ID: postID}).
		Association("Categories").
		Find(&categories)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return categories, nil
}
