// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// PostRelations selects which associations a post read composes into
// the returned aggregate.
type PostRelations struct {
	WithUser       bool
	WithCategories bool
	WithComments   bool
}

// AllPostRelations requests the full aggregate: author, categories and comments.
var AllPostRelations = PostRelations{WithUser: true, WithCategories: true, WithComments: true}

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, rel PostRelations) (*models.Post, error)
	List(ctx context.Context, limit, offset int, rel PostRelations) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// applyRelations adds the requested association preloads to the query.
func applyRelations(db *gorm.DB, rel PostRelations) *gorm.DB {
	if rel.WithUser {
		db = db.Preload("User")
	}
	if rel.WithCategories {
		db = db.Preload("Categories")
	}
	if rel.WithComments {
		db = db.Preload("Comments")
	}
	return db
}

func (r *postRepository) GetByID(ctx context.Context, id uint, rel PostRelations) (*models.Post, error) {
	var post models.Post

	fetch := func() error {
		if err := applyRelations(r.db.WithContext(ctx), rel).First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post")
			}
			return models.NewInternalError(err)
		}
		return nil
	}

	// Only the full aggregate read is cached; partial reads back
	// ownership checks and must not serve stale association sets.
	var err error
	if rel == AllPostRelations {
		err = cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, fetch)
	} else {
		err = fetch()
	}

	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, limit, offset int, rel PostRelations) ([]*models.Post, error) {
	var posts []*models.Post
	err := applyRelations(r.db.WithContext(ctx), rel).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, post.ID)
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, id)
	return nil
}
