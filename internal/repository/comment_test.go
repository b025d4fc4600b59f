package repository

import (
	"context"
	"testing"
	"time"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "Author", "author@example.com")
	commenter := createTestUser(t, db, "Commenter", "commenter@example.com")

	post := &models.Post{Title: "Post", Content: "Body", UserID: author.ID}
	require.NoError(t, db.Create(post).Error)

	t.Run("Create", func(t *testing.T) {
		comment := &models.Comment{Content: "Nice", PostID: post.ID, UserID: commenter.ID}
		err := repo.Create(ctx, comment)
		assert.NoError(t, err)
		assert.NotZero(t, comment.ID)
	})

	t.Run("GetByID Includes Author", func(t *testing.T) {
		comment := &models.Comment{Content: "With author", PostID: post.ID, UserID: commenter.ID}
		require.NoError(t, db.Create(comment).Error)

		got, err := repo.GetByID(ctx, comment.ID)
		require.NoError(t, err)
		assert.Equal(t, "Commenter", got.User.Name)
	})

	t.Run("GetByID Not Found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 99999)
		require.Error(t, err)

		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})
}

func TestCommentRepository_ListByPost(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "Author", "author@example.com")

	post := &models.Post{Title: "Post", Content: "Body", UserID: author.ID}
	other := &models.Post{Title: "Other", Content: "Body", UserID: author.ID}
	require.NoError(t, db.Create(post).Error)
	require.NoError(t, db.Create(other).Error)

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, content := range []string{"First", "Second", "Third"} {
		comment := &models.Comment{Content: content, PostID: post.ID, UserID: author.ID}
		comment.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, db.Create(comment).Error)
	}
	require.NoError(t, db.Create(&models.Comment{Content: "Elsewhere", PostID: other.ID, UserID: author.ID}).Error)

	comments, err := repo.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 3)

	// Newest first, scoped to the requested post
	assert.Equal(t, "Third", comments[0].Content)
	assert.Equal(t, "First", comments[2].Content)
	for _, c := range comments {
		assert.Equal(t, post.ID, c.PostID)
		assert.Equal(t, "Author", c.User.Name)
	}
}
