package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCategoryRepository is a mock of the CategoryRepository interface
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) CreateForPost(ctx context.Context, post *models.Post, category *models.Category) error {
	args := m.Called(ctx, post, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) ListByPost(ctx context.Context, postID uint) ([]models.Category, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func setupCategoryApp(postRepo *MockPostRepository, categoryRepo *MockCategoryRepository, asUser uint) *fiber.App {
	s := &Server{config: testServerConfig(), postRepo: postRepo, categoryRepo: categoryRepo}
	app := fiber.New()
	app.Get("/posts/:postId/categories", s.GetCategories)
	app.Post("/posts/:postId/categories", authAs(asUser), s.CreateCategory)
	return app
}

func TestGetCategories(t *testing.T) {
	t.Run("Existing Post", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		categoryRepo := new(MockCategoryRepository)
		postRepo.On("GetByID", mock.Anything, uint(1), repository.PostRelations{}).
			Return(&models.Post{ID: 1, UserID: 7}, nil)
		categoryRepo.On("ListByPost", mock.Anything, uint(1)).Return([]models.Category{
			{ID: 1, Name: "go"},
			{ID: 2, Name: "backend"},
		}, nil)
		app := setupCategoryApp(postRepo, categoryRepo, 0)

		req := httptest.NewRequest(http.MethodGet, "/posts/1/categories", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var categories []models.Category
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&categories))
		assert.Len(t, categories, 2)
	})

	t.Run("Missing Post", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		categoryRepo := new(MockCategoryRepository)
		postRepo.On("GetByID", mock.Anything, uint(99), repository.PostRelations{}).
			Return(nil, models.NewNotFoundError("Post"))
		app := setupCategoryApp(postRepo, categoryRepo, 0)

		req := httptest.NewRequest(http.MethodGet, "/posts/99/categories", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		categoryRepo.AssertNotCalled(t, "ListByPost", mock.Anything, mock.Anything)
	})
}

func TestCreateCategory(t *testing.T) {
	tests := []struct {
		name           string
		postID         string
		asUser         uint
		body           map[string]string
		mockSetup      func(postRepo *MockPostRepository, categoryRepo *MockCategoryRepository)
		expectedStatus int
	}{
		{
			name:   "Owner Attaches Category",
			postID: "1",
			asUser: 7,
			body:   map[string]string{"name": "go"},
			mockSetup: func(postRepo *MockPostRepository, categoryRepo *MockCategoryRepository) {
				postRepo.On("GetByID", mock.Anything, uint(1), repository.PostRelations{}).
					Return(&models.Post{ID: 1, UserID: 7}, nil)
				categoryRepo.On("CreateForPost", mock.Anything, mock.Anything, mock.MatchedBy(func(cat *models.Category) bool {
					return cat.Name == "go"
				})).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:   "Non-Owner Rejected",
			postID: "1",
			asUser: 8,
			body:   map[string]string{"name": "go"},
			mockSetup: func(postRepo *MockPostRepository, categoryRepo *MockCategoryRepository) {
				postRepo.On("GetByID", mock.Anything, uint(1), repository.PostRelations{}).
					Return(&models.Post{ID: 1, UserID: 7}, nil)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:   "Missing Post",
			postID: "99",
			asUser: 7,
			body:   map[string]string{"name": "go"},
			mockSetup: func(postRepo *MockPostRepository, categoryRepo *MockCategoryRepository) {
				postRepo.On("GetByID", mock.Anything, uint(99), repository.PostRelations{}).
					Return(nil, models.NewNotFoundError("Post"))
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:   "Empty Name",
			postID: "1",
			asUser: 7,
			body:   map[string]string{},
			mockSetup: func(postRepo *MockPostRepository, categoryRepo *MockCategoryRepository) {
				postRepo.On("GetByID", mock.Anything, uint(1), repository.PostRelations{}).
					Return(&models.Post{ID: 1, UserID: 7}, nil)
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			postRepo := new(MockPostRepository)
			categoryRepo := new(MockCategoryRepository)
			tt.mockSetup(postRepo, categoryRepo)
			app := setupCategoryApp(postRepo, categoryRepo, tt.asUser)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/posts/"+tt.postID+"/categories", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			postRepo.AssertExpectations(t)
			categoryRepo.AssertExpectations(t)

			// A rejected request must not leave a category or join row behind.
			if tt.expectedStatus != http.StatusCreated {
				categoryRepo.AssertNotCalled(t, "CreateForPost", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}
