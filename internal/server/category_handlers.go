// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// GetCategories handles GET /posts/:postId/categories
func (s *Server) GetCategories(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	if _, err := s.postRepo.GetByID(c.Context(), postID, repository.PostRelations{}); err != nil {
		return respondError(c, err)
	}

	categories, err := s.categoryRepo.ListByPost(c.Context(), postID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(categories)
}

// CreateCategory handles POST /posts/:postId/categories. Only the
// post's owner may attach categories; neither the category nor the join
// row is created when the ownership check fails.
func (s *Server) CreateCategory(c *fiber.Ctx) error {
	userID := currentUserID(c)
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	var req struct {
		Name string `json:"name"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postRepo.GetByID(c.Context(), postID, repository.PostRelations{})
	if err != nil {
		return respondError(c, err)
	}

	if post.UserID != userID {
		return respondError(c, models.NewForbiddenError())
	}

	if req.Name == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Name is required"))
	}

	category := &models.Category{Name: req.Name}
	if err := s.categoryRepo.CreateForPost(c.Context(), post, category); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(category)
}
