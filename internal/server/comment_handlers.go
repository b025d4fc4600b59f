// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// GetComments handles GET /posts/:postId/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	if _, err := s.postRepo.GetByID(c.Context(), postID, repository.PostRelations{}); err != nil {
		return respondError(c, err)
	}

	comments, err := s.commentRepo.ListByPost(c.Context(), postID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(comments)
}

// CreateComment handles POST /posts/:postId/comments. Any authenticated
// user may comment on an existing post.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	userID := currentUserID(c)
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postRepo.GetByID(c.Context(), postID, repository.PostRelations{})
	if err != nil {
		return respondError(c, err)
	}

	if req.Content == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Content is required"))
	}

	comment := &models.Comment{
		Content: req.Content,
		PostID:  post.ID,
		UserID:  userID,
	}
	if err := s.commentRepo.Create(c.Context(), comment); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}
