// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"inkwell/internal/models"
	"inkwell/internal/validation"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// CreateUser handles POST /users
func (s *Server) CreateUser(c *fiber.Ctx) error {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user := &models.User{
		Name:  req.Name,
		Email: req.Email,
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return respondError(c, models.NewInternalError(err))
		}
		user.Password = string(hashed)
	}

	if err := s.userRepo.Create(c.Context(), user); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// GetUsers handles GET /users
func (s *Server) GetUsers(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	users, err := s.userRepo.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(users)
}

// GetUser handles GET /users/:userId
func (s *Server) GetUser(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	// Missing target short-circuits before the ownership comparison.
	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	if user.ID != currentUserID(c) {
		return respondError(c, models.NewForbiddenError())
	}

	return c.JSON(user)
}

// UpdateUser handles PUT /users/:userId
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	if user.ID != currentUserID(c) {
		return respondError(c, models.NewForbiddenError())
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		if emailErr := validation.ValidateEmail(req.Email); emailErr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(emailErr.Error()))
		}
		user.Email = req.Email
	}

	if err := s.userRepo.Update(c.Context(), user); err != nil {
		return respondError(c, err)
	}

	return c.JSON(user)
}

// DeleteUser handles DELETE /users/:userId
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	if user.ID != currentUserID(c) {
		return respondError(c, models.NewForbiddenError())
	}

	if err := s.userRepo.Delete(c.Context(), userID); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
