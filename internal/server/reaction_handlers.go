package server

import (
	"inkstream/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetReactions handles GET /api/posts/:ref/reactions
// @Summary Get reaction totals for a post
// @Description Returns totals per reaction type plus the caller's active reactions
// @Tags reactions
// @Produce json
// @Param ref path string true "Post id or slug"
// @Success 200 {object} service.ReactionState
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{ref}/reactions [get]
func (s *Server) GetReactions(c *fiber.Ctx) error {
	state, err := s.reactionService.Get(c.Context(), c.Params("ref"), s.optionalUserID(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(state)
}

// ToggleReaction handles POST /api/posts/:ref/reactions
// @Summary Toggle a reaction on a post
// @Description Activates the reaction if absent, removes it if present
// @Tags reactions
// @Accept json
// @Produce json
// @Param ref path string true "Post id or slug"
// @Param request body object{type=string} true "Reaction type: like or clap"
// @Success 200 {object} service.ToggleResult
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /posts/{ref}/reactions [post]
func (s *Server) ToggleReaction(c *fiber.Ctx) error {
	var body struct {
		Type models.ReactionType `json:"type"`
	}
	if err := c.BodyParser(&body); err != nil {
		return models.RespondError(c, models.NewValidationError("Invalid request body"))
	}

	result, err := s.reactionService.Toggle(c.Context(), c.Params("ref"), currentUserID(c), body.Type)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(result)
}
