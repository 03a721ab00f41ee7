package server

import (
	"inkstream/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetFollowStats handles GET /api/profile/:userId/follow
// @Summary Get follow stats for a profile
// @Description Follower and following counts, plus whether the caller follows the profile
// @Tags follow
// @Produce json
// @Param userId path string true "Profile user id"
// @Success 200 {object} object{stats=models.FollowStats}
// @Failure 404 {object} models.ErrorResponse
// @Router /profile/{userId}/follow [get]
func (s *Server) GetFollowStats(c *fiber.Ctx) error {
	stats, err := s.followService.Stats(c.Context(), c.Params("userId"), s.optionalUserID(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"stats": stats})
}

// ToggleFollow handles POST /api/profile/:userId/follow
// @Summary Follow or unfollow a profile
// @Description Toggles the follow edge from the caller to the profile
// @Tags follow
// @Produce json
// @Param userId path string true "Profile user id"
// @Success 200 {object} object{stats=models.FollowStats}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /profile/{userId}/follow [post]
func (s *Server) ToggleFollow(c *fiber.Ctx) error {
	stats, err := s.followService.Toggle(c.Context(), currentUserID(c), c.Params("userId"))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"stats": stats})
}
