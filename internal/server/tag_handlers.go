package server

import (
	"inkstream/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ListTags handles GET /api/tags
// @Summary List tags
// @Description All tags with live published-post counts, optionally filtered by name
// @Tags tags
// @Produce json
// @Param q query string false "Case-insensitive name filter"
// @Success 200 {array} models.Tag
// @Router /tags [get]
func (s *Server) ListTags(c *fiber.Ctx) error {
	tags, err := s.tagService.ListTags(c.Context(), c.Query("q"))
	if err != nil {
		return models.RespondError(c, err)
	}
	if tags == nil {
		tags = []models.Tag{}
	}
	return c.JSON(tags)
}
