package server

import (
	"inkstream/internal/models"
	"inkstream/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetComments handles GET /api/posts/:ref/comments
// @Summary Get the comment tree of a post
// @Description Returns top-level comments with nested replies, oldest first
// @Tags comments
// @Produce json
// @Param ref path string true "Post id or slug"
// @Success 200 {object} object{comments=[]models.CommentNode}
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{ref}/comments [get]
func (s *Server) GetComments(c *fiber.Ctx) error {
	tree, err := s.commentService.ListTree(c.Context(), c.Params("ref"))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"comments": tree})
}

// CreateComment handles POST /api/posts/:ref/comments
// @Summary Comment on a post
// @Description Adds a comment, optionally replying to a parent comment of the same post
// @Tags comments
// @Accept json
// @Produce json
// @Param ref path string true "Post id or slug"
// @Param request body object{content=string,parentId=string} true "Comment body"
// @Success 201 {object} models.CommentNode
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /posts/{ref}/comments [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	var body struct {
		Content  string  `json:"content"`
		ParentID *string `json:"parentId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return models.RespondError(c, models.NewValidationError("Invalid request body"))
	}

	node, err := s.commentService.Create(c.Context(), service.CreateCommentInput{
		PostRef:  c.Params("ref"),
		AuthorID: currentUserID(c),
		Content:  body.Content,
		ParentID: body.ParentID,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(node)
}
