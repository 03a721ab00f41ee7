package server

import (
	"inkstream/internal/models"
	"inkstream/internal/service"

	"github.com/gofiber/fiber/v2"
)

type postBody struct {
	Title      *string            `json:"title"`
	Excerpt    *string            `json:"excerpt"`
	Content    *string            `json:"content"`
	CoverImage *string            `json:"coverImage"`
	Status     *models.PostStatus `json:"status"`
	Tags       *[]string          `json:"tags"`
}

// GetFeed handles GET /api/posts
// @Summary Browse the post feed
// @Description Cursor-paginated feed of published posts with optional filters
// @Tags posts
// @Produce json
// @Param cursor query string false "Resume after this post id"
// @Param limit query int false "Page size (default 10, max 24)"
// @Param sort query string false "latest or recommended"
// @Param authorId query string false "Filter by author id"
// @Param tag query string false "Filter by tag slug"
// @Param q query string false "Search in title, excerpt, content and tag names"
// @Param filter query string false "Set to 'following' for the following feed"
// @Param includeDrafts query bool false "Include the caller's drafts"
// @Success 200 {object} service.FeedPage
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /posts [get]
func (s *Server) GetFeed(c *fiber.Ctx) error {
	req := service.FeedRequest{
		ViewerID:      s.optionalUserID(c),
		AuthorID:      c.Query("authorId"),
		TagSlug:       c.Query("tag"),
		Search:        c.Query("q"),
		Scope:         c.Query("filter"),
		IncludeDrafts: c.QueryBool("includeDrafts"),
		Sort:          c.Query("sort"),
		Limit:         c.QueryInt("limit"),
		Cursor:        c.Query("cursor"),
	}

	page, err := s.feedService.List(c.Context(), req)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(page)
}

// GetPost handles GET /api/posts/:ref
// @Summary Get a single post
// @Description Fetch a post by id or slug; drafts are only visible to their author
// @Tags posts
// @Produce json
// @Param ref path string true "Post id or slug"
// @Success 200 {object} models.PostDetail
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{ref} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	detail, err := s.postService.GetPost(c.Context(), c.Params("ref"), s.optionalUserID(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(detail)
}

// CreatePost handles POST /api/posts
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Param request body postBody true "Post fields"
// @Success 201 {object} models.PostDetail
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var body postBody
	if err := c.BodyParser(&body); err != nil {
		return models.RespondError(c, models.NewValidationError("Invalid request body"))
	}

	in := service.CreatePostInput{AuthorID: currentUserID(c), Tags: body.Tags}
	if body.Title != nil {
		in.Title = *body.Title
	}
	if body.Excerpt != nil {
		in.Excerpt = *body.Excerpt
	}
	if body.Content != nil {
		in.Content = *body.Content
	}
	if body.CoverImage != nil {
		in.CoverImage = *body.CoverImage
	}
	if body.Status != nil {
		in.Status = *body.Status
	}

	detail, err := s.postService.CreatePost(c.Context(), in)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(detail)
}

// UpdatePost handles PUT /api/posts/:ref
// @Summary Update a post
// @Description Partial update; a title change regenerates the slug
// @Tags posts
// @Accept json
// @Produce json
// @Param ref path string true "Post id or slug"
// @Param request body postBody true "Fields to change"
// @Success 200 {object} models.PostDetail
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /posts/{ref} [put]
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	var body postBody
	if err := c.BodyParser(&body); err != nil {
		return models.RespondError(c, models.NewValidationError("Invalid request body"))
	}

	detail, err := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		ActorID:    currentUserID(c),
		Ref:        c.Params("ref"),
		Title:      body.Title,
		Excerpt:    body.Excerpt,
		Content:    body.Content,
		CoverImage: body.CoverImage,
		Status:     body.Status,
		Tags:       body.Tags,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(detail)
}

// DeletePost handles DELETE /api/posts/:ref
// @Summary Delete a post
// @Description Soft-deletes the post; it disappears from all read paths
// @Tags posts
// @Produce json
// @Param ref path string true "Post id or slug"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /posts/{ref} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	if err := s.postService.DeletePost(c.Context(), currentUserID(c), c.Params("ref")); err != nil {
		return models.RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SyncTags handles PUT /api/posts/:ref/tags
// @Summary Replace a post's tag set
// @Description Reconciles the post's tags with the given names; an empty list removes all tags
// @Tags tags
// @Accept json
// @Produce json
// @Param ref path string true "Post id or slug"
// @Param request body object{tags=[]string} true "Desired tag names"
// @Success 200 {array} models.TagSummary
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /posts/{ref}/tags [put]
func (s *Server) SyncTags(c *fiber.Ctx) error {
	var body struct {
		Tags *[]string `json:"tags"`
	}
	if err := c.BodyParser(&body); err != nil {
		return models.RespondError(c, models.NewValidationError("Invalid request body"))
	}

	detail, err := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		ActorID: currentUserID(c),
		Ref:     c.Params("ref"),
		Tags:    body.Tags,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(detail.Tags)
}
