package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"inkstream/internal/models"
	"inkstream/internal/repository"
	"inkstream/internal/slug"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	minTitleLen   = 3
	minContentLen = 10
	maxExcerptLen = 320
	// slugAttempts bounds the numbered-suffix search before falling back to a
	// random suffix.
	slugAttempts = 25
	// slugSaveRetries bounds re-saves after losing a slug race at insert time.
	slugSaveRetries = 3
)

type PostService struct {
	db       *gorm.DB
	postRepo repository.PostRepository
	tags     *TagService
}

type CreatePostInput struct {
	AuthorID   string
	Title      string
	Excerpt    string
	Content    string
	CoverImage string
	Status     models.PostStatus
	Tags       *[]string
}

// UpdatePostInput carries a partial update. Nil pointer fields are left
// untouched.
type UpdatePostInput struct {
	ActorID    string
	Ref        string
	Title      *string
	Excerpt    *string
	Content    *string
	CoverImage *string
	Status     *models.PostStatus
	Tags       *[]string
}

func NewPostService(db *gorm.DB, postRepo repository.PostRepository, tags *TagService) *PostService {
	return &PostService{db: db, postRepo: postRepo, tags: tags}
}

func validatePostFields(title, content, excerpt string, status models.PostStatus) error {
	if len(strings.TrimSpace(title)) < minTitleLen {
		return models.NewValidationError("Title must be at least 3 characters")
	}
	if len(strings.TrimSpace(content)) < minContentLen {
		return models.NewValidationError("Content must be at least 10 characters")
	}
	if len(excerpt) > maxExcerptLen {
		return models.NewValidationError("Excerpt too long (max 320 characters)")
	}
	if !models.ValidPostStatus(status) {
		return models.NewValidationError("Status must be draft or published")
	}
	return nil
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.PostDetail, error) {
	if in.AuthorID == "" {
		return nil, models.NewUnauthorizedError("Unauthorized")
	}
	status := in.Status
	if status == "" {
		status = models.PostStatusDraft
	}
	if err := validatePostFields(in.Title, in.Content, in.Excerpt, status); err != nil {
		return nil, err
	}

	postSlug, err := s.generateUniqueSlug(ctx, in.Title)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Slug:       postSlug,
		Title:      strings.TrimSpace(in.Title),
		Excerpt:    in.Excerpt,
		Content:    in.Content,
		CoverImage: in.CoverImage,
		Status:     status,
		AuthorID:   in.AuthorID,
	}

	err = s.saveWithSlugRetry(ctx, post, func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := repository.NewPostRepository(tx).Create(ctx, post); err != nil {
				return err
			}
			return s.tags.syncTagsTx(ctx, tx, post.ID, in.Tags)
		})
	})
	if err != nil {
		return nil, err
	}

	return s.GetPost(ctx, post.ID, in.AuthorID)
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.PostDetail, error) {
	post, err := s.resolveOwned(ctx, in.Ref, in.ActorID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil && strings.TrimSpace(*in.Title) != post.Title {
		post.Title = strings.TrimSpace(*in.Title)
		newSlug, err := s.generateUniqueSlug(ctx, post.Title)
		if err != nil {
			return nil, err
		}
		post.Slug = newSlug
	}
	if in.Excerpt != nil {
		post.Excerpt = *in.Excerpt
	}
	if in.Content != nil {
		post.Content = *in.Content
	}
	if in.CoverImage != nil {
		post.CoverImage = *in.CoverImage
	}
	if in.Status != nil {
		post.Status = *in.Status
	}
	if err := validatePostFields(post.Title, post.Content, post.Excerpt, post.Status); err != nil {
		return nil, err
	}

	err = s.saveWithSlugRetry(ctx, post, func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := repository.NewPostRepository(tx).Update(ctx, post); err != nil {
				return err
			}
			return s.tags.syncTagsTx(ctx, tx, post.ID, in.Tags)
		})
	})
	if err != nil {
		return nil, err
	}

	return s.GetPost(ctx, post.ID, in.ActorID)
}

func (s *PostService) DeletePost(ctx context.Context, actorID, ref string) error {
	post, err := s.resolveOwned(ctx, ref, actorID)
	if err != nil {
		return err
	}
	return s.postRepo.SoftDelete(ctx, post.ID)
}

// GetPost returns the full detail of a post by id or slug. Drafts are only
// visible to their author.
func (s *PostService) GetPost(ctx context.Context, ref, viewerID string) (*models.PostDetail, error) {
	post, err := s.postRepo.GetDetailByRef(ctx, ref, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post not found")
		}
		return nil, err
	}
	if post.Status != models.PostStatusPublished && post.AuthorID != viewerID {
		return nil, models.NewNotFoundError("Post not found")
	}
	return toPostDetail(post), nil
}

// ResolvePostID maps an id-or-slug reference to the canonical post id.
func (s *PostService) ResolvePostID(ctx context.Context, ref string, publishedOnly bool) (string, error) {
	post, err := s.postRepo.GetByRef(ctx, ref, publishedOnly)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", models.NewNotFoundError("Post not found")
		}
		return "", err
	}
	return post.ID, nil
}

func (s *PostService) resolveOwned(ctx context.Context, ref, actorID string) (*models.Post, error) {
	if actorID == "" {
		return nil, models.NewUnauthorizedError("Unauthorized")
	}
	post, err := s.postRepo.GetByRef(ctx, ref, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post not found")
		}
		return nil, err
	}
	if post.AuthorID != actorID {
		return nil, models.NewForbiddenError("You do not own this post")
	}
	return post, nil
}

// saveWithSlugRetry runs save and, when it fails on the slug unique index,
// regenerates the slug and tries again. The existence check in
// generateUniqueSlug is not serialized against concurrent writers, so a
// racing insert can still take the candidate between the check and the save.
func (s *PostService) saveWithSlugRetry(ctx context.Context, post *models.Post, save func() error) error {
	var err error
	for attempt := 0; attempt <= slugSaveRetries; attempt++ {
		if err = save(); err == nil || !repository.IsUniqueViolation(err) {
			return err
		}
		newSlug, slugErr := s.generateUniqueSlug(ctx, post.Title)
		if slugErr != nil {
			return slugErr
		}
		post.Slug = newSlug
	}
	return err
}

// slugBase derives the slug stem for a title. Titles with no sluggable
// characters get a timestamped placeholder so the post still has a URL.
func slugBase(title string) string {
	if base := slug.Make(title); base != "" {
		return base
	}
	return fmt.Sprintf("post-%d", time.Now().UnixMilli())
}

// generateUniqueSlug derives a slug from the title and walks numbered
// suffixes until a free one is found. Soft-deleted posts keep their slug
// reserved by the unique index, so they count as taken.
func (s *PostService) generateUniqueSlug(ctx context.Context, title string) (string, error) {
	base := slugBase(title)
	candidate := base
	for i := 2; i <= slugAttempts+1; i++ {
		taken, err := s.postRepo.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return fmt.Sprintf("%s-%s", base, uuid.NewString()[:8]), nil
}
