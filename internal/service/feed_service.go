package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"inkstream/internal/middleware"
	"inkstream/internal/models"
	"inkstream/internal/repository"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

const (
	defaultFeedLimit = 10
	maxFeedLimit     = 24
)

type FeedService struct {
	postRepo repository.PostRepository
}

// FeedRequest is the raw query surface of the feed endpoint, before
// authorization and normalization.
type FeedRequest struct {
	ViewerID      string
	AuthorID      string
	TagSlug       string
	Search        string
	Scope         string // "" or "following"
	IncludeDrafts bool
	Sort          string
	Limit         int
	Cursor        string
}

// FeedPage is one page of the feed plus the cursor resuming after it.
type FeedPage struct {
	Posts      []models.PostSummary `json:"posts"`
	NextCursor *string              `json:"nextCursor"`
}

func NewFeedService(postRepo repository.PostRepository) *FeedService {
	return &FeedService{postRepo: postRepo}
}

// buildFilter authorizes and normalizes the request into a repository
// filter. Draft visibility always collapses to the viewer's own posts, even
// when another author was asked for.
func buildFilter(req FeedRequest) (repository.FeedFilter, error) {
	var filter repository.FeedFilter

	if req.IncludeDrafts {
		if req.ViewerID == "" {
			return filter, models.NewUnauthorizedError("Unauthorized")
		}
		filter.AuthorID = req.ViewerID
		filter.AllStatuses = true
	} else if req.AuthorID != "" {
		filter.AuthorID = req.AuthorID
	}

	if req.Scope == "following" {
		if req.ViewerID == "" {
			return filter, models.NewUnauthorizedError("Sign in to view your following feed")
		}
		filter.FollowedBy = req.ViewerID
	}

	filter.TagSlug = strings.TrimSpace(req.TagSlug)
	filter.Search = strings.TrimSpace(req.Search)
	return filter, nil
}

func normalizeSort(sort string) repository.FeedSort {
	if sort == string(repository.FeedSortRecommended) {
		return repository.FeedSortRecommended
	}
	return repository.FeedSortLatest
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultFeedLimit
	}
	if limit > maxFeedLimit {
		return maxFeedLimit
	}
	return limit
}

// List returns one feed page. An unknown cursor id is a client error, not an
// empty page.
func (s *FeedService) List(ctx context.Context, req FeedRequest) (*FeedPage, error) {
	filter, err := buildFilter(req)
	if err != nil {
		return nil, err
	}
	sort := normalizeSort(req.Sort)
	limit := normalizeLimit(req.Limit)

	var cursor *repository.FeedCursor
	if req.Cursor != "" {
		cursor, err = s.postRepo.GetFeedCursor(ctx, req.Cursor)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.NewValidationError("Invalid cursor")
			}
			return nil, err
		}
	}

	start := time.Now()
	// Fetch one extra row to learn whether a next page exists.
	posts, err := s.postRepo.ListFeed(ctx, filter, sort, limit+1, cursor)
	if err != nil {
		return nil, err
	}
	middleware.FeedQueryDuration.WithLabelValues(string(sort)).Observe(time.Since(start).Seconds())

	page := &FeedPage{}
	if len(posts) > limit {
		posts = posts[:limit]
		last := posts[len(posts)-1].ID
		page.NextCursor = &last
	}
	page.Posts = lo.Map(posts, func(p *models.Post, _ int) models.PostSummary {
		return toPostSummary(p)
	})
	return page, nil
}
