package service

import (
	"context"
	"testing"
	"time"

	"inkstream/internal/models"
	"inkstream/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFilter(t *testing.T) {
	tests := []struct {
		name     string
		req      FeedRequest
		expected repository.FeedFilter
		wantCode string
	}{
		{
			name:     "anonymous defaults",
			req:      FeedRequest{},
			expected: repository.FeedFilter{},
		},
		{
			name:     "author filter",
			req:      FeedRequest{AuthorID: "u1"},
			expected: repository.FeedFilter{AuthorID: "u1"},
		},
		{
			name:     "drafts require auth",
			req:      FeedRequest{IncludeDrafts: true},
			wantCode: models.CodeUnauthorized,
		},
		{
			name:     "drafts collapse to own posts",
			req:      FeedRequest{IncludeDrafts: true, AuthorID: "someone-else", ViewerID: "me"},
			expected: repository.FeedFilter{AuthorID: "me", AllStatuses: true},
		},
		{
			name:     "following requires auth",
			req:      FeedRequest{Scope: "following"},
			wantCode: models.CodeUnauthorized,
		},
		{
			name:     "following scope",
			req:      FeedRequest{Scope: "following", ViewerID: "me"},
			expected: repository.FeedFilter{FollowedBy: "me"},
		},
		{
			name:     "tag and search trimmed",
			req:      FeedRequest{TagSlug: " go ", Search: " generics "},
			expected: repository.FeedFilter{TagSlug: "go", Search: "generics"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := buildFilter(tt.req)
			if tt.wantCode != "" {
				var appErr *models.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, tt.wantCode, appErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, filter)
		})
	}
}

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, 10, normalizeLimit(0))
	assert.Equal(t, 10, normalizeLimit(-5))
	assert.Equal(t, 7, normalizeLimit(7))
	assert.Equal(t, 24, normalizeLimit(100))
}

func TestNormalizeSort(t *testing.T) {
	assert.Equal(t, repository.FeedSortLatest, normalizeSort(""))
	assert.Equal(t, repository.FeedSortLatest, normalizeSort("bogus"))
	assert.Equal(t, repository.FeedSortRecommended, normalizeSort("recommended"))
}

func TestFeedServicePaginationWalk(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFeedService(repository.NewPostRepository(db))
	ctx := context.Background()

	author := seedUser(t, db, "fw-author")
	base := time.Date(2026, 3, 6, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		seedPost(t, db, author.ID, slugN("walk", i), models.PostStatusPublished, base.Add(time.Duration(i)*time.Minute))
	}

	var seen []string
	cursor := ""
	for _, want := range []int{2, 2, 1} {
		page, err := svc.List(ctx, FeedRequest{Limit: 2, Cursor: cursor})
		require.NoError(t, err)
		require.Len(t, page.Posts, want)
		for _, p := range page.Posts {
			seen = append(seen, p.Slug)
		}
		if page.NextCursor == nil {
			break
		}
		cursor = *page.NextCursor
	}

	assert.Equal(t, []string{"walk-e", "walk-d", "walk-c", "walk-b", "walk-a"}, seen)

	// The last page carries no cursor.
	page, err := svc.List(ctx, FeedRequest{Limit: 2, Cursor: cursor})
	require.NoError(t, err)
	assert.Nil(t, page.NextCursor)
}

func TestFeedServiceInvalidCursor(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFeedService(repository.NewPostRepository(db))

	_, err := svc.List(context.Background(), FeedRequest{Cursor: "not-a-post"})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)
}

func TestFeedServiceExactPageHasNoCursor(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFeedService(repository.NewPostRepository(db))
	ctx := context.Background()

	author := seedUser(t, db, "ep-author")
	seedPost(t, db, author.ID, "only-one", models.PostStatusPublished, time.Now())

	page, err := svc.List(ctx, FeedRequest{Limit: 1})
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	assert.Nil(t, page.NextCursor)
}

func slugN(prefix string, n int) string {
	return prefix + "-" + string(rune('a'+n))
}
