package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"inkstream/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPostRepository_GetByRef(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, "ref-author")
	published := seedPost(t, db, author.ID, "shipping-go", models.PostStatusPublished, time.Now())
	draft := seedPost(t, db, author.ID, "secret-draft", models.PostStatusDraft, time.Now())

	t.Run("by id", func(t *testing.T) {
		got, err := repo.GetByRef(ctx, published.ID, true)
		require.NoError(t, err)
		assert.Equal(t, published.ID, got.ID)
	})

	t.Run("by slug", func(t *testing.T) {
		got, err := repo.GetByRef(ctx, "shipping-go", true)
		require.NoError(t, err)
		assert.Equal(t, published.ID, got.ID)
	})

	t.Run("unknown ref", func(t *testing.T) {
		_, err := repo.GetByRef(ctx, "no-such-post", true)
		assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	})

	t.Run("draft hidden when published only", func(t *testing.T) {
		_, err := repo.GetByRef(ctx, draft.ID, true)
		assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

		got, err := repo.GetByRef(ctx, draft.ID, false)
		require.NoError(t, err)
		assert.Equal(t, draft.ID, got.ID)
	})

	t.Run("soft deleted post is gone under both refs", func(t *testing.T) {
		doomed := seedPost(t, db, author.ID, "doomed", models.PostStatusPublished, time.Now())
		require.NoError(t, repo.SoftDelete(ctx, doomed.ID))

		_, err := repo.GetByRef(ctx, doomed.ID, false)
		assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
		_, err = repo.GetByRef(ctx, "doomed", false)
		assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	})
}

func TestPostRepository_SoftDeleteForcesDraft(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, "sd-author")
	post := seedPost(t, db, author.ID, "to-delete", models.PostStatusPublished, time.Now())

	require.NoError(t, repo.SoftDelete(ctx, post.ID))

	var raw models.Post
	require.NoError(t, db.Unscoped().First(&raw, "id = ?", post.ID).Error)
	assert.Equal(t, models.PostStatusDraft, raw.Status)
	assert.True(t, raw.DeletedAt.Valid)
}

func TestPostRepository_SlugExists(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, "slug-author")
	seedPost(t, db, author.ID, "taken", models.PostStatusPublished, time.Now())

	exists, err := repo.SlugExists(ctx, "taken")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.SlugExists(ctx, "free")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPostRepository_ListFeedPagination(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, "feed-author")
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 5; i++ {
		p := seedPost(t, db, author.ID, slugN("page", i), models.PostStatusPublished, base.Add(time.Duration(i)*time.Minute))
		ids = append(ids, p.ID)
	}

	var seen []string
	var cursor *FeedCursor
	pageSizes := []int{2, 2, 1}
	for _, want := range pageSizes {
		posts, err := repo.ListFeed(ctx, FeedFilter{}, FeedSortLatest, want, cursor)
		require.NoError(t, err)
		require.Len(t, posts, want)
		for _, p := range posts {
			seen = append(seen, p.ID)
		}
		last := posts[len(posts)-1]
		cursor, err = repo.GetFeedCursor(ctx, last.ID)
		require.NoError(t, err)
	}

	// Newest first, every post exactly once.
	require.Len(t, seen, 5)
	for i, id := range seen {
		assert.Equal(t, ids[4-i], id, "position %d", i)
	}

	// Page after the last row is empty.
	posts, err := repo.ListFeed(ctx, FeedFilter{}, FeedSortLatest, 10, cursor)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestPostRepository_ListFeedFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	tagRepo := NewTagRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	golang := seedPost(t, db, alice.ID, "why-go", models.PostStatusPublished, now)
	seedPost(t, db, bob.ID, "why-rust", models.PostStatusPublished, now.Add(time.Minute))
	aliceDraft := seedPost(t, db, alice.ID, "wip-notes", models.PostStatusDraft, now.Add(2*time.Minute))

	tag, err := tagRepo.UpsertTag(ctx, "Go", "go")
	require.NoError(t, err)
	require.NoError(t, tagRepo.LinkPost(ctx, golang.ID, tag.ID))

	t.Run("author filter", func(t *testing.T) {
		posts, err := repo.ListFeed(ctx, FeedFilter{AuthorID: alice.ID}, FeedSortLatest, 10, nil)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, golang.ID, posts[0].ID)
	})

	t.Run("drafts visible with all statuses", func(t *testing.T) {
		posts, err := repo.ListFeed(ctx, FeedFilter{AuthorID: alice.ID, AllStatuses: true}, FeedSortLatest, 10, nil)
		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, aliceDraft.ID, posts[0].ID)
	})

	t.Run("tag filter", func(t *testing.T) {
		posts, err := repo.ListFeed(ctx, FeedFilter{TagSlug: "go"}, FeedSortLatest, 10, nil)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, golang.ID, posts[0].ID)
	})

	t.Run("search matches title case-insensitively", func(t *testing.T) {
		posts, err := repo.ListFeed(ctx, FeedFilter{Search: "RUST"}, FeedSortLatest, 10, nil)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "why-rust", posts[0].Slug)
	})

	t.Run("search matches tag name", func(t *testing.T) {
		posts, err := repo.ListFeed(ctx, FeedFilter{Search: "go"}, FeedSortLatest, 10, nil)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, golang.ID, posts[0].ID)
	})

	t.Run("search treats wildcards literally", func(t *testing.T) {
		pct := &models.Post{
			Slug:     "percent-guide",
			Title:    "100% Guide",
			Content:  "all about percentages",
			Status:   models.PostStatusPublished,
			AuthorID: alice.ID,
		}
		require.NoError(t, db.Create(pct).Error)

		posts, err := repo.ListFeed(ctx, FeedFilter{Search: "100%"}, FeedSortLatest, 10, nil)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, pct.ID, posts[0].ID)

		// A bare % no longer matches everything.
		posts, err = repo.ListFeed(ctx, FeedFilter{Search: "%Guide"}, FeedSortLatest, 10, nil)
		require.NoError(t, err)
		assert.Empty(t, posts)

		// _ no longer matches an arbitrary character.
		posts, err = repo.ListFeed(ctx, FeedFilter{Search: "1_0"}, FeedSortLatest, 10, nil)
		require.NoError(t, err)
		assert.Empty(t, posts)
	})

	t.Run("following filter", func(t *testing.T) {
		followRepo := NewFollowRepository(db)
		carol := seedUser(t, db, "carol")
		require.NoError(t, followRepo.Create(ctx, carol.ID, bob.ID))

		posts, err := repo.ListFeed(ctx, FeedFilter{FollowedBy: carol.ID}, FeedSortLatest, 10, nil)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "why-rust", posts[0].Slug)
	})
}

func TestIsUniqueViolation(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, "uv-author")
	seedPost(t, db, author.ID, "claimed", models.PostStatusPublished, time.Now())

	err := repo.Create(ctx, &models.Post{
		Slug:     "claimed",
		Title:    "Duplicate",
		Content:  "collides on the slug index",
		Status:   models.PostStatusPublished,
		AuthorID: author.ID,
	})
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))

	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(gorm.ErrRecordNotFound))
}

func TestPostRepository_ListFeedRecommended(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	reactionRepo := NewReactionRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, "rec-author")
	fans := []*models.User{seedUser(t, db, "fan1"), seedUser(t, db, "fan2")}
	now := time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC)

	quiet := seedPost(t, db, author.ID, "quiet", models.PostStatusPublished, now.Add(2*time.Minute))
	popular := seedPost(t, db, author.ID, "popular", models.PostStatusPublished, now)
	middle := seedPost(t, db, author.ID, "middle", models.PostStatusPublished, now.Add(time.Minute))

	for _, fan := range fans {
		require.NoError(t, reactionRepo.Create(ctx, &models.Reaction{PostID: popular.ID, UserID: fan.ID, Type: models.ReactionLike}))
	}
	require.NoError(t, reactionRepo.Create(ctx, &models.Reaction{PostID: middle.ID, UserID: fans[0].ID, Type: models.ReactionClap}))

	posts, err := repo.ListFeed(ctx, FeedFilter{}, FeedSortRecommended, 10, nil)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, popular.ID, posts[0].ID)
	assert.Equal(t, middle.ID, posts[1].ID)
	assert.Equal(t, quiet.ID, posts[2].ID)

	// Resuming after the first row keeps the recommended order.
	cursor, err := repo.GetFeedCursor(ctx, popular.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, cursor.ReactionCount)

	rest, err := repo.ListFeed(ctx, FeedFilter{}, FeedSortRecommended, 10, cursor)
	require.NoError(t, err)
	require.Len(t, rest, 2)
	assert.Equal(t, middle.ID, rest[0].ID)
	assert.Equal(t, quiet.ID, rest[1].ID)
}

func TestPostRepository_GetDetailCounts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	reactionRepo := NewReactionRepository(db)
	commentRepo := NewCommentRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, "detail-author")
	reader := seedUser(t, db, "detail-reader")
	post := seedPost(t, db, author.ID, "counted", models.PostStatusPublished, time.Now())

	require.NoError(t, reactionRepo.Create(ctx, &models.Reaction{PostID: post.ID, UserID: reader.ID, Type: models.ReactionLike}))
	require.NoError(t, reactionRepo.Create(ctx, &models.Reaction{PostID: post.ID, UserID: reader.ID, Type: models.ReactionClap}))
	require.NoError(t, commentRepo.Create(ctx, &models.Comment{PostID: post.ID, AuthorID: reader.ID, Content: "nice"}))

	got, err := repo.GetDetailByRef(ctx, "counted", true)
	require.NoError(t, err)
	assert.Equal(t, 1, got.LikesCount)
	assert.Equal(t, 1, got.ClapsCount)
	assert.Equal(t, 1, got.CommentsCount)
	assert.Equal(t, author.ID, got.Author.ID)
}

func slugN(prefix string, n int) string {
	return prefix + "-" + string(rune('a'+n))
}
