// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"strings"
	"time"

	"inkstream/internal/models"

	"gorm.io/gorm"
)

// FeedSort names the ordering applied to the feed.
type FeedSort string

const (
	// FeedSortLatest orders strictly by creation time.
	FeedSortLatest FeedSort = "latest"
	// FeedSortRecommended orders by total reaction count, then creation time.
	FeedSortRecommended FeedSort = "recommended"
)

// FeedFilter narrows the set of posts returned by ListFeed. Zero values mean
// "no restriction" for that dimension.
type FeedFilter struct {
	AuthorID    string
	AllStatuses bool // when false, only published posts are visible
	TagSlug     string
	Search      string
	FollowedBy  string // restrict to authors this user follows
}

// FeedCursor is the keyset position of the last row of the previous page.
type FeedCursor struct {
	ID            string
	CreatedAt     time.Time
	ReactionCount int
}

// reactionCountExpr counts all reactions for a post. ORDER BY can reference
// the select alias but WHERE cannot, so the expression is repeated in cursor
// predicates.
const reactionCountExpr = "(SELECT COUNT(*) FROM reactions WHERE reactions.post_id = posts.id)"

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByRef(ctx context.Context, ref string, publishedOnly bool) (*models.Post, error)
	GetDetailByRef(ctx context.Context, ref string, publishedOnly bool) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	SoftDelete(ctx context.Context, id string) error
	SlugExists(ctx context.Context, slug string) (bool, error)
	ListFeed(ctx context.Context, filter FeedFilter, sort FeedSort, limit int, cursor *FeedCursor) ([]*models.Post, error)
	GetFeedCursor(ctx context.Context, id string) (*FeedCursor, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// GetByRef resolves a post by canonical id or slug in a single query. The
// soft-delete scope excludes deleted rows automatically.
func (r *postRepository) GetByRef(ctx context.Context, ref string, publishedOnly bool) (*models.Post, error) {
	var post models.Post
	q := r.db.WithContext(ctx).Where("posts.id = ? OR posts.slug = ?", ref, ref)
	if publishedOnly {
		q = q.Where("posts.status = ?", models.PostStatusPublished)
	}
	if err := q.First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetDetailByRef is GetByRef plus author, tags and the computed counts.
func (r *postRepository) GetDetailByRef(ctx context.Context, ref string, publishedOnly bool) (*models.Post, error) {
	var post models.Post
	q := r.applySummary(r.db.WithContext(ctx)).
		Preload("Author").
		Preload("Tags.Tag").
		Where("posts.id = ? OR posts.slug = ?", ref, ref)
	if publishedOnly {
		q = q.Where("posts.status = ?", models.PostStatusPublished)
	}
	if err := q.First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

// SoftDelete marks the post deleted and forces it back to draft so a later
// restore never republishes it by accident.
func (r *postRepository) SoftDelete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).
			Where("id = ?", id).
			Update("status", models.PostStatusDraft).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Post{}).Error
	})
}

// SlugExists checks soft-deleted rows too: the unique index still holds
// their slug.
func (r *postRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Unscoped().
		Model(&models.Post{}).
		Where("slug = ?", slug).
		Count(&count).Error
	return count > 0, err
}

// ListFeed returns up to limit posts matching the filter, ordered by sort,
// resuming after cursor when one is given.
func (r *postRepository) ListFeed(ctx context.Context, filter FeedFilter, sort FeedSort, limit int, cursor *FeedCursor) ([]*models.Post, error) {
	var posts []*models.Post

	q := r.applySummary(r.db.WithContext(ctx)).
		Preload("Author").
		Preload("Tags.Tag")
	q = r.applyFilter(q, filter)
	q = r.applyCursor(q, sort, cursor)
	q = r.applySort(q, sort)

	if err := q.Limit(limit).Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// GetFeedCursor loads the keyset position for the given post id. Returns
// gorm.ErrRecordNotFound when the id does not reference a live post.
func (r *postRepository) GetFeedCursor(ctx context.Context, id string) (*FeedCursor, error) {
	var cur FeedCursor
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Select("posts.id, posts.created_at, "+reactionCountExpr+" as reaction_count").
		Where("posts.id = ?", id).
		Take(&cur).Error
	if err != nil {
		return nil, err
	}
	return &cur, nil
}

// applySummary adds subqueries computing per-post counts in a single query.
func (r *postRepository) applySummary(db *gorm.DB) *gorm.DB {
	return db.Select("posts.*, " +
		"(SELECT COUNT(*) FROM reactions WHERE reactions.post_id = posts.id AND reactions.type = 'like') as likes_count, " +
		"(SELECT COUNT(*) FROM reactions WHERE reactions.post_id = posts.id AND reactions.type = 'clap') as claps_count, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL) as comments_count, " +
		reactionCountExpr + " as reaction_count")
}

// escapeLike neutralizes LIKE metacharacters so a user-supplied search term
// matches literally. Predicates using the result must carry ESCAPE '\'.
func escapeLike(term string) string {
	r := strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)
	return r.Replace(term)
}

func (r *postRepository) applyFilter(db *gorm.DB, filter FeedFilter) *gorm.DB {
	if !filter.AllStatuses {
		db = db.Where("posts.status = ?", models.PostStatusPublished)
	}
	if filter.AuthorID != "" {
		db = db.Where("posts.author_id = ?", filter.AuthorID)
	}
	if filter.FollowedBy != "" {
		db = db.Where("posts.author_id IN (SELECT following_id FROM follows WHERE follower_id = ?)", filter.FollowedBy)
	}
	if filter.TagSlug != "" {
		db = db.Where("EXISTS (SELECT 1 FROM post_tags JOIN tags ON tags.id = post_tags.tag_id WHERE post_tags.post_id = posts.id AND tags.slug = ?)", filter.TagSlug)
	}
	if filter.Search != "" {
		// LOWER(...) LIKE instead of ILIKE keeps the query portable to the
		// sqlite test database.
		like := "%" + escapeLike(filter.Search) + "%"
		db = db.Where(
			`LOWER(posts.title) LIKE LOWER(?) ESCAPE '\' OR LOWER(posts.excerpt) LIKE LOWER(?) ESCAPE '\' OR LOWER(posts.content) LIKE LOWER(?) ESCAPE '\' OR `+
				`EXISTS (SELECT 1 FROM post_tags JOIN tags ON tags.id = post_tags.tag_id WHERE post_tags.post_id = posts.id AND LOWER(tags.name) LIKE LOWER(?) ESCAPE '\')`,
			like, like, like, like,
		)
	}
	return db
}

// applyCursor appends the keyset predicate for the page after cursor. The
// predicate mirrors the sort order exactly, with id as the final tiebreak.
func (r *postRepository) applyCursor(db *gorm.DB, sort FeedSort, cursor *FeedCursor) *gorm.DB {
	if cursor == nil {
		return db
	}
	switch sort {
	case FeedSortRecommended:
		return db.Where(
			"("+reactionCountExpr+" < ?) OR "+
				"("+reactionCountExpr+" = ? AND posts.created_at < ?) OR "+
				"("+reactionCountExpr+" = ? AND posts.created_at = ? AND posts.id < ?)",
			cursor.ReactionCount,
			cursor.ReactionCount, cursor.CreatedAt,
			cursor.ReactionCount, cursor.CreatedAt, cursor.ID,
		)
	default:
		return db.Where(
			"(posts.created_at < ?) OR (posts.created_at = ? AND posts.id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}
}

func (r *postRepository) applySort(db *gorm.DB, sort FeedSort) *gorm.DB {
	switch sort {
	case FeedSortRecommended:
		return db.Order("reaction_count DESC, posts.created_at DESC, posts.id DESC")
	default:
		return db.Order("posts.created_at DESC, posts.id DESC")
	}
}
