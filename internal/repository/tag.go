package repository

import (
	"context"

	"inkstream/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TagRepository defines the interface for tag data operations
type TagRepository interface {
	UpsertTag(ctx context.Context, name, slug string) (*models.Tag, error)
	LinkPost(ctx context.Context, postID, tagID string) error
	UnlinkNotIn(ctx context.Context, postID string, keepTagIDs []string) error
	UnlinkAll(ctx context.Context, postID string) error
	ListByPost(ctx context.Context, postID string) ([]models.Tag, error)
	List(ctx context.Context, search string) ([]models.Tag, error)
	WithTx(tx *gorm.DB) TagRepository
}

// tagRepository implements TagRepository
type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *tagRepository) WithTx(tx *gorm.DB) TagRepository {
	return &tagRepository{db: tx}
}

// UpsertTag creates the tag if its slug is new, otherwise refreshes the
// display name of the existing row.
func (r *tagRepository) UpsertTag(ctx context.Context, name, slug string) (*models.Tag, error) {
	tag := models.Tag{Name: name, Slug: slug}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "updated_at"}),
		}).
		Create(&tag).Error
	if err != nil {
		return nil, err
	}
	// The conflict path does not report the existing row's id back.
	var out models.Tag
	if err := r.db.WithContext(ctx).First(&out, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// LinkPost attaches the tag to the post; linking an already linked tag is a
// no-op.
func (r *tagRepository) LinkPost(ctx context.Context, postID, tagID string) error {
	link := models.PostTag{PostID: postID, TagID: tagID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&link).Error
}

// UnlinkNotIn removes every join row for the post whose tag is not in
// keepTagIDs.
func (r *tagRepository) UnlinkNotIn(ctx context.Context, postID string, keepTagIDs []string) error {
	q := r.db.WithContext(ctx).Where("post_id = ?", postID)
	if len(keepTagIDs) > 0 {
		q = q.Where("tag_id NOT IN ?", keepTagIDs)
	}
	return q.Delete(&models.PostTag{}).Error
}

func (r *tagRepository) UnlinkAll(ctx context.Context, postID string) error {
	return r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Delete(&models.PostTag{}).Error
}

func (r *tagRepository) ListByPost(ctx context.Context, postID string) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.WithContext(ctx).
		Joins("JOIN post_tags ON post_tags.tag_id = tags.id").
		Where("post_tags.post_id = ?", postID).
		Order("tags.slug ASC").
		Find(&tags).Error
	return tags, err
}

// List returns all tags with their live post counts, optionally filtered by
// a case-insensitive name match.
func (r *tagRepository) List(ctx context.Context, search string) ([]models.Tag, error) {
	var tags []models.Tag
	q := r.db.WithContext(ctx).
		Model(&models.Tag{}).
		Select("tags.*, " +
			"(SELECT COUNT(*) FROM post_tags JOIN posts ON posts.id = post_tags.post_id " +
			"WHERE post_tags.tag_id = tags.id AND posts.deleted_at IS NULL AND posts.status = 'published') as post_count")
	if search != "" {
		q = q.Where(`LOWER(tags.name) LIKE LOWER(?) ESCAPE '\'`, "%"+escapeLike(search)+"%")
	}
	err := q.Order("post_count DESC, tags.slug ASC").Find(&tags).Error
	return tags, err
}
