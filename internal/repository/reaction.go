package repository

import (
	"context"

	"inkstream/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReactionRepository defines the interface for reaction data operations
type ReactionRepository interface {
	Totals(ctx context.Context, postID string) (models.ReactionTotals, error)
	UserReactions(ctx context.Context, postID, userID string) ([]models.ReactionType, error)
	Exists(ctx context.Context, postID, userID string, kind models.ReactionType) (bool, error)
	Create(ctx context.Context, reaction *models.Reaction) error
	Delete(ctx context.Context, postID, userID string, kind models.ReactionType) error
}

// reactionRepository implements ReactionRepository
type reactionRepository struct {
	db *gorm.DB
}

// NewReactionRepository creates a new reaction repository
func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) Totals(ctx context.Context, postID string) (models.ReactionTotals, error) {
	type row struct {
		Type  models.ReactionType
		Count int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Reaction{}).
		Select("type, COUNT(*) as count").
		Where("post_id = ?", postID).
		Group("type").
		Find(&rows).Error
	if err != nil {
		return models.ReactionTotals{}, err
	}

	var totals models.ReactionTotals
	for _, row := range rows {
		switch row.Type {
		case models.ReactionLike:
			totals.Likes = int(row.Count)
		case models.ReactionClap:
			totals.Claps = int(row.Count)
		}
	}
	return totals, nil
}

func (r *reactionRepository) UserReactions(ctx context.Context, postID, userID string) ([]models.ReactionType, error) {
	var kinds []models.ReactionType
	err := r.db.WithContext(ctx).
		Model(&models.Reaction{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Order("type ASC").
		Pluck("type", &kinds).Error
	return kinds, err
}

func (r *reactionRepository) Exists(ctx context.Context, postID, userID string, kind models.ReactionType) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Reaction{}).
		Where("post_id = ? AND user_id = ? AND type = ?", postID, userID, kind).
		Count(&count).Error
	return count > 0, err
}

// Create inserts the reaction; a concurrent duplicate insert is swallowed by
// the unique index so the toggle stays idempotent.
func (r *reactionRepository) Create(ctx context.Context, reaction *models.Reaction) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(reaction).Error
}

func (r *reactionRepository) Delete(ctx context.Context, postID, userID string, kind models.ReactionType) error {
	return r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ? AND type = ?", postID, userID, kind).
		Delete(&models.Reaction{}).Error
}
