package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReactionType identifies the kind of reaction a user left on a post.
type ReactionType string

const (
	// ReactionLike is a "like" reaction.
	ReactionLike ReactionType = "like"
	// ReactionClap is a "clap" reaction.
	ReactionClap ReactionType = "clap"
)

// ValidReactionType reports whether t is a known reaction type.
func ValidReactionType(t ReactionType) bool {
	return t == ReactionLike || t == ReactionClap
}

// Reaction records a user's active reaction on a post. Presence of the row
// means active; toggling off hard-deletes it. The unique index on
// (post_id, user_id, type) is the correctness backstop under concurrent
// toggles.
type Reaction struct {
	ID        string       `gorm:"primaryKey;size:36" json:"id"`
	PostID    string       `gorm:"size:36;not null;uniqueIndex:idx_post_user_type" json:"postId"`
	UserID    string       `gorm:"size:36;not null;uniqueIndex:idx_post_user_type" json:"userId"`
	Type      ReactionType `gorm:"type:varchar(10);not null;uniqueIndex:idx_post_user_type" json:"type"`
	CreatedAt time.Time    `json:"createdAt"`
}

// BeforeCreate assigns an opaque ID when one was not supplied.
func (r *Reaction) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
