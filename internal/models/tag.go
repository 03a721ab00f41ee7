package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag is a label attachable to posts. Tags are created lazily on first use
// and never deleted automatically; dropping a tag from a post only removes
// the join row.
type Tag struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	// PostCount is not persisted; computed at query time
	PostCount int `gorm:"->" json:"postCount,omitempty"`
}

// BeforeCreate assigns an opaque ID when one was not supplied.
func (t *Tag) BeforeCreate(_ *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// PostTag links a post to a tag. The composite primary key makes the upsert
// of an existing link a no-op.
type PostTag struct {
	PostID    string    `gorm:"primaryKey;size:36" json:"postId"`
	TagID     string    `gorm:"primaryKey;size:36" json:"tagId"`
	Tag       Tag       `gorm:"foreignKey:TagID" json:"tag"`
	CreatedAt time.Time `json:"createdAt"`
}
