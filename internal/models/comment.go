package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is a single comment on a post. Comments form a forest per post:
// top-level comments have a nil ParentID, replies reference a parent within
// the same post.
type Comment struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	PostID    string         `gorm:"size:36;not null;index" json:"postId"`
	AuthorID  string         `gorm:"size:36;not null" json:"authorId"`
	Author    User           `gorm:"foreignKey:AuthorID" json:"author"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	ParentID  *string        `gorm:"size:36;index" json:"parentId"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns an opaque ID when one was not supplied.
func (c *Comment) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
