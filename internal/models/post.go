package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostStatus is the publication state of a post.
type PostStatus string

const (
	// PostStatusDraft marks a post visible only to its author.
	PostStatusDraft PostStatus = "draft"
	// PostStatusPublished marks a post globally browsable.
	PostStatusPublished PostStatus = "published"
)

// ValidPostStatus reports whether s is a known publication state.
func ValidPostStatus(s PostStatus) bool {
	return s == PostStatusDraft || s == PostStatusPublished
}

// Post represents a blog post. The slug is derived from the title and is
// unique among non-deleted posts; it changes when the title changes.
type Post struct {
	ID         string     `gorm:"primaryKey;size:36" json:"id"`
	Slug       string     `gorm:"uniqueIndex;not null" json:"slug"`
	Title      string     `gorm:"not null" json:"title"`
	Excerpt    string     `json:"excerpt"`
	Content    string     `gorm:"type:text;not null" json:"content"`
	CoverImage string     `json:"coverImage"`
	Status     PostStatus `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	AuthorID   string     `gorm:"size:36;not null;index" json:"authorId"`
	Author     User       `gorm:"foreignKey:AuthorID" json:"author"`
	Tags       []PostTag  `gorm:"foreignKey:PostID" json:"-"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"-"`
	// ClapsCount is not persisted; computed at query time
	ClapsCount int `gorm:"->" json:"-"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"-"`
	// ReactionCount is not persisted; computed at query time
	ReactionCount int            `gorm:"->" json:"-"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns an opaque ID when one was not supplied.
func (p *Post) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
