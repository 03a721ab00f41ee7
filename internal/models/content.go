package models

import "time"

// AuthorSummary is the public slice of a user embedded in feed and comment
// payloads.
type AuthorSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
}

// TagSummary is the wire form of a tag attached to a post.
type TagSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ReactionTotals aggregates active reaction counts per type for a post.
type ReactionTotals struct {
	Likes int `json:"likes"`
	Claps int `json:"claps"`
}

// PostSummary is a feed item.
type PostSummary struct {
	ID             string         `json:"id"`
	Slug           string         `json:"slug"`
	Title          string         `json:"title"`
	Excerpt        string         `json:"excerpt"`
	CoverImage     string         `json:"coverImage"`
	Status         PostStatus     `json:"status"`
	CreatedAt      time.Time      `json:"createdAt"`
	Tags           []TagSummary   `json:"tags"`
	Author         AuthorSummary  `json:"author"`
	ReactionTotals ReactionTotals `json:"reactionTotals"`
	CommentCount   int            `json:"commentCount"`
}

// PostDetail extends the summary with full content for the detail endpoint.
type PostDetail struct {
	PostSummary
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CommentNode is one node of the nested comment tree. Replies hold direct
// children in ascending creation order.
type CommentNode struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	CreatedAt time.Time      `json:"createdAt"`
	ParentID  *string        `json:"parentId"`
	Author    AuthorSummary  `json:"author"`
	Replies   []*CommentNode `json:"replies"`
}

// FollowStats is the degree summary of a profile's follow edges.
// IsFollowing is only meaningful when a viewer was known at query time.
type FollowStats struct {
	Followers   int64 `json:"followers"`
	Following   int64 `json:"following"`
	IsFollowing bool  `json:"isFollowing"`
}

// Summary converts a user to its public author form.
func (u *User) Summary() AuthorSummary {
	return AuthorSummary{ID: u.ID, Name: u.Name, AvatarURL: u.AvatarURL}
}
