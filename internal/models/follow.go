package models

import "time"

// Follow is a directed edge meaning "follower subscribes to following's
// posts". The composite primary key forbids duplicate edges; self-follows
// are rejected at the service layer.
type Follow struct {
	FollowerID  string    `gorm:"primaryKey;size:36" json:"followerId"`
	FollowingID string    `gorm:"primaryKey;size:36" json:"followingId"`
	CreatedAt   time.Time `json:"createdAt"`
}
