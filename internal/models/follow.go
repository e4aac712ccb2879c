package models

import "time"

// Follow is a directed worshiper -> leader edge. At most one per pair.
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	WorshiperID uint      `json:"worshiper_id" gorm:"not null;uniqueIndex:idx_follow_pair"`
	LeaderID    uint      `json:"leader_id" gorm:"not null;index;uniqueIndex:idx_follow_pair"`
	CreatedAt   time.Time `json:"created_at"`

	Worshiper User `json:"-" gorm:"foreignKey:WorshiperID;constraint:OnDelete:CASCADE"`
	Leader    User `json:"-" gorm:"foreignKey:LeaderID;constraint:OnDelete:CASCADE"`
}

// FollowerResponse is one row of a leader's follower list.
type FollowerResponse struct {
	WorshiperID  uint      `json:"worshiper_id"`
	Name         string    `json:"name"`
	ProfilePhoto *string   `json:"profile_photo"`
	FollowedAt   time.Time `json:"followed_at"`
}
