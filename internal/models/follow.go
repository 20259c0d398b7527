package models

import (
	"time"
)

// Follow is a directed edge: follower sees following's posts in their feed.
// The composite primary key makes the pair unique; duplicate inserts surface
// as a key violation rather than being pre-checked.
type Follow struct {
	FollowerID  uint      `gorm:"primaryKey;autoIncrement:false" json:"follower_id"`
	FollowingID uint      `gorm:"primaryKey;autoIncrement:false" json:"following_id"`
	FollowedAt  time.Time `gorm:"autoCreateTime" json:"followed_at"`

	Follower  User `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE" json:"-"`
	Following User `gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE" json:"-"`
}
