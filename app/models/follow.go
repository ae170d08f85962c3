package models

import (
	"time"
)

// Follow is a directed edge: follower follows following. The composite
// primary key keeps the edge unique; follower != following is enforced in
// the controller, not the schema.
type Follow struct {
	FollowerID  uint      `gorm:"primaryKey;autoIncrement:false" json:"follower_id"`
	FollowingID uint      `gorm:"primaryKey;autoIncrement:false" json:"following_id"`
	Follower    User      `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE" json:"follower,omitempty"`
	Following   User      `gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE" json:"following,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}
