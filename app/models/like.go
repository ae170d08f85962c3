package models

import (
	"time"
)

// Like records a user's like on an image. The (user_id, image_id) pair is
// the primary key, so at most one like per user and image can exist.
type Like struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	ImageID   uint      `gorm:"primaryKey;autoIncrement:false" json:"image_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Image     Image     `gorm:"foreignKey:ImageID;constraint:OnDelete:CASCADE" json:"image,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
