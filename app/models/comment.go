package models

import (
	"time"
)

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	ImageID   uint      `gorm:"index;not null" json:"image_id"`
	Image     Image     `gorm:"foreignKey:ImageID;constraint:OnDelete:CASCADE" json:"image,omitempty"`
	Content   string    `gorm:"type:text;not null" json:"content" validate:"required,min=1"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
