package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

type Image struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	User        User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	FileName    string    `gorm:"type:varchar(255);not null" json:"file_name"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title" validate:"required,max=255"`
	Description string    `gorm:"type:text" json:"description"`
	FileSize    int64     `gorm:"type:bigint" json:"file_size"`
	FileType    string    `gorm:"type:varchar(50)" json:"file_type"`
	Width       int       `gorm:"type:int" json:"width"`
	Height      int       `gorm:"type:int" json:"height"`
	Comments    []Comment `gorm:"foreignKey:ImageID" json:"comments,omitempty"`
	Likes       []Like    `gorm:"foreignKey:ImageID" json:"likes,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (i *Image) Validate() error {
	v := validator.New()

	return v.Struct(i)
}
