package repository

import (
	"gorm.io/gorm"

	"github.com/KhangChau12/PinGallery/internal/pkg/cache"
)

// Repositories bundles the per-entity repositories. It is constructed once
// at startup from the database handle and passed into the controllers; there
// is no global instance.
type Repositories struct {
	User    UserRepository
	Image   ImageRepository
	Comment CommentRepository
	Like    LikeRepository
	Follow  FollowRepository
}

// NewRepositories creates all repositories over the given database handle.
// The cache may be nil; the like repository then always counts from the
// database.
func NewRepositories(db *gorm.DB, c *cache.Cache) *Repositories {
	return &Repositories{
		User:    NewUserRepository(db),
		Image:   NewImageRepository(db),
		Comment: NewCommentRepository(db),
		Like:    NewLikeRepository(db, c),
		Follow:  NewFollowRepository(db),
	}
}
