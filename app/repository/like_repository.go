package repository

import (
	"github.com/KhangChau12/PinGallery/app/models"
	"gorm.io/gorm"

	"github.com/KhangChau12/PinGallery/internal/pkg/cache"
)

// likeRepository implements the LikeRepository interface. Like counts are
// read through the cache when one is configured; every write invalidates
// the cached count, so a cached value is never stale.
type likeRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

// NewLikeRepository creates a new like repository instance
func NewLikeRepository(db *gorm.DB, c *cache.Cache) LikeRepository {
	return &likeRepository{db: db, cache: c}
}

// Create inserts a like edge. The composite primary key rejects duplicates.
func (r *likeRepository) Create(like *models.Like) error {
	if err := r.db.Create(like).Error; err != nil {
		return err
	}
	r.cache.InvalidateLikeCount(like.ImageID)
	return nil
}

// Delete removes the like edge for the given user and image
func (r *likeRepository) Delete(userID, imageID uint) error {
	err := r.db.
		Where("user_id = ? AND image_id = ?", userID, imageID).
		Delete(&models.Like{}).Error
	if err != nil {
		return err
	}
	r.cache.InvalidateLikeCount(imageID)
	return nil
}

// Exists reports whether the user has liked the image
func (r *likeRepository) Exists(userID, imageID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("user_id = ? AND image_id = ?", userID, imageID).
		Count(&count).Error
	return count > 0, err
}

// CountByImage returns the number of likes on an image, preferring the
// cached value.
func (r *likeRepository) CountByImage(imageID uint) (int64, error) {
	if n, ok := r.cache.GetLikeCount(imageID); ok {
		return n, nil
	}

	var count int64
	err := r.db.Model(&models.Like{}).Where("image_id = ?", imageID).Count(&count).Error
	if err != nil {
		return 0, err
	}
	r.cache.SetLikeCount(imageID, count)
	return count, nil
}

// ListUsersByImage retrieves a page of users who liked an image, most recent
// like first, with the total count.
func (r *likeRepository) ListUsersByImage(imageID uint, offset, limit int) ([]UserSummary, int64, error) {
	total, err := r.CountByImage(imageID)
	if err != nil {
		return nil, 0, err
	}

	users := make([]UserSummary, 0)
	err = r.db.Model(&models.Like{}).
		Select(`users.id, users.username, users.avatar, likes.created_at`).
		Joins("JOIN users ON users.id = likes.user_id").
		Where("likes.image_id = ?", imageID).
		Order("likes.created_at DESC, users.id DESC").
		Offset(offset).Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// InvalidateCount drops the cached like count, used when an image delete
// cascades over likes without touching this repository.
func (r *likeRepository) InvalidateCount(imageID uint) {
	r.cache.InvalidateLikeCount(imageID)
}
