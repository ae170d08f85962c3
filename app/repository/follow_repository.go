package repository

import (
	"github.com/KhangChau12/PinGallery/app/models"
	"gorm.io/gorm"
)

// followRepository implements the FollowRepository interface
type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository instance
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Create inserts a follow edge. The composite primary key rejects
// duplicates.
func (r *followRepository) Create(follow *models.Follow) error {
	return r.db.Create(follow).Error
}

// Delete removes the follow edge
func (r *followRepository) Delete(followerID, followingID uint) error {
	return r.db.
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{}).Error
}

// Exists reports whether follower follows following
func (r *followRepository) Exists(followerID, followingID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

// CountFollowers returns how many users follow the given user
func (r *followRepository) CountFollowers(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("following_id = ?", userID).Count(&count).Error
	return count, err
}

// ListFollowers retrieves a page of the user's followers, most recent edge
// first, with the total count.
func (r *followRepository) ListFollowers(userID uint, offset, limit int) ([]UserSummary, int64, error) {
	var total int64
	err := r.db.Model(&models.Follow{}).Where("following_id = ?", userID).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	users := make([]UserSummary, 0)
	err = r.db.Model(&models.Follow{}).
		Select(`users.id, users.username, users.avatar, follows.created_at`).
		Joins("JOIN users ON users.id = follows.follower_id").
		Where("follows.following_id = ?", userID).
		Order("follows.created_at DESC, users.id DESC").
		Offset(offset).Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// ListFollowing retrieves a page of the users the given user follows.
func (r *followRepository) ListFollowing(userID uint, offset, limit int) ([]UserSummary, int64, error) {
	var total int64
	err := r.db.Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	users := make([]UserSummary, 0)
	err = r.db.Model(&models.Follow{}).
		Select(`users.id, users.username, users.avatar, follows.created_at`).
		Joins("JOIN users ON users.id = follows.following_id").
		Where("follows.follower_id = ?", userID).
		Order("follows.created_at DESC, users.id DESC").
		Offset(offset).Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}
