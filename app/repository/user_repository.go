package repository

import (
	"github.com/KhangChau12/PinGallery/app/models"
	"gorm.io/gorm"
)

// userRepository implements the UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user in the database
func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// GetByID retrieves a user by their ID
func (r *userRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsernameOrEmail retrieves a user by username or email address. Login
// accepts either.
func (r *userRepository) GetByUsernameOrEmail(login string) (*models.User, error) {
	var user models.User
	err := r.db.Where("username = ? OR email = ?", login, login).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByUsernameOrEmail reports whether any user holds the given username
// or email.
func (r *userRepository) ExistsByUsernameOrEmail(username, email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	return count > 0, err
}

// UsernameTakenByOther reports whether a different user already holds the
// username.
func (r *userRepository) UsernameTakenByOther(username string, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("username = ? AND id <> ?", username, userID).
		Count(&count).Error
	return count > 0, err
}

// EmailTakenByOther reports whether a different user already holds the email.
func (r *userRepository) EmailTakenByOther(email string, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("email = ? AND id <> ?", email, userID).
		Count(&count).Error
	return count > 0, err
}

// Update updates an existing user in the database
func (r *userRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// GetProfile retrieves a user together with their image/follower/following
// counts and whether callerID follows them, in one query.
func (r *userRepository) GetProfile(id uint, callerID uint) (*Profile, error) {
	var profile Profile
	err := r.db.Model(&models.User{}).
		Select(`users.id, users.username, users.email, users.avatar, users.bio, users.created_at,
			(SELECT COUNT(*) FROM images WHERE images.user_id = users.id) AS images_count,
			(SELECT COUNT(*) FROM follows WHERE follows.following_id = users.id) AS followers_count,
			(SELECT COUNT(*) FROM follows WHERE follows.follower_id = users.id) AS following_count,
			EXISTS(SELECT 1 FROM follows WHERE follows.follower_id = ? AND follows.following_id = users.id) AS is_following`,
			callerID).
		Where("users.id = ?", id).
		Take(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
