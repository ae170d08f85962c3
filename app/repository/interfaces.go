package repository

import (
	"time"

	"github.com/KhangChau12/PinGallery/app/models"
)

// ImageRow is an image joined with its owner identity and the counts
// computed at read time. IsLiked reflects the calling user (false for
// anonymous callers). All of it comes back from a single query.
type ImageRow struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"user_id"`
	FileName      string    `json:"-"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	FileSize      int64     `json:"file_size"`
	FileType      string    `json:"file_type"`
	Width         int       `json:"width"`
	Height        int       `json:"height"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Username      string    `json:"username"`
	Avatar        string    `json:"avatar"`
	LikesCount    int64     `json:"likes_count"`
	CommentsCount int64     `json:"comments_count"`
	IsLiked       bool      `json:"is_liked"`

	// URL is filled in by the controller from the file name.
	URL string `gorm:"-" json:"url"`
}

// CommentRow is a comment joined with its author identity.
type CommentRow struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	ImageID   uint      `json:"image_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Username  string    `json:"username"`
	Avatar    string    `json:"avatar"`
}

// UserSummary is the public identity attached to likers, followers and
// following listings, ordered by the edge's creation time.
type UserSummary struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile is a user joined with their aggregate counts.
type Profile struct {
	ID             uint      `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email,omitempty"`
	Avatar         string    `json:"avatar"`
	Bio            string    `json:"bio"`
	CreatedAt      time.Time `json:"created_at"`
	ImagesCount    int64     `json:"images_count"`
	FollowersCount int64     `json:"followers_count"`
	FollowingCount int64     `json:"following_count"`
	IsFollowing    bool      `json:"is_following"`
}

// ListImagesParams narrows the image listing. UserID of zero means all
// owners; an empty Search disables the substring filter.
type ListImagesParams struct {
	Search   string
	UserID   uint
	CallerID uint
	Offset   int
	Limit    int
}

// UserRepository defines the interface for user datastore operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByUsernameOrEmail(login string) (*models.User, error)
	ExistsByUsernameOrEmail(username, email string) (bool, error)
	UsernameTakenByOther(username string, userID uint) (bool, error)
	EmailTakenByOther(email string, userID uint) (bool, error)
	Update(user *models.User) error
	GetProfile(id uint, callerID uint) (*Profile, error)
}

// ImageRepository defines the interface for image datastore operations
type ImageRepository interface {
	Create(image *models.Image) error
	GetByID(id uint) (*models.Image, error)
	GetRow(id uint, callerID uint) (*ImageRow, error)
	List(params ListImagesParams) ([]ImageRow, int64, error)
	Update(image *models.Image) error
	Delete(id uint) error
}

// CommentRepository defines the interface for comment datastore operations
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(id uint) (*models.Comment, error)
	GetRow(id uint) (*CommentRow, error)
	ListByImage(imageID uint, offset, limit int) ([]CommentRow, int64, error)
	Delete(id uint) error
}

// LikeRepository defines the interface for like datastore operations
type LikeRepository interface {
	Create(like *models.Like) error
	Delete(userID, imageID uint) error
	Exists(userID, imageID uint) (bool, error)
	CountByImage(imageID uint) (int64, error)
	ListUsersByImage(imageID uint, offset, limit int) ([]UserSummary, int64, error)
	InvalidateCount(imageID uint)
}

// FollowRepository defines the interface for follow datastore operations
type FollowRepository interface {
	Create(follow *models.Follow) error
	Delete(followerID, followingID uint) error
	Exists(followerID, followingID uint) (bool, error)
	CountFollowers(userID uint) (int64, error)
	ListFollowers(userID uint, offset, limit int) ([]UserSummary, int64, error)
	ListFollowing(userID uint, offset, limit int) ([]UserSummary, int64, error)
}
