package repository

import (
	"github.com/KhangChau12/PinGallery/app/models"
	"gorm.io/gorm"
)

// commentRepository implements the CommentRepository interface
type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository instance
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create creates a new comment in the database
func (r *commentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// GetByID retrieves a bare comment by its ID
func (r *commentRepository) GetByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.First(&comment, id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) joined() *gorm.DB {
	return r.db.Model(&models.Comment{}).
		Select(`comments.id, comments.user_id, comments.image_id, comments.content, comments.created_at,
			users.username AS username, users.avatar AS avatar`).
		Joins("JOIN users ON users.id = comments.user_id")
}

// GetRow retrieves one comment joined with its author identity.
func (r *commentRepository) GetRow(id uint) (*CommentRow, error) {
	var row CommentRow
	err := r.joined().Where("comments.id = ?", id).Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// ListByImage retrieves a page of an image's comments, newest first, with
// the total count.
func (r *commentRepository) ListByImage(imageID uint, offset, limit int) ([]CommentRow, int64, error) {
	var total int64
	err := r.db.Model(&models.Comment{}).Where("image_id = ?", imageID).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	rows := make([]CommentRow, 0)
	err = r.joined().
		Where("comments.image_id = ?", imageID).
		Order("comments.created_at DESC, comments.id DESC").
		Offset(offset).Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

// Delete removes a comment by its ID
func (r *commentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Comment{}, id).Error
}
