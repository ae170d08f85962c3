package repository

import (
	"strings"

	"github.com/KhangChau12/PinGallery/app/models"
	"gorm.io/gorm"
)

// imageRepository implements the ImageRepository interface
type imageRepository struct {
	db *gorm.DB
}

// NewImageRepository creates a new image repository instance
func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepository{db: db}
}

// Create creates a new image in the database
func (r *imageRepository) Create(image *models.Image) error {
	return r.db.Create(image).Error
}

// GetByID retrieves a bare image row by its ID
func (r *imageRepository) GetByID(id uint) (*models.Image, error) {
	var image models.Image
	err := r.db.First(&image, id).Error
	if err != nil {
		return nil, err
	}
	return &image, nil
}

// annotated selects images joined with the owner and the like/comment counts.
// The liked state for callerID is computed in the same query instead of one
// probe per row.
func (r *imageRepository) annotated(callerID uint) *gorm.DB {
	return r.db.Model(&models.Image{}).
		Select(`images.id, images.user_id, images.file_name, images.title, images.description,
			images.file_size, images.file_type, images.width, images.height,
			images.created_at, images.updated_at,
			users.username AS username, users.avatar AS avatar,
			(SELECT COUNT(*) FROM likes WHERE likes.image_id = images.id) AS likes_count,
			(SELECT COUNT(*) FROM comments WHERE comments.image_id = images.id) AS comments_count,
			EXISTS(SELECT 1 FROM likes WHERE likes.image_id = images.id AND likes.user_id = ?) AS is_liked`,
			callerID).
		Joins("JOIN users ON users.id = images.user_id")
}

// GetRow retrieves one annotated image.
func (r *imageRepository) GetRow(id uint, callerID uint) (*ImageRow, error) {
	var row ImageRow
	err := r.annotated(callerID).Where("images.id = ?", id).Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// List retrieves a page of annotated images, newest first, with the total
// matching count.
func (r *imageRepository) List(params ListImagesParams) ([]ImageRow, int64, error) {
	query := r.annotated(params.CallerID)
	countQuery := r.db.Model(&models.Image{})

	if params.UserID != 0 {
		query = query.Where("images.user_id = ?", params.UserID)
		countQuery = countQuery.Where("user_id = ?", params.UserID)
	}
	if search := strings.TrimSpace(params.Search); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("images.title LIKE ? OR images.description LIKE ?", pattern, pattern)
		countQuery = countQuery.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := make([]ImageRow, 0)
	err := query.Order("images.created_at DESC, images.id DESC").
		Offset(params.Offset).Limit(params.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

// Update updates an existing image in the database
func (r *imageRepository) Update(image *models.Image) error {
	return r.db.Save(image).Error
}

// Delete removes an image row. Comments and likes go with it through the
// schema's cascade.
func (r *imageRepository) Delete(id uint) error {
	return r.db.Delete(&models.Image{}, id).Error
}
