package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/KhangChau12/PinGallery/app/models"
	"github.com/KhangChau12/PinGallery/app/repository"
	"github.com/KhangChau12/PinGallery/internal/pkg/apperr"
	"github.com/KhangChau12/PinGallery/internal/pkg/usercontext"
)

type CommentController struct {
	comments repository.CommentRepository
	images   repository.ImageRepository
}

func NewCommentController(comments repository.CommentRepository, images repository.ImageRepository) *CommentController {
	return &CommentController{comments: comments, images: images}
}

// ListByImage returns a page of an image's comments, newest first, each
// joined with the author identity.
func (ct *CommentController) ListByImage(c *fiber.Ctx) error {
	imageID, err := c.ParamsInt("imageId")
	if err != nil || imageID < 1 {
		return apperr.NotFound("Image not found")
	}

	if _, err := ct.images.GetByID(uint(imageID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Image not found")
		}
		return err
	}

	page, limit, offset := parsePagination(c)
	rows, total, err := ct.comments.ListByImage(uint(imageID), offset, limit)
	if err != nil {
		return err
	}
	for i := range rows {
		rows[i].Avatar = avatarURL(c, rows[i].Avatar)
	}

	return c.JSON(paginatedResponse(rows, total, page, limit))
}

// Add creates a comment on an image and returns it with the author identity
// attached.
func (ct *CommentController) Add(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)

	imageID, err := c.ParamsInt("imageId")
	if err != nil || imageID < 1 {
		return apperr.NotFound("Image not found")
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("Comment content is required")
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return apperr.Validation("Comment content is required")
	}

	if _, err := ct.images.GetByID(uint(imageID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Image not found")
		}
		return err
	}

	comment := &models.Comment{
		UserID:  uc.UserID,
		ImageID: uint(imageID),
		Content: content,
	}
	if err := ct.comments.Create(comment); err != nil {
		return err
	}

	row, err := ct.comments.GetRow(comment.ID)
	if err != nil {
		return err
	}
	row.Avatar = avatarURL(c, row.Avatar)

	return c.Status(fiber.StatusCreated).JSON(row)
}

// Delete removes a comment. Allowed for the comment's author and for the
// owner of the image the comment is on.
func (ct *CommentController) Delete(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)

	commentID, err := c.ParamsInt("commentId")
	if err != nil || commentID < 1 {
		return apperr.NotFound("Comment not found")
	}

	comment, err := ct.comments.GetByID(uint(commentID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Comment not found")
		}
		return err
	}

	if comment.UserID != uc.UserID {
		image, err := ct.images.GetByID(comment.ImageID)
		if err != nil || image.UserID != uc.UserID {
			return apperr.Forbidden("Not authorized to delete this comment")
		}
	}

	if err := ct.comments.Delete(comment.ID); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Comment deleted successfully"})
}
