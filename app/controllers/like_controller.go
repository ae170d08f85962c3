package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/KhangChau12/PinGallery/app/models"
	"github.com/KhangChau12/PinGallery/app/repository"
	"github.com/KhangChau12/PinGallery/internal/pkg/apperr"
	"github.com/KhangChau12/PinGallery/internal/pkg/usercontext"
)

type LikeController struct {
	likes  repository.LikeRepository
	images repository.ImageRepository
}

func NewLikeController(likes repository.LikeRepository, images repository.ImageRepository) *LikeController {
	return &LikeController{likes: likes, images: images}
}

func (ct *LikeController) imageID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("imageId")
	if err != nil || id < 1 {
		return 0, apperr.NotFound("Image not found")
	}
	if _, err := ct.images.GetByID(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperr.NotFound("Image not found")
		}
		return 0, err
	}
	return uint(id), nil
}

// Like adds the caller's like and returns the updated count. A second like
// on the same image is a conflict.
func (ct *LikeController) Like(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)

	imageID, err := ct.imageID(c)
	if err != nil {
		return err
	}

	liked, err := ct.likes.Exists(uc.UserID, imageID)
	if err != nil {
		return err
	}
	if liked {
		return apperr.Conflict("You already liked this image")
	}

	if err := ct.likes.Create(&models.Like{UserID: uc.UserID, ImageID: imageID}); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("You already liked this image")
		}
		return err
	}

	count, err := ct.likes.CountByImage(imageID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Image liked successfully",
		"likes":   count,
	})
}

// Unlike removes the caller's like and returns the updated count. Unliking
// an image that was never liked is a conflict.
func (ct *LikeController) Unlike(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)

	imageID, err := ct.imageID(c)
	if err != nil {
		return err
	}

	liked, err := ct.likes.Exists(uc.UserID, imageID)
	if err != nil {
		return err
	}
	if !liked {
		return apperr.Conflict("You have not liked this image yet")
	}

	if err := ct.likes.Delete(uc.UserID, imageID); err != nil {
		return err
	}

	count, err := ct.likes.CountByImage(imageID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Image unliked successfully",
		"likes":   count,
	})
}

// Check reports whether the caller has liked the image; the absence of a
// like is not an error.
func (ct *LikeController) Check(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)

	imageID, err := ct.imageID(c)
	if err != nil {
		return err
	}

	liked, err := ct.likes.Exists(uc.UserID, imageID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"liked": liked})
}

// ListLikers returns a page of users who liked the image, most recent like
// first.
func (ct *LikeController) ListLikers(c *fiber.Ctx) error {
	imageID, err := ct.imageID(c)
	if err != nil {
		return err
	}

	page, limit, offset := parsePagination(c)
	users, total, err := ct.likes.ListUsersByImage(imageID, offset, limit)
	if err != nil {
		return err
	}
	for i := range users {
		users[i].Avatar = avatarURL(c, users[i].Avatar)
	}

	return c.JSON(paginatedResponse(users, total, page, limit))
}
