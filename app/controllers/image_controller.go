package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/KhangChau12/PinGallery/app/models"
	"github.com/KhangChau12/PinGallery/app/repository"
	"github.com/KhangChau12/PinGallery/internal/pkg/apperr"
	"github.com/KhangChau12/PinGallery/internal/pkg/imagemeta"
	"github.com/KhangChau12/PinGallery/internal/pkg/storage"
	"github.com/KhangChau12/PinGallery/internal/pkg/upload"
	"github.com/KhangChau12/PinGallery/internal/pkg/usercontext"
)

type ImageController struct {
	images repository.ImageRepository
	users  repository.UserRepository
	likes  repository.LikeRepository
	store  storage.Storage
}

func NewImageController(images repository.ImageRepository, users repository.UserRepository, likes repository.LikeRepository, store storage.Storage) *ImageController {
	return &ImageController{images: images, users: users, likes: likes, store: store}
}

// List returns a page of images, newest first, each annotated with its
// like/comment counts. An optional search term filters title and
// description.
func (ct *ImageController) List(c *fiber.Ctx) error {
	page, limit, offset := parsePagination(c)

	rows, total, err := ct.images.List(repository.ListImagesParams{
		Search:   c.Query("search"),
		CallerID: usercontext.GetUserID(c),
		Offset:   offset,
		Limit:    limit,
	})
	if err != nil {
		return err
	}
	ct.fillURLs(c, rows)

	return c.JSON(paginatedResponse(rows, total, page, limit))
}

// GetByID returns one annotated image; is_liked reflects the caller when a
// token was presented.
func (ct *ImageController) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return apperr.NotFound("Image not found")
	}

	row, err := ct.images.GetRow(uint(id), usercontext.GetUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Image not found")
		}
		return err
	}
	row.URL = imageURL(c, row.FileName)
	row.Avatar = avatarURL(c, row.Avatar)

	return c.JSON(row)
}

// Upload stores the multipart image file on disk, then inserts the row.
// The file write comes first; if the insert fails the file is removed so no
// row ever references a missing file.
func (ct *ImageController) Upload(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return apperr.Validation("Please upload an image file")
	}

	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		return apperr.Validation("Please provide a title for the image")
	}

	if fileHeader.Size > upload.MaxImageSize {
		return apperr.Validation("Image must not exceed 5MB")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	head := make([]byte, 512)
	n, _ := file.Read(head)
	mime, err := upload.ValidateImageBySniff(fileHeader.Filename, head[:n])
	if err != nil {
		return apperr.Validation(err.Error())
	}

	if _, err := file.Seek(0, 0); err != nil {
		return err
	}
	width, height := imagemeta.Dimensions(file)

	if _, err := file.Seek(0, 0); err != nil {
		return err
	}
	fileName, err := ct.store.Save(file, fileHeader.Filename)
	if err != nil {
		return err
	}

	image := &models.Image{
		UserID:      uc.UserID,
		FileName:    fileName,
		Title:       title,
		Description: c.FormValue("description"),
		FileSize:    fileHeader.Size,
		FileType:    mime,
		Width:       width,
		Height:      height,
	}
	if err := ct.images.Create(image); err != nil {
		if delErr := ct.store.Delete(fileName); delErr != nil {
			log.Errorf("upload: could not remove orphaned file %s: %v", fileName, delErr)
		}
		return err
	}

	row, err := ct.images.GetRow(image.ID, uc.UserID)
	if err != nil {
		return err
	}
	row.URL = imageURL(c, row.FileName)
	row.Avatar = avatarURL(c, row.Avatar)

	return c.Status(fiber.StatusCreated).JSON(row)
}

// Update changes title and/or description. Unspecified fields keep their
// prior value; only the owner may update.
func (ct *ImageController) Update(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return apperr.NotFound("Image not found")
	}

	image, err := ct.images.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Image not found")
		}
		return err
	}
	if image.UserID != uc.UserID {
		return apperr.Forbidden("You are not authorized to update this image")
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("Invalid request body")
	}
	if title := strings.TrimSpace(req.Title); title != "" {
		image.Title = title
	}
	if req.Description != "" {
		image.Description = req.Description
	}

	if err := ct.images.Update(image); err != nil {
		return err
	}

	row, err := ct.images.GetRow(image.ID, uc.UserID)
	if err != nil {
		return err
	}
	row.URL = imageURL(c, row.FileName)
	row.Avatar = avatarURL(c, row.Avatar)

	return c.JSON(row)
}

// Delete removes the image row (comments and likes cascade with it), then
// the backing file. A file already missing from disk is tolerated.
func (ct *ImageController) Delete(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return apperr.NotFound("Image not found")
	}

	image, err := ct.images.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Image not found")
		}
		return err
	}
	if image.UserID != uc.UserID {
		return apperr.Forbidden("You are not authorized to delete this image")
	}

	if err := ct.images.Delete(image.ID); err != nil {
		return err
	}
	ct.likes.InvalidateCount(image.ID)

	if err := ct.store.Delete(image.FileName); err != nil {
		log.Errorf("delete image %d: could not remove file %s: %v", image.ID, image.FileName, err)
	}

	return c.JSON(fiber.Map{"message": "Image deleted successfully"})
}

// ListByUser returns one owner's images plus the owner summary.
func (ct *ImageController) ListByUser(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userId")
	if err != nil || userID < 1 {
		return apperr.NotFound("User not found")
	}

	user, err := ct.users.GetByID(uint(userID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("User not found")
		}
		return err
	}

	page, limit, offset := parsePagination(c)
	rows, total, err := ct.images.List(repository.ListImagesParams{
		UserID:   user.ID,
		CallerID: usercontext.GetUserID(c),
		Offset:   offset,
		Limit:    limit,
	})
	if err != nil {
		return err
	}
	ct.fillURLs(c, rows)

	response := paginatedResponse(rows, total, page, limit)
	response["user"] = fiber.Map{
		"id":       user.ID,
		"username": user.Username,
		"avatar":   avatarURL(c, user.Avatar),
	}
	return c.JSON(response)
}

func (ct *ImageController) fillURLs(c *fiber.Ctx, rows []repository.ImageRow) {
	for i := range rows {
		rows[i].URL = imageURL(c, rows[i].FileName)
		rows[i].Avatar = avatarURL(c, rows[i].Avatar)
	}
}
