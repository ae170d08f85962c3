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
	"github.com/KhangChau12/PinGallery/internal/pkg/storage"
	"github.com/KhangChau12/PinGallery/internal/pkg/upload"
	"github.com/KhangChau12/PinGallery/internal/pkg/usercontext"
)

type UserController struct {
	users       repository.UserRepository
	follows     repository.FollowRepository
	avatarStore storage.Storage
}

func NewUserController(users repository.UserRepository, follows repository.FollowRepository, avatarStore storage.Storage) *UserController {
	return &UserController{users: users, follows: follows, avatarStore: avatarStore}
}

// GetProfile returns a user's public profile with aggregate counts. The
// email is only included when the caller requests their own profile.
func (ct *UserController) GetProfile(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return apperr.NotFound("User not found")
	}

	callerID := usercontext.GetUserID(c)
	profile, err := ct.users.GetProfile(uint(id), callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("User not found")
		}
		return err
	}

	profile.Avatar = avatarURL(c, profile.Avatar)
	if profile.ID != callerID {
		profile.Email = ""
	}

	return c.JSON(profile)
}

// UpdateProfile changes username, email and/or bio. Unspecified fields keep
// their prior value; collisions with another user are conflicts.
func (ct *UserController) UpdateProfile(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)

	var req struct {
		Username string  `json:"username"`
		Email    string  `json:"email"`
		Bio      *string `json:"bio"`
	}
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("Invalid request body")
	}

	user, err := ct.users.GetByID(uc.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("User not found")
		}
		return err
	}

	if username := strings.TrimSpace(req.Username); username != "" && username != user.Username {
		taken, err := ct.users.UsernameTakenByOther(username, user.ID)
		if err != nil {
			return err
		}
		if taken {
			return apperr.Conflict("Username is already taken")
		}
		user.Username = username
	}

	if email := strings.TrimSpace(req.Email); email != "" && email != user.Email {
		taken, err := ct.users.EmailTakenByOther(email, user.ID)
		if err != nil {
			return err
		}
		if taken {
			return apperr.Conflict("Email is already taken")
		}
		user.Email = email
	}

	if req.Bio != nil {
		user.Bio = *req.Bio
	}

	if err := user.Validate(); err != nil {
		return apperr.Validation("Invalid profile details")
	}
	if err := ct.users.Update(user); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"id":         user.ID,
		"username":   user.Username,
		"email":      user.Email,
		"avatar":     avatarURL(c, user.Avatar),
		"bio":        user.Bio,
		"created_at": user.CreatedAt,
	})
}

// UpdatePassword replaces the caller's password after verifying the current
// one.
func (ct *UserController) UpdatePassword(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)

	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("Current password and new password are required")
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return apperr.Validation("Current password and new password are required")
	}

	user, err := ct.users.GetByID(uc.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("User not found")
		}
		return err
	}

	if !user.CheckPassword(req.CurrentPassword) {
		return apperr.Auth("Current password is incorrect")
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return err
	}
	if err := user.Validate(); err != nil {
		return apperr.Validation("New password is too short")
	}
	if err := ct.users.Update(user); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}

// UploadAvatar validates and stores a new avatar, deleting the previous
// file.
func (ct *UserController) UploadAvatar(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return apperr.Validation("Please upload an image file")
	}
	if fileHeader.Size > upload.MaxAvatarSize {
		return apperr.Validation("Avatar must not exceed 2MB")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	head := make([]byte, 512)
	n, _ := file.Read(head)
	if _, err := upload.ValidateImageBySniff(fileHeader.Filename, head[:n]); err != nil {
		return apperr.Validation(err.Error())
	}

	user, err := ct.users.GetByID(uc.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("User not found")
		}
		return err
	}

	if _, err := file.Seek(0, 0); err != nil {
		return err
	}
	fileName, err := ct.avatarStore.Save(file, fileHeader.Filename)
	if err != nil {
		return err
	}

	previous := user.Avatar
	user.Avatar = fileName
	if err := ct.users.Update(user); err != nil {
		if delErr := ct.avatarStore.Delete(fileName); delErr != nil {
			log.Errorf("avatar upload: could not remove orphaned file %s: %v", fileName, delErr)
		}
		return err
	}

	if previous != "" {
		if err := ct.avatarStore.Delete(previous); err != nil {
			log.Errorf("avatar upload: could not remove previous avatar %s: %v", previous, err)
		}
	}

	return c.JSON(fiber.Map{
		"message": "Avatar uploaded successfully",
		"avatar":  avatarURL(c, fileName),
	})
}

func (ct *UserController) targetUser(c *fiber.Ctx) (*models.User, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return nil, apperr.NotFound("User not found")
	}
	user, err := ct.users.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, err
	}
	return user, nil
}

// Follow adds a follow edge from the caller to the target user and returns
// the target's updated follower count.
func (ct *UserController) Follow(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)

	target, err := ct.targetUser(c)
	if err != nil {
		return err
	}
	if target.ID == uc.UserID {
		return apperr.Validation("You cannot follow yourself")
	}

	following, err := ct.follows.Exists(uc.UserID, target.ID)
	if err != nil {
		return err
	}
	if following {
		return apperr.Conflict("You are already following this user")
	}

	if err := ct.follows.Create(&models.Follow{FollowerID: uc.UserID, FollowingID: target.ID}); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("You are already following this user")
		}
		return err
	}

	count, err := ct.follows.CountFollowers(target.ID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "User followed successfully",
		"followers": count,
	})
}

// Unfollow removes the follow edge and returns the target's updated
// follower count.
func (ct *UserController) Unfollow(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)

	target, err := ct.targetUser(c)
	if err != nil {
		return err
	}
	if target.ID == uc.UserID {
		return apperr.Validation("You cannot follow yourself")
	}

	following, err := ct.follows.Exists(uc.UserID, target.ID)
	if err != nil {
		return err
	}
	if !following {
		return apperr.Conflict("You are not following this user")
	}

	if err := ct.follows.Delete(uc.UserID, target.ID); err != nil {
		return err
	}

	count, err := ct.follows.CountFollowers(target.ID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":   "User unfollowed successfully",
		"followers": count,
	})
}

// ListFollowers returns a page of the user's followers, most recent first.
func (ct *UserController) ListFollowers(c *fiber.Ctx) error {
	target, err := ct.targetUser(c)
	if err != nil {
		return err
	}

	page, limit, offset := parsePagination(c)
	users, total, err := ct.follows.ListFollowers(target.ID, offset, limit)
	if err != nil {
		return err
	}
	for i := range users {
		users[i].Avatar = avatarURL(c, users[i].Avatar)
	}

	return c.JSON(paginatedResponse(users, total, page, limit))
}

// ListFollowing returns a page of the users the given user follows.
func (ct *UserController) ListFollowing(c *fiber.Ctx) error {
	target, err := ct.targetUser(c)
	if err != nil {
		return err
	}

	page, limit, offset := parsePagination(c)
	users, total, err := ct.follows.ListFollowing(target.ID, offset, limit)
	if err != nil {
		return err
	}
	for i := range users {
		users[i].Avatar = avatarURL(c, users[i].Avatar)
	}

	return c.JSON(paginatedResponse(users, total, page, limit))
}
