package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/KhangChau12/PinGallery/app/models"
	"github.com/KhangChau12/PinGallery/app/repository"
	"github.com/KhangChau12/PinGallery/internal/pkg/apperr"
	"github.com/KhangChau12/PinGallery/internal/pkg/token"
	"github.com/KhangChau12/PinGallery/internal/pkg/usercontext"
)

// dummyHash is compared against when login hits an unknown user, so the
// response time does not reveal whether the account exists.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type AuthController struct {
	users  repository.UserRepository
	tokens *token.Service
}

func NewAuthController(users repository.UserRepository, tokens *token.Service) *AuthController {
	return &AuthController{users: users, tokens: tokens}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates an account and returns the identity plus a session token.
func (ct *AuthController) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("Please provide all required fields")
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return apperr.Validation("Please provide all required fields")
	}

	exists, err := ct.users.ExistsByUsernameOrEmail(req.Username, req.Email)
	if err != nil {
		return err
	}
	if exists {
		return apperr.Conflict("User already exists")
	}

	user, err := models.CreateUser(req.Username, req.Email, req.Password)
	if err != nil {
		return apperr.Validation("Invalid username, email or password")
	}

	if err := ct.users.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("User already exists")
		}
		return err
	}

	tok, err := ct.tokens.Generate(user.ID)
	if err != nil {
		log.Errorf("register: token generation failed: %v", err)
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"token":    tok,
	})
}

// Login checks the credentials and returns the identity plus a session
// token. Unknown user and wrong password are indistinguishable to the
// caller.
func (ct *AuthController) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("Please provide username and password")
	}
	if req.Username == "" || req.Password == "" {
		return apperr.Validation("Please provide username and password")
	}

	user, err := ct.users.GetByUsernameOrEmail(req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Burn a hash comparison so the timing matches the
			// wrong-password path.
			models.CheckPasswordHash(req.Password, dummyHash)
			return apperr.Auth("Invalid credentials")
		}
		return err
	}

	if !user.CheckPassword(req.Password) {
		return apperr.Auth("Invalid credentials")
	}

	tok, err := ct.tokens.Generate(user.ID)
	if err != nil {
		log.Errorf("login: token generation failed: %v", err)
		return err
	}

	return c.JSON(fiber.Map{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"avatar":   avatarURL(c, user.Avatar),
		"token":    tok,
	})
}

// Me returns the authenticated caller's identity.
func (ct *AuthController) Me(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)

	user, err := ct.users.GetByID(uc.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("User not found")
		}
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
