package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/KhangChau12/PinGallery/app/models"
	"github.com/KhangChau12/PinGallery/app/repository"
	"github.com/KhangChau12/PinGallery/internal/pkg/apperr"
	"github.com/KhangChau12/PinGallery/internal/pkg/database"
	"github.com/KhangChau12/PinGallery/internal/pkg/token"
	"github.com/KhangChau12/PinGallery/internal/pkg/usercontext"
)

func setupAuthTest(t *testing.T) (*fiber.App, repository.UserRepository, *token.Service, *models.User) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	users := repository.NewUserRepository(db)
	user, err := models.CreateUser("alice", "alice@example.com", "secret123")
	require.NoError(t, err)
	require.NoError(t, users.Create(user))

	tokens := token.NewService("test-secret", time.Hour)

	app := fiber.New(fiber.Config{ErrorHandler: apperr.ErrorHandler})

	return app, users, tokens, user
}

func whoami(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	return c.JSON(fiber.Map{"user_id": uc.UserID, "logged_in": uc.IsLoggedIn})
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	app, users, tokens, user := setupAuthTest(t)
	app.Get("/private", RequireAuth(users, tokens), whoami)

	raw, err := tokens.Generate(user.ID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+raw)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	app, users, tokens, _ := setupAuthTest(t)
	app.Get("/private", RequireAuth(users, tokens), whoami)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/private", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthRejectsBadToken(t *testing.T) {
	app, users, tokens, _ := setupAuthTest(t)
	app.Get("/private", RequireAuth(users, tokens), whoami)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer not-a-token")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthRejectsExpiredToken(t *testing.T) {
	app, users, _, user := setupAuthTest(t)
	expired := token.NewService("test-secret", -time.Minute)
	verifier := token.NewService("test-secret", time.Hour)
	app.Get("/private", RequireAuth(users, verifier), whoami)

	raw, err := expired.Generate(user.ID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+raw)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthRejectsDeletedUser(t *testing.T) {
	app, users, tokens, user := setupAuthTest(t)
	app.Get("/private", RequireAuth(users, tokens), whoami)

	raw, err := tokens.Generate(user.ID + 100)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+raw)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestOptionalAuthAllowsAnonymous(t *testing.T) {
	app, users, tokens, _ := setupAuthTest(t)
	app.Get("/public", OptionalAuth(users, tokens), whoami)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/public", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestOptionalAuthStillRejectsBadToken(t *testing.T) {
	app, users, tokens, _ := setupAuthTest(t)
	app.Get("/public", OptionalAuth(users, tokens), whoami)

	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer garbage")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestOptionalAuthLoadsUserContext(t *testing.T) {
	app, users, tokens, user := setupAuthTest(t)

	var seen usercontext.UserContext
	app.Get("/public", OptionalAuth(users, tokens), func(c *fiber.Ctx) error {
		seen = usercontext.GetUserContext(c)
		return c.SendStatus(http.StatusOK)
	})

	raw, err := tokens.Generate(user.ID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+raw)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, seen.IsLoggedIn)
	assert.Equal(t, user.ID, seen.UserID)
	assert.Equal(t, "alice", seen.Username)
}
