package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/KhangChau12/PinGallery/app/controllers"
	"github.com/KhangChau12/PinGallery/app/repository"
	"github.com/KhangChau12/PinGallery/internal/pkg/middleware"
	"github.com/KhangChau12/PinGallery/internal/pkg/storage"
	"github.com/KhangChau12/PinGallery/internal/pkg/token"
)

// ApiRouter installs the JSON API under /api.
type ApiRouter struct {
	repos       *repository.Repositories
	tokens      *token.Service
	imageStore  storage.Storage
	avatarStore storage.Storage
}

func NewApiRouter(repos *repository.Repositories, tokens *token.Service, imageStore, avatarStore storage.Storage) *ApiRouter {
	return &ApiRouter{
		repos:       repos,
		tokens:      tokens,
		imageStore:  imageStore,
		avatarStore: avatarStore,
	}
}

func (h *ApiRouter) InstallRouter(app *fiber.App) {
	auth := controllers.NewAuthController(h.repos.User, h.tokens)
	images := controllers.NewImageController(h.repos.Image, h.repos.User, h.repos.Like, h.imageStore)
	comments := controllers.NewCommentController(h.repos.Comment, h.repos.Image)
	likes := controllers.NewLikeController(h.repos.Like, h.repos.Image)
	users := controllers.NewUserController(h.repos.User, h.repos.Follow, h.avatarStore)

	requireAuth := middleware.RequireAuth(h.repos.User, h.tokens)
	optionalAuth := middleware.OptionalAuth(h.repos.User, h.tokens)

	api := app.Group("/api", limiter.New(limiter.Config{Max: 300}))

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	authGroup := api.Group("/auth")
	authGroup.Post("/register", auth.Register)
	authGroup.Post("/login", auth.Login)
	authGroup.Get("/me", requireAuth, auth.Me)

	imageGroup := api.Group("/images")
	imageGroup.Get("/", optionalAuth, images.List)
	imageGroup.Get("/user/:userId", optionalAuth, images.ListByUser)
	imageGroup.Get("/:id", optionalAuth, images.GetByID)
	imageGroup.Post("/", requireAuth, images.Upload)
	imageGroup.Put("/:id", requireAuth, images.Update)
	imageGroup.Delete("/:id", requireAuth, images.Delete)

	commentGroup := api.Group("/comments")
	commentGroup.Get("/image/:imageId", comments.ListByImage)
	commentGroup.Post("/image/:imageId", requireAuth, comments.Add)
	commentGroup.Delete("/:commentId", requireAuth, comments.Delete)

	likeGroup := api.Group("/likes")
	likeGroup.Get("/check/image/:imageId", requireAuth, likes.Check)
	likeGroup.Get("/image/:imageId", likes.ListLikers)
	likeGroup.Post("/image/:imageId", requireAuth, likes.Like)
	likeGroup.Delete("/image/:imageId", requireAuth, likes.Unlike)

	userGroup := api.Group("/users")
	userGroup.Put("/profile", requireAuth, users.UpdateProfile)
	userGroup.Put("/password", requireAuth, users.UpdatePassword)
	userGroup.Post("/avatar", requireAuth, users.UploadAvatar)
	userGroup.Get("/:id/followers", users.ListFollowers)
	userGroup.Get("/:id/following", users.ListFollowing)
	userGroup.Post("/:id/follow", requireAuth, users.Follow)
	userGroup.Delete("/:id/follow", requireAuth, users.Unfollow)
	userGroup.Get("/:id", optionalAuth, users.GetProfile)
}
