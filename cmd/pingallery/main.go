package main

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"

	"github.com/KhangChau12/PinGallery/app/repository"
	"github.com/KhangChau12/PinGallery/internal/pkg/cache"
	"github.com/KhangChau12/PinGallery/internal/pkg/database"
	"github.com/KhangChau12/PinGallery/internal/pkg/env"
	"github.com/KhangChau12/PinGallery/internal/pkg/router"
	"github.com/KhangChau12/PinGallery/internal/pkg/storage"
	"github.com/KhangChau12/PinGallery/internal/pkg/token"
	"github.com/KhangChau12/PinGallery/internal/pkg/upload"

	"github.com/KhangChau12/PinGallery/internal/pkg/apperr"
)

func main() {
	env.SetupEnvFile()

	db, err := database.Connect()
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Printf("closing database: %v", err)
		}
	}()

	var likeCache *cache.Cache
	if env.GetEnv("CACHE_ENABLED", "false") == "true" {
		likeCache = cache.New(env.GetEnv("CACHE_HOST", "localhost"), env.GetEnv("CACHE_PORT", "6379"))
		defer likeCache.Close()
	}

	app, err := NewApplication(db, likeCache)
	if err != nil {
		log.Fatal(err)
	}

	addr := fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "0.0.0.0"), env.GetEnv("APP_PORT", "3000"))
	log.Fatal(app.Listen(addr))
}

func NewApplication(db *gorm.DB, likeCache *cache.Cache) (*fiber.App, error) {
	uploadDir := env.GetEnv("UPLOAD_DIR", "./uploads")

	imageStore, err := storage.NewLocalStorage(uploadDir, "")
	if err != nil {
		return nil, fmt.Errorf("image storage: %w", err)
	}
	avatarStore, err := storage.NewLocalStorage(uploadDir+"/avatars", "avatar-")
	if err != nil {
		return nil, fmt.Errorf("avatar storage: %w", err)
	}

	expiresHours, err := strconv.Atoi(env.GetEnv("JWT_EXPIRES_HOURS", "720"))
	if err != nil || expiresHours <= 0 {
		expiresHours = 720
	}
	tokens := token.NewService(env.GetEnv("JWT_SECRET", "pingallery-dev-secret"), time.Duration(expiresHours)*time.Hour)

	repos := repository.NewRepositories(db, likeCache)

	app := fiber.New(fiber.Config{
		AppName:      "PinGallery",
		BodyLimit:    upload.MaxImageSize + 1024*1024,
		ErrorHandler: apperr.ErrorHandler,
	})

	app.Use(recover.New(), logger.New())
	app.Use(cors.New())

	app.Static("/uploads", uploadDir, fiber.Static{
		CacheDuration: 10 * time.Second,
		MaxAge:        604800,
	})

	app.Use(swagger.New(swagger.Config{
		BasePath: "/docs/api/",
		FilePath: "./public/docs/v1/openapi.yml",
		Path:     "v1",
	}))

	router.InstallRouter(app, router.NewApiRouter(repos, tokens, imageStore, avatarStore))

	return app, nil
}
