package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/KhangChau12/PinGallery/app/models"
	"github.com/KhangChau12/PinGallery/internal/pkg/env"
)

const maxRetries = 5
const retryDelay = 5 * time.Second

// Connect opens the database configured through the environment and returns
// the handle. The caller owns the connection lifecycle: open at process
// start, Close at shutdown. There is no package-level handle.
func Connect() (*gorm.DB, error) {
	driver := env.GetEnv("DB_DRIVER", "mysql")

	var db *gorm.DB
	var err error
	for i := 0; i < maxRetries; i++ {
		db, err = open(driver)
		if err == nil {
			break
		}

		log.Printf("Failed to connect to database (try %d/%d): %v", i+1, maxRetries, err)
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}
	if err != nil {
		return nil, err
	}

	if driver == "sqlite" {
		// SQLite does not enforce foreign keys unless asked; cascade
		// deletes depend on it.
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, err
		}
		// MySQL deployments run cmd/migrate instead.
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}

	return db, nil
}

func open(driver string) (*gorm.DB, error) {
	switch driver {
	case "sqlite":
		return gorm.Open(sqlite.Open(env.GetEnv("DB_PATH", "pingallery.db")), &gorm.Config{})
	case "mysql":
		// "user:pass@tcp(127.0.0.1:3306)/dbname?charset=utf8mb4&parseTime=True&loc=Local"
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			env.GetEnv("DB_USER", ""),
			env.GetEnv("DB_PASSWORD", ""),
			env.GetEnv("DB_HOST", "127.0.0.1"),
			env.GetEnv("DB_PORT", "3306"),
			env.GetEnv("DB_NAME", ""),
		)
		return gorm.Open(mysql.New(mysql.Config{
			DSN:                      dsn,
			DefaultStringSize:        256,
			DisableDatetimePrecision: true,
		}), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

// Migrate creates the schema for drivers without SQL migrations (sqlite,
// test databases).
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Image{},
		&models.Comment{},
		&models.Like{},
		&models.Follow{},
	)
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
