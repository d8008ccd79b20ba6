package config

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDB opens the database selected by DB_DRIVER. MySQL is the production
// driver; sqlite is the fallback for local development.
func InitDB() (*gorm.DB, error) {
	driver := os.Getenv("DB_DRIVER")

	if driver == "sqlite" || driver == "" && os.Getenv("DB_HOST") == "" {
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "collabsphere.db"
		}
		return gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		getEnv("DB_PORT", "3306"),
		os.Getenv("DB_NAME"),
	)

	// TranslateError turns driver duplicate-key errors into
	// gorm.ErrDuplicatedKey, which the services rely on for the unique
	// pending-pair guard.
	return gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
