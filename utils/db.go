package utils

import (
	"sync"
	"time"

	"gorm.io/gorm"
)

var (
	db   *gorm.DB
	once sync.Once
	mu   sync.RWMutex
)

// InitDB stores the shared handle and sizes the connection pool. MySQL closes
// idle connections after wait_timeout, so capping the lifetime below that
// keeps the pool from handing out dead connections.
func InitDB(database *gorm.DB) {
	once.Do(func() {
		if sqlDB, err := database.DB(); err == nil {
			sqlDB.SetMaxOpenConns(25)
			sqlDB.SetMaxIdleConns(5)
			sqlDB.SetConnMaxLifetime(5 * time.Minute)
		}
		db = database
	})
}

// GetDB returns the shared database handle.
func GetDB() *gorm.DB {
	mu.RLock()
	defer mu.RUnlock()
	return db
}
