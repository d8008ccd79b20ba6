package services

import (
	"fmt"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/collabsphere/collabsphere-backend/models"
)

// setupServiceDB opens a per-test in-memory sqlite database with all models
// migrated and the usual cast seeded: owner (student, id 1), applicant
// (student, id 2), faculty (id 3), admin (id 4).
func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	return openServiceDB(t, dsn)
}

// setupServiceFileDB is setupServiceDB backed by a file, for tests that run
// transactions from several goroutines: a busy timeout lets concurrent writers
// queue instead of failing immediately.
func setupServiceFileDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", filepath.Join(t.TempDir(), "service.db"))
	return openServiceDB(t, dsn)
}

func openServiceDB(t *testing.T, dsn string) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.CollaborationRequest{},
		&models.Endorsement{},
		&models.Notification{},
		&models.Opportunity{},
		&models.OpportunityApplication{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	users := []models.User{
		{Name: "Owner", Email: "owner@uni.edu", Password: "x", Role: models.RoleStudent},
		{Name: "Applicant", Email: "applicant@uni.edu", Password: "x", Role: models.RoleStudent},
		{Name: "Prof", Email: "prof@uni.edu", Password: "x", Role: models.RoleFaculty},
		{Name: "Admin", Email: "admin@uni.edu", Password: "x", Role: models.RoleAdmin},
	}
	for i := range users {
		if err := db.Create(&users[i]).Error; err != nil {
			t.Fatalf("failed to seed user: %v", err)
		}
	}

	return db
}

func seedProject(t *testing.T, db *gorm.DB, ownerID uint, status string) models.Project {
	t.Helper()
	project := models.Project{
		OwnerID: ownerID,
		Title:   "Distributed Cache",
		Status:  status,
	}
	if err := db.Create(&project).Error; err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}
	return project
}

func countNotifications(t *testing.T, db *gorm.DB, userID uint) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&models.Notification{}).
		Where("recipient_user_id = ?", userID).Count(&n).Error; err != nil {
		t.Fatalf("failed to count notifications: %v", err)
	}
	return n
}
