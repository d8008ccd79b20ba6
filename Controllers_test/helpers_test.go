package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/collabsphere/collabsphere-backend/models"
	"github.com/collabsphere/collabsphere-backend/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// setupTestDB -> per-test in-memory sqlite with migrations and seed users:
// 1 owner (student), 2 applicant (student), 3 faculty, 4 admin.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:ctl_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
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

	seed := []models.User{
		{Name: "Owner", Email: "owner@uni.edu", Password: "x", Role: models.RoleStudent},
		{Name: "Applicant", Email: "applicant@uni.edu", Password: "x", Role: models.RoleStudent},
		{Name: "Prof", Email: "prof@uni.edu", Password: "x", Role: models.RoleFaculty},
		{Name: "Admin", Email: "admin@uni.edu", Password: "x", Role: models.RoleAdmin},
	}
	for i := range seed {
		if err := db.Create(&seed[i]).Error; err != nil {
			t.Fatalf("failed to seed user: %v", err)
		}
	}

	return db
}

// asActor stands in for the auth middleware in controller-level tests.
func asActor(id uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", id)
		c.Set("role", role)
		c.Next()
	}
}

func doJSON(t *testing.T, router *gin.Engine, method, url string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	data, _ := resp["data"].(map[string]interface{})
	return data
}
