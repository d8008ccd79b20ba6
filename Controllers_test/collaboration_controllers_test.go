package Controllers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/collabsphere/collabsphere-backend/controllers"
	"github.com/collabsphere/collabsphere-backend/models"
	"github.com/collabsphere/collabsphere-backend/services"
)

func setupCollaborationRouter(db *gorm.DB, actorID uint, role string) *gin.Engine {
	router := gin.New()
	router.Use(asActor(actorID, role))

	notifier := services.NewNotificationService(db)
	ctrl := controllers.NewCollaborationController(db, notifier)
	router.POST("/api/collaborations/apply", ctrl.Apply)
	router.PUT("/api/collaborations/:request_id/decide", ctrl.Decide)
	router.GET("/api/collaborations/project/:project_id", ctrl.GetRequestsForProject)
	router.GET("/api/collaborations/student/:student_id", ctrl.GetRequestsByStudent)
	return router
}

func seedTestProject(t *testing.T, db *gorm.DB) models.Project {
	t.Helper()
	project := models.Project{
		OwnerID:   1,
		Title:     "Campus Mesh Network",
		Status:    models.ProjectStatusApproved,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := db.Create(&project).Error; err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}
	return project
}

func TestApplyAndDecideOverHTTP(t *testing.T) {
	db := setupTestDB(t)
	project := seedTestProject(t, db)

	student := setupCollaborationRouter(db, 2, models.RoleStudent)
	owner := setupCollaborationRouter(db, 1, models.RoleStudent)

	// student applies
	w := doJSON(t, student, "POST", "/api/collaborations/apply",
		map[string]interface{}{"project_id": project.ID})
	assert.Equal(t, http.StatusCreated, w.Code)

	data := decodeData(t, w)
	assert.Equal(t, "PENDING", data["status"])
	requestID := int(data["id"].(float64))

	// duplicate while pending -> 409
	w = doJSON(t, student, "POST", "/api/collaborations/apply",
		map[string]interface{}{"project_id": project.ID})
	assert.Equal(t, http.StatusConflict, w.Code)

	// someone else deciding -> 403
	stranger := setupCollaborationRouter(db, 3, models.RoleFaculty)
	w = doJSON(t, stranger, "PUT", fmt.Sprintf("/api/collaborations/%d/decide", requestID),
		map[string]interface{}{"status": "ACCEPTED"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// owner decides
	w = doJSON(t, owner, "PUT", fmt.Sprintf("/api/collaborations/%d/decide", requestID),
		map[string]interface{}{"status": "ACCEPTED"})
	assert.Equal(t, http.StatusOK, w.Code)
	data = decodeData(t, w)
	assert.Equal(t, "ACCEPTED", data["status"])

	// decisions are final -> 409
	w = doJSON(t, owner, "PUT", fmt.Sprintf("/api/collaborations/%d/decide", requestID),
		map[string]interface{}{"status": "REJECTED"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestApplyToMissingProjectReturns404(t *testing.T) {
	db := setupTestDB(t)
	student := setupCollaborationRouter(db, 2, models.RoleStudent)

	w := doJSON(t, student, "POST", "/api/collaborations/apply",
		map[string]interface{}{"project_id": 999})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDecideInvalidOutcomeReturns400(t *testing.T) {
	db := setupTestDB(t)
	project := seedTestProject(t, db)

	student := setupCollaborationRouter(db, 2, models.RoleStudent)
	w := doJSON(t, student, "POST", "/api/collaborations/apply",
		map[string]interface{}{"project_id": project.ID})
	assert.Equal(t, http.StatusCreated, w.Code)
	requestID := int(decodeData(t, w)["id"].(float64))

	owner := setupCollaborationRouter(db, 1, models.RoleStudent)
	w = doJSON(t, owner, "PUT", fmt.Sprintf("/api/collaborations/%d/decide", requestID),
		map[string]interface{}{"status": "MAYBE"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListRequestsForProjectAndStudent(t *testing.T) {
	db := setupTestDB(t)
	project := seedTestProject(t, db)

	student := setupCollaborationRouter(db, 2, models.RoleStudent)
	w := doJSON(t, student, "POST", "/api/collaborations/apply",
		map[string]interface{}{"project_id": project.ID})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, student, "GET", fmt.Sprintf("/api/collaborations/project/%d", project.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, student, "GET", "/api/collaborations/student/2", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// listing requests of an unknown project -> 404
	w = doJSON(t, student, "GET", "/api/collaborations/project/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
