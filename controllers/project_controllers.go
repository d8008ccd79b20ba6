package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/collabsphere/collabsphere-backend/models"
	"github.com/collabsphere/collabsphere-backend/utils"
)

type ProjectController struct {
	DB *gorm.DB
}

func NewProjectController(db *gorm.DB) *ProjectController {
	return &ProjectController{DB: db}
}

// CreateProject -> students publish a project, initial status PENDING
func (pc *ProjectController) CreateProject(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}
	if actor.Role != models.RoleStudent {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	type reqBody struct {
		Title       string   `json:"title" binding:"required"`
		Description string   `json:"description"`
		RepoUrl     string   `json:"repo_url"`
		Latitude    *float64 `json:"latitude"`
		Longitude   *float64 `json:"longitude"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	project := models.Project{
		OwnerID:     actor.ID,
		Title:       body.Title,
		Description: body.Description,
		RepoUrl:     body.RepoUrl,
		Status:      models.ProjectStatusPending,
		Latitude:    body.Latitude,
		Longitude:   body.Longitude,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := pc.DB.Create(&project).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New project created: %q by user %d", project.Title, actor.ID)

	utils.RespondJSON(c, http.StatusCreated, "Project created", project)
}

// GetAllProjects -> list projects with owner
func (pc *ProjectController) GetAllProjects(c *gin.Context) {
	var projects []models.Project
	if err := pc.DB.Preload("Owner").Find(&projects).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of projects", projects)
}

// GetProjectByID
func (pc *ProjectController) GetProjectByID(c *gin.Context) {
	idStr := c.Param("project_id")
	id, _ := strconv.Atoi(idStr)

	var project models.Project
	if err := pc.DB.Preload("Owner").First(&project, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Project detail", project)
}

// GetProjectsByOwner
func (pc *ProjectController) GetProjectsByOwner(c *gin.Context) {
	ownerStr := c.Param("owner_id")
	ownerID, _ := strconv.Atoi(ownerStr)

	var projects []models.Project
	if err := pc.DB.Where("owner_id = ?", ownerID).Find(&projects).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Projects of owner", projects)
}

// UpdateProjectStatus -> admin moderation (PENDING/APPROVED/REJECTED). The
// endorsement flow reads this status to gate eligibility.
func (pc *ProjectController) UpdateProjectStatus(c *gin.Context) {
	actor, _ := actorFromContext(c)
	if actor.Role != models.RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	idStr := c.Param("project_id")
	id, _ := strconv.Atoi(idStr)

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	status := strings.ToUpper(body.Status)
	if status != models.ProjectStatusPending &&
		status != models.ProjectStatusApproved &&
		status != models.ProjectStatusRejected {
		utils.RespondError(c, http.StatusBadRequest, errors.New("status must be PENDING, APPROVED or REJECTED"))
		return
	}

	var project models.Project
	if err := pc.DB.First(&project, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	project.Status = status
	project.UpdatedAt = time.Now()
	if err := pc.DB.Save(&project).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Project %d moderated to %s by admin %d", project.ID, status, actor.ID)

	utils.RespondJSON(c, http.StatusOK, "Project status updated", project)
}
