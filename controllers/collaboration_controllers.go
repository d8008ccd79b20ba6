package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/collabsphere/collabsphere-backend/services"
	"github.com/collabsphere/collabsphere-backend/utils"
)

type CollaborationController struct {
	Service *services.CollaborationService
}

func NewCollaborationController(db *gorm.DB, notifier *services.NotificationService) *CollaborationController {
	return &CollaborationController{
		Service: services.NewCollaborationService(db, notifier),
	}
}

// Apply -> student requests collaboration on a project
func (cc *CollaborationController) Apply(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var body struct {
		ProjectID uint `json:"project_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	request, err := cc.Service.Apply(actor, body.ProjectID)
	if err != nil {
		respondAppError(c, err)
		return
	}

	utils.InfoLogger.Printf("Collaboration request %d created by student %d on project %d",
		request.ID, actor.ID, body.ProjectID)

	utils.RespondJSON(c, http.StatusCreated, "Collaboration request created", request)
}

// Decide -> project owner accepts or rejects a pending request
func (cc *CollaborationController) Decide(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	idStr := c.Param("request_id")
	id, _ := strconv.Atoi(idStr)

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	request, err := cc.Service.Decide(uint(id), actor, body.Status)
	if err != nil {
		respondAppError(c, err)
		return
	}

	utils.InfoLogger.Printf("Collaboration request %d decided %s by user %d",
		request.ID, request.Status, actor.ID)

	utils.RespondJSON(c, http.StatusOK, "Collaboration request decided", request)
}

// GetRequestsForProject -> requests on a project, for the owner dashboard
func (cc *CollaborationController) GetRequestsForProject(c *gin.Context) {
	idStr := c.Param("project_id")
	id, _ := strconv.Atoi(idStr)

	requests, err := cc.Service.ListByProject(uint(id))
	if err != nil {
		respondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Requests for project", requests)
}

// GetRequestsByStudent -> requests a student has made
func (cc *CollaborationController) GetRequestsByStudent(c *gin.Context) {
	idStr := c.Param("student_id")
	id, _ := strconv.Atoi(idStr)

	requests, err := cc.Service.ListByStudent(uint(id))
	if err != nil {
		respondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Requests by student", requests)
}
