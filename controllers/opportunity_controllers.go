package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/collabsphere/collabsphere-backend/services"
	"github.com/collabsphere/collabsphere-backend/utils"
)

type OpportunityController struct {
	Service *services.OpportunityService
}

func NewOpportunityController(db *gorm.DB, notifier *services.NotificationService) *OpportunityController {
	return &OpportunityController{
		Service: services.NewOpportunityService(db, notifier),
	}
}

// CreateOpportunity -> faculty/admin, starts as DRAFT
func (oc *OpportunityController) CreateOpportunity(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var body struct {
		Title       string     `json:"title" binding:"required"`
		Description string     `json:"description"`
		Deadline    *time.Time `json:"deadline"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	opp, err := oc.Service.Create(actor, body.Title, body.Description, body.Deadline)
	if err != nil {
		respondAppError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Opportunity created", opp)
}

// PublishOpportunity -> DRAFT becomes ACTIVE
func (oc *OpportunityController) PublishOpportunity(c *gin.Context) {
	actor, _ := actorFromContext(c)
	id, _ := strconv.Atoi(c.Param("opportunity_id"))

	opp, err := oc.Service.Publish(uint(id), actor)
	if err != nil {
		respondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Opportunity published", opp)
}

// CloseOpportunity -> ACTIVE becomes CLOSED
func (oc *OpportunityController) CloseOpportunity(c *gin.Context) {
	actor, _ := actorFromContext(c)
	id, _ := strconv.Atoi(c.Param("opportunity_id"))

	opp, err := oc.Service.Close(uint(id), actor)
	if err != nil {
		respondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Opportunity closed", opp)
}

// DeleteOpportunity -> poster or admin
func (oc *OpportunityController) DeleteOpportunity(c *gin.Context) {
	actor, _ := actorFromContext(c)
	id, _ := strconv.Atoi(c.Param("opportunity_id"))

	if err := oc.Service.Delete(uint(id), actor); err != nil {
		respondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Opportunity deleted", gin.H{"opportunity_id": id})
}

// GetActiveOpportunities -> what students browse
func (oc *OpportunityController) GetActiveOpportunities(c *gin.Context) {
	opps, err := oc.Service.ListActive()
	if err != nil {
		respondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Active opportunities", opps)
}

// GetOpportunityByID
func (oc *OpportunityController) GetOpportunityByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("opportunity_id"))

	opp, err := oc.Service.Get(uint(id))
	if err != nil {
		respondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Opportunity detail", opp)
}

// ApplyToOpportunity -> student application against an ACTIVE opportunity
func (oc *OpportunityController) ApplyToOpportunity(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var body struct {
		OpportunityID uint   `json:"opportunity_id" binding:"required"`
		Note          string `json:"note"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	app, err := oc.Service.Apply(actor, body.OpportunityID, body.Note)
	if err != nil {
		respondAppError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Application created", app)
}

// DecideApplication -> poster or admin accepts/rejects
func (oc *OpportunityController) DecideApplication(c *gin.Context) {
	actor, _ := actorFromContext(c)
	id, _ := strconv.Atoi(c.Param("application_id"))

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	app, err := oc.Service.DecideApplication(uint(id), actor, body.Status)
	if err != nil {
		respondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Application decided", app)
}

// GetApplicationsForOpportunity -> poster/admin view
func (oc *OpportunityController) GetApplicationsForOpportunity(c *gin.Context) {
	actor, _ := actorFromContext(c)
	id, _ := strconv.Atoi(c.Param("opportunity_id"))

	apps, err := oc.Service.ListApplicationsForOpportunity(uint(id), actor)
	if err != nil {
		respondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Applications for opportunity", apps)
}

// GetApplicationsForStudent -> the authenticated student's applications
func (oc *OpportunityController) GetApplicationsForStudent(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	apps, err := oc.Service.ListApplicationsByStudent(actor.ID)
	if err != nil {
		respondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Applications by student", apps)
}
