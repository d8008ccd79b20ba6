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

type EndorsementController struct {
	Service *services.EndorsementService
}

func NewEndorsementController(db *gorm.DB, notifier *services.NotificationService) *EndorsementController {
	return &EndorsementController{
		Service: services.NewEndorsementService(db, notifier),
	}
}

// Endorse -> faculty/admin endorses a project with feedback
func (ec *EndorsementController) Endorse(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var body struct {
		ProjectID uint   `json:"project_id" binding:"required"`
		Feedback  string `json:"feedback" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	endorsement, err := ec.Service.Endorse(actor, body.ProjectID, body.Feedback)
	if err != nil {
		respondAppError(c, err)
		return
	}

	utils.InfoLogger.Printf("Endorsement %d created by faculty %d on project %d",
		endorsement.ID, actor.ID, body.ProjectID)

	utils.RespondJSON(c, http.StatusCreated, "Endorsement created", endorsement)
}

// Revoke -> endorser or admin soft-revokes an endorsement
func (ec *EndorsementController) Revoke(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	idStr := c.Param("endorsement_id")
	id, _ := strconv.Atoi(idStr)

	endorsement, err := ec.Service.Revoke(uint(id), actor)
	if err != nil {
		respondAppError(c, err)
		return
	}

	utils.InfoLogger.Printf("Endorsement %d revoked by user %d", endorsement.ID, actor.ID)

	utils.RespondJSON(c, http.StatusOK, "Endorsement revoked", endorsement)
}

// GetEndorsementsForProject -> full ledger, active and revoked
func (ec *EndorsementController) GetEndorsementsForProject(c *gin.Context) {
	idStr := c.Param("project_id")
	id, _ := strconv.Atoi(idStr)

	endorsements, err := ec.Service.ListByProject(uint(id))
	if err != nil {
		respondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Endorsements for project", endorsements)
}
