package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/collabsphere/collabsphere-backend/models"
	"github.com/collabsphere/collabsphere-backend/services"
	"github.com/collabsphere/collabsphere-backend/utils"
)

type NotificationController struct {
	Service *services.NotificationService
}

func NewNotificationController(db *gorm.DB, service *services.NotificationService) *NotificationController {
	return &NotificationController{Service: service}
}

// GetNotificationsForUser -> newest first; users may only read their own list
func (nc *NotificationController) GetNotificationsForUser(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	idStr := c.Param("user_id")
	id, _ := strconv.Atoi(idStr)

	if uint(id) != actor.ID && actor.Role != models.RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	notifs, err := nc.Service.ListForUser(uint(id))
	if err != nil {
		respondAppError(c, err)
		return
	}

	unread := 0
	for _, n := range notifs {
		if n.Status == models.NotifStatusUnread {
			unread++
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Notifications for user", gin.H{
		"notifications": notifs,
		"unread_count":  unread,
	})
}

// MarkRead -> recipient-only, idempotent
func (nc *NotificationController) MarkRead(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	idStr := c.Param("notification_id")
	id, _ := strconv.Atoi(idStr)

	notif, err := nc.Service.MarkRead(uint(id), actor)
	if err != nil {
		respondAppError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notification marked as read", notif)
}
