package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/collabsphere/collabsphere-backend/apperr"
	"github.com/collabsphere/collabsphere-backend/services"
	"github.com/collabsphere/collabsphere-backend/utils"
)

var ErrNoPermission = errors.New("you don't have permission for this action")

// respondAppError maps the error taxonomy to HTTP statuses. Unauthorized is
// surfaced as 403 with the violated rule rather than masked as 404.
func respondAppError(c *gin.Context, err error) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		switch ae.Code {
		case apperr.CodeValidation:
			utils.RespondError(c, http.StatusBadRequest, err)
		case apperr.CodeNotFound:
			utils.RespondError(c, http.StatusNotFound, err)
		case apperr.CodeUnauthorized:
			utils.RespondError(c, http.StatusForbidden, err)
		case apperr.CodeConflict:
			utils.RespondError(c, http.StatusConflict, err)
		default:
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}
	utils.RespondError(c, http.StatusInternalServerError, err)
}

// actorFromContext reads the identity the auth middleware stored.
func actorFromContext(c *gin.Context) (services.Actor, bool) {
	userIDValue, exists := c.Get("user_id")
	if !exists {
		return services.Actor{}, false
	}
	userID, ok := userIDValue.(uint)
	if !ok {
		return services.Actor{}, false
	}

	roleValue, _ := c.Get("role")
	role, _ := roleValue.(string)

	return services.Actor{ID: userID, Role: role}, true
}
