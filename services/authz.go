package services

import (
	"github.com/collabsphere/collabsphere-backend/apperr"
	"github.com/collabsphere/collabsphere-backend/models"
)

// Actor is the authenticated identity performing an operation.
type Actor struct {
	ID   uint
	Role string
}

type Action string

const (
	ActionApplyCollaboration   Action = "collaboration.apply"
	ActionDecideCollaboration  Action = "collaboration.decide"
	ActionEndorseProject       Action = "endorsement.create"
	ActionRevokeEndorsement    Action = "endorsement.revoke"
	ActionMarkNotificationRead Action = "notification.mark_read"
	ActionManageOpportunity    Action = "opportunity.manage"
	ActionApplyOpportunity     Action = "opportunity.apply"
	ActionDecideApplication    Action = "opportunity.decide"
)

// Target bundles the entities an authorization decision needs. Callers load
// them first; Permit itself never touches the database.
type Target struct {
	Project           *models.Project
	Request           *models.CollaborationRequest
	Endorsement       *models.Endorsement
	Notification      *models.Notification
	Opportunity       *models.Opportunity
	Application       *models.OpportunityApplication
	HasPendingRequest bool
}

// Permit is the single place permission rules live. Role and ownership
// violations come back as UNAUTHORIZED with the rule name; violations of the
// target's current state come back as CONFLICT so callers can re-read and
// retry.
func Permit(actor Actor, action Action, t Target) error {
	switch action {
	case ActionApplyCollaboration:
		if actor.Role != models.RoleStudent {
			return apperr.Unauthorized("collaboration.apply.students_only", "only students may request collaboration")
		}
		if t.Project.OwnerID == actor.ID {
			return apperr.Unauthorized("collaboration.apply.own_project", "cannot request collaboration on your own project")
		}
		if t.HasPendingRequest {
			return apperr.Conflict("collaboration_request", 0, "a pending request already exists for this project")
		}

	case ActionDecideCollaboration:
		if t.Project.OwnerID != actor.ID {
			return apperr.Unauthorized("collaboration.decide.owner_only", "only the project owner may decide this request")
		}
		if t.Request.Status != models.RequestStatusPending {
			return apperr.Conflict("collaboration_request", t.Request.ID, "request is already decided")
		}

	case ActionEndorseProject:
		if actor.Role != models.RoleFaculty && actor.Role != models.RoleAdmin {
			return apperr.Unauthorized("endorsement.create.faculty_only", "only faculty or admins may endorse projects")
		}
		if t.Project.Status == models.ProjectStatusRejected {
			return apperr.Conflict("project", t.Project.ID, "rejected projects cannot be endorsed")
		}

	case ActionRevokeEndorsement:
		if actor.Role != models.RoleAdmin && t.Endorsement.FacultyID != actor.ID {
			return apperr.Unauthorized("endorsement.revoke.endorser_or_admin", "only the endorsing faculty member or an admin may revoke")
		}
		if t.Endorsement.Revoked {
			return apperr.Conflict("endorsement", t.Endorsement.ID, "endorsement is already revoked")
		}

	case ActionMarkNotificationRead:
		if t.Notification.RecipientUserID != actor.ID {
			return apperr.Unauthorized("notification.read.recipient_only", "only the recipient may mark a notification read")
		}

	case ActionManageOpportunity:
		if actor.Role == models.RoleAdmin {
			return nil
		}
		if actor.Role != models.RoleFaculty {
			return apperr.Unauthorized("opportunity.manage.faculty_only", "only faculty or admins may manage opportunities")
		}
		if t.Opportunity != nil && t.Opportunity.PostedByID != actor.ID {
			return apperr.Unauthorized("opportunity.manage.poster_only", "only the posting user or an admin may manage this opportunity")
		}

	case ActionApplyOpportunity:
		if actor.Role != models.RoleStudent {
			return apperr.Unauthorized("opportunity.apply.students_only", "only students may apply to opportunities")
		}
		if t.Opportunity.Status != models.OpportunityStatusActive {
			return apperr.Conflict("opportunity", t.Opportunity.ID, "opportunity is not accepting applications")
		}
		if t.HasPendingRequest {
			return apperr.Conflict("opportunity_application", 0, "a pending application already exists for this opportunity")
		}

	case ActionDecideApplication:
		if actor.Role != models.RoleAdmin && t.Opportunity.PostedByID != actor.ID {
			return apperr.Unauthorized("opportunity.decide.poster_only", "only the posting user or an admin may decide applications")
		}
		if t.Application.Status != models.RequestStatusPending {
			return apperr.Conflict("opportunity_application", t.Application.ID, "application is already decided")
		}
	}

	return nil
}
