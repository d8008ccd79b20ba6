package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/collabsphere/collabsphere-backend/apperr"
	"github.com/collabsphere/collabsphere-backend/models"
)

// CollaborationService is the only writer of collaboration request status.
// PENDING is the single initial state; ACCEPTED and REJECTED are terminal.
type CollaborationService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewCollaborationService(db *gorm.DB, notifier *NotificationService) *CollaborationService {
	return &CollaborationService{db: db, notifier: notifier}
}

// Apply creates a PENDING request from actor to the project and notifies the
// project owner. The duplicate-pending check reads inside the transaction for
// the common sequential case; the unique PendingKey index is what actually
// holds the one-open-request-per-pair invariant when two applies race, since
// under REPEATABLE READ both could pass a plain count against their own
// snapshots.
func (s *CollaborationService) Apply(actor Actor, projectID uint) (*models.CollaborationRequest, error) {
	var created models.CollaborationRequest

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, projectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("project", projectID)
			}
			return err
		}

		var pending int64
		if err := tx.Model(&models.CollaborationRequest{}).
			Where("project_id = ? AND student_id = ? AND status = ?",
				projectID, actor.ID, models.RequestStatusPending).
			Count(&pending).Error; err != nil {
			return err
		}

		if err := Permit(actor, ActionApplyCollaboration, Target{
			Project:           &project,
			HasPendingRequest: pending > 0,
		}); err != nil {
			return err
		}

		created = models.CollaborationRequest{
			ProjectID:  projectID,
			StudentID:  actor.ID,
			Status:     models.RequestStatusPending,
			PendingKey: models.PendingPairKey(projectID, actor.ID),
			CreatedAt:  time.Now(),
		}
		if err := tx.Create(&created).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflict("collaboration_request", 0, "a pending request already exists for this project")
			}
			return err
		}

		return s.notifier.Dispatch(tx, Event{
			Type:        models.NotifRequestCreated,
			RecipientID: project.OwnerID,
			RelatedID:   created.ID,
			Message:     fmt.Sprintf("New collaboration request for your project %q", project.Title),
		})
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Decide resolves a PENDING request to ACCEPTED or REJECTED. Only the project
// owner may decide, decisions are final, and accepting one request never
// cascades onto other pending requests for the same project.
func (s *CollaborationService) Decide(requestID uint, actor Actor, outcome string) (*models.CollaborationRequest, error) {
	outcome = strings.ToUpper(strings.TrimSpace(outcome))
	if outcome != models.RequestStatusAccepted && outcome != models.RequestStatusRejected {
		return nil, apperr.Validation("outcome must be ACCEPTED or REJECTED")
	}

	var decided models.CollaborationRequest

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var req models.CollaborationRequest
		if err := tx.First(&req, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("collaboration_request", requestID)
			}
			return err
		}

		var project models.Project
		if err := tx.First(&project, req.ProjectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("project", req.ProjectID)
			}
			return err
		}

		if err := Permit(actor, ActionDecideCollaboration, Target{
			Project: &project,
			Request: &req,
		}); err != nil {
			return err
		}

		// Conditional write: the status filter makes the terminal transition
		// race-safe without locking unrelated rows. Clearing the pending key
		// frees the pair for a future request.
		now := time.Now()
		res := tx.Model(&models.CollaborationRequest{}).
			Where("id = ? AND status = ?", requestID, models.RequestStatusPending).
			Updates(map[string]interface{}{
				"status":      outcome,
				"decided_at":  now,
				"decided_by":  actor.ID,
				"pending_key": nil,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.Conflict("collaboration_request", requestID, "request is already decided")
		}

		req.Status = outcome
		req.PendingKey = nil
		req.DecidedAt = &now
		deciderID := actor.ID
		req.DecidedBy = &deciderID
		decided = req

		return s.notifier.Dispatch(tx, Event{
			Type:        models.NotifRequestDecided,
			RecipientID: req.StudentID,
			RelatedID:   req.ID,
			Message:     fmt.Sprintf("Your collaboration request for %q was %s", project.Title, strings.ToLower(outcome)),
		})
	})
	if err != nil {
		return nil, err
	}
	return &decided, nil
}

// ListByProject returns all requests on a project, oldest first.
func (s *CollaborationService) ListByProject(projectID uint) ([]models.CollaborationRequest, error) {
	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("project", projectID)
		}
		return nil, err
	}

	var requests []models.CollaborationRequest
	if err := s.db.Preload("Student").
		Where("project_id = ?", projectID).
		Order("created_at ASC, id ASC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// ListByStudent returns all requests a student has made, oldest first.
func (s *CollaborationService) ListByStudent(studentID uint) ([]models.CollaborationRequest, error) {
	var requests []models.CollaborationRequest
	if err := s.db.Preload("Project").
		Where("student_id = ?", studentID).
		Order("created_at ASC, id ASC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}
