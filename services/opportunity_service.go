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

// OpportunityService manages faculty/admin opportunities and the student
// applications against them. Applications reuse the same PENDING ->
// ACCEPTED/REJECTED discipline as collaboration requests.
type OpportunityService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewOpportunityService(db *gorm.DB, notifier *NotificationService) *OpportunityService {
	return &OpportunityService{db: db, notifier: notifier}
}

func (s *OpportunityService) Create(actor Actor, title, description string, deadline *time.Time) (*models.Opportunity, error) {
	if strings.TrimSpace(title) == "" {
		return nil, apperr.Validation("title must not be empty")
	}
	if err := Permit(actor, ActionManageOpportunity, Target{}); err != nil {
		return nil, err
	}

	opp := models.Opportunity{
		PostedByID:  actor.ID,
		Title:       title,
		Description: description,
		Deadline:    deadline,
		Status:      models.OpportunityStatusDraft,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := s.db.Create(&opp).Error; err != nil {
		return nil, err
	}
	return &opp, nil
}

// Publish moves a DRAFT opportunity to ACTIVE so students can apply.
func (s *OpportunityService) Publish(opportunityID uint, actor Actor) (*models.Opportunity, error) {
	return s.transition(opportunityID, actor, models.OpportunityStatusDraft, models.OpportunityStatusActive)
}

// Close moves an ACTIVE opportunity to CLOSED. Pending applications stay
// pending and can still be decided.
func (s *OpportunityService) Close(opportunityID uint, actor Actor) (*models.Opportunity, error) {
	return s.transition(opportunityID, actor, models.OpportunityStatusActive, models.OpportunityStatusClosed)
}

func (s *OpportunityService) transition(opportunityID uint, actor Actor, from, to string) (*models.Opportunity, error) {
	var opp models.Opportunity
	if err := s.db.First(&opp, opportunityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("opportunity", opportunityID)
		}
		return nil, err
	}

	if err := Permit(actor, ActionManageOpportunity, Target{Opportunity: &opp}); err != nil {
		return nil, err
	}

	res := s.db.Model(&models.Opportunity{}).
		Where("id = ? AND status = ?", opportunityID, from).
		Updates(map[string]interface{}{"status": to, "updated_at": time.Now()})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperr.Conflict("opportunity", opportunityID, fmt.Sprintf("opportunity is not %s", strings.ToLower(from)))
	}

	opp.Status = to
	return &opp, nil
}

func (s *OpportunityService) Delete(opportunityID uint, actor Actor) error {
	var opp models.Opportunity
	if err := s.db.First(&opp, opportunityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("opportunity", opportunityID)
		}
		return err
	}
	if err := Permit(actor, ActionManageOpportunity, Target{Opportunity: &opp}); err != nil {
		return err
	}
	return s.db.Delete(&models.Opportunity{}, opportunityID).Error
}

func (s *OpportunityService) ListActive() ([]models.Opportunity, error) {
	var opps []models.Opportunity
	if err := s.db.Preload("PostedBy").
		Where("status = ?", models.OpportunityStatusActive).
		Order("created_at DESC, id DESC").
		Find(&opps).Error; err != nil {
		return nil, err
	}
	return opps, nil
}

func (s *OpportunityService) Get(opportunityID uint) (*models.Opportunity, error) {
	var opp models.Opportunity
	if err := s.db.Preload("PostedBy").First(&opp, opportunityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("opportunity", opportunityID)
		}
		return nil, err
	}
	return &opp, nil
}

// Apply creates a PENDING application from a student against an ACTIVE
// opportunity. One pending application per (opportunity, student) pair,
// enforced by the unique PendingKey index so concurrent applies cannot both
// commit.
func (s *OpportunityService) Apply(actor Actor, opportunityID uint, note string) (*models.OpportunityApplication, error) {
	var created models.OpportunityApplication

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var opp models.Opportunity
		if err := tx.First(&opp, opportunityID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("opportunity", opportunityID)
			}
			return err
		}

		var pending int64
		if err := tx.Model(&models.OpportunityApplication{}).
			Where("opportunity_id = ? AND student_id = ? AND status = ?",
				opportunityID, actor.ID, models.RequestStatusPending).
			Count(&pending).Error; err != nil {
			return err
		}

		if err := Permit(actor, ActionApplyOpportunity, Target{
			Opportunity:       &opp,
			HasPendingRequest: pending > 0,
		}); err != nil {
			return err
		}

		created = models.OpportunityApplication{
			OpportunityID: opportunityID,
			StudentID:     actor.ID,
			Note:          note,
			Status:        models.RequestStatusPending,
			PendingKey:    models.PendingPairKey(opportunityID, actor.ID),
			CreatedAt:     time.Now(),
		}
		if err := tx.Create(&created).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflict("opportunity_application", 0, "a pending application already exists for this opportunity")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// DecideApplication resolves a PENDING application and notifies the student.
func (s *OpportunityService) DecideApplication(applicationID uint, actor Actor, outcome string) (*models.OpportunityApplication, error) {
	outcome = strings.ToUpper(strings.TrimSpace(outcome))
	if outcome != models.RequestStatusAccepted && outcome != models.RequestStatusRejected {
		return nil, apperr.Validation("outcome must be ACCEPTED or REJECTED")
	}

	var decided models.OpportunityApplication

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var app models.OpportunityApplication
		if err := tx.First(&app, applicationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("opportunity_application", applicationID)
			}
			return err
		}

		var opp models.Opportunity
		if err := tx.First(&opp, app.OpportunityID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("opportunity", app.OpportunityID)
			}
			return err
		}

		if err := Permit(actor, ActionDecideApplication, Target{
			Opportunity: &opp,
			Application: &app,
		}); err != nil {
			return err
		}

		now := time.Now()
		res := tx.Model(&models.OpportunityApplication{}).
			Where("id = ? AND status = ?", applicationID, models.RequestStatusPending).
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
			return apperr.Conflict("opportunity_application", applicationID, "application is already decided")
		}

		app.Status = outcome
		app.PendingKey = nil
		app.DecidedAt = &now
		deciderID := actor.ID
		app.DecidedBy = &deciderID
		decided = app

		return s.notifier.Dispatch(tx, Event{
			Type:        models.NotifOpportunityDecided,
			RecipientID: app.StudentID,
			RelatedID:   app.ID,
			Message:     fmt.Sprintf("Your application for %q was %s", opp.Title, strings.ToLower(outcome)),
		})
	})
	if err != nil {
		return nil, err
	}
	return &decided, nil
}

// ListApplicationsForOpportunity is restricted to the poster or an admin.
func (s *OpportunityService) ListApplicationsForOpportunity(opportunityID uint, actor Actor) ([]models.OpportunityApplication, error) {
	var opp models.Opportunity
	if err := s.db.First(&opp, opportunityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("opportunity", opportunityID)
		}
		return nil, err
	}
	if err := Permit(actor, ActionManageOpportunity, Target{Opportunity: &opp}); err != nil {
		return nil, err
	}

	var apps []models.OpportunityApplication
	if err := s.db.Preload("Student").
		Where("opportunity_id = ?", opportunityID).
		Order("created_at ASC, id ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (s *OpportunityService) ListApplicationsByStudent(studentID uint) ([]models.OpportunityApplication, error) {
	var apps []models.OpportunityApplication
	if err := s.db.Preload("Opportunity").
		Where("student_id = ?", studentID).
		Order("created_at ASC, id ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}
