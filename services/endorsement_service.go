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

// EndorsementService keeps the endorsement ledger. Records are appended and
// soft-revoked, never deleted.
type EndorsementService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewEndorsementService(db *gorm.DB, notifier *NotificationService) *EndorsementService {
	return &EndorsementService{db: db, notifier: notifier}
}

// Endorse appends an active endorsement and notifies the project owner.
// Duplicate endorsements by the same faculty member are allowed and stay
// visible; presentation layers may dedupe.
func (s *EndorsementService) Endorse(actor Actor, projectID uint, feedback string) (*models.Endorsement, error) {
	if strings.TrimSpace(feedback) == "" {
		return nil, apperr.Validation("feedback must not be empty")
	}

	var created models.Endorsement

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, projectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("project", projectID)
			}
			return err
		}

		if err := Permit(actor, ActionEndorseProject, Target{Project: &project}); err != nil {
			return err
		}

		created = models.Endorsement{
			ProjectID: projectID,
			FacultyID: actor.ID,
			Feedback:  feedback,
			Revoked:   false,
			CreatedAt: time.Now(),
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}

		return s.notifier.Dispatch(tx, Event{
			Type:        models.NotifProjectEndorsed,
			RecipientID: project.OwnerID,
			RelatedID:   created.ID,
			Message:     fmt.Sprintf("Your project %q received a new endorsement", project.Title),
		})
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Revoke soft-revokes an endorsement. Revocation is monotonic: once revoked,
// an endorsement never becomes active again.
func (s *EndorsementService) Revoke(endorsementID uint, actor Actor) (*models.Endorsement, error) {
	var revoked models.Endorsement

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var endorsement models.Endorsement
		if err := tx.First(&endorsement, endorsementID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("endorsement", endorsementID)
			}
			return err
		}

		var project models.Project
		if err := tx.First(&project, endorsement.ProjectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("project", endorsement.ProjectID)
			}
			return err
		}

		if err := Permit(actor, ActionRevokeEndorsement, Target{Endorsement: &endorsement}); err != nil {
			return err
		}

		now := time.Now()
		res := tx.Model(&models.Endorsement{}).
			Where("id = ? AND revoked = ?", endorsementID, false).
			Updates(map[string]interface{}{
				"revoked":    true,
				"revoked_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.Conflict("endorsement", endorsementID, "endorsement is already revoked")
		}

		endorsement.Revoked = true
		endorsement.RevokedAt = &now
		revoked = endorsement

		return s.notifier.Dispatch(tx, Event{
			Type:        models.NotifEndorsementRevoked,
			RecipientID: project.OwnerID,
			RelatedID:   endorsement.ID,
			Message:     fmt.Sprintf("An endorsement on your project %q was revoked", project.Title),
		})
	})
	if err != nil {
		return nil, err
	}
	return &revoked, nil
}

// ListByProject returns every endorsement on a project, active and revoked,
// oldest first.
func (s *EndorsementService) ListByProject(projectID uint) ([]models.Endorsement, error) {
	var endorsements []models.Endorsement
	if err := s.db.Preload("Faculty").
		Where("project_id = ?", projectID).
		Order("created_at ASC, id ASC").
		Find(&endorsements).Error; err != nil {
		return nil, err
	}
	return endorsements, nil
}
