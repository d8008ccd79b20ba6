package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/collabsphere/collabsphere-backend/apperr"
	"github.com/collabsphere/collabsphere-backend/models"
)

// Event is the signal a successful state transition emits.
type Event struct {
	Type        string
	RecipientID uint
	RelatedID   uint
	Message     string
}

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// Dispatch persists the notification for an event. It must be called with
// the transaction of the triggering mutation so the notification commits or
// rolls back together with it, exactly once per transition.
func (s *NotificationService) Dispatch(tx *gorm.DB, evt Event) error {
	notif := models.Notification{
		RecipientUserID: evt.RecipientID,
		Type:            evt.Type,
		Message:         evt.Message,
		RelatedEntityID: evt.RelatedID,
		Status:          models.NotifStatusUnread,
		CreatedAt:       time.Now(),
	}
	return tx.Create(&notif).Error
}

// ListForUser returns the user's notifications newest first.
func (s *NotificationService) ListForUser(userID uint) ([]models.Notification, error) {
	var notifs []models.Notification
	if err := s.db.
		Where("recipient_user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&notifs).Error; err != nil {
		return nil, err
	}
	return notifs, nil
}

// MarkRead flips a notification to READ. Only the recipient may do this;
// marking an already-read notification again is a no-op.
func (s *NotificationService) MarkRead(notificationID uint, actor Actor) (*models.Notification, error) {
	var notif models.Notification
	if err := s.db.First(&notif, notificationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("notification", notificationID)
		}
		return nil, err
	}

	if err := Permit(actor, ActionMarkNotificationRead, Target{Notification: &notif}); err != nil {
		return nil, err
	}

	if notif.Status == models.NotifStatusRead {
		return &notif, nil
	}

	if err := s.db.Model(&models.Notification{}).
		Where("id = ?", notificationID).
		Update("status", models.NotifStatusRead).Error; err != nil {
		return nil, err
	}

	notif.Status = models.NotifStatusRead
	return &notif, nil
}
