package models

import "time"

// Notification types, one per domain event.
const (
	NotifRequestCreated     = "REQUEST_CREATED"
	NotifRequestDecided     = "REQUEST_DECIDED"
	NotifProjectEndorsed    = "PROJECT_ENDORSED"
	NotifEndorsementRevoked = "ENDORSEMENT_REVOKED"
	NotifOpportunityDecided = "OPPORTUNITY_DECIDED"
)

const (
	NotifStatusUnread = "UNREAD"
	NotifStatusRead   = "READ"
)

// Notification rows are written only by the dispatcher; the sole mutation
// afterwards is UNREAD -> READ by the recipient.
type Notification struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	RecipientUserID uint      `gorm:"not null;index" json:"recipient_user_id"`
	Recipient       User      `gorm:"foreignKey:RecipientUserID" json:"-"`
	Type            string    `gorm:"type:varchar(40);not null" json:"type"`
	Message         string    `gorm:"type:text;not null" json:"message"`
	RelatedEntityID uint      `gorm:"not null" json:"related_entity_id"`
	Status          string    `gorm:"type:varchar(10);not null;default:'UNREAD'" json:"status"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
}
