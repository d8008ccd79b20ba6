package models

import "time"

// Opportunity publishing lifecycle.
const (
	OpportunityStatusDraft  = "DRAFT"
	OpportunityStatusActive = "ACTIVE"
	OpportunityStatusClosed = "CLOSED"
)

type Opportunity struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	PostedByID  uint       `gorm:"not null;index" json:"posted_by_id"`
	PostedBy    User       `gorm:"foreignKey:PostedByID" json:"posted_by,omitempty"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Status      string     `gorm:"type:varchar(20);not null;default:'DRAFT'" json:"status"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}

// OpportunityApplication follows the same PENDING -> ACCEPTED/REJECTED shape
// as CollaborationRequest, including the unique pending-pair key.
type OpportunityApplication struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	OpportunityID uint        `gorm:"not null;index" json:"opportunity_id"`
	Opportunity   Opportunity `gorm:"foreignKey:OpportunityID" json:"opportunity,omitempty"`
	StudentID     uint        `gorm:"not null;index" json:"student_id"`
	Student       User        `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Note          string      `gorm:"type:text" json:"note"`
	Status        string      `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	PendingKey    *string     `gorm:"type:varchar(64);uniqueIndex" json:"-"`
	CreatedAt     time.Time   `gorm:"not null" json:"created_at"`
	DecidedAt     *time.Time  `json:"decided_at,omitempty"`
	DecidedBy     *uint       `json:"decided_by,omitempty"`
}
