package models

import (
	"fmt"
	"time"
)

// CollaborationRequest lifecycle. ACCEPTED and REJECTED are terminal.
const (
	RequestStatusPending  = "PENDING"
	RequestStatusAccepted = "ACCEPTED"
	RequestStatusRejected = "REJECTED"
)

type CollaborationRequest struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	ProjectID uint    `gorm:"not null;index" json:"project_id"`
	Project   Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	StudentID uint    `gorm:"not null;index" json:"student_id"`
	Student   User    `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Status    string  `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	// PendingKey is "<project_id>:<student_id>" while the request is PENDING
	// and NULL afterwards, so the unique index admits at most one open
	// request per pair even under concurrent inserts.
	PendingKey *string    `gorm:"type:varchar(64);uniqueIndex" json:"-"`
	CreatedAt  time.Time  `gorm:"not null" json:"created_at"`
	DecidedAt  *time.Time `json:"decided_at,omitempty"`
	DecidedBy  *uint      `json:"decided_by,omitempty"`
}

// PendingPairKey builds the PendingKey value for a (project, student) pair.
func PendingPairKey(parentID, studentID uint) *string {
	k := fmt.Sprintf("%d:%d", parentID, studentID)
	return &k
}
