package models

import "time"

// Endorsement is append-mostly: revocation flips Revoked and never deletes,
// so project history stays auditable.
type Endorsement struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	ProjectID uint       `gorm:"not null;index" json:"project_id"`
	Project   Project    `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	FacultyID uint       `gorm:"not null;index" json:"faculty_id"`
	Faculty   User       `gorm:"foreignKey:FacultyID" json:"faculty,omitempty"`
	Feedback  string     `gorm:"type:text;not null" json:"feedback"`
	Revoked   bool       `gorm:"not null;default:false" json:"revoked"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
}
