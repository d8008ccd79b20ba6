package models

import "time"

// Project moderation status, set by admins and read by the endorsement flow.
const (
	ProjectStatusPending  = "PENDING"
	ProjectStatusApproved = "APPROVED"
	ProjectStatusRejected = "REJECTED"
)

type Project struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OwnerID     uint      `gorm:"not null;index" json:"owner_id"`
	Owner       User      `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	RepoUrl     string    `gorm:"type:varchar(255)" json:"repo_url"`
	Status      string    `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
