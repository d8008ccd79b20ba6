package models

import "time"

// Roles known to the platform
const (
	RoleStudent = "STUDENT"
	RoleFaculty = "FACULTY"
	RoleAdmin   = "ADMIN"
)

type User struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"type:varchar(255);not null" json:"name"`
	Email      string `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password   string `gorm:"type:varchar(255);not null" json:"-"`
	Role       string `gorm:"type:varchar(20);not null" json:"role"`
	Department string `gorm:"type:varchar(255)" json:"department,omitempty"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
