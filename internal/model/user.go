package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role distinguishes regular employees from administrators.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

const (
	// DefaultEmployeeLeaveBalance is granted to every newly registered employee.
	DefaultEmployeeLeaveBalance = 20
	// DefaultAdminLeaveBalance - admins do not take leave through the system.
	DefaultAdminLeaveBalance = 0
)

// User represents an employee or administrator account.
type User struct {
	ID            uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	FullName      string         `json:"full_name" gorm:"size:255;not null"`
	Email         string         `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash  string         `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role          Role           `json:"role" gorm:"type:varchar(20);not null;default:'employee';index"`
	DateOfJoining time.Time      `json:"date_of_joining" gorm:"not null"`
	LeaveBalance  int            `json:"leave_balance" gorm:"not null;default:20"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
