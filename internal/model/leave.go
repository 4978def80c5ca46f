package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeaveType categorizes a leave request.
type LeaveType string

const (
	LeaveTypeCasual LeaveType = "Casual"
	LeaveTypeSick   LeaveType = "Sick"
	LeaveTypePaid   LeaveType = "Paid"
)

// Valid reports whether the leave type is one of the known categories.
func (t LeaveType) Valid() bool {
	switch t {
	case LeaveTypeCasual, LeaveTypeSick, LeaveTypePaid:
		return true
	}
	return false
}

// LeaveStatus represents the lifecycle state of a leave request.
type LeaveStatus string

const (
	LeaveStatusPending   LeaveStatus = "Pending"
	LeaveStatusApproved  LeaveStatus = "Approved"
	LeaveStatusRejected  LeaveStatus = "Rejected"
	LeaveStatusCancelled LeaveStatus = "Cancelled"
)

// Terminal reports whether the status can never change again.
func (s LeaveStatus) Terminal() bool {
	return s != LeaveStatusPending
}

// CanTransitionTo validates a status transition. Only Pending requests move;
// every other status is terminal.
func (s LeaveStatus) CanTransitionTo(next LeaveStatus) bool {
	if s != LeaveStatusPending {
		return false
	}
	switch next {
	case LeaveStatusApproved, LeaveStatusRejected, LeaveStatusCancelled:
		return true
	}
	return false
}

// LeaveRequest represents an employee's application for leave over an
// inclusive date range. TotalDays is derived at creation and never
// recomputed afterwards.
type LeaveRequest struct {
	ID        uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID      `json:"user_id" gorm:"type:char(36);not null;index:idx_leaves_user_dates"`
	LeaveType LeaveType      `json:"leave_type" gorm:"type:varchar(20);not null"`
	StartDate time.Time      `json:"start_date" gorm:"not null;index:idx_leaves_user_dates"`
	EndDate   time.Time      `json:"end_date" gorm:"not null;index:idx_leaves_user_dates"`
	TotalDays int            `json:"total_days" gorm:"not null"`
	Status    LeaveStatus    `json:"status" gorm:"type:varchar(20);not null;default:'Pending';index"`
	Reason    string         `json:"reason,omitempty" gorm:"type:text"`
	AppliedAt time.Time      `json:"applied_at"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID and applied timestamp before creating the record.
func (l *LeaveRequest) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.AppliedAt.IsZero() {
		l.AppliedAt = time.Now()
	}
	return nil
}

// Overlaps reports whether the request's inclusive date range intersects
// [start, end]. All four bounds are compared at day granularity.
func (l *LeaveRequest) Overlaps(start, end time.Time) bool {
	s := TruncateToDay(start)
	e := TruncateToDay(end)
	return !TruncateToDay(l.StartDate).After(e) && !TruncateToDay(l.EndDate).Before(s)
}

// Active reports whether the request blocks other requests in its range.
func (l *LeaveRequest) Active() bool {
	return l.Status == LeaveStatusPending || l.Status == LeaveStatusApproved
}
