package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttendanceStatus marks a day as worked or missed.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
)

// Valid reports whether the attendance status is a known value.
func (s AttendanceStatus) Valid() bool {
	return s == AttendancePresent || s == AttendanceAbsent
}

// Attendance records one employee's status for one calendar day. The
// (user, date) pair is unique; records are written once and never updated.
type Attendance struct {
	ID        uuid.UUID        `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID        `json:"user_id" gorm:"type:char(36);not null;uniqueIndex:idx_attendance_user_date"`
	Date      Date             `json:"date" gorm:"type:varchar(10);not null;uniqueIndex:idx_attendance_user_date;index"`
	Status    AttendanceStatus `json:"status" gorm:"type:varchar(10);not null"`
	CreatedAt time.Time        `json:"created_at"`

	// Relations
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (a *Attendance) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
