package model

import "github.com/google/uuid"

// AttendanceSummary aggregates one employee's attendance inside a month.
type AttendanceSummary struct {
	TotalDays    int     `json:"total_days"`
	RecordedDays int     `json:"recorded_days"`
	Present      int     `json:"present"`
	Absent       int     `json:"absent"`
	Percentage   float64 `json:"percentage"`
}

// LeaveSummary aggregates one employee's leave requests overlapping a month.
// Type and status counters count requests; TotalDays sums approved days only.
type LeaveSummary struct {
	Total     int `json:"total"`
	TotalDays int `json:"total_days"`
	Casual    int `json:"casual"`
	Sick      int `json:"sick"`
	Paid      int `json:"paid"`
	Approved  int `json:"approved"`
	Pending   int `json:"pending"`
	Rejected  int `json:"rejected"`
}

// UserReport is the per-employee row of a monthly report.
type UserReport struct {
	UserID     uuid.UUID         `json:"user_id"`
	FullName   string            `json:"full_name"`
	Email      string            `json:"email"`
	Attendance AttendanceSummary `json:"attendance"`
	Leaves     LeaveSummary      `json:"leaves"`
}

// MonthlyReport is the full report for one calendar month.
type MonthlyReport struct {
	Month     int          `json:"month"`
	Year      int          `json:"year"`
	MonthName string       `json:"month_name"`
	Reports   []UserReport `json:"reports"`
}
