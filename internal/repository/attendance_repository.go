package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"minihr/internal/model"
)

// AttendanceRepository defines attendance persistence operations.
type AttendanceRepository interface {
	Create(ctx context.Context, record *model.Attendance) error
	FindByUserAndDate(ctx context.Context, userID uuid.UUID, date model.Date) (*model.Attendance, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Attendance, error)
	ListAll(ctx context.Context) ([]model.Attendance, error)
	ListByUserInRange(ctx context.Context, userID uuid.UUID, from, to model.Date) ([]model.Attendance, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository creates a new attendance repository.
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Create creates a new attendance record. The unique index on (user_id, date)
// backstops the service-level duplicate check.
func (r *attendanceRepository) Create(ctx context.Context, record *model.Attendance) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// FindByUserAndDate finds a user's record for a specific day.
func (r *attendanceRepository) FindByUserAndDate(ctx context.Context, userID uuid.UUID, date model.Date) (*model.Attendance, error) {
	var record model.Attendance
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// ListByUser lists a user's attendance history, newest day first.
func (r *attendanceRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Attendance, error) {
	var records []model.Attendance
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("date DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// ListAll lists every attendance record with owners preloaded, newest first.
func (r *attendanceRepository) ListAll(ctx context.Context) ([]model.Attendance, error) {
	var records []model.Attendance
	if err := r.db.WithContext(ctx).Preload("User").
		Order("date DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// ListByUserInRange lists a user's records with date in [from, to]. Dates
// compare lexicographically, which matches calendar order for YYYY-MM-DD.
func (r *attendanceRepository) ListByUserInRange(ctx context.Context, userID uuid.UUID, from, to model.Date) ([]model.Attendance, error) {
	var records []model.Attendance
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
