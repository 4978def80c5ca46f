package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"minihr/internal/errors"
	"minihr/internal/model"
	"minihr/internal/repository"
)

// AttendanceService handles daily attendance marking and history.
type AttendanceService interface {
	MarkAttendance(ctx context.Context, userID uuid.UUID, status model.AttendanceStatus) (*model.Attendance, error)
	MyAttendance(ctx context.Context, userID uuid.UUID) ([]model.Attendance, error)
	ListAttendance(ctx context.Context) ([]model.Attendance, error)
}

type attendanceService struct {
	attendanceRepo repository.AttendanceRepository
	// Mutex map for per-user check-then-insert
	userMutexes sync.Map
}

// NewAttendanceService creates a new attendance service.
func NewAttendanceService(attendanceRepo repository.AttendanceRepository) AttendanceService {
	return &attendanceService{attendanceRepo: attendanceRepo}
}

// getMutex returns a mutex for a specific user ID.
func (s *attendanceService) getMutex(userID uuid.UUID) *sync.Mutex {
	value, _ := s.userMutexes.LoadOrStore(userID.String(), &sync.Mutex{})
	return value.(*sync.Mutex)
}

// MarkAttendance records the user's status for today. One record per user
// per day: the check-then-insert runs under a per-user mutex and the unique
// (user_id, date) index backstops it across processes.
func (s *attendanceService) MarkAttendance(ctx context.Context, userID uuid.UUID, status model.AttendanceStatus) (*model.Attendance, error) {
	if !status.Valid() {
		return nil, errors.NewValidationError("status must be %s or %s", model.AttendancePresent, model.AttendanceAbsent)
	}

	today := model.Today()

	mutex := s.getMutex(userID)
	mutex.Lock()
	defer mutex.Unlock()

	existing, err := s.attendanceRepo.FindByUserAndDate(ctx, userID, today)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check attendance: %w", err)
	}
	if existing != nil {
		return nil, errors.ErrDuplicateAttendance
	}

	record := &model.Attendance{
		UserID: userID,
		Date:   today,
		Status: status,
	}
	if err := s.attendanceRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("create attendance: %w", err)
	}
	return record, nil
}

// MyAttendance lists the requester's attendance history.
func (s *attendanceService) MyAttendance(ctx context.Context, userID uuid.UUID) ([]model.Attendance, error) {
	return s.attendanceRepo.ListByUser(ctx, userID)
}

// ListAttendance lists all attendance records for admin review.
func (s *attendanceService) ListAttendance(ctx context.Context) ([]model.Attendance, error) {
	return s.attendanceRepo.ListAll(ctx)
}
