package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"minihr/internal/model"
)

// LeaveRepository defines leave request persistence operations.
type LeaveRepository interface {
	Create(ctx context.Context, leave *model.LeaveRequest) error
	Update(ctx context.Context, leave *model.LeaveRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.LeaveRequest, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.LeaveRequest, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.LeaveRequest, error)
	ListAll(ctx context.Context) ([]model.LeaveRequest, error)
	// ListActiveForUser returns the user's Pending and Approved requests,
	// the set that blocks new overlapping applications.
	ListActiveForUser(ctx context.Context, userID uuid.UUID) ([]model.LeaveRequest, error)
	// ListOverlappingRange returns all the user's requests, regardless of
	// status, whose inclusive range intersects [start, end].
	ListOverlappingRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]model.LeaveRequest, error)
}

type leaveRepository struct {
	db *gorm.DB
}

// NewLeaveRepository creates a new leave repository.
func NewLeaveRepository(db *gorm.DB) LeaveRepository {
	return &leaveRepository{db: db}
}

// Create creates a new leave request.
func (r *leaveRepository) Create(ctx context.Context, leave *model.LeaveRequest) error {
	return r.db.WithContext(ctx).Create(leave).Error
}

// Update updates an existing leave request.
func (r *leaveRepository) Update(ctx context.Context, leave *model.LeaveRequest) error {
	return r.db.WithContext(ctx).Save(leave).Error
}

// FindByID finds a leave request by ID, preloading the owning user.
func (r *leaveRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.LeaveRequest, error) {
	var leave model.LeaveRequest
	if err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&leave).Error; err != nil {
		return nil, err
	}
	return &leave, nil
}

// FindByIDForUpdate finds a leave request by ID with a row-level lock.
func (r *leaveRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.LeaveRequest, error) {
	var leave model.LeaveRequest
	if err := r.db.WithContext(ctx).Set("gorm:query_option", "FOR UPDATE").
		Where("id = ?", id).First(&leave).Error; err != nil {
		return nil, err
	}
	return &leave, nil
}

// ListByUser lists a user's leave requests, newest application first.
func (r *leaveRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.LeaveRequest, error) {
	var leaves []model.LeaveRequest
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Find(&leaves).Error; err != nil {
		return nil, err
	}
	return leaves, nil
}

// ListAll lists every leave request with owners preloaded, newest first.
func (r *leaveRepository) ListAll(ctx context.Context) ([]model.LeaveRequest, error) {
	var leaves []model.LeaveRequest
	if err := r.db.WithContext(ctx).Preload("User").
		Order("created_at DESC").Find(&leaves).Error; err != nil {
		return nil, err
	}
	return leaves, nil
}

// ListActiveForUser lists the user's Pending and Approved requests.
func (r *leaveRepository) ListActiveForUser(ctx context.Context, userID uuid.UUID) ([]model.LeaveRequest, error) {
	var leaves []model.LeaveRequest
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND status IN ?", userID, []model.LeaveStatus{model.LeaveStatusPending, model.LeaveStatusApproved}).
		Find(&leaves).Error; err != nil {
		return nil, err
	}
	return leaves, nil
}

// ListOverlappingRange lists the user's requests intersecting [start, end].
func (r *leaveRepository) ListOverlappingRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]model.LeaveRequest, error) {
	var leaves []model.LeaveRequest
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND start_date <= ? AND end_date >= ?", userID, end, start).
		Find(&leaves).Error; err != nil {
		return nil, err
	}
	return leaves, nil
}
