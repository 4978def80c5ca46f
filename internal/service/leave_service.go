package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"minihr/internal/cache"
	"minihr/internal/errors"
	"minihr/internal/model"
	"minihr/internal/repository"
)

// LeaveNotifier delivers a status-change message for a finalized request.
// Delivery is best effort; failures never roll back the decision.
type LeaveNotifier interface {
	NotifyDecision(leave *model.LeaveRequest, owner *model.User, remainingBalance *int)
}

// LeaveService handles leave application and decision operations.
type LeaveService interface {
	ApplyLeave(ctx context.Context, userID uuid.UUID, leaveType model.LeaveType, startDate, endDate time.Time, reason string) (*model.LeaveRequest, error)
	DecideLeave(ctx context.Context, leaveID uuid.UUID, decision model.LeaveStatus) (*model.LeaveRequest, error)
	CancelLeave(ctx context.Context, leaveID, requesterID uuid.UUID) (*model.LeaveRequest, error)
	MyLeaves(ctx context.Context, userID uuid.UUID) ([]model.LeaveRequest, error)
	ListLeaves(ctx context.Context) ([]model.LeaveRequest, error)
}

type leaveService struct {
	userRepo  repository.UserRepository
	leaveRepo repository.LeaveRepository
	tx        repository.TxManager
	evaluator *LeaveRequestEvaluator
	cache     *cache.Client
	notifier  LeaveNotifier
	// Mutex map for per-request serialization of decisions
	leaveMutexes sync.Map
}

// NewLeaveService creates a new leave service.
func NewLeaveService(
	userRepo repository.UserRepository,
	leaveRepo repository.LeaveRepository,
	tx repository.TxManager,
	cache *cache.Client,
	notifier LeaveNotifier,
) LeaveService {
	return &leaveService{
		userRepo:  userRepo,
		leaveRepo: leaveRepo,
		tx:        tx,
		evaluator: NewLeaveRequestEvaluator(),
		cache:     cache,
		notifier:  notifier,
	}
}

// getMutex returns a mutex for a specific leave request ID, so a decision is
// applied at most once even under concurrent admin clicks.
func (s *leaveService) getMutex(leaveID uuid.UUID) *sync.Mutex {
	value, _ := s.leaveMutexes.LoadOrStore(leaveID.String(), &sync.Mutex{})
	return value.(*sync.Mutex)
}

// ApplyLeave evaluates and persists a new leave application.
func (s *leaveService) ApplyLeave(ctx context.Context, userID uuid.UUID, leaveType model.LeaveType, startDate, endDate time.Time, reason string) (*model.LeaveRequest, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	existing, err := s.leaveRepo.ListActiveForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load active leaves: %w", err)
	}

	leave, err := s.evaluator.EvaluateNewRequest(user, existing, startDate, endDate, leaveType, reason)
	if err != nil {
		return nil, err
	}

	if err := s.leaveRepo.Create(ctx, leave); err != nil {
		return nil, fmt.Errorf("create leave: %w", err)
	}
	return leave, nil
}

// DecideLeave applies an admin approval or rejection to a pending request.
// Approvals re-check and decrement the owner's balance and write the new
// status inside one transaction over both locked rows, so a failure at any
// point rolls back the whole decision.
func (s *leaveService) DecideLeave(ctx context.Context, leaveID uuid.UUID, decision model.LeaveStatus) (*model.LeaveRequest, error) {
	if decision != model.LeaveStatusApproved && decision != model.LeaveStatusRejected {
		return nil, errors.NewValidationError("decision must be %s or %s", model.LeaveStatusApproved, model.LeaveStatusRejected)
	}

	mutex := s.getMutex(leaveID)
	mutex.Lock()
	defer mutex.Unlock()

	leave, err := s.leaveRepo.FindByID(ctx, leaveID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrLeaveNotFound
		}
		return nil, fmt.Errorf("load leave: %w", err)
	}

	owner := leave.User
	if owner == nil {
		owner, err = s.userRepo.FindByID(ctx, leave.UserID)
		if err != nil {
			return nil, fmt.Errorf("load owner: %w", err)
		}
	}

	var decided *model.LeaveRequest
	var remaining *int

	if decision == model.LeaveStatusApproved {
		// Balance check, decrement and status write run against locked
		// rows; the balance seen at request time may be stale by now.
		err = s.tx.WithTransaction(ctx, func(ctx context.Context, txUsers repository.UserRepository, txLeaves repository.LeaveRepository) error {
			current, err := txLeaves.FindByIDForUpdate(ctx, leaveID)
			if err != nil {
				return fmt.Errorf("lock leave: %w", err)
			}
			locked, err := txUsers.FindByIDForUpdate(ctx, current.UserID)
			if err != nil {
				return fmt.Errorf("lock owner: %w", err)
			}
			d, newBalance, err := s.evaluator.EvaluateStatusChange(current, decision, locked)
			if err != nil {
				return err
			}
			if err := txUsers.UpdateLeaveBalance(ctx, locked.ID, newBalance); err != nil {
				return fmt.Errorf("update balance: %w", err)
			}
			if err := txLeaves.Update(ctx, d); err != nil {
				return fmt.Errorf("update leave: %w", err)
			}
			decided = d
			remaining = &newBalance
			return nil
		})
		if err != nil {
			return nil, err
		}

		// The cached profile still carries the old balance.
		_ = s.cache.Delete(ctx, userCacheKey(owner.ID))
	} else {
		decided, _, err = s.evaluator.EvaluateStatusChange(leave, decision, owner)
		if err != nil {
			return nil, err
		}
		if err := s.leaveRepo.Update(ctx, decided); err != nil {
			return nil, fmt.Errorf("update leave: %w", err)
		}
	}

	if s.notifier != nil {
		s.notifier.NotifyDecision(decided, owner, remaining)
	} else {
		log.Printf("leave %s decided %s, no notifier configured", decided.ID, decision)
	}

	return decided, nil
}

// CancelLeave withdraws the requester's own pending request.
func (s *leaveService) CancelLeave(ctx context.Context, leaveID, requesterID uuid.UUID) (*model.LeaveRequest, error) {
	mutex := s.getMutex(leaveID)
	mutex.Lock()
	defer mutex.Unlock()

	leave, err := s.leaveRepo.FindByID(ctx, leaveID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrLeaveNotFound
		}
		return nil, fmt.Errorf("load leave: %w", err)
	}

	if leave.UserID != requesterID {
		return nil, errors.ErrNotOwner
	}

	requester, err := s.userRepo.FindByID(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("load requester: %w", err)
	}

	decided, _, err := s.evaluator.EvaluateStatusChange(leave, model.LeaveStatusCancelled, requester)
	if err != nil {
		return nil, err
	}

	if err := s.leaveRepo.Update(ctx, decided); err != nil {
		return nil, fmt.Errorf("update leave: %w", err)
	}
	return decided, nil
}

// MyLeaves lists the requester's leave history.
func (s *leaveService) MyLeaves(ctx context.Context, userID uuid.UUID) ([]model.LeaveRequest, error) {
	return s.leaveRepo.ListByUser(ctx, userID)
}

// ListLeaves lists every leave request for admin review.
func (s *leaveService) ListLeaves(ctx context.Context) ([]model.LeaveRequest, error) {
	return s.leaveRepo.ListAll(ctx)
}
