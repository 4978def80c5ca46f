package service

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"minihr/internal/errors"
	"minihr/internal/model"
)

func newTestTx(users *MockUserRepository, leaves *MockLeaveRepository) *MockTxManager {
	return &MockTxManager{Users: users, Leaves: leaves}
}

func TestLeaveService_ApplyLeave(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name          string
		balance       int
		start         time.Time
		end           time.Time
		existing      []model.LeaveRequest
		setupMocks    func(*MockUserRepository, *MockLeaveRepository, *model.User, []model.LeaveRequest)
		expectCreated bool
		checkErr      func(*testing.T, error)
	}{
		{
			name:    "successful application",
			balance: 20,
			start:   day(2025, time.July, 7),
			end:     day(2025, time.July, 9),
			setupMocks: func(mUsers *MockUserRepository, mLeaves *MockLeaveRepository, user *model.User, existing []model.LeaveRequest) {
				mUsers.On("FindByID", mock.Anything, userID).Return(user, nil)
				mLeaves.On("ListActiveForUser", mock.Anything, userID).Return(existing, nil)
				mLeaves.On("Create", mock.Anything, mock.AnythingOfType("*model.LeaveRequest")).Return(nil)
			},
			expectCreated: true,
		},
		{
			name:    "unknown user",
			balance: 20,
			start:   day(2025, time.July, 7),
			end:     day(2025, time.July, 9),
			setupMocks: func(mUsers *MockUserRepository, mLeaves *MockLeaveRepository, user *model.User, existing []model.LeaveRequest) {
				mUsers.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)
			},
			checkErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, errors.ErrUserNotFound)
			},
		},
		{
			name:    "insufficient balance",
			balance: 1,
			start:   day(2025, time.July, 7),
			end:     day(2025, time.July, 9),
			setupMocks: func(mUsers *MockUserRepository, mLeaves *MockLeaveRepository, user *model.User, existing []model.LeaveRequest) {
				mUsers.On("FindByID", mock.Anything, userID).Return(user, nil)
				mLeaves.On("ListActiveForUser", mock.Anything, userID).Return(existing, nil)
			},
			checkErr: func(t *testing.T, err error) {
				var balanceErr *errors.InsufficientBalanceError
				assert.ErrorAs(t, err, &balanceErr)
			},
		},
		{
			name:    "overlapping active request",
			balance: 20,
			start:   day(2025, time.July, 7),
			end:     day(2025, time.July, 9),
			existing: []model.LeaveRequest{
				{
					UserID:    userID,
					LeaveType: model.LeaveTypeCasual,
					StartDate: day(2025, time.July, 9),
					EndDate:   day(2025, time.July, 11),
					TotalDays: 3,
					Status:    model.LeaveStatusApproved,
				},
			},
			setupMocks: func(mUsers *MockUserRepository, mLeaves *MockLeaveRepository, user *model.User, existing []model.LeaveRequest) {
				mUsers.On("FindByID", mock.Anything, userID).Return(user, nil)
				mLeaves.On("ListActiveForUser", mock.Anything, userID).Return(existing, nil)
			},
			checkErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, errors.ErrOverlap)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mUsers := new(MockUserRepository)
			mLeaves := new(MockLeaveRepository)
			user := testUser(tt.balance)
			user.ID = userID
			tt.setupMocks(mUsers, mLeaves, user, tt.existing)

			svc := NewLeaveService(mUsers, mLeaves, newTestTx(mUsers, mLeaves), nil, nil)
			leave, err := svc.ApplyLeave(context.Background(), userID, model.LeaveTypeCasual, tt.start, tt.end, "family")

			if tt.expectCreated {
				assert.NoError(t, err)
				assert.NotNil(t, leave)
				assert.Equal(t, model.LeaveStatusPending, leave.Status)
				assert.Equal(t, userID, leave.UserID)
			} else {
				assert.Nil(t, leave)
				tt.checkErr(t, err)
			}

			mUsers.AssertExpectations(t)
			mLeaves.AssertExpectations(t)
		})
	}
}

func TestLeaveService_DecideLeave_Approve(t *testing.T) {
	owner := testUser(5)
	leave := &model.LeaveRequest{
		ID:        uuid.New(),
		UserID:    owner.ID,
		LeaveType: model.LeaveTypePaid,
		StartDate: day(2025, time.August, 4),
		EndDate:   day(2025, time.August, 8),
		TotalDays: 5,
		Status:    model.LeaveStatusPending,
		User:      owner,
	}

	mUsers := new(MockUserRepository)
	mLeaves := new(MockLeaveRepository)
	tx := newTestTx(mUsers, mLeaves)
	notifier := new(MockNotifier)

	mLeaves.On("FindByID", mock.Anything, leave.ID).Return(leave, nil)
	tx.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	mLeaves.On("FindByIDForUpdate", mock.Anything, leave.ID).Return(leave, nil)
	mUsers.On("FindByIDForUpdate", mock.Anything, owner.ID).Return(owner, nil)
	mUsers.On("UpdateLeaveBalance", mock.Anything, owner.ID, 0).Return(nil)
	mLeaves.On("Update", mock.Anything, mock.AnythingOfType("*model.LeaveRequest")).Return(nil)
	notifier.On("NotifyDecision", mock.AnythingOfType("*model.LeaveRequest"), owner, mock.AnythingOfType("*int")).Return()

	svc := NewLeaveService(mUsers, mLeaves, tx, nil, notifier)
	decided, err := svc.DecideLeave(context.Background(), leave.ID, model.LeaveStatusApproved)

	assert.NoError(t, err)
	assert.Equal(t, model.LeaveStatusApproved, decided.Status)

	mUsers.AssertExpectations(t)
	mLeaves.AssertExpectations(t)
	tx.AssertExpectations(t)
	notifier.AssertExpectations(t)

	// The notifier saw the fully decremented balance.
	remaining := notifier.Calls[0].Arguments.Get(2).(*int)
	assert.Equal(t, 0, *remaining)
}

func TestLeaveService_DecideLeave_ApproveInsufficientBalance(t *testing.T) {
	owner := testUser(2)
	leave := &model.LeaveRequest{
		ID:        uuid.New(),
		UserID:    owner.ID,
		LeaveType: model.LeaveTypeSick,
		StartDate: day(2025, time.August, 4),
		EndDate:   day(2025, time.August, 8),
		TotalDays: 5,
		Status:    model.LeaveStatusPending,
		User:      owner,
	}

	mUsers := new(MockUserRepository)
	mLeaves := new(MockLeaveRepository)
	tx := newTestTx(mUsers, mLeaves)

	mLeaves.On("FindByID", mock.Anything, leave.ID).Return(leave, nil)
	tx.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	mLeaves.On("FindByIDForUpdate", mock.Anything, leave.ID).Return(leave, nil)
	mUsers.On("FindByIDForUpdate", mock.Anything, owner.ID).Return(owner, nil)

	svc := NewLeaveService(mUsers, mLeaves, tx, nil, nil)
	decided, err := svc.DecideLeave(context.Background(), leave.ID, model.LeaveStatusApproved)

	assert.Nil(t, decided)
	var balanceErr *errors.InsufficientBalanceError
	assert.ErrorAs(t, err, &balanceErr)

	// No balance write, no status write.
	mUsers.AssertNotCalled(t, "UpdateLeaveBalance", mock.Anything, mock.Anything, mock.Anything)
	mLeaves.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestLeaveService_DecideLeave_ApproveStatusWriteFails(t *testing.T) {
	owner := testUser(5)
	leave := &model.LeaveRequest{
		ID:        uuid.New(),
		UserID:    owner.ID,
		LeaveType: model.LeaveTypePaid,
		StartDate: day(2025, time.August, 4),
		EndDate:   day(2025, time.August, 8),
		TotalDays: 5,
		Status:    model.LeaveStatusPending,
		User:      owner,
	}

	mUsers := new(MockUserRepository)
	mLeaves := new(MockLeaveRepository)
	tx := newTestTx(mUsers, mLeaves)
	notifier := new(MockNotifier)

	writeErr := stderrors.New("connection reset")
	mLeaves.On("FindByID", mock.Anything, leave.ID).Return(leave, nil)
	tx.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	mLeaves.On("FindByIDForUpdate", mock.Anything, leave.ID).Return(leave, nil)
	mUsers.On("FindByIDForUpdate", mock.Anything, owner.ID).Return(owner, nil)
	mUsers.On("UpdateLeaveBalance", mock.Anything, owner.ID, 0).Return(nil)
	mLeaves.On("Update", mock.Anything, mock.AnythingOfType("*model.LeaveRequest")).Return(writeErr)

	svc := NewLeaveService(mUsers, mLeaves, tx, nil, notifier)
	decided, err := svc.DecideLeave(context.Background(), leave.ID, model.LeaveStatusApproved)

	// The failure surfaces out of the transaction closure, so the balance
	// decrement rolls back with the status write instead of committing alone.
	assert.Nil(t, decided)
	assert.ErrorIs(t, err, writeErr)
	notifier.AssertNotCalled(t, "NotifyDecision", mock.Anything, mock.Anything, mock.Anything)

	// A retry against the untouched balance succeeds.
	mLeaves.ExpectedCalls = nil
	mLeaves.On("FindByID", mock.Anything, leave.ID).Return(leave, nil)
	mLeaves.On("FindByIDForUpdate", mock.Anything, leave.ID).Return(leave, nil)
	mLeaves.On("Update", mock.Anything, mock.AnythingOfType("*model.LeaveRequest")).Return(nil)
	notifier.On("NotifyDecision", mock.AnythingOfType("*model.LeaveRequest"), owner, mock.AnythingOfType("*int")).Return()

	decided, err = svc.DecideLeave(context.Background(), leave.ID, model.LeaveStatusApproved)

	assert.NoError(t, err)
	assert.Equal(t, model.LeaveStatusApproved, decided.Status)
}

func TestLeaveService_DecideLeave_Reject(t *testing.T) {
	owner := testUser(5)
	leave := &model.LeaveRequest{
		ID:        uuid.New(),
		UserID:    owner.ID,
		LeaveType: model.LeaveTypeCasual,
		StartDate: day(2025, time.August, 4),
		EndDate:   day(2025, time.August, 5),
		TotalDays: 2,
		Status:    model.LeaveStatusPending,
		User:      owner,
	}

	mUsers := new(MockUserRepository)
	mLeaves := new(MockLeaveRepository)
	tx := newTestTx(mUsers, mLeaves)
	notifier := new(MockNotifier)

	mLeaves.On("FindByID", mock.Anything, leave.ID).Return(leave, nil)
	mLeaves.On("Update", mock.Anything, mock.AnythingOfType("*model.LeaveRequest")).Return(nil)
	notifier.On("NotifyDecision", mock.AnythingOfType("*model.LeaveRequest"), owner, (*int)(nil)).Return()

	svc := NewLeaveService(mUsers, mLeaves, tx, nil, notifier)
	decided, err := svc.DecideLeave(context.Background(), leave.ID, model.LeaveStatusRejected)

	assert.NoError(t, err)
	assert.Equal(t, model.LeaveStatusRejected, decided.Status)

	// Rejection never touches the balance.
	tx.AssertNotCalled(t, "WithTransaction", mock.Anything, mock.Anything)
	mUsers.AssertNotCalled(t, "UpdateLeaveBalance", mock.Anything, mock.Anything, mock.Anything)
	notifier.AssertExpectations(t)
}

func TestLeaveService_DecideLeave_AlreadyDecided(t *testing.T) {
	owner := testUser(5)
	leave := &model.LeaveRequest{
		ID:        uuid.New(),
		UserID:    owner.ID,
		LeaveType: model.LeaveTypeCasual,
		StartDate: day(2025, time.August, 4),
		EndDate:   day(2025, time.August, 5),
		TotalDays: 2,
		Status:    model.LeaveStatusApproved,
		User:      owner,
	}

	mUsers := new(MockUserRepository)
	mLeaves := new(MockLeaveRepository)
	mLeaves.On("FindByID", mock.Anything, leave.ID).Return(leave, nil)

	svc := NewLeaveService(mUsers, mLeaves, newTestTx(mUsers, mLeaves), nil, nil)
	decided, err := svc.DecideLeave(context.Background(), leave.ID, model.LeaveStatusRejected)

	assert.Nil(t, decided)
	var stateErr *errors.InvalidStateError
	assert.ErrorAs(t, err, &stateErr)
	assert.Equal(t, model.LeaveStatusApproved, stateErr.Current)
}

func TestLeaveService_DecideLeave_InvalidDecision(t *testing.T) {
	mUsers := new(MockUserRepository)
	mLeaves := new(MockLeaveRepository)
	svc := NewLeaveService(mUsers, mLeaves, newTestTx(mUsers, mLeaves), nil, nil)

	decided, err := svc.DecideLeave(context.Background(), uuid.New(), model.LeaveStatusCancelled)

	assert.Nil(t, decided)
	var validationErr *errors.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestLeaveService_CancelLeave(t *testing.T) {
	owner := testUser(5)
	stranger := uuid.New()

	newLeave := func(status model.LeaveStatus) *model.LeaveRequest {
		return &model.LeaveRequest{
			ID:        uuid.New(),
			UserID:    owner.ID,
			LeaveType: model.LeaveTypeCasual,
			StartDate: day(2025, time.September, 1),
			EndDate:   day(2025, time.September, 2),
			TotalDays: 2,
			Status:    status,
		}
	}

	t.Run("owner cancels pending request", func(t *testing.T) {
		leave := newLeave(model.LeaveStatusPending)
		mUsers := new(MockUserRepository)
		mLeaves := new(MockLeaveRepository)
		mLeaves.On("FindByID", mock.Anything, leave.ID).Return(leave, nil)
		mUsers.On("FindByID", mock.Anything, owner.ID).Return(owner, nil)
		mLeaves.On("Update", mock.Anything, mock.AnythingOfType("*model.LeaveRequest")).Return(nil)

		svc := NewLeaveService(mUsers, mLeaves, newTestTx(mUsers, mLeaves), nil, nil)
		decided, err := svc.CancelLeave(context.Background(), leave.ID, owner.ID)

		assert.NoError(t, err)
		assert.Equal(t, model.LeaveStatusCancelled, decided.Status)
	})

	t.Run("non-owner is refused", func(t *testing.T) {
		leave := newLeave(model.LeaveStatusPending)
		mUsers := new(MockUserRepository)
		mLeaves := new(MockLeaveRepository)
		mLeaves.On("FindByID", mock.Anything, leave.ID).Return(leave, nil)

		svc := NewLeaveService(mUsers, mLeaves, newTestTx(mUsers, mLeaves), nil, nil)
		decided, err := svc.CancelLeave(context.Background(), leave.ID, stranger)

		assert.Nil(t, decided)
		assert.ErrorIs(t, err, errors.ErrNotOwner)
	})

	t.Run("approved request cannot be cancelled", func(t *testing.T) {
		leave := newLeave(model.LeaveStatusApproved)
		mUsers := new(MockUserRepository)
		mLeaves := new(MockLeaveRepository)
		mLeaves.On("FindByID", mock.Anything, leave.ID).Return(leave, nil)
		mUsers.On("FindByID", mock.Anything, owner.ID).Return(owner, nil)

		svc := NewLeaveService(mUsers, mLeaves, newTestTx(mUsers, mLeaves), nil, nil)
		decided, err := svc.CancelLeave(context.Background(), leave.ID, owner.ID)

		assert.Nil(t, decided)
		var stateErr *errors.InvalidStateError
		assert.ErrorAs(t, err, &stateErr)
	})
}
