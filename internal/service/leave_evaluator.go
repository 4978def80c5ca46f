package service

import (
	"time"

	"minihr/internal/errors"
	"minihr/internal/model"
)

// LeaveRequestEvaluator decides whether a leave application may be created
// and whether a pending request may change status. It is a pure decision
// function over caller-supplied state: it never touches storage and never
// mutates its inputs, so it is safe to call concurrently.
type LeaveRequestEvaluator struct{}

// NewLeaveRequestEvaluator creates a new leave request evaluator.
func NewLeaveRequestEvaluator() *LeaveRequestEvaluator {
	return &LeaveRequestEvaluator{}
}

// EvaluateNewRequest validates a leave application against the user's current
// balance and existing active requests. On success it returns a Pending
// request with TotalDays derived from the inclusive date range; persisting it
// is the caller's job.
//
// Reversed ranges (end before start) are rejected outright rather than
// normalized by absolute value.
func (e *LeaveRequestEvaluator) EvaluateNewRequest(
	user *model.User,
	existing []model.LeaveRequest,
	startDate, endDate time.Time,
	leaveType model.LeaveType,
	reason string,
) (*model.LeaveRequest, error) {
	if leaveType == "" || startDate.IsZero() || endDate.IsZero() {
		return nil, errors.NewValidationError("leave type, start date and end date are required")
	}
	if !leaveType.Valid() {
		return nil, errors.NewValidationError("unknown leave type %q", leaveType)
	}

	start := model.TruncateToDay(startDate)
	end := model.TruncateToDay(endDate)
	if end.Before(start) {
		return nil, errors.NewValidationError("end date must be on or after start date")
	}

	totalDays := model.DaysInclusive(start, end)
	if totalDays < 1 {
		return nil, errors.NewValidationError("leave must span at least one day")
	}

	if user.LeaveBalance < totalDays {
		return nil, &errors.InsufficientBalanceError{
			Available: user.LeaveBalance,
			Requested: totalDays,
		}
	}

	for i := range existing {
		ex := &existing[i]
		if ex.Active() && ex.Overlaps(start, end) {
			return nil, errors.ErrOverlap
		}
	}

	return &model.LeaveRequest{
		UserID:    user.ID,
		LeaveType: leaveType,
		StartDate: start,
		EndDate:   end,
		TotalDays: totalDays,
		Status:    model.LeaveStatusPending,
		Reason:    reason,
	}, nil
}

// EvaluateStatusChange validates a Pending -> {Approved, Rejected, Cancelled}
// transition. For approvals the owner's balance is re-checked (it may have
// dropped since the request was filed) and the decremented balance is
// returned as a value; applying it to storage is the caller's job. For
// rejections and cancellations the balance passes through untouched.
//
// The input request is not mutated; the decided request is a copy.
func (e *LeaveRequestEvaluator) EvaluateStatusChange(
	leave *model.LeaveRequest,
	decision model.LeaveStatus,
	owner *model.User,
) (*model.LeaveRequest, int, error) {
	switch decision {
	case model.LeaveStatusApproved, model.LeaveStatusRejected, model.LeaveStatusCancelled:
	default:
		return nil, 0, errors.NewValidationError("invalid decision %q", decision)
	}

	if !leave.Status.CanTransitionTo(decision) {
		return nil, 0, &errors.InvalidStateError{Current: leave.Status}
	}

	decided := *leave
	decided.Status = decision

	if decision != model.LeaveStatusApproved {
		return &decided, owner.LeaveBalance, nil
	}

	if owner.LeaveBalance < leave.TotalDays {
		return nil, 0, &errors.InsufficientBalanceError{
			Available: owner.LeaveBalance,
			Requested: leave.TotalDays,
		}
	}
	return &decided, owner.LeaveBalance - leave.TotalDays, nil
}
