package service

import (
	"github.com/shopspring/decimal"

	"minihr/internal/model"
)

// MonthlyReportAggregator computes per-user attendance and leave summaries
// for a calendar month. Pure over its inputs: the caller filters records to
// the month window and the aggregator only counts.
type MonthlyReportAggregator struct{}

// NewMonthlyReportAggregator creates a new report aggregator.
func NewMonthlyReportAggregator() *MonthlyReportAggregator {
	return &MonthlyReportAggregator{}
}

// BuildReport summarizes one user's month.
//
// attendanceInMonth must hold the user's records dated inside the month;
// leavesOverlappingMonth must hold every request, regardless of status, whose
// range intersects it. monthDays is the number of calendar days in the month.
func (a *MonthlyReportAggregator) BuildReport(
	user *model.User,
	attendanceInMonth []model.Attendance,
	leavesOverlappingMonth []model.LeaveRequest,
	monthDays int,
) model.UserReport {
	present := 0
	absent := 0
	for i := range attendanceInMonth {
		switch attendanceInMonth[i].Status {
		case model.AttendancePresent:
			present++
		case model.AttendanceAbsent:
			absent++
		}
	}
	recorded := present + absent

	// Guard the empty month; zero statistics, not an error.
	percentage := 0.0
	if recorded > 0 {
		percentage = decimal.NewFromInt(int64(present)).
			Div(decimal.NewFromInt(int64(recorded))).
			Mul(decimal.NewFromInt(100)).
			Round(2).
			InexactFloat64()
	}

	leaves := model.LeaveSummary{Total: len(leavesOverlappingMonth)}
	for i := range leavesOverlappingMonth {
		leave := &leavesOverlappingMonth[i]

		// Type counts span every status, cancelled included.
		switch leave.LeaveType {
		case model.LeaveTypeCasual:
			leaves.Casual++
		case model.LeaveTypeSick:
			leaves.Sick++
		case model.LeaveTypePaid:
			leaves.Paid++
		}

		switch leave.Status {
		case model.LeaveStatusApproved:
			leaves.Approved++
			leaves.TotalDays += leave.TotalDays
		case model.LeaveStatusPending:
			leaves.Pending++
		case model.LeaveStatusRejected:
			leaves.Rejected++
		}
	}

	return model.UserReport{
		UserID:   user.ID,
		FullName: user.FullName,
		Email:    user.Email,
		Attendance: model.AttendanceSummary{
			TotalDays:    monthDays,
			RecordedDays: recorded,
			Present:      present,
			Absent:       absent,
			Percentage:   percentage,
		},
		Leaves: leaves,
	}
}
