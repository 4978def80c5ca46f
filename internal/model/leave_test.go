package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLeaveStatus_CanTransitionTo(t *testing.T) {
	decisions := []LeaveStatus{LeaveStatusApproved, LeaveStatusRejected, LeaveStatusCancelled}

	for _, next := range decisions {
		assert.True(t, LeaveStatusPending.CanTransitionTo(next), "Pending -> %s", next)
	}
	assert.False(t, LeaveStatusPending.CanTransitionTo(LeaveStatusPending))

	for _, terminal := range decisions {
		for _, next := range []LeaveStatus{LeaveStatusPending, LeaveStatusApproved, LeaveStatusRejected, LeaveStatusCancelled} {
			assert.False(t, terminal.CanTransitionTo(next), "%s -> %s", terminal, next)
		}
		assert.True(t, terminal.Terminal())
	}
	assert.False(t, LeaveStatusPending.Terminal())
}

func TestLeaveRequest_Overlaps(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2025, 4, d, 0, 0, 0, 0, time.UTC)
	}
	existing := &LeaveRequest{StartDate: day(10), EndDate: day(14)}

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected bool
	}{
		{name: "identical range", start: day(10), end: day(14), expected: true},
		{name: "partial overlap at tail", start: day(13), end: day(20), expected: true},
		{name: "partial overlap at head", start: day(5), end: day(10), expected: true},
		{name: "fully contained", start: day(11), end: day(12), expected: true},
		{name: "fully containing", start: day(1), end: day(30), expected: true},
		{name: "adjacent before", start: day(5), end: day(9), expected: false},
		{name: "adjacent after", start: day(15), end: day(20), expected: false},
		{
			name:     "time of day does not create overlap",
			start:    time.Date(2025, 4, 15, 0, 0, 1, 0, time.UTC),
			end:      day(20),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, existing.Overlaps(tt.start, tt.end))
		})
	}
}

func TestLeaveRequest_Active(t *testing.T) {
	assert.True(t, (&LeaveRequest{Status: LeaveStatusPending}).Active())
	assert.True(t, (&LeaveRequest{Status: LeaveStatusApproved}).Active())
	assert.False(t, (&LeaveRequest{Status: LeaveStatusRejected}).Active())
	assert.False(t, (&LeaveRequest{Status: LeaveStatusCancelled}).Active())
}
