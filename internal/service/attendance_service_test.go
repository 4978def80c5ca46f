package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"minihr/internal/errors"
	"minihr/internal/model"
)

func TestAttendanceService_MarkAttendance(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name      string
		status    model.AttendanceStatus
		setupMock func(*MockAttendanceRepository)
		checkErr  func(*testing.T, error)
	}{
		{
			name:   "first mark of the day succeeds",
			status: model.AttendancePresent,
			setupMock: func(m *MockAttendanceRepository) {
				m.On("FindByUserAndDate", mock.Anything, userID, model.Today()).Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Attendance")).Return(nil)
			},
		},
		{
			name:   "absent is a valid status",
			status: model.AttendanceAbsent,
			setupMock: func(m *MockAttendanceRepository) {
				m.On("FindByUserAndDate", mock.Anything, userID, model.Today()).Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Attendance")).Return(nil)
			},
		},
		{
			name:   "second mark of the day is rejected",
			status: model.AttendancePresent,
			setupMock: func(m *MockAttendanceRepository) {
				m.On("FindByUserAndDate", mock.Anything, userID, model.Today()).
					Return(&model.Attendance{UserID: userID, Date: model.Today(), Status: model.AttendancePresent}, nil)
			},
			checkErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, errors.ErrDuplicateAttendance)
			},
		},
		{
			name:      "unknown status is rejected",
			status:    "Late",
			setupMock: func(m *MockAttendanceRepository) {},
			checkErr: func(t *testing.T, err error) {
				var validationErr *errors.ValidationError
				assert.ErrorAs(t, err, &validationErr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockAttendanceRepository)
			tt.setupMock(mockRepo)

			svc := NewAttendanceService(mockRepo)
			record, err := svc.MarkAttendance(context.Background(), userID, tt.status)

			if tt.checkErr != nil {
				assert.Nil(t, record)
				tt.checkErr(t, err)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, record)
				assert.Equal(t, userID, record.UserID)
				assert.Equal(t, model.Today(), record.Date)
				assert.Equal(t, tt.status, record.Status)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
