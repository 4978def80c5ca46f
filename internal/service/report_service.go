package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"minihr/internal/cache"
	"minihr/internal/errors"
	"minihr/internal/model"
	"minihr/internal/repository"
)

const reportCacheTTL = 10 * time.Minute

// ReportService produces monthly attendance and leave reports.
type ReportService interface {
	MonthlyReport(ctx context.Context, year int, month time.Month) (*model.MonthlyReport, error)
}

type reportService struct {
	userRepo       repository.UserRepository
	attendanceRepo repository.AttendanceRepository
	leaveRepo      repository.LeaveRepository
	aggregator     *MonthlyReportAggregator
	cache          *cache.Client
}

// NewReportService creates a new report service.
func NewReportService(
	userRepo repository.UserRepository,
	attendanceRepo repository.AttendanceRepository,
	leaveRepo repository.LeaveRepository,
	cache *cache.Client,
) ReportService {
	return &reportService{
		userRepo:       userRepo,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		aggregator:     NewMonthlyReportAggregator(),
		cache:          cache,
	}
}

func (s *reportService) cacheKey(year int, month time.Month) string {
	return fmt.Sprintf("report:%04d-%02d", year, int(month))
}

// MonthlyReport builds the per-employee summary for one calendar month.
// Assembled reports are cached briefly; a month's history only changes when
// requests overlapping it are decided.
func (s *reportService) MonthlyReport(ctx context.Context, year int, month time.Month) (*model.MonthlyReport, error) {
	if month < time.January || month > time.December {
		return nil, errors.NewValidationError("month must be between 1 and 12")
	}
	if year < 2000 || year > 2100 {
		return nil, errors.NewValidationError("year %d out of range", year)
	}

	key := s.cacheKey(year, month)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached model.MonthlyReport
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	monthStart, monthEnd, monthDays := model.MonthWindow(year, month)
	fromDate := model.NewDate(monthStart)
	toDate := model.NewDate(monthEnd)

	employees, err := s.userRepo.ListByRole(ctx, model.RoleEmployee)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}

	report := &model.MonthlyReport{
		Month:     int(month),
		Year:      year,
		MonthName: month.String(),
		Reports:   make([]model.UserReport, 0, len(employees)),
	}

	for i := range employees {
		user := &employees[i]

		attendance, err := s.attendanceRepo.ListByUserInRange(ctx, user.ID, fromDate, toDate)
		if err != nil {
			return nil, fmt.Errorf("list attendance for %s: %w", user.ID, err)
		}

		leaves, err := s.leaveRepo.ListOverlappingRange(ctx, user.ID, monthStart, monthEnd)
		if err != nil {
			return nil, fmt.Errorf("list leaves for %s: %w", user.ID, err)
		}

		report.Reports = append(report.Reports, s.aggregator.BuildReport(user, attendance, leaves, monthDays))
	}

	if payload, err := json.Marshal(report); err == nil {
		_ = s.cache.Set(ctx, key, payload, reportCacheTTL)
	}
	return report, nil
}
