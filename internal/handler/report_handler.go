package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"minihr/internal/errors"
	"minihr/internal/service"
)

// ReportHandler handles monthly report endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new report handler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// MonthlyReport godoc
// @Summary Monthly attendance and leave report for all employees (admin)
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param month query int false "Month (1-12), defaults to current"
// @Param year query int false "Year, defaults to current"
// @Success 200 {object} model.MonthlyReport
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /reports/monthly [get]
func (h *ReportHandler) MonthlyReport(c echo.Context) error {
	now := time.Now().UTC()
	year := now.Year()
	month := now.Month()

	if v := c.QueryParam("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "invalid year",
				Code:  "INVALID_QUERY",
			})
		}
		year = parsed
	}
	if v := c.QueryParam("month"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "invalid month",
				Code:  "INVALID_QUERY",
			})
		}
		month = time.Month(parsed)
	}

	report, err := h.reportService.MonthlyReport(c.Request().Context(), year, month)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, report)
}
