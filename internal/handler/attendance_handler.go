package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"minihr/internal/errors"
	"minihr/internal/model"
	"minihr/internal/service"
)

// AttendanceHandler handles attendance endpoints.
type AttendanceHandler struct {
	attendanceService service.AttendanceService
}

// NewAttendanceHandler creates a new attendance handler.
func NewAttendanceHandler(attendanceService service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// MarkAttendanceRequest represents a daily attendance mark.
type MarkAttendanceRequest struct {
	Status string `json:"status" validate:"required,oneof=Present Absent"`
}

// MarkAttendance godoc
// @Summary Mark today's attendance
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body MarkAttendanceRequest true "Attendance status"
// @Success 201 {object} model.Attendance
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /attendance [post]
func (h *AttendanceHandler) MarkAttendance(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req MarkAttendanceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	record, err := h.attendanceService.MarkAttendance(c.Request().Context(), claims.UserID, model.AttendanceStatus(req.Status))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, record)
}

// MyAttendance godoc
// @Summary List the authenticated user's attendance history
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Attendance
// @Failure 401 {object} errors.ErrorResponse
// @Router /attendance/my [get]
func (h *AttendanceHandler) MyAttendance(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	records, err := h.attendanceService.MyAttendance(c.Request().Context(), claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, records)
}

// ListAttendance godoc
// @Summary List all attendance records (admin)
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Attendance
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /attendance [get]
func (h *AttendanceHandler) ListAttendance(c echo.Context) error {
	records, err := h.attendanceService.ListAttendance(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, records)
}
