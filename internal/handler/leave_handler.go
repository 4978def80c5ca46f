package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"minihr/internal/errors"
	"minihr/internal/model"
	"minihr/internal/service"
)

// LeaveHandler handles leave request endpoints.
type LeaveHandler struct {
	leaveService service.LeaveService
}

// NewLeaveHandler creates a new leave handler.
func NewLeaveHandler(leaveService service.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaveService: leaveService}
}

// ApplyLeaveRequest represents a leave application.
type ApplyLeaveRequest struct {
	LeaveType string `json:"leave_type" validate:"required,oneof=Casual Sick Paid"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
	Reason    string `json:"reason"`
}

// DecideLeaveRequest represents an admin decision.
type DecideLeaveRequest struct {
	Status string `json:"status" validate:"required,oneof=Approved Rejected"`
}

// ApplyLeave godoc
// @Summary Apply for leave
// @Tags leaves
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ApplyLeaveRequest true "Leave application"
// @Success 201 {object} model.LeaveRequest
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /leaves [post]
func (h *LeaveHandler) ApplyLeave(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req ApplyLeaveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	startDate, err := parseDay(req.StartDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid start_date, expected YYYY-MM-DD",
			Code:  "INVALID_DATE",
		})
	}
	endDate, err := parseDay(req.EndDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid end_date, expected YYYY-MM-DD",
			Code:  "INVALID_DATE",
		})
	}

	leave, err := h.leaveService.ApplyLeave(c.Request().Context(), claims.UserID, model.LeaveType(req.LeaveType), startDate, endDate, req.Reason)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, leave)
}

// MyLeaves godoc
// @Summary List the authenticated user's leave requests
// @Tags leaves
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.LeaveRequest
// @Failure 401 {object} errors.ErrorResponse
// @Router /leaves/my [get]
func (h *LeaveHandler) MyLeaves(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	leaves, err := h.leaveService.MyLeaves(c.Request().Context(), claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, leaves)
}

// ListLeaves godoc
// @Summary List all leave requests (admin)
// @Tags leaves
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.LeaveRequest
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /leaves [get]
func (h *LeaveHandler) ListLeaves(c echo.Context) error {
	leaves, err := h.leaveService.ListLeaves(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, leaves)
}

// DecideLeave godoc
// @Summary Approve or reject a pending leave request (admin)
// @Tags leaves
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Leave request ID"
// @Param request body DecideLeaveRequest true "Decision"
// @Success 200 {object} model.LeaveRequest
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /leaves/{id} [put]
func (h *LeaveHandler) DecideLeave(c echo.Context) error {
	leaveID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid leave id",
			Code:  "INVALID_UUID",
		})
	}

	var req DecideLeaveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	leave, err := h.leaveService.DecideLeave(c.Request().Context(), leaveID, model.LeaveStatus(req.Status))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, leave)
}

// CancelLeave godoc
// @Summary Cancel the authenticated user's pending leave request
// @Tags leaves
// @Produce json
// @Security BearerAuth
// @Param id path string true "Leave request ID"
// @Success 200 {object} model.LeaveRequest
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /leaves/{id}/cancel [put]
func (h *LeaveHandler) CancelLeave(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	leaveID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid leave id",
			Code:  "INVALID_UUID",
		})
	}

	leave, err := h.leaveService.CancelLeave(c.Request().Context(), leaveID, claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, leave)
}

// parseDay accepts plain calendar dates and full RFC3339 timestamps, both
// normalized to the day.
func parseDay(s string) (time.Time, error) {
	if d, err := model.ParseDate(s); err == nil {
		return d.Time(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return model.TruncateToDay(t), nil
}
