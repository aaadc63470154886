package handlers

import (
	"errors"
	"strconv"
	"time"

	"shiftdesk/internal/core/domain"
	"shiftdesk/internal/core/services"
	"shiftdesk/internal/pkg/pagination"
	"shiftdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AnalyticsHandler handles reporting endpoints
type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// Coverage handles the shift coverage report
// @Summary Shift coverage
// @Description Per-shift role coverage percentages with optional filters
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Param id query int false "Shift ID"
// @Param date query string false "Shift date (YYYY-MM-DD)"
// @Param location query string false "Location"
// @Param team query string false "Team"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} services.CoverageReport
// @Failure 400 {object} response.Response
// @Router /analytics/coverage [get]
func (h *AnalyticsHandler) Coverage(c *fiber.Ctx) error {
	var filter services.CoverageFilter

	if raw := c.Query("id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || id == 0 {
			return response.BadRequest(c, "Invalid shift ID")
		}
		shiftID := uint(id)
		filter.ShiftID = &shiftID
	}
	if raw := c.Query("date"); raw != "" {
		date, err := parseDate(raw)
		if err != nil {
			return response.BadRequest(c, "Date must be an ISO date (YYYY-MM-DD)")
		}
		filter.Date = &date
	}
	filter.Location = c.Query("location")
	filter.Team = c.Query("team")

	params := pagination.GetParams(c)

	report, err := h.analyticsService.Coverage(c.Context(), filter, params)
	if err != nil {
		return response.InternalServerError(c, "Failed to compute shift coverage")
	}

	return c.JSON(report)
}

// Analyze handles the hourly staffing analysis report
// @Summary Staffing analysis
// @Description Hour-by-hour staffing gaps grouped by location and role
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Param date query string false "Shift date (YYYY-MM-DD)"
// @Param location query string false "Location"
// @Success 200 {object} services.AnalysisReport
// @Failure 400 {object} response.Response
// @Router /analytics/analyze [get]
func (h *AnalyticsHandler) Analyze(c *fiber.Ctx) error {
	var date *time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			return response.BadRequest(c, "Date must be an ISO date (YYYY-MM-DD)")
		}
		date = &parsed
	}

	report, err := h.analyticsService.Analyze(c.Context(), date, c.Query("location"))
	if err != nil {
		return response.InternalServerError(c, "Failed to analyze staffing")
	}

	return c.JSON(report)
}

// Workload handles the per-employee workload report
// @Summary Employee workload
// @Description Total and weekly hours for one employee over a date range
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Param employeeId path int true "Employee ID"
// @Param startDate query string true "Range start (YYYY-MM-DD)"
// @Param endDate query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} services.WorkloadReport
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /analytics/workload/{employeeId} [get]
func (h *AnalyticsHandler) Workload(c *fiber.Ctx) error {
	employeeID, ok := parseIDParam(c, "employeeId")
	if !ok {
		return response.BadRequest(c, "Invalid employee ID")
	}

	rawStart := c.Query("startDate")
	rawEnd := c.Query("endDate")
	if rawStart == "" || rawEnd == "" {
		return response.BadRequest(c, "Start date and end date are required")
	}

	startDate, err := parseDate(rawStart)
	if err != nil {
		return response.BadRequest(c, "Start date must be an ISO date (YYYY-MM-DD)")
	}
	endDate, err := parseDate(rawEnd)
	if err != nil {
		return response.BadRequest(c, "End date must be an ISO date (YYYY-MM-DD)")
	}

	report, err := h.analyticsService.Workload(c.Context(), employeeID, startDate, endDate)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			return response.NotFound(c, "Employee not found")
		}
		return response.InternalServerError(c, "Failed to compute workload")
	}

	return c.JSON(report)
}
