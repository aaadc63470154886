package handlers

import (
	"shiftdesk/internal/core/services"
	"shiftdesk/internal/pkg/pagination"
	"shiftdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ScheduleHandler handles schedule endpoints
type ScheduleHandler struct {
	scheduleService *services.ScheduleService
}

// NewScheduleHandler creates a new schedule handler
func NewScheduleHandler(scheduleService *services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// GetDaily handles daily schedule listing
// @Summary Daily schedule
// @Description List a day's shifts, optionally filtered by location and team
// @Tags Schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param location query string false "Location"
// @Param team query string false "Team"
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /schedule [get]
func (h *ScheduleHandler) GetDaily(c *fiber.Ctx) error {
	rawDate := c.Query("date")
	if rawDate == "" {
		return response.BadRequest(c, "Date is required")
	}

	date, err := parseDate(rawDate)
	if err != nil {
		return response.BadRequest(c, "Date must be an ISO date (YYYY-MM-DD)")
	}

	params := pagination.GetParams(c)

	schedule, err := h.scheduleService.GetDailySchedule(c.Context(), date, c.Query("location"), c.Query("team"), params)
	if err != nil {
		return response.InternalServerError(c, "Failed to load schedule")
	}

	return c.JSON(schedule)
}
