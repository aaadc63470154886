package handlers

import (
	"context"
	"errors"

	"shiftdesk/internal/adapters/persistence/models"
	"shiftdesk/internal/core/domain"
	"shiftdesk/internal/core/services"
	"shiftdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// TimeOffHandler handles time-off endpoints
type TimeOffHandler struct {
	timeOffService *services.TimeOffService
}

// NewTimeOffHandler creates a new time-off handler
func NewTimeOffHandler(timeOffService *services.TimeOffService) *TimeOffHandler {
	return &TimeOffHandler{timeOffService: timeOffService}
}

// CreateTimeOffRequest represents time-off creation request body
type CreateTimeOffRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// Create handles filing a time-off request for the authenticated employee
// @Summary Request time off
// @Description File a pending time-off request
// @Tags TimeOff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateTimeOffRequest true "Date range (inclusive)"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /time-off [post]
func (h *TimeOffHandler) Create(c *fiber.Ctx) error {
	employeeID, ok := c.Locals("employeeID").(uint)
	if !ok {
		return response.Unauthorized(c, "You are not authorized to access the route.")
	}

	var req CreateTimeOffRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return response.BadRequest(c, "Start date must be an ISO date (YYYY-MM-DD)")
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return response.BadRequest(c, "End date must be an ISO date (YYYY-MM-DD)")
	}

	timeOff, err := h.timeOffService.Create(c.Context(), &services.CreateTimeOffInput{
		EmployeeID: employeeID,
		StartDate:  startDate,
		EndDate:    endDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "End date must not be before start date")
		case errors.Is(err, domain.ErrEmployeeNotFound):
			return response.NotFound(c, "Employee not found")
		default:
			return response.InternalServerError(c, "Failed to create time off request")
		}
	}

	return response.Created(c, "Time off requested successfully", fiber.Map{
		"time_off": timeOff,
	})
}

// Approve handles approving a pending request
// @Summary Approve time off
// @Description Transition a pending request to approved
// @Tags TimeOff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Time off ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /time-off/{id}/approve [patch]
func (h *TimeOffHandler) Approve(c *fiber.Ctx) error {
	return h.finalize(c, h.timeOffService.Approve, "Time off approved")
}

// Reject handles rejecting a pending request
// @Summary Reject time off
// @Description Transition a pending request to rejected
// @Tags TimeOff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Time off ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /time-off/{id}/reject [patch]
func (h *TimeOffHandler) Reject(c *fiber.Ctx) error {
	return h.finalize(c, h.timeOffService.Reject, "Time off rejected")
}

func (h *TimeOffHandler) finalize(c *fiber.Ctx, action func(ctx context.Context, id uint) (*models.TimeOff, error), message string) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid ID")
	}

	timeOff, err := action(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTimeOffNotFound):
			return response.NotFound(c, "Time off request not found")
		case errors.Is(err, services.ErrTimeOffFinalized):
			return response.BadRequest(c, "Time off request has already been finalized")
		default:
			return response.InternalServerError(c, "Failed to update time off request")
		}
	}

	return response.Success(c, message, fiber.Map{
		"time_off": timeOff,
	})
}
