package handlers

import (
	"errors"

	"shiftdesk/internal/adapters/persistence/models"
	"shiftdesk/internal/core/domain"
	"shiftdesk/internal/core/services"
	"shiftdesk/internal/pkg/response"
	"shiftdesk/internal/pkg/timeutil"

	"github.com/gofiber/fiber/v2"
)

// ShiftHandler handles shift endpoints
type ShiftHandler struct {
	shiftService *services.ShiftService
}

// NewShiftHandler creates a new shift handler
func NewShiftHandler(shiftService *services.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftService: shiftService}
}

// CreateShiftRequest represents shift creation request body
type CreateShiftRequest struct {
	Date           string   `json:"date"`
	StartTime      string   `json:"startTime"`
	EndTime        string   `json:"endTime"`
	Roles          []string `json:"roles"`
	SkillsRequired []string `json:"skillsRequired"`
	Location       string   `json:"location"`
	Team           string   `json:"team"`
}

// Create handles shift creation
// @Summary Create shift
// @Description Create a new open shift
// @Tags Shifts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateShiftRequest true "Shift data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /shifts [post]
func (h *ShiftHandler) Create(c *fiber.Ctx) error {
	var req CreateShiftRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return response.BadRequest(c, "Date must be an ISO date (YYYY-MM-DD)")
	}
	if !timeutil.IsValidHHMM(req.StartTime) || !timeutil.IsValidHHMM(req.EndTime) {
		return response.BadRequest(c, "Start and end times must be in HH:MM format (24-hour)")
	}
	if len(req.Roles) == 0 {
		return response.BadRequest(c, "At least one required role is needed")
	}

	roles := make([]models.Role, 0, len(req.Roles))
	for _, raw := range req.Roles {
		role := models.Role(raw)
		if !role.IsValid() {
			return response.BadRequest(c, "Unknown role: "+raw)
		}
		roles = append(roles, role)
	}

	if req.Location == "" {
		return response.BadRequest(c, "Location is required")
	}
	if req.Team == "" {
		return response.BadRequest(c, "Team is required")
	}

	shift, err := h.shiftService.CreateShift(c.Context(), &services.CreateShiftInput{
		Date:           date,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Roles:          roles,
		SkillsRequired: req.SkillsRequired,
		Location:       req.Location,
		Team:           req.Team,
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to create shift")
	}

	return response.Created(c, "Shift created successfully", fiber.Map{
		"shift": shift.ToResponse(),
	})
}

// Assign handles assigning an employee to a shift
// @Summary Assign employee to shift
// @Description Run the conflict rules and add the employee to the shift
// @Tags Shifts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Shift ID"
// @Param employeeId path int true "Employee ID"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /shifts/{id}/assign/employee/{employeeId} [patch]
func (h *ShiftHandler) Assign(c *fiber.Ctx) error {
	shiftID, ok := parseIDParam(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid shift ID")
	}
	employeeID, ok := parseIDParam(c, "employeeId")
	if !ok {
		return response.BadRequest(c, "Invalid employee ID")
	}

	shift, err := h.shiftService.AssignEmployee(c.Context(), shiftID, employeeID)
	if err != nil {
		if conflict, ok := domain.AsConflictError(err); ok {
			return response.BadRequest(c, conflict.Message)
		}
		switch {
		case errors.Is(err, domain.ErrShiftNotFound):
			return response.NotFound(c, "Shift not found")
		case errors.Is(err, domain.ErrEmployeeNotFound):
			return response.NotFound(c, "Employee not found")
		case errors.Is(err, domain.ErrStaleShift):
			return response.BadRequest(c, "Shift was updated concurrently, please retry")
		default:
			return response.InternalServerError(c, "Failed to assign employee")
		}
	}

	return response.Created(c, "Employee assigned successfully", fiber.Map{
		"shift": shift.ToResponse(),
	})
}
