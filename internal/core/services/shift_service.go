package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"shiftdesk/internal/adapters/persistence/models"
	"shiftdesk/internal/adapters/persistence/repositories"
	"shiftdesk/internal/core/domain"
	"shiftdesk/internal/pkg/timeutil"

	"gorm.io/gorm"
)

// ShiftService handles shift creation and assignment business logic
type ShiftService struct {
	shiftRepo    repositories.ShiftRepository
	employeeRepo repositories.EmployeeRepository
	timeOffRepo  repositories.TimeOffRepository
}

// NewShiftService creates a new shift service
func NewShiftService(
	shiftRepo repositories.ShiftRepository,
	employeeRepo repositories.EmployeeRepository,
	timeOffRepo repositories.TimeOffRepository,
) *ShiftService {
	return &ShiftService{
		shiftRepo:    shiftRepo,
		employeeRepo: employeeRepo,
		timeOffRepo:  timeOffRepo,
	}
}

// CreateShiftInput represents shift creation input
type CreateShiftInput struct {
	Date           time.Time       `json:"date"`
	StartTime      string          `json:"startTime"`
	EndTime        string          `json:"endTime"`
	Roles          []models.Role   `json:"roles"`
	SkillsRequired []string        `json:"skillsRequired"`
	Location       string          `json:"location"`
	Team           string          `json:"team"`
}

// CreateShift creates a new open shift
func (s *ShiftService) CreateShift(ctx context.Context, input *CreateShiftInput) (*models.Shift, error) {
	shift := &models.Shift{
		Date:           timeutil.DateOnly(input.Date),
		StartTime:      input.StartTime,
		EndTime:        input.EndTime,
		Roles:          input.Roles,
		SkillsRequired: input.SkillsRequired,
		Location:       input.Location,
		Team:           input.Team,
		Status:         models.ShiftOpen,
	}

	if err := s.shiftRepo.Create(ctx, shift); err != nil {
		return nil, err
	}

	log.Printf("✅ Shift created: %s %s-%s @ %s", shift.Date.Format("2006-01-02"), shift.StartTime, shift.EndTime, shift.Location)
	return shift, nil
}

// GetShift loads a shift by ID
func (s *ShiftService) GetShift(ctx context.Context, shiftID uint) (*models.Shift, error) {
	shift, err := s.shiftRepo.GetByID(ctx, shiftID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrShiftNotFound
		}
		return nil, err
	}
	return shift, nil
}

// AssignEmployee assigns an employee to a shift after running every
// conflict rule. Re-assigning an already assigned employee is a no-op.
func (s *ShiftService) AssignEmployee(ctx context.Context, shiftID, employeeID uint) (*models.Shift, error) {
	shift, err := s.GetShift(ctx, shiftID)
	if err != nil {
		return nil, err
	}

	employee, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}

	if err := s.checkConflicts(ctx, shift, employee); err != nil {
		return nil, err
	}

	if shift.IsAssigned(employee.ID) {
		return shift, nil
	}

	// AddEmployee also appends to shift.AssignedEmployees in memory.
	if err := s.shiftRepo.AddEmployee(ctx, shift, employee); err != nil {
		return nil, err
	}

	log.Printf("✅ Employee %d assigned to shift %d", employee.ID, shift.ID)
	return shift, nil
}

// checkConflicts runs the assignment rules in order, stopping at the
// first violation. The order fixes which error a caller sees when
// several rules would fail.
func (s *ShiftService) checkConflicts(ctx context.Context, shift *models.Shift, employee *models.Employee) error {
	// 1. Role compatibility
	if !roleCompatible(shift.Roles, employee.Role) {
		return domain.NewConflictError(domain.ConflictRoleMismatch,
			"The employee can not work in this shift")
	}

	// 2. Skill compatibility
	if !hasRequiredSkills(shift.SkillsRequired, employee.Skills) {
		return domain.NewConflictError(domain.ConflictMissingSkills,
			"The employee does not have the required skills")
	}

	// 3. Weekly availability
	if !IsAvailable(employee.Availability, shift.Date, shift.StartTime, shift.EndTime) {
		return domain.NewConflictError(domain.ConflictUnavailable,
			"Employee is not available during the shift's time")
	}

	// 4. One shift per employee per day: any other open shift on the
	// same calendar date conflicts, whether or not the hours overlap.
	sameDay, err := s.shiftRepo.FindOpenByEmployeeAndDate(ctx, employee.ID, shift.Date)
	if err != nil {
		return err
	}
	overlapping := 0
	for _, other := range sameDay {
		if other.ID != shift.ID {
			overlapping++
		}
	}
	if overlapping > 0 {
		return domain.NewConflictError(domain.ConflictShiftOverlap,
			"Shift conflicts with the employee's other shift")
	}

	// 5. Approved time off covering the shift date
	timeOffs, err := s.timeOffRepo.FindApprovedCovering(ctx, employee.ID, shift.Date)
	if err != nil {
		return err
	}
	if len(timeOffs) > 0 {
		return domain.NewConflictError(domain.ConflictTimeOffOverlap,
			"Shift conflicts with the employee's time off")
	}

	return nil
}

// roleCompatible reports whether the employee's role is one of the
// shift's required roles
func roleCompatible(required []models.Role, role models.Role) bool {
	for _, r := range required {
		if r == role {
			return true
		}
	}
	return false
}

// hasRequiredSkills reports whether every required skill is present in
// the employee's skill set. Skills are compared trimmed and
// case-insensitively.
func hasRequiredSkills(required, owned []string) bool {
	if len(required) == 0 {
		return true
	}

	set := make(map[string]struct{}, len(owned))
	for _, skill := range owned {
		set[normalizeSkill(skill)] = struct{}{}
	}

	for _, skill := range required {
		if _, ok := set[normalizeSkill(skill)]; !ok {
			return false
		}
	}
	return true
}

func normalizeSkill(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsAvailable reports whether some availability window on the shift's
// weekday fully contains the shift's time range. Times are compared as
// minutes since midnight; a window cannot express a span that crosses
// midnight, so overnight shifts only match windows ending at 23:59 or
// earlier start times on the same day.
func IsAvailable(windows []models.AvailabilityWindow, date time.Time, startTime, endTime string) bool {
	shiftDay := int(timeutil.DateOnly(date).Weekday())

	shiftStart, err := timeutil.MinutesOfDay(startTime)
	if err != nil {
		return false
	}
	shiftEnd, err := timeutil.MinutesOfDay(endTime)
	if err != nil {
		return false
	}

	for _, window := range windows {
		if window.DayOfWeek != shiftDay {
			continue
		}

		windowStart, err := timeutil.MinutesOfDay(window.StartTime)
		if err != nil {
			continue
		}
		windowEnd, err := timeutil.MinutesOfDay(window.EndTime)
		if err != nil {
			continue
		}

		if windowStart <= shiftStart && windowEnd >= shiftEnd {
			return true
		}
	}
	return false
}
