package services

import (
	"context"
	"testing"
	"time"

	"shiftdesk/internal/adapters/persistence/models"
	"shiftdesk/internal/core/domain"
)

// mondayDate is a known Monday used by availability tests.
var mondayDate = time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

func eveningEngineer() *models.Employee {
	return &models.Employee{
		Email:          "bob.parttime@example.com",
		FirstName:      "Bob",
		LastName:       "Khan",
		Role:           models.RoleEngineer,
		EmploymentType: models.EmploymentPartTime,
		Skills:         []string{"javascript", "react", "testing"},
		Location:       "Chittagong Office",
		Team:           "Platform",
		Availability: []models.AvailabilityWindow{
			{DayOfWeek: 1, StartTime: "17:00", EndTime: "22:00"},
			{DayOfWeek: 3, StartTime: "17:00", EndTime: "22:00"},
			{DayOfWeek: 5, StartTime: "17:00", EndTime: "22:00"},
		},
	}
}

func eveningShift(date time.Time) *models.Shift {
	return &models.Shift{
		Date:           date,
		StartTime:      "18:00",
		EndTime:        "22:00",
		Roles:          []models.Role{models.RoleEngineer},
		SkillsRequired: []string{"javascript"},
		Location:       "Chittagong Office",
		Team:           "Platform",
		Status:         models.ShiftOpen,
	}
}

func newShiftServiceFixture(employees []*models.Employee, shifts []*models.Shift, timeOffs []*models.TimeOff) (*ShiftService, *stubShiftRepo) {
	shiftRepo := newStubShiftRepo(shifts...)
	employeeRepo := newStubEmployeeRepo(employees...)
	timeOffRepo := newStubTimeOffRepo(timeOffs...)
	return NewShiftService(shiftRepo, employeeRepo, timeOffRepo), shiftRepo
}

func TestAssignEmployee_Success(t *testing.T) {
	employee := eveningEngineer()
	shift := eveningShift(mondayDate)
	svc, _ := newShiftServiceFixture(
		[]*models.Employee{employee},
		[]*models.Shift{shift},
		nil,
	)

	result, err := svc.AssignEmployee(context.Background(), shift.ID, employee.ID)
	if err != nil {
		t.Fatalf("AssignEmployee failed: %v", err)
	}
	if !result.IsAssigned(employee.ID) {
		t.Errorf("Expected employee %d to be assigned", employee.ID)
	}
	if len(result.AssignedEmployees) != 1 {
		t.Errorf("Expected 1 assigned employee, got %d", len(result.AssignedEmployees))
	}
}

func TestAssignEmployee_Idempotent(t *testing.T) {
	employee := eveningEngineer()
	shift := eveningShift(mondayDate)
	svc, _ := newShiftServiceFixture(
		[]*models.Employee{employee},
		[]*models.Shift{shift},
		nil,
	)

	if _, err := svc.AssignEmployee(context.Background(), shift.ID, employee.ID); err != nil {
		t.Fatalf("First assignment failed: %v", err)
	}

	// Re-assigning the same employee is a no-op, not a duplicate row.
	result, err := svc.AssignEmployee(context.Background(), shift.ID, employee.ID)
	if err != nil {
		t.Fatalf("Re-assignment should be a no-op, got %v", err)
	}
	if len(result.AssignedEmployees) != 1 {
		t.Errorf("Expected 1 assigned employee after re-assign, got %d", len(result.AssignedEmployees))
	}
}

// staleShiftRepo simulates losing the version-guarded update to a
// concurrent writer.
type staleShiftRepo struct {
	*stubShiftRepo
}

func (r *staleShiftRepo) AddEmployee(context.Context, *models.Shift, *models.Employee) error {
	return domain.ErrStaleShift
}

func TestAssignEmployee_ConcurrentModification(t *testing.T) {
	employee := eveningEngineer()
	shift := eveningShift(mondayDate)
	shiftRepo := &staleShiftRepo{newStubShiftRepo(shift)}
	svc := NewShiftService(shiftRepo, newStubEmployeeRepo(employee), newStubTimeOffRepo())

	if _, err := svc.AssignEmployee(context.Background(), shift.ID, employee.ID); err != domain.ErrStaleShift {
		t.Errorf("Expected ErrStaleShift, got %v", err)
	}
}

func TestAssignEmployee_RoleMismatch(t *testing.T) {
	employee := eveningEngineer()
	shift := eveningShift(mondayDate)
	shift.Roles = []models.Role{models.RoleDevOps}
	svc, _ := newShiftServiceFixture(
		[]*models.Employee{employee},
		[]*models.Shift{shift},
		nil,
	)

	_, err := svc.AssignEmployee(context.Background(), shift.ID, employee.ID)
	conflict, ok := domain.AsConflictError(err)
	if !ok {
		t.Fatalf("Expected conflict error, got %v", err)
	}
	if conflict.Reason != domain.ConflictRoleMismatch {
		t.Errorf("Expected reason %q, got %q", domain.ConflictRoleMismatch, conflict.Reason)
	}
	if conflict.Message != "The employee can not work in this shift" {
		t.Errorf("Unexpected message: %q", conflict.Message)
	}
}

func TestAssignEmployee_MissingSkills(t *testing.T) {
	employee := eveningEngineer()
	shift := eveningShift(mondayDate)
	shift.SkillsRequired = []string{"javascript", "golang"}
	svc, _ := newShiftServiceFixture(
		[]*models.Employee{employee},
		[]*models.Shift{shift},
		nil,
	)

	_, err := svc.AssignEmployee(context.Background(), shift.ID, employee.ID)
	conflict, ok := domain.AsConflictError(err)
	if !ok {
		t.Fatalf("Expected conflict error, got %v", err)
	}
	if conflict.Reason != domain.ConflictMissingSkills {
		t.Errorf("Expected reason %q, got %q", domain.ConflictMissingSkills, conflict.Reason)
	}
	if conflict.Message != "The employee does not have the required skills" {
		t.Errorf("Unexpected message: %q", conflict.Message)
	}
}

func TestAssignEmployee_SkillMatchingIsNormalized(t *testing.T) {
	employee := eveningEngineer()
	employee.Skills = []string{" JavaScript ", "React"}
	shift := eveningShift(mondayDate)
	shift.SkillsRequired = []string{"javascript", "react"}
	svc, _ := newShiftServiceFixture(
		[]*models.Employee{employee},
		[]*models.Shift{shift},
		nil,
	)

	if _, err := svc.AssignEmployee(context.Background(), shift.ID, employee.ID); err != nil {
		t.Fatalf("Expected normalized skill match to succeed, got %v", err)
	}
}

func TestAssignEmployee_Unavailable(t *testing.T) {
	employee := eveningEngineer()
	// Tuesday: no availability window.
	tuesday := mondayDate.AddDate(0, 0, 1)
	shift := eveningShift(tuesday)
	svc, _ := newShiftServiceFixture(
		[]*models.Employee{employee},
		[]*models.Shift{shift},
		nil,
	)

	_, err := svc.AssignEmployee(context.Background(), shift.ID, employee.ID)
	conflict, ok := domain.AsConflictError(err)
	if !ok {
		t.Fatalf("Expected conflict error, got %v", err)
	}
	if conflict.Reason != domain.ConflictUnavailable {
		t.Errorf("Expected reason %q, got %q", domain.ConflictUnavailable, conflict.Reason)
	}
	if conflict.Message != "Employee is not available during the shift's time" {
		t.Errorf("Unexpected message: %q", conflict.Message)
	}
}

func TestAssignEmployee_ShiftOutsideWindow(t *testing.T) {
	employee := eveningEngineer()
	shift := eveningShift(mondayDate)
	// 16:00 start is before the 17:00 window opens.
	shift.StartTime = "16:00"
	shift.EndTime = "20:00"
	svc, _ := newShiftServiceFixture(
		[]*models.Employee{employee},
		[]*models.Shift{shift},
		nil,
	)

	_, err := svc.AssignEmployee(context.Background(), shift.ID, employee.ID)
	conflict, ok := domain.AsConflictError(err)
	if !ok {
		t.Fatalf("Expected conflict error, got %v", err)
	}
	if conflict.Reason != domain.ConflictUnavailable {
		t.Errorf("Expected reason %q, got %q", domain.ConflictUnavailable, conflict.Reason)
	}
}

func TestAssignEmployee_SameDayShiftConflict(t *testing.T) {
	employee := eveningEngineer()
	shift := eveningShift(mondayDate)

	// The employee already holds a non-overlapping shift the same day.
	// Hours don't matter, one shift per employee per day.
	existing := eveningShift(mondayDate)
	existing.StartTime = "17:00"
	existing.EndTime = "18:00"

	svc, shiftRepo := newShiftServiceFixture(
		[]*models.Employee{employee},
		[]*models.Shift{existing, shift},
		nil,
	)
	existingStored, _ := shiftRepo.GetByID(context.Background(), existing.ID)
	existingStored.AssignedEmployees = []models.Employee{*employee}

	_, err := svc.AssignEmployee(context.Background(), shift.ID, employee.ID)
	conflict, ok := domain.AsConflictError(err)
	if !ok {
		t.Fatalf("Expected conflict error, got %v", err)
	}
	if conflict.Reason != domain.ConflictShiftOverlap {
		t.Errorf("Expected reason %q, got %q", domain.ConflictShiftOverlap, conflict.Reason)
	}
	if conflict.Message != "Shift conflicts with the employee's other shift" {
		t.Errorf("Unexpected message: %q", conflict.Message)
	}
}

func TestAssignEmployee_TimeOffConflict(t *testing.T) {
	employee := eveningEngineer()
	shift := eveningShift(mondayDate)
	svc, _ := newShiftServiceFixture(
		[]*models.Employee{employee},
		[]*models.Shift{shift},
		[]*models.TimeOff{
			{
				EmployeeID: 1,
				StartDate:  mondayDate,
				EndDate:    mondayDate.AddDate(0, 0, 1),
				Status:     models.TimeOffApproved,
			},
		},
	)

	_, err := svc.AssignEmployee(context.Background(), shift.ID, employee.ID)
	conflict, ok := domain.AsConflictError(err)
	if !ok {
		t.Fatalf("Expected conflict error, got %v", err)
	}
	if conflict.Reason != domain.ConflictTimeOffOverlap {
		t.Errorf("Expected reason %q, got %q", domain.ConflictTimeOffOverlap, conflict.Reason)
	}
	if conflict.Message != "Shift conflicts with the employee's time off" {
		t.Errorf("Unexpected message: %q", conflict.Message)
	}
}

func TestAssignEmployee_PendingTimeOffDoesNotBlock(t *testing.T) {
	employee := eveningEngineer()
	shift := eveningShift(mondayDate)
	svc, _ := newShiftServiceFixture(
		[]*models.Employee{employee},
		[]*models.Shift{shift},
		[]*models.TimeOff{
			{
				EmployeeID: 1,
				StartDate:  mondayDate,
				EndDate:    mondayDate,
				Status:     models.TimeOffPending,
			},
		},
	)

	if _, err := svc.AssignEmployee(context.Background(), shift.ID, employee.ID); err != nil {
		t.Fatalf("Pending time off should not block assignment: %v", err)
	}
}

func TestAssignEmployee_NotFound(t *testing.T) {
	employee := eveningEngineer()
	shift := eveningShift(mondayDate)
	svc, _ := newShiftServiceFixture(
		[]*models.Employee{employee},
		[]*models.Shift{shift},
		nil,
	)

	if _, err := svc.AssignEmployee(context.Background(), 999, employee.ID); err != domain.ErrShiftNotFound {
		t.Errorf("Expected ErrShiftNotFound, got %v", err)
	}
	if _, err := svc.AssignEmployee(context.Background(), shift.ID, 999); err != domain.ErrEmployeeNotFound {
		t.Errorf("Expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestIsAvailable(t *testing.T) {
	windows := []models.AvailabilityWindow{
		{DayOfWeek: 1, StartTime: "17:00", EndTime: "22:00"},
	}

	tests := []struct {
		name      string
		date      time.Time
		startTime string
		endTime   string
		want      bool
	}{
		{"inside window", mondayDate, "18:00", "22:00", true},
		{"exact window", mondayDate, "17:00", "22:00", true},
		{"starts before window", mondayDate, "16:00", "20:00", false},
		{"ends after window", mondayDate, "18:00", "23:00", false},
		{"wrong weekday", mondayDate.AddDate(0, 0, 1), "18:00", "22:00", false},
		{"invalid time literal", mondayDate, "25:00", "26:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsAvailable(windows, tt.date, tt.startTime, tt.endTime)
			if got != tt.want {
				t.Errorf("IsAvailable(%s %s-%s) = %v, want %v", tt.date.Weekday(), tt.startTime, tt.endTime, got, tt.want)
			}
		})
	}
}

func TestIsAvailable_UnpaddedHours(t *testing.T) {
	windows := []models.AvailabilityWindow{
		{DayOfWeek: 1, StartTime: "8:00", EndTime: "17:00"},
	}
	if !IsAvailable(windows, mondayDate, "9:00", "12:00") {
		t.Error("Unpadded hours must compare by minutes, not lexicographically")
	}
}

func TestCreateShift(t *testing.T) {
	svc, shiftRepo := newShiftServiceFixture(nil, nil, nil)

	shift, err := svc.CreateShift(context.Background(), &CreateShiftInput{
		Date:           mondayDate.Add(13 * time.Hour), // time component discarded
		StartTime:      "09:00",
		EndTime:        "17:00",
		Roles:          []models.Role{models.RoleManager},
		SkillsRequired: []string{"scheduling"},
		Location:       "Dhaka Office",
		Team:           "Operations",
	})
	if err != nil {
		t.Fatalf("CreateShift failed: %v", err)
	}
	if shift.Status != models.ShiftOpen {
		t.Errorf("Expected status open, got %q", shift.Status)
	}
	if !shift.Date.Equal(mondayDate) {
		t.Errorf("Expected date truncated to %v, got %v", mondayDate, shift.Date)
	}

	stored, err := shiftRepo.GetByID(context.Background(), shift.ID)
	if err != nil {
		t.Fatalf("Shift not persisted: %v", err)
	}
	if stored.Location != "Dhaka Office" {
		t.Errorf("Unexpected stored location: %q", stored.Location)
	}
}
