package models

import (
	"time"

	"shiftdesk/internal/pkg/timeutil"

	"gorm.io/gorm"
)

// ============================================================
// Enumerations
// ============================================================

// Role is the closed set of employee roles
type Role string

const (
	RoleManager        Role = "manager"
	RoleTeamLead       Role = "team-lead"
	RoleSeniorEngineer Role = "senior-engineer"
	RoleEngineer       Role = "engineer"
	RoleDevOps         Role = "devops"
	RoleHR             Role = "hr"
)

// AllRoles lists every valid role
func AllRoles() []Role {
	return []Role{
		RoleManager,
		RoleTeamLead,
		RoleSeniorEngineer,
		RoleEngineer,
		RoleDevOps,
		RoleHR,
	}
}

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	switch r {
	case RoleManager, RoleTeamLead, RoleSeniorEngineer, RoleEngineer, RoleDevOps, RoleHR:
		return true
	}
	return false
}

// EmploymentType is the closed set of employment types
type EmploymentType string

const (
	EmploymentFullTime EmploymentType = "full-time"
	EmploymentPartTime EmploymentType = "part-time"
)

// IsValid reports whether t is a known employment type
func (t EmploymentType) IsValid() bool {
	return t == EmploymentFullTime || t == EmploymentPartTime
}

// ShiftStatus is the lifecycle status of a shift
type ShiftStatus string

const (
	ShiftOpen      ShiftStatus = "open"
	ShiftClosed    ShiftStatus = "closed"
	ShiftCancelled ShiftStatus = "cancelled"
)

// IsValid reports whether s is a known shift status
func (s ShiftStatus) IsValid() bool {
	return s == ShiftOpen || s == ShiftClosed || s == ShiftCancelled
}

// TimeOffStatus is the lifecycle status of a time-off request
type TimeOffStatus string

const (
	TimeOffPending  TimeOffStatus = "pending"
	TimeOffApproved TimeOffStatus = "approved"
	TimeOffRejected TimeOffStatus = "rejected"
)

// ============================================================
// Employee
// ============================================================

// AvailabilityWindow is a recurring weekly interval during which an
// employee may be scheduled. DayOfWeek is 0 (Sunday) through 6.
type AvailabilityWindow struct {
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// Validate checks the window's day and time literals
func (w AvailabilityWindow) Validate() bool {
	if w.DayOfWeek < 0 || w.DayOfWeek > 6 {
		return false
	}
	return timeutil.IsValidHHMM(w.StartTime) && timeutil.IsValidHHMM(w.EndTime)
}

// Employee represents employees table
type Employee struct {
	ID             uint                 `gorm:"primaryKey" json:"id"`
	Email          string               `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password       string               `gorm:"size:255;not null" json:"-"`
	FirstName      string               `gorm:"size:50;not null" json:"first_name"`
	LastName       string               `gorm:"size:50;not null" json:"last_name"`
	Role           Role                 `gorm:"size:20;not null;index" json:"role"`
	EmploymentType EmploymentType       `gorm:"size:20;not null" json:"employment_type"`
	Skills         []string             `gorm:"serializer:json" json:"skills"`
	Location       string               `gorm:"size:100;not null;index" json:"location"`
	Team           string               `gorm:"size:100;not null;index" json:"team"`
	Availability   []AvailabilityWindow `gorm:"serializer:json" json:"availability"`
	CreatedAt      time.Time            `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time            `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt       `gorm:"index" json:"-"`
}

func (Employee) TableName() string {
	return "employees"
}

// FullName returns the employee's display name
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// EmployeeResponse DTO
type EmployeeResponse struct {
	ID             uint                 `json:"id"`
	Email          string               `json:"email"`
	Name           string               `json:"name"`
	Role           Role                 `json:"role"`
	EmploymentType EmploymentType       `json:"employment_type"`
	Skills         []string             `json:"skills"`
	Location       string               `json:"location"`
	Team           string               `json:"team"`
	Availability   []AvailabilityWindow `json:"availability,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
}

func (e *Employee) ToResponse() *EmployeeResponse {
	return &EmployeeResponse{
		ID:             e.ID,
		Email:          e.Email,
		Name:           e.FullName(),
		Role:           e.Role,
		EmploymentType: e.EmploymentType,
		Skills:         e.Skills,
		Location:       e.Location,
		Team:           e.Team,
		Availability:   e.Availability,
		CreatedAt:      e.CreatedAt,
	}
}

// ============================================================
// Shift
// ============================================================

// Shift represents shifts table. A shift's end time may wrap past
// midnight; duration accounts for that. Version guards concurrent
// assignment updates.
type Shift struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	Date              time.Time      `gorm:"type:date;not null;index:idx_shifts_date_start" json:"date"`
	StartTime         string         `gorm:"size:5;not null;index:idx_shifts_date_start" json:"start_time"`
	EndTime           string         `gorm:"size:5;not null" json:"end_time"`
	Roles             []Role         `gorm:"serializer:json" json:"roles"`
	SkillsRequired    []string       `gorm:"serializer:json" json:"skills_required"`
	Location          string         `gorm:"size:100;not null;index" json:"location"`
	Team              string         `gorm:"size:100;not null;index" json:"team"`
	Status            ShiftStatus    `gorm:"size:20;not null;default:'open';index" json:"status"`
	Version           int            `gorm:"not null;default:0" json:"-"`
	AssignedEmployees []Employee     `gorm:"many2many:shift_assignments" json:"assigned_employees,omitempty"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Shift) TableName() string {
	return "shifts"
}

// DurationHours returns the shift length in hours, adding 24h when the
// end time falls before the start time (overnight shift).
func (s *Shift) DurationHours() float64 {
	hours, err := timeutil.DurationHours(s.StartTime, s.EndTime)
	if err != nil {
		return 0
	}
	return hours
}

// IsAssigned reports whether the employee is already on the shift
func (s *Shift) IsAssigned(employeeID uint) bool {
	for _, e := range s.AssignedEmployees {
		if e.ID == employeeID {
			return true
		}
	}
	return false
}

// ShiftResponse DTO
type ShiftResponse struct {
	ID                uint                `json:"id"`
	Date              time.Time           `json:"date"`
	StartTime         string              `json:"start_time"`
	EndTime           string              `json:"end_time"`
	DurationHours     float64             `json:"duration_hours"`
	Roles             []Role              `json:"roles"`
	SkillsRequired    []string            `json:"skills_required"`
	Location          string              `json:"location"`
	Team              string              `json:"team"`
	Status            ShiftStatus         `json:"status"`
	AssignedEmployees []*EmployeeResponse `json:"assigned_employees"`
	CreatedAt         time.Time           `json:"created_at"`
}

func (s *Shift) ToResponse() *ShiftResponse {
	assigned := make([]*EmployeeResponse, 0, len(s.AssignedEmployees))
	for i := range s.AssignedEmployees {
		resp := s.AssignedEmployees[i].ToResponse()
		resp.Availability = nil
		assigned = append(assigned, resp)
	}

	return &ShiftResponse{
		ID:                s.ID,
		Date:              s.Date,
		StartTime:         s.StartTime,
		EndTime:           s.EndTime,
		DurationHours:     s.DurationHours(),
		Roles:             s.Roles,
		SkillsRequired:    s.SkillsRequired,
		Location:          s.Location,
		Team:              s.Team,
		Status:            s.Status,
		AssignedEmployees: assigned,
		CreatedAt:         s.CreatedAt,
	}
}

// ============================================================
// TimeOff
// ============================================================

// TimeOff represents time_offs table. Dates are inclusive and
// day-granular.
type TimeOff struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	EmployeeID uint          `gorm:"not null;index:idx_time_offs_emp_status" json:"employee_id"`
	StartDate  time.Time     `gorm:"type:date;not null" json:"start_date"`
	EndDate    time.Time     `gorm:"type:date;not null" json:"end_date"`
	Status     TimeOffStatus `gorm:"size:20;not null;default:'pending';index:idx_time_offs_emp_status" json:"status"`
	CreatedAt  time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
}

func (TimeOff) TableName() string {
	return "time_offs"
}

// Covers reports whether the request spans the given date (inclusive)
func (t *TimeOff) Covers(date time.Time) bool {
	d := timeutil.DateOnly(date)
	return !timeutil.DateOnly(t.StartDate).After(d) && !timeutil.DateOnly(t.EndDate).Before(d)
}

// ============================================================
// RefreshToken
// ============================================================

// RefreshToken represents refresh_tokens table. The unique index on
// EmployeeID enforces the single-slot-per-user model: each login or
// refresh overwrites the previous token.
type RefreshToken struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	EmployeeID uint      `gorm:"uniqueIndex;not null" json:"employee_id"`
	TokenHash  string    `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt  time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Employee{},
		&Shift{},
		&TimeOff{},
		&RefreshToken{},
	)
}
