package services

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"shiftdesk/internal/adapters/persistence/models"
	"shiftdesk/internal/adapters/persistence/repositories"
	"shiftdesk/internal/core/domain"
	"shiftdesk/internal/pkg/pagination"
	"shiftdesk/internal/pkg/timeutil"

	"gorm.io/gorm"
)

// AnalyticsService computes coverage, workforce analysis, and workload
// reports over the shift data
type AnalyticsService struct {
	shiftRepo    repositories.ShiftRepository
	employeeRepo repositories.EmployeeRepository
	timeOffRepo  repositories.TimeOffRepository
	weekStart    int
}

// NewAnalyticsService creates a new analytics service. weekStart is the
// weekday (0=Sunday .. 6) that opens a workload week.
func NewAnalyticsService(
	shiftRepo repositories.ShiftRepository,
	employeeRepo repositories.EmployeeRepository,
	timeOffRepo repositories.TimeOffRepository,
	weekStart int,
) *AnalyticsService {
	return &AnalyticsService{
		shiftRepo:    shiftRepo,
		employeeRepo: employeeRepo,
		timeOffRepo:  timeOffRepo,
		weekStart:    weekStart,
	}
}

// round1 rounds to one decimal place; every reported percentage uses it
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// ============================================================
// Coverage
// ============================================================

// CoverageFilter narrows the coverage report
type CoverageFilter struct {
	ShiftID  *uint
	Date     *time.Time
	Location string
	Team     string
}

// AssignedEmployeeSummary is the per-shift view of an assigned employee
type AssignedEmployeeSummary struct {
	ID   uint        `json:"id"`
	Name string      `json:"name"`
	Role models.Role `json:"role"`
}

// ShiftCoverage reports how much of one shift's role requirements are
// filled
type ShiftCoverage struct {
	ShiftID            uint                      `json:"shift_id"`
	Date               time.Time                 `json:"date"`
	StartTime          string                    `json:"start_time"`
	EndTime            string                    `json:"end_time"`
	Location           string                    `json:"location"`
	Team               string                    `json:"team"`
	Status             models.ShiftStatus        `json:"status"`
	Roles              []models.Role             `json:"roles"`
	RequiredRolesCount int                       `json:"required_roles_count"`
	AssignedRolesCount int                       `json:"assigned_roles_count"`
	MissingRolesCount  int                       `json:"missing_roles_count"`
	CoveragePercentage float64                   `json:"coverage_percentage"`
	MissingRoles       []models.Role             `json:"missing_roles"`
	AssignedEmployees  []AssignedEmployeeSummary `json:"assigned_employees"`
}

// CoverageReport is one page of per-shift coverage rows
type CoverageReport struct {
	Shifts     []*ShiftCoverage `json:"shifts"`
	Pagination *pagination.Meta `json:"pagination"`
}

// Coverage computes role coverage per shift. Two employees holding the
// same role collapse into one filled slot: coverage is over the set of
// distinct assigned roles, not the employee count.
func (s *AnalyticsService) Coverage(ctx context.Context, filter CoverageFilter, params *pagination.Params) (*CoverageReport, error) {
	repoFilter := repositories.ShiftFilter{
		ID:       filter.ShiftID,
		Date:     filter.Date,
		Location: filter.Location,
		Team:     filter.Team,
	}

	shifts, total, err := s.shiftRepo.List(ctx, repoFilter, params.Offset, params.Limit)
	if err != nil {
		return nil, err
	}

	rows := make([]*ShiftCoverage, 0, len(shifts))
	for _, shift := range shifts {
		rows = append(rows, coverageForShift(shift))
	}

	return &CoverageReport{
		Shifts:     rows,
		Pagination: pagination.GetMeta(params, total),
	}, nil
}

func coverageForShift(shift *models.Shift) *ShiftCoverage {
	assignedRoles := make(map[models.Role]struct{})
	assigned := make([]AssignedEmployeeSummary, 0, len(shift.AssignedEmployees))
	for i := range shift.AssignedEmployees {
		emp := &shift.AssignedEmployees[i]
		assignedRoles[emp.Role] = struct{}{}
		assigned = append(assigned, AssignedEmployeeSummary{
			ID:   emp.ID,
			Name: emp.FullName(),
			Role: emp.Role,
		})
	}

	missing := make([]models.Role, 0)
	for _, role := range shift.Roles {
		if _, ok := assignedRoles[role]; !ok {
			missing = append(missing, role)
		}
	}

	required := len(shift.Roles)
	coverage := 100.0
	if required > 0 {
		coverage = round1(float64(len(assignedRoles)) / float64(required) * 100)
	}

	return &ShiftCoverage{
		ShiftID:            shift.ID,
		Date:               shift.Date,
		StartTime:          shift.StartTime,
		EndTime:            shift.EndTime,
		Location:           shift.Location,
		Team:               shift.Team,
		Status:             shift.Status,
		Roles:              shift.Roles,
		RequiredRolesCount: required,
		AssignedRolesCount: len(assignedRoles),
		MissingRolesCount:  len(missing),
		CoveragePercentage: coverage,
		MissingRoles:       missing,
		AssignedEmployees:  assigned,
	}
}

// ============================================================
// Workforce analysis
// ============================================================

// HourlyStats is one (location, role, hour) bucket of the analysis
type HourlyStats struct {
	Hour               int     `json:"hour"`
	TotalShifts        int     `json:"total_shifts"`
	CoveredShifts      int     `json:"covered_shifts"`
	ConflictedShifts   int     `json:"conflicted_shifts"`
	UncoveredShifts    int     `json:"uncovered_shifts"`
	CoveragePercentage float64 `json:"coverage_percentage"`
	ConflictPercentage float64 `json:"conflict_percentage"`
	UtilizationScore   float64 `json:"utilization_score"`
}

// RoleAnalysis aggregates a (location, role) group across hour buckets
type RoleAnalysis struct {
	Location           string        `json:"location"`
	Role               models.Role   `json:"role"`
	TotalShifts        int           `json:"total_shifts"`
	TotalCovered       int           `json:"total_covered"`
	TotalConflicts     int           `json:"total_conflicts"`
	TotalUncovered     int           `json:"total_uncovered"`
	OverallCoverage    float64       `json:"overall_coverage"`
	OverallConflicts   float64       `json:"overall_conflicts"`
	OverallUtilization float64       `json:"overall_utilization"`
	HourlyBreakdown    []HourlyStats `json:"hourly_breakdown"`
}

// AnalysisSummary sums every group and recomputes the percentages over
// the grand totals
type AnalysisSummary struct {
	TotalShifts        int     `json:"total_shifts"`
	TotalCovered       int     `json:"total_covered"`
	TotalConflicts     int     `json:"total_conflicts"`
	TotalUncovered     int     `json:"total_uncovered"`
	OverallCoverage    float64 `json:"overall_coverage"`
	OverallConflicts   float64 `json:"overall_conflicts"`
	OverallUtilization float64 `json:"overall_utilization"`
}

// AnalysisReport is the workforce analysis response
type AnalysisReport struct {
	Summary      AnalysisSummary `json:"summary"`
	RoleAnalysis []*RoleAnalysis `json:"role_analysis"`
}

type analysisBucketKey struct {
	location string
	role     models.Role
	hour     int
}

type analysisBucket struct {
	total      int
	covered    int
	conflicted int
	uncovered  int
}

// Analyze expands each matched shift into (hour block x required role)
// rows, buckets them by (location, role, hour), and rolls the buckets
// up per (location, role) with a grand summary.
//
// Hour blocks cover [startHour, endHour] inclusive by integer hour. A
// shift wrapping past midnight has endHour < startHour and contributes
// no blocks.
func (s *AnalyticsService) Analyze(ctx context.Context, date *time.Time, location string) (*AnalysisReport, error) {
	filter := repositories.ShiftFilter{
		Date:     date,
		Location: location,
	}

	shifts, _, err := s.shiftRepo.List(ctx, filter, 0, 0)
	if err != nil {
		return nil, err
	}

	timeOffs, err := s.loadApprovedTimeOffs(ctx, shifts)
	if err != nil {
		return nil, err
	}

	buckets := make(map[analysisBucketKey]*analysisBucket)
	for _, shift := range shifts {
		startHour, err := timeutil.Hour(shift.StartTime)
		if err != nil {
			continue
		}
		endHour, err := timeutil.Hour(shift.EndTime)
		if err != nil {
			continue
		}

		hasConflict := shiftHasTimeOffConflict(shift, timeOffs)

		for hour := startHour; hour <= endHour; hour++ {
			for _, role := range shift.Roles {
				key := analysisBucketKey{location: shift.Location, role: role, hour: hour}
				bucket := buckets[key]
				if bucket == nil {
					bucket = &analysisBucket{}
					buckets[key] = bucket
				}

				bucket.total++
				roleCovered := roleCompatibleAny(shift.AssignedEmployees, role)
				if roleCovered && !hasConflict {
					bucket.covered++
				}
				if hasConflict {
					bucket.conflicted++
				}
				if !roleCovered {
					bucket.uncovered++
				}
			}
		}
	}

	groups := regroupAnalysis(buckets)

	var summary AnalysisSummary
	for _, group := range groups {
		summary.TotalShifts += group.TotalShifts
		summary.TotalCovered += group.TotalCovered
		summary.TotalConflicts += group.TotalConflicts
		summary.TotalUncovered += group.TotalUncovered
	}
	if summary.TotalShifts > 0 {
		total := float64(summary.TotalShifts)
		summary.OverallCoverage = round1(float64(summary.TotalCovered) / total * 100)
		summary.OverallConflicts = round1(float64(summary.TotalConflicts) / total * 100)
		summary.OverallUtilization = round1(float64(summary.TotalCovered-summary.TotalConflicts) / total * 100)
	}

	return &AnalysisReport{
		Summary:      summary,
		RoleAnalysis: groups,
	}, nil
}

// loadApprovedTimeOffs fetches all approved time-off rows touching any
// assigned employee of the given shifts, keyed by employee ID
func (s *AnalyticsService) loadApprovedTimeOffs(ctx context.Context, shifts []*models.Shift) (map[uint][]*models.TimeOff, error) {
	idSet := make(map[uint]struct{})
	for _, shift := range shifts {
		for i := range shift.AssignedEmployees {
			idSet[shift.AssignedEmployees[i].ID] = struct{}{}
		}
	}

	ids := make([]uint, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	rows, err := s.timeOffRepo.ListApprovedByEmployeeIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byEmployee := make(map[uint][]*models.TimeOff, len(rows))
	for _, row := range rows {
		byEmployee[row.EmployeeID] = append(byEmployee[row.EmployeeID], row)
	}
	return byEmployee, nil
}

// shiftHasTimeOffConflict reports whether any assigned employee has
// approved time off covering the shift's date
func shiftHasTimeOffConflict(shift *models.Shift, timeOffs map[uint][]*models.TimeOff) bool {
	for i := range shift.AssignedEmployees {
		for _, timeOff := range timeOffs[shift.AssignedEmployees[i].ID] {
			if timeOff.Covers(shift.Date) {
				return true
			}
		}
	}
	return false
}

func roleCompatibleAny(employees []models.Employee, role models.Role) bool {
	for i := range employees {
		if employees[i].Role == role {
			return true
		}
	}
	return false
}

// regroupAnalysis folds the per-hour buckets into (location, role)
// groups with an hour-sorted breakdown, sorted by location then role
func regroupAnalysis(buckets map[analysisBucketKey]*analysisBucket) []*RoleAnalysis {
	type groupKey struct {
		location string
		role     models.Role
	}

	groups := make(map[groupKey]*RoleAnalysis)
	hourKeys := make(map[groupKey][]analysisBucketKey)

	for key := range buckets {
		gk := groupKey{location: key.location, role: key.role}
		if groups[gk] == nil {
			groups[gk] = &RoleAnalysis{Location: key.location, Role: key.role}
		}
		hourKeys[gk] = append(hourKeys[gk], key)
	}

	result := make([]*RoleAnalysis, 0, len(groups))
	for gk, group := range groups {
		keys := hourKeys[gk]
		sort.Slice(keys, func(i, j int) bool { return keys[i].hour < keys[j].hour })

		for _, key := range keys {
			bucket := buckets[key]
			total := float64(bucket.total)

			group.TotalShifts += bucket.total
			group.TotalCovered += bucket.covered
			group.TotalConflicts += bucket.conflicted
			group.TotalUncovered += bucket.uncovered
			group.HourlyBreakdown = append(group.HourlyBreakdown, HourlyStats{
				Hour:               key.hour,
				TotalShifts:        bucket.total,
				CoveredShifts:      bucket.covered,
				ConflictedShifts:   bucket.conflicted,
				UncoveredShifts:    bucket.uncovered,
				CoveragePercentage: round1(float64(bucket.covered) / total * 100),
				ConflictPercentage: round1(float64(bucket.conflicted) / total * 100),
				UtilizationScore:   round1(float64(bucket.covered-bucket.conflicted) / total * 100),
			})
		}

		if group.TotalShifts > 0 {
			total := float64(group.TotalShifts)
			group.OverallCoverage = round1(float64(group.TotalCovered) / total * 100)
			group.OverallConflicts = round1(float64(group.TotalConflicts) / total * 100)
			group.OverallUtilization = round1(float64(group.TotalCovered-group.TotalConflicts) / total * 100)
		}

		result = append(result, group)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Location != result[j].Location {
			return result[i].Location < result[j].Location
		}
		return result[i].Role < result[j].Role
	})

	return result
}

// ============================================================
// Workload
// ============================================================

// WorkloadPeriod echoes the requested date range
type WorkloadPeriod struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// WeeklyWorkload is one scheduling week's hours for an employee
type WeeklyWorkload struct {
	WeekStart time.Time               `json:"week_start"`
	Hours     float64                 `json:"hours"`
	Shifts    []*models.ShiftResponse `json:"shifts"`
}

// WorkloadReport summarizes an employee's assigned hours over a range
type WorkloadReport struct {
	Employee    *AssignedEmployeeSummary `json:"employee"`
	Period      WorkloadPeriod           `json:"period"`
	TotalHours  float64                  `json:"total_hours"`
	TotalShifts int                      `json:"total_shifts"`
	Shifts      []*models.ShiftResponse  `json:"shifts"`
	WeeklyData  []*WeeklyWorkload        `json:"weekly_data"`
}

// Workload sums the employee's open and closed shifts over the
// inclusive date range and groups them into weeks. A start date after
// the end date yields an empty report rather than whatever order the
// store would return.
func (s *AnalyticsService) Workload(ctx context.Context, employeeID uint, startDate, endDate time.Time) (*WorkloadReport, error) {
	employee, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}

	start := timeutil.DateOnly(startDate)
	end := timeutil.DateOnly(endDate)

	var shifts []*models.Shift
	if !start.After(end) {
		shifts, err = s.shiftRepo.FindByEmployeeAndDateRange(ctx, employeeID, start, end,
			[]models.ShiftStatus{models.ShiftOpen, models.ShiftClosed})
		if err != nil {
			return nil, err
		}
	}

	report := &WorkloadReport{
		Employee: &AssignedEmployeeSummary{
			ID:   employee.ID,
			Name: employee.FullName(),
			Role: employee.Role,
		},
		Period:      WorkloadPeriod{StartDate: start, EndDate: end},
		TotalShifts: len(shifts),
		Shifts:      make([]*models.ShiftResponse, 0, len(shifts)),
		WeeklyData:  make([]*WeeklyWorkload, 0),
	}

	weeks := make(map[time.Time]*WeeklyWorkload)
	weekOrder := make([]time.Time, 0)

	for _, shift := range shifts {
		hours := shift.DurationHours()
		report.TotalHours += hours
		report.Shifts = append(report.Shifts, shift.ToResponse())

		weekStart := timeutil.WeekStart(shift.Date, s.weekStart)
		week := weeks[weekStart]
		if week == nil {
			week = &WeeklyWorkload{WeekStart: weekStart}
			weeks[weekStart] = week
			weekOrder = append(weekOrder, weekStart)
		}
		week.Hours += hours
		week.Shifts = append(week.Shifts, shift.ToResponse())
	}

	// Shifts arrive date-sorted, so week order follows insertion.
	for _, weekStart := range weekOrder {
		report.WeeklyData = append(report.WeeklyData, weeks[weekStart])
	}

	return report, nil
}
