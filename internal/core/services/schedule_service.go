package services

import (
	"context"
	"time"

	"shiftdesk/internal/adapters/persistence/models"
	"shiftdesk/internal/adapters/persistence/repositories"
	"shiftdesk/internal/pkg/pagination"
)

// ScheduleService handles schedule listing
type ScheduleService struct {
	shiftRepo repositories.ShiftRepository
}

// NewScheduleService creates a new schedule service
func NewScheduleService(shiftRepo repositories.ShiftRepository) *ScheduleService {
	return &ScheduleService{shiftRepo: shiftRepo}
}

// DailySchedule represents one page of a day's shifts
type DailySchedule struct {
	Schedules  []*models.ShiftResponse `json:"schedules"`
	Pagination *pagination.Meta        `json:"pagination"`
}

// GetDailySchedule lists a day's shifts, optionally narrowed by
// location and team, sorted by start time
func (s *ScheduleService) GetDailySchedule(ctx context.Context, date time.Time, location, team string, params *pagination.Params) (*DailySchedule, error) {
	filter := repositories.ShiftFilter{
		Date:     &date,
		Location: location,
		Team:     team,
	}

	shifts, total, err := s.shiftRepo.List(ctx, filter, params.Offset, params.Limit)
	if err != nil {
		return nil, err
	}

	schedules := make([]*models.ShiftResponse, 0, len(shifts))
	for _, shift := range shifts {
		schedules = append(schedules, shift.ToResponse())
	}

	return &DailySchedule{
		Schedules:  schedules,
		Pagination: pagination.GetMeta(params, total),
	}, nil
}
