package services

import (
	"context"
	"errors"
	"log"
	"time"

	"shiftdesk/internal/adapters/persistence/models"
	"shiftdesk/internal/adapters/persistence/repositories"
	"shiftdesk/internal/core/domain"
	"shiftdesk/internal/pkg/timeutil"

	"gorm.io/gorm"
)

// ErrTimeOffFinalized is returned when approving or rejecting a request
// that already left the pending state. Approval is final.
var ErrTimeOffFinalized = errors.New("time off request has already been finalized")

// TimeOffService handles time-off request business logic
type TimeOffService struct {
	timeOffRepo  repositories.TimeOffRepository
	employeeRepo repositories.EmployeeRepository
}

// NewTimeOffService creates a new time-off service
func NewTimeOffService(timeOffRepo repositories.TimeOffRepository, employeeRepo repositories.EmployeeRepository) *TimeOffService {
	return &TimeOffService{
		timeOffRepo:  timeOffRepo,
		employeeRepo: employeeRepo,
	}
}

// CreateTimeOffInput represents a new time-off request
type CreateTimeOffInput struct {
	EmployeeID uint      `json:"employee_id"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
}

// Create files a pending time-off request for the employee
func (s *TimeOffService) Create(ctx context.Context, input *CreateTimeOffInput) (*models.TimeOff, error) {
	start := timeutil.DateOnly(input.StartDate)
	end := timeutil.DateOnly(input.EndDate)
	if end.Before(start) {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.employeeRepo.GetByID(ctx, input.EmployeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}

	timeOff := &models.TimeOff{
		EmployeeID: input.EmployeeID,
		StartDate:  start,
		EndDate:    end,
		Status:     models.TimeOffPending,
	}

	if err := s.timeOffRepo.Create(ctx, timeOff); err != nil {
		return nil, err
	}

	log.Printf("✅ Time off requested: employee %d, %s to %s", timeOff.EmployeeID,
		start.Format("2006-01-02"), end.Format("2006-01-02"))
	return timeOff, nil
}

// Approve transitions a pending request to approved
func (s *TimeOffService) Approve(ctx context.Context, id uint) (*models.TimeOff, error) {
	return s.finalize(ctx, id, models.TimeOffApproved)
}

// Reject transitions a pending request to rejected
func (s *TimeOffService) Reject(ctx context.Context, id uint) (*models.TimeOff, error) {
	return s.finalize(ctx, id, models.TimeOffRejected)
}

func (s *TimeOffService) finalize(ctx context.Context, id uint, status models.TimeOffStatus) (*models.TimeOff, error) {
	timeOff, err := s.timeOffRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTimeOffNotFound
		}
		return nil, err
	}

	if timeOff.Status != models.TimeOffPending {
		return nil, ErrTimeOffFinalized
	}

	updated, err := s.timeOffRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Time off %d %s", id, status)
	return updated, nil
}
