package repositories

import (
	"context"
	"time"

	"shiftdesk/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// timeOffRepository implements TimeOffRepository interface
type timeOffRepository struct {
	db *gorm.DB
}

// NewTimeOffRepository creates a new time-off repository
func NewTimeOffRepository(db *gorm.DB) TimeOffRepository {
	return &timeOffRepository{db: db}
}

// Create creates a new time-off request
func (r *timeOffRepository) Create(ctx context.Context, timeOff *models.TimeOff) error {
	return r.db.WithContext(ctx).Create(timeOff).Error
}

// GetByID gets a time-off request by ID
func (r *timeOffRepository) GetByID(ctx context.Context, id uint) (*models.TimeOff, error) {
	var timeOff models.TimeOff
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&timeOff).Error
	if err != nil {
		return nil, err
	}
	return &timeOff, nil
}

// UpdateStatus sets the request's status and returns the updated record
func (r *timeOffRepository) UpdateStatus(ctx context.Context, id uint, status models.TimeOffStatus) (*models.TimeOff, error) {
	err := r.db.WithContext(ctx).
		Model(&models.TimeOff{}).
		Where("id = ?", id).
		Update("status", status).Error
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// FindApprovedCovering returns approved requests for the employee whose
// inclusive date range spans the given date
func (r *timeOffRepository) FindApprovedCovering(ctx context.Context, employeeID uint, date time.Time) ([]*models.TimeOff, error) {
	day := date.Format("2006-01-02")

	var timeOffs []*models.TimeOff
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("status = ?", models.TimeOffApproved).
		Where("start_date <= ? AND end_date >= ?", day, day).
		Find(&timeOffs).Error
	if err != nil {
		return nil, err
	}
	return timeOffs, nil
}

// ListApprovedByEmployeeIDs returns all approved requests for the given
// employees
func (r *timeOffRepository) ListApprovedByEmployeeIDs(ctx context.Context, employeeIDs []uint) ([]*models.TimeOff, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}

	var timeOffs []*models.TimeOff
	err := r.db.WithContext(ctx).
		Where("employee_id IN ?", employeeIDs).
		Where("status = ?", models.TimeOffApproved).
		Find(&timeOffs).Error
	if err != nil {
		return nil, err
	}
	return timeOffs, nil
}
