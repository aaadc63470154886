package repositories

import (
	"context"
	"time"

	"shiftdesk/internal/adapters/persistence/models"
	"shiftdesk/internal/core/domain"

	"gorm.io/gorm"
)

// shiftRepository implements ShiftRepository interface
type shiftRepository struct {
	db *gorm.DB
}

// NewShiftRepository creates a new shift repository
func NewShiftRepository(db *gorm.DB) ShiftRepository {
	return &shiftRepository{db: db}
}

// Create creates a new shift
func (r *shiftRepository) Create(ctx context.Context, shift *models.Shift) error {
	return r.db.WithContext(ctx).Create(shift).Error
}

// GetByID gets a shift by ID with assigned employees
func (r *shiftRepository) GetByID(ctx context.Context, id uint) (*models.Shift, error) {
	var shift models.Shift
	err := r.db.WithContext(ctx).
		Preload("AssignedEmployees").
		Where("id = ?", id).
		First(&shift).Error
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

// List lists shifts matching the filter, sorted by date then start
// time, with pagination
func (r *shiftRepository) List(ctx context.Context, filter ShiftFilter, offset, limit int) ([]*models.Shift, int64, error) {
	var shifts []*models.Shift
	var total int64

	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.Shift{}), filter)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = r.applyFilter(r.db.WithContext(ctx), filter).
		Preload("AssignedEmployees").
		Order("date ASC, start_time ASC")
	if limit > 0 {
		query = query.Offset(offset).Limit(limit)
	}
	if err := query.Find(&shifts).Error; err != nil {
		return nil, 0, err
	}

	return shifts, total, nil
}

func (r *shiftRepository) applyFilter(query *gorm.DB, filter ShiftFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("shifts.id = ?", *filter.ID)
	}
	if filter.Date != nil {
		query = query.Where("shifts.date = ?", filter.Date.Format("2006-01-02"))
	}
	if filter.Location != "" {
		query = query.Where("shifts.location = ?", filter.Location)
	}
	if filter.Team != "" {
		query = query.Where("shifts.team = ?", filter.Team)
	}
	return query
}

// FindOpenByEmployeeAndDate returns open shifts on the given calendar
// date that already include the employee. Used by the
// one-shift-per-employee-per-day rule.
func (r *shiftRepository) FindOpenByEmployeeAndDate(ctx context.Context, employeeID uint, date time.Time) ([]*models.Shift, error) {
	var shifts []*models.Shift
	err := r.db.WithContext(ctx).
		Joins("JOIN shift_assignments ON shift_assignments.shift_id = shifts.id").
		Where("shift_assignments.employee_id = ?", employeeID).
		Where("shifts.date = ?", date.Format("2006-01-02")).
		Where("shifts.status = ?", models.ShiftOpen).
		Find(&shifts).Error
	if err != nil {
		return nil, err
	}
	return shifts, nil
}

// FindByEmployeeAndDateRange returns the employee's shifts within the
// inclusive date range, restricted to the given statuses, sorted by
// date then start time
func (r *shiftRepository) FindByEmployeeAndDateRange(ctx context.Context, employeeID uint, start, end time.Time, statuses []models.ShiftStatus) ([]*models.Shift, error) {
	var shifts []*models.Shift
	err := r.db.WithContext(ctx).
		Joins("JOIN shift_assignments ON shift_assignments.shift_id = shifts.id").
		Where("shift_assignments.employee_id = ?", employeeID).
		Where("shifts.date BETWEEN ? AND ?", start.Format("2006-01-02"), end.Format("2006-01-02")).
		Where("shifts.status IN ?", statuses).
		Order("shifts.date ASC, shifts.start_time ASC").
		Find(&shifts).Error
	if err != nil {
		return nil, err
	}
	return shifts, nil
}

// AddEmployee appends the employee to the shift's assignment set. The
// shift's version is checked and bumped in the same transaction; a lost
// race returns ErrStaleShift instead of silently double-writing.
func (r *shiftRepository) AddEmployee(ctx context.Context, shift *models.Shift, employee *models.Employee) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Shift{}).
			Where("id = ? AND version = ?", shift.ID, shift.Version).
			Update("version", shift.Version+1)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrStaleShift
		}

		if err := tx.Model(shift).Association("AssignedEmployees").Append(employee); err != nil {
			return err
		}

		shift.Version++
		return nil
	})
}
