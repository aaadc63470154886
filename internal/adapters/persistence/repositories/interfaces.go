package repositories

import (
	"context"
	"time"

	"shiftdesk/internal/adapters/persistence/models"
)

// ShiftFilter narrows shift listings. Nil / zero fields are ignored.
type ShiftFilter struct {
	ID       *uint
	Date     *time.Time
	Location string
	Team     string
}

// EmployeeRepository defines employee data access
type EmployeeRepository interface {
	Create(ctx context.Context, employee *models.Employee) error
	GetByID(ctx context.Context, id uint) (*models.Employee, error)
	GetByEmail(ctx context.Context, email string) (*models.Employee, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// ShiftRepository defines shift data access
type ShiftRepository interface {
	Create(ctx context.Context, shift *models.Shift) error
	GetByID(ctx context.Context, id uint) (*models.Shift, error)
	List(ctx context.Context, filter ShiftFilter, offset, limit int) ([]*models.Shift, int64, error)
	FindOpenByEmployeeAndDate(ctx context.Context, employeeID uint, date time.Time) ([]*models.Shift, error)
	FindByEmployeeAndDateRange(ctx context.Context, employeeID uint, start, end time.Time, statuses []models.ShiftStatus) ([]*models.Shift, error)
	AddEmployee(ctx context.Context, shift *models.Shift, employee *models.Employee) error
}

// TimeOffRepository defines time-off data access
type TimeOffRepository interface {
	Create(ctx context.Context, timeOff *models.TimeOff) error
	GetByID(ctx context.Context, id uint) (*models.TimeOff, error)
	UpdateStatus(ctx context.Context, id uint, status models.TimeOffStatus) (*models.TimeOff, error)
	FindApprovedCovering(ctx context.Context, employeeID uint, date time.Time) ([]*models.TimeOff, error)
	ListApprovedByEmployeeIDs(ctx context.Context, employeeIDs []uint) ([]*models.TimeOff, error)
}

// RefreshTokenRepository defines refresh token data access. Each
// employee holds at most one token row.
type RefreshTokenRepository interface {
	Upsert(ctx context.Context, employeeID uint, tokenHash string, expiresAt time.Time) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	DeleteByTokenHash(ctx context.Context, tokenHash string) error
	DeleteByEmployeeID(ctx context.Context, employeeID uint) error
	DeleteExpired(ctx context.Context) (int64, error)
}
