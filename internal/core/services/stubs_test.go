package services

import (
	"context"
	"time"

	"shiftdesk/internal/adapters/persistence/models"
	"shiftdesk/internal/adapters/persistence/repositories"
	"shiftdesk/internal/pkg/timeutil"

	"gorm.io/gorm"
)

// In-memory repository stubs. Each stores rows in a slice and assigns
// sequential IDs on create.

type stubEmployeeRepo struct {
	employees []*models.Employee
	nextID    uint
}

func newStubEmployeeRepo(employees ...*models.Employee) *stubEmployeeRepo {
	repo := &stubEmployeeRepo{nextID: 1}
	for _, e := range employees {
		_ = repo.Create(context.Background(), e)
	}
	return repo
}

func (r *stubEmployeeRepo) Create(_ context.Context, employee *models.Employee) error {
	if employee.ID == 0 {
		employee.ID = r.nextID
		r.nextID++
	} else if employee.ID >= r.nextID {
		r.nextID = employee.ID + 1
	}
	r.employees = append(r.employees, employee)
	return nil
}

func (r *stubEmployeeRepo) GetByID(_ context.Context, id uint) (*models.Employee, error) {
	for _, e := range r.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubEmployeeRepo) GetByEmail(_ context.Context, email string) (*models.Employee, error) {
	for _, e := range r.employees {
		if e.Email == email {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubEmployeeRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	return err == nil, err
}

type stubShiftRepo struct {
	shifts []*models.Shift
	nextID uint
}

func newStubShiftRepo(shifts ...*models.Shift) *stubShiftRepo {
	repo := &stubShiftRepo{nextID: 1}
	for _, s := range shifts {
		_ = repo.Create(context.Background(), s)
	}
	return repo
}

func (r *stubShiftRepo) Create(_ context.Context, shift *models.Shift) error {
	if shift.ID == 0 {
		shift.ID = r.nextID
		r.nextID++
	} else if shift.ID >= r.nextID {
		r.nextID = shift.ID + 1
	}
	if shift.Status == "" {
		shift.Status = models.ShiftOpen
	}
	r.shifts = append(r.shifts, shift)
	return nil
}

func (r *stubShiftRepo) GetByID(_ context.Context, id uint) (*models.Shift, error) {
	for _, s := range r.shifts {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubShiftRepo) List(_ context.Context, filter repositories.ShiftFilter, offset, limit int) ([]*models.Shift, int64, error) {
	matched := make([]*models.Shift, 0, len(r.shifts))
	for _, s := range r.shifts {
		if filter.ID != nil && s.ID != *filter.ID {
			continue
		}
		if filter.Date != nil && !timeutil.SameDate(s.Date, *filter.Date) {
			continue
		}
		if filter.Location != "" && s.Location != filter.Location {
			continue
		}
		if filter.Team != "" && s.Team != filter.Team {
			continue
		}
		matched = append(matched, s)
	}

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := len(matched)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return matched[offset:end], total, nil
}

func (r *stubShiftRepo) FindOpenByEmployeeAndDate(_ context.Context, employeeID uint, date time.Time) ([]*models.Shift, error) {
	var result []*models.Shift
	for _, s := range r.shifts {
		if s.Status != models.ShiftOpen || !timeutil.SameDate(s.Date, date) {
			continue
		}
		if s.IsAssigned(employeeID) {
			result = append(result, s)
		}
	}
	return result, nil
}

func (r *stubShiftRepo) FindByEmployeeAndDateRange(_ context.Context, employeeID uint, start, end time.Time, statuses []models.ShiftStatus) ([]*models.Shift, error) {
	allowed := make(map[models.ShiftStatus]struct{}, len(statuses))
	for _, st := range statuses {
		allowed[st] = struct{}{}
	}

	var result []*models.Shift
	for _, s := range r.shifts {
		if _, ok := allowed[s.Status]; !ok {
			continue
		}
		day := timeutil.DateOnly(s.Date)
		if day.Before(start) || day.After(end) {
			continue
		}
		if s.IsAssigned(employeeID) {
			result = append(result, s)
		}
	}
	return result, nil
}

func (r *stubShiftRepo) AddEmployee(_ context.Context, shift *models.Shift, employee *models.Employee) error {
	for _, s := range r.shifts {
		if s.ID == shift.ID {
			s.AssignedEmployees = append(s.AssignedEmployees, *employee)
			s.Version++
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type stubTimeOffRepo struct {
	timeOffs []*models.TimeOff
	nextID   uint
}

func newStubTimeOffRepo(timeOffs ...*models.TimeOff) *stubTimeOffRepo {
	repo := &stubTimeOffRepo{nextID: 1}
	for _, t := range timeOffs {
		_ = repo.Create(context.Background(), t)
	}
	return repo
}

func (r *stubTimeOffRepo) Create(_ context.Context, timeOff *models.TimeOff) error {
	if timeOff.ID == 0 {
		timeOff.ID = r.nextID
		r.nextID++
	} else if timeOff.ID >= r.nextID {
		r.nextID = timeOff.ID + 1
	}
	if timeOff.Status == "" {
		timeOff.Status = models.TimeOffPending
	}
	r.timeOffs = append(r.timeOffs, timeOff)
	return nil
}

func (r *stubTimeOffRepo) GetByID(_ context.Context, id uint) (*models.TimeOff, error) {
	for _, t := range r.timeOffs {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubTimeOffRepo) UpdateStatus(ctx context.Context, id uint, status models.TimeOffStatus) (*models.TimeOff, error) {
	timeOff, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	timeOff.Status = status
	return timeOff, nil
}

func (r *stubTimeOffRepo) FindApprovedCovering(_ context.Context, employeeID uint, date time.Time) ([]*models.TimeOff, error) {
	var result []*models.TimeOff
	for _, t := range r.timeOffs {
		if t.EmployeeID == employeeID && t.Status == models.TimeOffApproved && t.Covers(date) {
			result = append(result, t)
		}
	}
	return result, nil
}

func (r *stubTimeOffRepo) ListApprovedByEmployeeIDs(_ context.Context, employeeIDs []uint) ([]*models.TimeOff, error) {
	ids := make(map[uint]struct{}, len(employeeIDs))
	for _, id := range employeeIDs {
		ids[id] = struct{}{}
	}

	var result []*models.TimeOff
	for _, t := range r.timeOffs {
		if t.Status != models.TimeOffApproved {
			continue
		}
		if _, ok := ids[t.EmployeeID]; ok {
			result = append(result, t)
		}
	}
	return result, nil
}

type stubRefreshTokenRepo struct {
	tokens map[uint]*models.RefreshToken
}

func newStubRefreshTokenRepo() *stubRefreshTokenRepo {
	return &stubRefreshTokenRepo{tokens: make(map[uint]*models.RefreshToken)}
}

func (r *stubRefreshTokenRepo) Upsert(_ context.Context, employeeID uint, tokenHash string, expiresAt time.Time) error {
	r.tokens[employeeID] = &models.RefreshToken{
		EmployeeID: employeeID,
		TokenHash:  tokenHash,
		ExpiresAt:  expiresAt,
	}
	return nil
}

func (r *stubRefreshTokenRepo) GetByTokenHash(_ context.Context, tokenHash string) (*models.RefreshToken, error) {
	for _, t := range r.tokens {
		if t.TokenHash == tokenHash {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubRefreshTokenRepo) DeleteByTokenHash(_ context.Context, tokenHash string) error {
	for id, t := range r.tokens {
		if t.TokenHash == tokenHash {
			delete(r.tokens, id)
			return nil
		}
	}
	return nil
}

func (r *stubRefreshTokenRepo) DeleteByEmployeeID(_ context.Context, employeeID uint) error {
	delete(r.tokens, employeeID)
	return nil
}

func (r *stubRefreshTokenRepo) DeleteExpired(_ context.Context) (int64, error) {
	var removed int64
	for id, t := range r.tokens {
		if t.IsExpired() {
			delete(r.tokens, id)
			removed++
		}
	}
	return removed, nil
}
