package repositories

import (
	"context"
	"time"

	"shiftdesk/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// refreshTokenRepository implements RefreshTokenRepository interface
type refreshTokenRepository struct {
	db *gorm.DB
}

// NewRefreshTokenRepository creates a new refresh token repository
func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

// Upsert writes the employee's single token slot: the unique index on
// employee_id makes each new login or refresh overwrite the previous
// token rather than appending a session.
func (r *refreshTokenRepository) Upsert(ctx context.Context, employeeID uint, tokenHash string, expiresAt time.Time) error {
	token := &models.RefreshToken{
		EmployeeID: employeeID,
		TokenHash:  tokenHash,
		ExpiresAt:  expiresAt,
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"token_hash", "expires_at", "updated_at"}),
		}).
		Create(token).Error
}

// GetByTokenHash gets a refresh token by its hash
func (r *refreshTokenRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	err := r.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// DeleteByTokenHash removes a refresh token by its hash (logout)
func (r *refreshTokenRepository) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	return r.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		Delete(&models.RefreshToken{}).Error
}

// DeleteByEmployeeID removes the employee's token slot
func (r *refreshTokenRepository) DeleteByEmployeeID(ctx context.Context, employeeID uint) error {
	return r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Delete(&models.RefreshToken{}).Error
}

// DeleteExpired deletes all expired tokens. Run on a schedule; this is
// the SQL counterpart of a document-store TTL index.
func (r *refreshTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&models.RefreshToken{})
	return result.RowsAffected, result.Error
}
