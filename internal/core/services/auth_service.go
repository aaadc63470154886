package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"shiftdesk/internal/adapters/persistence/models"
	"shiftdesk/internal/adapters/persistence/repositories"
	"shiftdesk/internal/config"
	"shiftdesk/internal/core/domain"
	"shiftdesk/internal/pkg/jwt"
	"shiftdesk/internal/pkg/password"

	"gorm.io/gorm"
)

// AuthService handles authentication business logic
type AuthService struct {
	employeeRepo     repositories.EmployeeRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	cfg              *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	employeeRepo repositories.EmployeeRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		employeeRepo:     employeeRepo,
		refreshTokenRepo: refreshTokenRepo,
		cfg:              cfg,
	}
}

// SignUpInput represents signup input
type SignUpInput struct {
	Email          string                      `json:"email"`
	Password       string                      `json:"password"`
	FirstName      string                      `json:"firstName"`
	LastName       string                      `json:"lastName"`
	Role           models.Role                 `json:"role"`
	EmploymentType models.EmploymentType       `json:"employmentType"`
	Skills         []string                    `json:"skills"`
	Location       string                      `json:"location"`
	Team           string                      `json:"team"`
	Availability   []models.AvailabilityWindow `json:"availability"`
}

// SignInInput represents signin input
type SignInInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult represents a successful authentication
type AuthResult struct {
	Employee     *models.EmployeeResponse `json:"employee"`
	AccessToken  string                   `json:"access_token"`
	RefreshToken string                   `json:"-"`
}

// SignUp registers a new employee. Signup alone does not issue tokens;
// the employee signs in afterwards.
func (s *AuthService) SignUp(ctx context.Context, input *SignUpInput) (*models.EmployeeResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	exists, err := s.employeeRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrAccountExists
	}

	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	employee := &models.Employee{
		Email:          email,
		Password:       hashedPassword,
		FirstName:      strings.TrimSpace(input.FirstName),
		LastName:       strings.TrimSpace(input.LastName),
		Role:           input.Role,
		EmploymentType: input.EmploymentType,
		Skills:         input.Skills,
		Location:       input.Location,
		Team:           input.Team,
		Availability:   input.Availability,
	}

	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		// A concurrent signup can slip past the pre-check; the unique
		// email index settles it.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrAccountExists
		}
		return nil, err
	}

	log.Printf("✅ Employee registered: %s (%s)", employee.Email, employee.Role)
	return employee.ToResponse(), nil
}

// SignIn authenticates an employee and issues a token pair
func (s *AuthService) SignIn(ctx context.Context, input *SignInInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	employee, err := s.employeeRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(input.Password, employee.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.issueTokens(ctx, employee)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Employee signed in: %s", employee.Email)

	return &AuthResult{
		Employee:     employee.ToResponse(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh validates the opaque refresh token, rotates it, and issues a
// new access token. The stored slot is overwritten so the previous
// refresh token stops working immediately.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	if refreshToken == "" {
		return nil, domain.ErrTokenInvalid
	}

	stored, err := s.refreshTokenRepo.GetByTokenHash(ctx, password.HashToken(refreshToken))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}

	if stored.IsExpired() {
		return nil, domain.ErrTokenExpired
	}

	employee, err := s.employeeRepo.GetByID(ctx, stored.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Orphaned token: the account is gone, drop the slot.
			_ = s.refreshTokenRepo.DeleteByEmployeeID(ctx, stored.EmployeeID)
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}

	accessToken, newRefreshToken, err := s.issueTokens(ctx, employee)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Token refreshed for: %s", employee.Email)

	return &AuthResult{
		Employee:     employee.ToResponse(),
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// Logout deletes the stored refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.refreshTokenRepo.DeleteByTokenHash(ctx, password.HashToken(refreshToken))
}

// ValidateAccessToken validates an access token
func (s *AuthService) ValidateAccessToken(accessToken string) (*jwt.Claims, error) {
	return jwt.ValidateAccessToken(accessToken, s.cfg.JWT.Secret)
}

// issueTokens creates an access JWT and a fresh opaque refresh token,
// upserting the employee's single refresh token slot
func (s *AuthService) issueTokens(ctx context.Context, employee *models.Employee) (string, string, error) {
	accessToken, err := jwt.GenerateAccessToken(
		employee.ID,
		employee.Email,
		string(employee.Role),
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return "", "", err
	}

	refreshToken, err := password.GenerateOpaqueToken()
	if err != nil {
		return "", "", err
	}

	expiresAt := jwt.RefreshTokenExpiry(s.cfg.JWT.RefreshTokenDays)
	if err := s.refreshTokenRepo.Upsert(ctx, employee.ID, password.HashToken(refreshToken), expiresAt); err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}
