package handlers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"shiftdesk/internal/adapters/persistence/models"
	"shiftdesk/internal/config"
	"shiftdesk/internal/core/domain"
	"shiftdesk/internal/core/services"
	"shiftdesk/internal/pkg/password"
	"shiftdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const refreshCookieName = "refresh_token"

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

// SignUpRequest represents signup request body
type SignUpRequest struct {
	Email          string                      `json:"email"`
	Password       string                      `json:"password"`
	FirstName      string                      `json:"firstName"`
	LastName       string                      `json:"lastName"`
	Role           string                      `json:"role"`
	EmploymentType string                      `json:"employmentType"`
	Skills         []string                    `json:"skills"`
	Location       string                      `json:"location"`
	Team           string                      `json:"team"`
	Availability   []models.AvailabilityWindow `json:"availability"`
}

// SignInRequest represents signin request body
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUp handles employee registration
// @Summary Register new employee
// @Description Create an employee account
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body SignUpRequest true "Signup data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /auth/signup [post]
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if msg, ok := validateSignUp(&req); !ok {
		return response.BadRequest(c, msg)
	}

	input := &services.SignUpInput{
		Email:          req.Email,
		Password:       req.Password,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Role:           models.Role(req.Role),
		EmploymentType: models.EmploymentType(req.EmploymentType),
		Skills:         req.Skills,
		Location:       req.Location,
		Team:           req.Team,
		Availability:   req.Availability,
	}

	employee, err := h.authService.SignUp(c.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrAccountExists) {
			return response.BadRequest(c, "Account already exists")
		}
		return response.InternalServerError(c, "Failed to register employee")
	}

	return response.Created(c, "Employee registered successfully", fiber.Map{
		"employee": employee,
	})
}

// SignIn handles employee login
// @Summary Sign in
// @Description Authenticate an employee and return an access token; the refresh token is set as an HTTP-only cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body SignInRequest true "Credentials"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /auth/signin [post]
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var req SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Email == "" {
		return response.BadRequest(c, "Email is required")
	}
	if req.Password == "" {
		return response.BadRequest(c, "Password is required")
	}

	result, err := h.authService.SignIn(c.Context(), &services.SignInInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return response.BadRequest(c, "Invalid credentials")
		}
		return response.InternalServerError(c, "Failed to sign in")
	}

	h.setRefreshCookie(c, result.RefreshToken)

	return response.Created(c, "Signed in successfully", fiber.Map{
		"employee":     result.Employee,
		"access_token": result.AccessToken,
	})
}

// Refresh handles access token regeneration
// @Summary Refresh access token
// @Description Rotate the refresh token cookie and return a new access token
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	refreshToken := c.Cookies(refreshCookieName)
	if refreshToken == "" {
		return response.Unauthorized(c, "Access denied. Invalid refresh token")
	}

	result, err := h.authService.Refresh(c.Context(), refreshToken)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTokenExpired), errors.Is(err, domain.ErrTokenInvalid):
			h.clearRefreshCookie(c)
			return response.Unauthorized(c, "Access denied. Please re-login to continue")
		default:
			return response.InternalServerError(c, "Failed to refresh token")
		}
	}

	h.setRefreshCookie(c, result.RefreshToken)

	return response.Success(c, "Token refreshed successfully", fiber.Map{
		"employee":     result.Employee,
		"access_token": result.AccessToken,
	})
}

// Logout handles logout
// @Summary Logout
// @Description Delete the stored refresh token and clear the cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Success 204
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	refreshToken := c.Cookies(refreshCookieName)
	if refreshToken != "" {
		_ = h.authService.Logout(c.Context(), refreshToken)
	}

	h.clearRefreshCookie(c)
	return response.NoContent(c)
}

// validateSignUp checks the signup payload field by field
func validateSignUp(req *SignUpRequest) (string, bool) {
	if strings.TrimSpace(req.Email) == "" {
		return "Email is required", false
	}
	if !strings.Contains(req.Email, "@") {
		return "Invalid email address", false
	}
	if !password.ValidatePassword(req.Password) {
		return fmt.Sprintf("Password must contain at least %d characters", password.MinLength), false
	}
	if strings.TrimSpace(req.FirstName) == "" {
		return "First name is required", false
	}
	if strings.TrimSpace(req.LastName) == "" {
		return "Last name is required", false
	}
	if !models.Role(req.Role).IsValid() {
		return "Role must be one of: manager, team-lead, senior-engineer, engineer, devops, hr", false
	}
	if !models.EmploymentType(req.EmploymentType).IsValid() {
		return "Employment type must be one of: full-time, part-time", false
	}
	if strings.TrimSpace(req.Location) == "" {
		return "Location is required", false
	}
	if strings.TrimSpace(req.Team) == "" {
		return "Team is required", false
	}
	for _, window := range req.Availability {
		if !window.Validate() {
			return "Availability windows need a day of week between 0 and 6 and HH:MM times", false
		}
	}
	return "", true
}

// setRefreshCookie sets the HTTP-only refresh token cookie
func (h *AuthHandler) setRefreshCookie(c *fiber.Ctx, refreshToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    refreshToken,
		Path:     "/",
		MaxAge:   h.cfg.JWT.RefreshTokenDays * 24 * 60 * 60,
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}

// clearRefreshCookie clears the refresh token cookie
func (h *AuthHandler) clearRefreshCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-1 * time.Hour),
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}
