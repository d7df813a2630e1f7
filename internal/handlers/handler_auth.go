package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/SecuForce/guard_workforce_app/internal/apperrors"
	portssvc "github.com/SecuForce/guard_workforce_app/internal/core/ports/services"
	"github.com/SecuForce/guard_workforce_app/internal/dto"
	"github.com/SecuForce/guard_workforce_app/internal/middleware"
	"github.com/SecuForce/guard_workforce_app/internal/platform/config"
	"github.com/SecuForce/guard_workforce_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	accountService portssvc.AccountSvcFacade
	jwtSecret      string
	jwtDuration    time.Duration
	jwtIssuer      string
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as portssvc.AccountSvcFacade, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		accountService: as,
		jwtSecret:      cfg.JWTSecret,
		jwtDuration:    cfg.JWTExpiryDuration,
		jwtIssuer:      cfg.JWTIssuer,
	}
}

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// registerAuthRoutes sets up the routes for authentication.
func registerAuthRoutes(rg *gin.Engine, cfg *config.Config, accountService portssvc.AccountSvcFacade) {
	h := NewAuthHandler(accountService, cfg)

	rate, err := limiter.NewRateFromFormatted(cfg.LoginRateLimit)
	if err != nil {
		rate, _ = limiter.NewRateFromFormatted("10-M")
	}
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)
	limitMiddleware := limitergin.NewMiddleware(ipLimiter)

	auth := rg.Group("/api/v1/auth")
	{
		auth.POST("/login", limitMiddleware, h.Login)
		auth.POST("/change-password", middleware.AuthMiddleware(cfg.JWTSecret), h.ChangePassword)
	}
}

// Login godoc
// @Summary Account login
// @Description Authenticates an account and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	account, err := h.accountService.AuthenticateAccount(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// Same message for unknown email, wrong password and inactive account
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
		return
	}

	signedToken, err := utils.GenerateJWT(account.AccountID, h.jwtSecret, h.jwtDuration, h.jwtIssuer)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to sign JWT token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:              signedToken,
		AccountID:          account.AccountID,
		Role:               string(account.Role),
		MustChangePassword: account.MustChangePassword,
	})
}

// ChangePassword godoc
// @Summary Change password
// @Description Replaces the calling account's password after verifying the current one.
// @Tags auth
// @Accept json
// @Produce json
// @Param change body dto.ChangePasswordRequest true "Password Change"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	accountID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Account ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	err := h.accountService.ChangePassword(c.Request.Context(), accountID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("Password change rejected: current password mismatch")
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Current password is incorrect"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "New password does not meet requirements"})
		} else {
			logger.Error("Failed to change password", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to change password"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
