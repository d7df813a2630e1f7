package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SecuForce/guard_workforce_app/internal/apperrors"
	portssvc "github.com/SecuForce/guard_workforce_app/internal/core/ports/services"
	"github.com/SecuForce/guard_workforce_app/internal/dto"
	"github.com/SecuForce/guard_workforce_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests for account lookups and lifecycle.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
	}
}

// registerAccountRoutes registers account lookup and lifecycle routes.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.GET("/me", h.getMe)
		accounts.GET("/:account_id", h.getAccount)
		accounts.POST("/:account_id/suspend", h.suspendAccount)
	}
}

// getMe godoc
// @Summary Get the calling account
// @Tags accounts
// @Produce json
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to retrieve account"
// @Security BearerAuth
// @Router /accounts/me [get]
func (h *accountHandler) getMe(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accountID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Account ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		logger.Error("Failed to get calling account", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve account"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get an account
// @Tags accounts
// @Produce json
// @Param account_id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve account"
// @Security BearerAuth
// @Router /accounts/{account_id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("account_id")

	account, err := h.accountService.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Account not found", slog.String("account_id", accountID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to get account", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve account"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// suspendAccount godoc
// @Summary Suspend an account
// @Description Marks an ACTIVE account SUSPENDED. Director only.
// @Tags accounts
// @Produce json
// @Param account_id path string true "Account ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller is not a director"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Account is not active"
// @Failure 500 {object} map[string]string "Failed to suspend account"
// @Security BearerAuth
// @Router /accounts/{account_id}/suspend [post]
func (h *accountHandler) suspendAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("account_id")

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor account ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("actor_id", actorID), slog.String("account_id", accountID))
	logger.Info("Received account suspension request")

	if err := h.accountService.SuspendAccount(c.Request.Context(), actorID, accountID); err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("Caller not permitted to suspend accounts")
			c.JSON(http.StatusForbidden, gin.H{"error": "Only directors may suspend accounts"})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Account not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else if errors.Is(err, apperrors.ErrInvalidState) {
			logger.Warn("Account is not active")
			c.JSON(http.StatusConflict, gin.H{"error": "Account is not active"})
		} else {
			logger.Error("Failed to suspend account", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to suspend account"})
		}
		return
	}

	logger.Info("Account suspended")
	c.Status(http.StatusNoContent)
}
