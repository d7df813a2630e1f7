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

// registrationHandler handles HTTP requests for the registration approval
// workflow.
type registrationHandler struct {
	approvalService portssvc.ApprovalSvcFacade
	accountService  portssvc.AccountSvcFacade
}

func newRegistrationHandler(aps portssvc.ApprovalSvcFacade, acs portssvc.AccountSvcFacade) *registrationHandler {
	return &registrationHandler{
		approvalService: aps,
		accountService:  acs,
	}
}

// registerRegistrationRoutes registers routes for supervisor registrations
// and their approval decisions.
func registerRegistrationRoutes(rg *gin.RouterGroup, approvalService portssvc.ApprovalSvcFacade, accountService portssvc.AccountSvcFacade) {
	h := newRegistrationHandler(approvalService, accountService)

	registrations := rg.Group("/registrations")
	{
		registrations.POST("", h.submitRegistration)
		registrations.GET("/pending", h.listPendingRegistrations)
		registrations.GET("/stats", h.getApprovalStats)
		registrations.GET("/:record_id", h.getRegistration)
		registrations.POST("/:record_id/decision", h.decideRegistration)
	}
}

// submitRegistration godoc
// @Summary Submit a supervisor registration
// @Description Creates a PENDING supervisor registration. Managers register general supervisors; general supervisors register supervisors.
// @Tags registrations
// @Accept json
// @Produce json
// @Param registration body dto.SubmitRegistrationRequest true "Registration details"
// @Success 201 {object} dto.SupervisorRecordResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Submitter lacks registration authority"
// @Failure 409 {object} map[string]string "Email already registered"
// @Failure 500 {object} map[string]string "Failed to submit registration"
// @Security BearerAuth
// @Router /registrations [post]
func (h *registrationHandler) submitRegistration(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SubmitRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SubmitRegistration", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	submitterID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Submitter account ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("submitter_id", submitterID), slog.String("supervisor_type", req.SupervisorType))
	logger.Info("Received registration submission")

	record, err := h.approvalService.SubmitRegistration(c.Request.Context(), submitterID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("Submitter lacks authority for this supervisor type")
			c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to register this supervisor type"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Registration submission failed validation", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Registration email already in use")
			c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Referenced general supervisor or location not found")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Referenced general supervisor or location not found"})
		} else {
			logger.Error("Failed to submit registration", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit registration"})
		}
		return
	}

	logger.Info("Registration submitted", slog.String("record_id", record.SupervisorRecordID))
	c.JSON(http.StatusCreated, dto.ToSupervisorRecordResponse(record))
}

// decideRegistration godoc
// @Summary Decide a pending registration
// @Description Approves or rejects a PENDING registration, exactly once. Approval issues credentials and activates the account.
// @Tags registrations
// @Accept json
// @Produce json
// @Param record_id path string true "Supervisor Record ID"
// @Param decision body dto.DecideRegistrationRequest true "Decision"
// @Success 200 {object} dto.SupervisorRecordResponse
// @Failure 400 {object} map[string]string "Invalid input or blank rejection reason"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Approver lacks decision authority"
// @Failure 404 {object} map[string]string "Registration not found"
// @Failure 409 {object} map[string]string "Registration already decided"
// @Failure 500 {object} map[string]string "Failed to decide registration"
// @Security BearerAuth
// @Router /registrations/{record_id}/decision [post]
func (h *registrationHandler) decideRegistration(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	recordID := c.Param("record_id")

	var req dto.DecideRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for DecideRegistration", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	approverID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Approver account ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("approver_id", approverID), slog.String("record_id", recordID), slog.String("decision", req.Decision))
	logger.Info("Received registration decision")

	record, err := h.approvalService.Decide(c.Request.Context(), approverID, recordID, portssvc.Decision(req.Decision), req.Reason)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("Approver lacks authority to decide this registration")
			c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to decide this registration"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Decision failed validation", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Registration not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Registration not found"})
		} else if errors.Is(err, apperrors.ErrInvalidState) || errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Registration already decided")
			c.JSON(http.StatusConflict, gin.H{"error": "Registration has already been decided"})
		} else {
			logger.Error("Failed to decide registration", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decide registration"})
		}
		return
	}

	logger.Info("Registration decided", slog.String("status", string(record.ApprovalStatus)))
	c.JSON(http.StatusOK, dto.ToSupervisorRecordResponse(record))
}

// getRegistration godoc
// @Summary Get a registration
// @Description Retrieves a supervisor registration record by ID.
// @Tags registrations
// @Produce json
// @Param record_id path string true "Supervisor Record ID"
// @Success 200 {object} dto.SupervisorRecordResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Registration not found"
// @Failure 500 {object} map[string]string "Failed to retrieve registration"
// @Security BearerAuth
// @Router /registrations/{record_id} [get]
func (h *registrationHandler) getRegistration(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	recordID := c.Param("record_id")

	record, err := h.approvalService.GetRegistration(c.Request.Context(), recordID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Registration not found", slog.String("record_id", recordID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Registration not found"})
		} else {
			logger.Error("Failed to get registration", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve registration"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSupervisorRecordResponse(record))
}

// listPendingRegistrations godoc
// @Summary List pending registrations
// @Description Lists PENDING registrations decidable by the calling account's role.
// @Tags registrations
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} dto.SupervisorRecordResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller role decides nothing"
// @Failure 500 {object} map[string]string "Failed to list registrations"
// @Security BearerAuth
// @Router /registrations/pending [get]
func (h *registrationHandler) listPendingRegistrations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListPendingParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	callerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Caller account ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	caller, err := h.accountService.GetAccountByID(c.Request.Context(), callerID)
	if err != nil {
		logger.Error("Failed to resolve caller account", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list registrations"})
		return
	}

	records, err := h.approvalService.ListPending(c.Request.Context(), caller.Role, params.Limit, params.Offset)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("Caller role has no pending queue", slog.String("role", string(caller.Role)))
			c.JSON(http.StatusForbidden, gin.H{"error": "Your role has no pending registrations to decide"})
		} else {
			logger.Error("Failed to list pending registrations", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list registrations"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSupervisorRecordListResponse(records))
}

// getApprovalStats godoc
// @Summary Approval dashboard counts
// @Description Recomputes registration counts by approval status and supervisor type.
// @Tags registrations
// @Produce json
// @Success 200 {object} dto.ApprovalStatsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute stats"
// @Security BearerAuth
// @Router /registrations/stats [get]
func (h *registrationHandler) getApprovalStats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	counts, err := h.approvalService.GetApprovalStats(c.Request.Context())
	if err != nil {
		logger.Error("Failed to compute approval stats", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}

	c.JSON(http.StatusOK, dto.ApprovalStatsResponse{Counts: counts})
}
