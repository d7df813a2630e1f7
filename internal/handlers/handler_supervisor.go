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

// supervisorHandler handles HTTP requests for the approved supervisor
// hierarchy: listings and reassignments.
type supervisorHandler struct {
	hierarchyService portssvc.HierarchySvcFacade
}

func newSupervisorHandler(hs portssvc.HierarchySvcFacade) *supervisorHandler {
	return &supervisorHandler{
		hierarchyService: hs,
	}
}

// registerSupervisorRoutes registers routes for the approved hierarchy.
func registerSupervisorRoutes(rg *gin.RouterGroup, hierarchyService portssvc.HierarchySvcFacade) {
	h := newSupervisorHandler(hierarchyService)

	supervisors := rg.Group("/supervisors")
	{
		supervisors.GET("/general", h.listGeneralSupervisors)
		supervisors.GET("", h.listSupervisors)
		supervisors.PUT("/:record_id/location", h.reassignLocation)
		supervisors.PUT("/:record_id/general-supervisor", h.reassignGeneralSupervisor)
	}
}

// listGeneralSupervisors godoc
// @Summary List approved general supervisors
// @Tags supervisors
// @Produce json
// @Success 200 {array} dto.SupervisorRecordResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list general supervisors"
// @Security BearerAuth
// @Router /supervisors/general [get]
func (h *supervisorHandler) listGeneralSupervisors(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	records, err := h.hierarchyService.GetApprovedGeneralSupervisors(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list general supervisors", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list general supervisors"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSupervisorRecordListResponse(records))
}

// listSupervisors godoc
// @Summary List approved supervisors
// @Description Lists APPROVED supervisors, optionally filtered by location.
// @Tags supervisors
// @Produce json
// @Param locationID query string false "Filter by location ID"
// @Success 200 {array} dto.SupervisorRecordResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list supervisors"
// @Security BearerAuth
// @Router /supervisors [get]
func (h *supervisorHandler) listSupervisors(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListApprovedSupervisorsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	records, err := h.hierarchyService.GetApprovedSupervisors(c.Request.Context(), params.LocationID)
	if err != nil {
		logger.Error("Failed to list supervisors", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list supervisors"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSupervisorRecordListResponse(records))
}

// reassignLocation godoc
// @Summary Reassign a supervisor's location
// @Description Changes an APPROVED supervisor's location binding. A null locationID unassigns from all locations. Existing assignments are not retroactively invalidated.
// @Tags supervisors
// @Accept json
// @Produce json
// @Param record_id path string true "Supervisor Record ID"
// @Param reassignment body dto.ReassignLocationRequest true "New location"
// @Success 200 {object} dto.SupervisorRecordResponse
// @Failure 400 {object} map[string]string "Invalid input or location not found"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller lacks authority"
// @Failure 404 {object} map[string]string "Supervisor record not found"
// @Failure 409 {object} map[string]string "Supervisor is not approved"
// @Failure 500 {object} map[string]string "Failed to reassign location"
// @Security BearerAuth
// @Router /supervisors/{record_id}/location [put]
func (h *supervisorHandler) reassignLocation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	recordID := c.Param("record_id")

	var req dto.ReassignLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor account ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("actor_id", actorID), slog.String("record_id", recordID))
	logger.Info("Received supervisor location reassignment")

	record, err := h.hierarchyService.ReassignSupervisorLocation(c.Request.Context(), actorID, recordID, req.LocationID)
	if err != nil {
		h.respondReassignError(c, logger, err, "Failed to reassign location")
		return
	}

	logger.Info("Supervisor location reassigned")
	c.JSON(http.StatusOK, dto.ToSupervisorRecordResponse(record))
}

// reassignGeneralSupervisor godoc
// @Summary Reassign a supervisor's general supervisor
// @Description Changes the reporting edge of an APPROVED supervisor. The new edge must keep the hierarchy acyclic.
// @Tags supervisors
// @Accept json
// @Produce json
// @Param record_id path string true "Supervisor Record ID"
// @Param reassignment body dto.ReassignGeneralSupervisorRequest true "New general supervisor"
// @Success 200 {object} dto.SupervisorRecordResponse
// @Failure 400 {object} map[string]string "Invalid edge (unknown, not approved, or would create a cycle)"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller lacks authority"
// @Failure 404 {object} map[string]string "Supervisor record not found"
// @Failure 409 {object} map[string]string "Supervisor is not approved"
// @Failure 500 {object} map[string]string "Failed to reassign general supervisor"
// @Security BearerAuth
// @Router /supervisors/{record_id}/general-supervisor [put]
func (h *supervisorHandler) reassignGeneralSupervisor(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	recordID := c.Param("record_id")

	var req dto.ReassignGeneralSupervisorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor account ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("actor_id", actorID), slog.String("record_id", recordID))
	logger.Info("Received general supervisor reassignment")

	record, err := h.hierarchyService.ReassignGeneralSupervisor(c.Request.Context(), actorID, recordID, req.GeneralSupervisorID)
	if err != nil {
		h.respondReassignError(c, logger, err, "Failed to reassign general supervisor")
		return
	}

	logger.Info("General supervisor reassigned")
	c.JSON(http.StatusOK, dto.ToSupervisorRecordResponse(record))
}

func (h *supervisorHandler) respondReassignError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Caller lacks authority for reassignment")
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to manage the hierarchy"})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Reassignment failed validation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Supervisor record not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Supervisor record not found"})
	case errors.Is(err, apperrors.ErrInvalidState):
		logger.Warn("Supervisor record is not approved")
		c.JSON(http.StatusConflict, gin.H{"error": "Supervisor record is not approved"})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
