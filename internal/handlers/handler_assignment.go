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

// assignmentHandler handles HTTP requests for operator beat assignments.
type assignmentHandler struct {
	assignmentService portssvc.AssignmentSvcFacade
}

func newAssignmentHandler(as portssvc.AssignmentSvcFacade) *assignmentHandler {
	return &assignmentHandler{
		assignmentService: as,
	}
}

// registerAssignmentRoutes registers assignment routes, including the
// operator-scoped history and change endpoints.
func registerAssignmentRoutes(rg *gin.RouterGroup, assignmentService portssvc.AssignmentSvcFacade) {
	h := newAssignmentHandler(assignmentService)

	assignments := rg.Group("/assignments")
	{
		assignments.POST("", h.createAssignment)
		assignments.DELETE("/:assignment_id", h.endAssignment)
	}

	operators := rg.Group("/operators/:operator_id")
	{
		operators.GET("/assignments", h.listOperatorAssignments)
		operators.PUT("/assignment", h.changeAssignment)
	}

	rg.GET("/beats/:beat_id/assignments", h.listBeatAssignments)
}

// createAssignment godoc
// @Summary Assign an operator to a beat
// @Description Places an operator on a beat under a supervisor. If the operator already holds an active assignment, the call transfers it.
// @Tags assignments
// @Accept json
// @Produce json
// @Param assignment body dto.CreateAssignmentRequest true "Assignment details"
// @Success 201 {object} dto.AssignmentResponse
// @Failure 400 {object} map[string]string "Invalid input or location mismatch"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Operator, beat or supervisor not found"
// @Failure 409 {object} map[string]string "Beat at capacity or concurrent assignment"
// @Failure 500 {object} map[string]string "Failed to create assignment"
// @Security BearerAuth
// @Router /assignments [post]
func (h *assignmentHandler) createAssignment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAssignment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor account ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("actor_id", actorID), slog.String("operator_id", req.OperatorID), slog.String("beat_id", req.BeatID))
	logger.Info("Received assignment request")

	assignment, err := h.assignmentService.Assign(c.Request.Context(), actorID, req)
	if err != nil {
		h.respondAssignmentError(c, logger, err)
		return
	}

	logger.Info("Assignment created", slog.String("assignment_id", assignment.AssignmentID))
	c.JSON(http.StatusCreated, dto.ToAssignmentResponse(assignment))
}

// changeAssignment godoc
// @Summary Change an operator's assignment
// @Description Atomically ends the operator's current active assignment and creates the new one.
// @Tags assignments
// @Accept json
// @Produce json
// @Param operator_id path string true "Operator Account ID"
// @Param assignment body dto.ChangeAssignmentRequest true "New assignment details"
// @Success 200 {object} dto.AssignmentResponse
// @Failure 400 {object} map[string]string "Invalid input or location mismatch"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Operator has no active assignment"
// @Failure 409 {object} map[string]string "Beat at capacity or concurrent change"
// @Failure 500 {object} map[string]string "Failed to change assignment"
// @Security BearerAuth
// @Router /operators/{operator_id}/assignment [put]
func (h *assignmentHandler) changeAssignment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	operatorID := c.Param("operator_id")

	var req dto.ChangeAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ChangeAssignment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor account ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("actor_id", actorID), slog.String("operator_id", operatorID), slog.String("beat_id", req.BeatID))
	logger.Info("Received assignment change request")

	assignment, err := h.assignmentService.ChangeAssignment(c.Request.Context(), actorID, operatorID, req)
	if err != nil {
		h.respondAssignmentError(c, logger, err)
		return
	}

	logger.Info("Assignment changed", slog.String("assignment_id", assignment.AssignmentID))
	c.JSON(http.StatusOK, dto.ToAssignmentResponse(assignment))
}

// endAssignment godoc
// @Summary End an assignment
// @Description Marks an active assignment ended. Ending an already-ended assignment is an idempotent success.
// @Tags assignments
// @Produce json
// @Param assignment_id path string true "Assignment ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Assignment not found"
// @Failure 500 {object} map[string]string "Failed to end assignment"
// @Security BearerAuth
// @Router /assignments/{assignment_id} [delete]
func (h *assignmentHandler) endAssignment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	assignmentID := c.Param("assignment_id")

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor account ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("actor_id", actorID), slog.String("assignment_id", assignmentID))

	if err := h.assignmentService.Unassign(c.Request.Context(), actorID, assignmentID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Assignment not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Assignment not found"})
		} else {
			logger.Error("Failed to end assignment", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to end assignment"})
		}
		return
	}

	logger.Info("Assignment ended")
	c.Status(http.StatusNoContent)
}

// listOperatorAssignments godoc
// @Summary List an operator's assignments
// @Description Retrieves the operator's assignment history, newest first.
// @Tags assignments
// @Produce json
// @Param operator_id path string true "Operator Account ID"
// @Success 200 {array} dto.AssignmentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list assignments"
// @Security BearerAuth
// @Router /operators/{operator_id}/assignments [get]
func (h *assignmentHandler) listOperatorAssignments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	operatorID := c.Param("operator_id")

	assignments, err := h.assignmentService.GetAssignmentsByOperator(c.Request.Context(), operatorID)
	if err != nil {
		logger.Error("Failed to list operator assignments", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list assignments"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAssignmentListResponse(assignments))
}

// listBeatAssignments godoc
// @Summary List assignments on a beat
// @Description Retrieves assignments on a beat, active first.
// @Tags assignments
// @Produce json
// @Param beat_id path string true "Beat ID"
// @Success 200 {array} dto.AssignmentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list assignments"
// @Security BearerAuth
// @Router /beats/{beat_id}/assignments [get]
func (h *assignmentHandler) listBeatAssignments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	beatID := c.Param("beat_id")

	assignments, err := h.assignmentService.GetAssignmentsByBeat(c.Request.Context(), beatID)
	if err != nil {
		logger.Error("Failed to list beat assignments", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list assignments"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAssignmentListResponse(assignments))
}

// respondAssignmentError maps assignment service errors shared by the create
// and change endpoints.
func (h *assignmentHandler) respondAssignmentError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Assignment failed validation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Actor not permitted to manage assignments")
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to manage assignments"})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Assignment target not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Assignment conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to process assignment", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process assignment"})
	}
}
