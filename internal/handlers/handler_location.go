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

// locationHandler handles HTTP requests for the location and beat catalog.
type locationHandler struct {
	hierarchyService portssvc.HierarchySvcFacade
}

func newLocationHandler(hs portssvc.HierarchySvcFacade) *locationHandler {
	return &locationHandler{
		hierarchyService: hs,
	}
}

// registerLocationRoutes registers routes for locations and their beats.
func registerLocationRoutes(rg *gin.RouterGroup, hierarchyService portssvc.HierarchySvcFacade) {
	h := newLocationHandler(hierarchyService)

	locations := rg.Group("/locations")
	{
		locations.POST("", h.createLocation)
		locations.GET("", h.listLocations)
		locations.POST("/:location_id/beats", h.createBeat)
		locations.GET("/:location_id/beats", h.listBeats)
	}
}

// createLocation godoc
// @Summary Create a location
// @Description Adds a physical site to the catalog. Requires manager or director role.
// @Tags locations
// @Accept json
// @Produce json
// @Param location body dto.CreateLocationRequest true "Location details"
// @Success 201 {object} dto.LocationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller lacks authority"
// @Failure 409 {object} map[string]string "Location name already exists"
// @Failure 500 {object} map[string]string "Failed to create location"
// @Security BearerAuth
// @Router /locations [post]
func (h *locationHandler) createLocation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateLocation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor account ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("actor_id", actorID))
	logger.Info("Received request to create location", slog.String("location_name", req.Name))

	location, err := h.hierarchyService.CreateLocation(c.Request.Context(), actorID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("Caller lacks authority to create locations")
			c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to manage the location catalog"})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Location name already exists")
			c.JSON(http.StatusConflict, gin.H{"error": "A location with this name already exists"})
		} else {
			logger.Error("Failed to create location", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create location"})
		}
		return
	}

	logger.Info("Location created", slog.String("location_id", location.LocationID))
	c.JSON(http.StatusCreated, dto.ToLocationResponse(location))
}

// listLocations godoc
// @Summary List locations
// @Description Lists the location catalog with derived beat counts.
// @Tags locations
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} dto.LocationResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list locations"
// @Security BearerAuth
// @Router /locations [get]
func (h *locationHandler) listLocations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	locations, err := h.hierarchyService.ListLocations(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list locations", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list locations"})
		return
	}

	c.JSON(http.StatusOK, dto.ToLocationListResponse(locations))
}

// createBeat godoc
// @Summary Create a beat
// @Description Adds a security post under a location. Requires manager or director role.
// @Tags locations
// @Accept json
// @Produce json
// @Param location_id path string true "Location ID"
// @Param beat body dto.CreateBeatRequest true "Beat details"
// @Success 201 {object} dto.BeatResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller lacks authority"
// @Failure 404 {object} map[string]string "Location not found"
// @Failure 409 {object} map[string]string "Beat code already exists at this location"
// @Failure 500 {object} map[string]string "Failed to create beat"
// @Security BearerAuth
// @Router /locations/{location_id}/beats [post]
func (h *locationHandler) createBeat(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	locationID := c.Param("location_id")

	var req dto.CreateBeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBeat", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor account ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("actor_id", actorID), slog.String("location_id", locationID))
	logger.Info("Received request to create beat", slog.String("beat_code", req.BeatCode))

	beat, err := h.hierarchyService.CreateBeat(c.Request.Context(), actorID, locationID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("Caller lacks authority to create beats")
			c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to manage the location catalog"})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Location not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Beat code already exists at this location")
			c.JSON(http.StatusConflict, gin.H{"error": "A beat with this code already exists at this location"})
		} else {
			logger.Error("Failed to create beat", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create beat"})
		}
		return
	}

	logger.Info("Beat created", slog.String("beat_id", beat.BeatID))
	c.JSON(http.StatusCreated, dto.ToBeatResponse(beat))
}

// listBeats godoc
// @Summary List beats under a location
// @Tags locations
// @Produce json
// @Param location_id path string true "Location ID"
// @Success 200 {array} dto.BeatResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list beats"
// @Security BearerAuth
// @Router /locations/{location_id}/beats [get]
func (h *locationHandler) listBeats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	locationID := c.Param("location_id")

	beats, err := h.hierarchyService.GetBeatsByLocation(c.Request.Context(), locationID)
	if err != nil {
		logger.Error("Failed to list beats", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list beats"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBeatListResponse(beats))
}
