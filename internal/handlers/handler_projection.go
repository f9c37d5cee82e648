package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/honeymoneyapp/honeymoney_backend/internal/apperrors"
	portssvc "github.com/honeymoneyapp/honeymoney_backend/internal/core/ports/services"
	"github.com/honeymoneyapp/honeymoney_backend/internal/core/services"
	"github.com/honeymoneyapp/honeymoney_backend/internal/dto"
	"github.com/honeymoneyapp/honeymoney_backend/internal/middleware"
)

// projectionHandler handles HTTP requests related to projections.
type projectionHandler struct {
	projectionService portssvc.ProjectionSvcFacade
}

// registerProjectionRoutes registers routes related to projections.
func registerProjectionRoutes(rg *gin.RouterGroup, projectionService portssvc.ProjectionSvcFacade) {
	h := &projectionHandler{projectionService: projectionService}

	projections := rg.Group("/projections")
	{
		projections.POST("", h.createProjection)
		projections.GET("", h.listProjections)
		projections.GET("/due", h.listDueProjections)
		projections.GET("/recurring", h.listRecurringProjections)
		projections.GET("/:projectionID", h.getProjection)
		projections.PUT("/:projectionID", h.updateProjection)
		projections.PUT("/:projectionID/state", h.changeProjectionState)
		projections.DELETE("/:projectionID", h.deleteProjection)
	}
}

func (h *projectionHandler) createProjection(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateProjectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	proj, err := h.projectionService.CreateProjection(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, services.ErrFrequencyRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, services.ErrReferenceNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create projection", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create projection"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectionResponse(proj))
}

func (h *projectionHandler) listProjections(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListProjectionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	projs, total, err := h.projectionService.ListProjections(c.Request.Context(), params, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list projections", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list projections"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ListProjectionsResponse{
		Projections: dto.ToProjectionResponses(projs),
		Total:       total,
		Limit:       params.Limit,
		Offset:      params.Offset,
	})
}

func (h *projectionHandler) listDueProjections(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	withinDays, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || withinDays < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid days parameter"})
		return
	}

	projs, err := h.projectionService.ListDueProjections(c.Request.Context(), userID, withinDays)
	if err != nil {
		logger.Error("Failed to list due projections", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list due projections"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"projections": dto.ToProjectionResponses(projs)})
}

func (h *projectionHandler) listRecurringProjections(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	projs, err := h.projectionService.ListRecurringProjections(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list recurring projections", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list recurring projections"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"projections": dto.ToProjectionResponses(projs)})
}

func (h *projectionHandler) getProjection(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	projectionID := c.Param("projectionID")

	proj, err := h.projectionService.GetProjectionByID(c.Request.Context(), projectionID, userID)
	if err != nil {
		if errors.Is(err, services.ErrProjectionNotFound) || errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Projection not found"})
		} else {
			logger.Error("Failed to get projection", slog.String("error", err.Error()), slog.String("projectionID", projectionID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projection"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectionResponse(proj))
}

func (h *projectionHandler) updateProjection(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	projectionID := c.Param("projectionID")

	var req dto.UpdateProjectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	proj, err := h.projectionService.UpdateProjection(c.Request.Context(), projectionID, req, userID)
	if err != nil {
		if errors.Is(err, services.ErrProjectionNotFound) || errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Projection not found"})
		} else if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, services.ErrFrequencyRequired) || errors.Is(err, services.ErrReferenceNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update projection", slog.String("error", err.Error()), slog.String("projectionID", projectionID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update projection"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectionResponse(proj))
}

func (h *projectionHandler) changeProjectionState(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	projectionID := c.Param("projectionID")

	var req dto.ChangeProjectionStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	proj, err := h.projectionService.ChangeProjectionState(c.Request.Context(), projectionID, req, userID)
	if err != nil {
		if errors.Is(err, services.ErrProjectionNotFound) || errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Projection not found"})
		} else if errors.Is(err, services.ErrInvalidStateTransition) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to change projection state", slog.String("error", err.Error()), slog.String("projectionID", projectionID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change projection state"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectionResponse(proj))
}

func (h *projectionHandler) deleteProjection(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	projectionID := c.Param("projectionID")

	if err := h.projectionService.DeleteProjection(c.Request.Context(), projectionID, userID); err != nil {
		if errors.Is(err, services.ErrProjectionNotFound) || errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Projection not found"})
		} else {
			logger.Error("Failed to delete projection", slog.String("error", err.Error()), slog.String("projectionID", projectionID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete projection"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
