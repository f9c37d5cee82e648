package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/honeymoneyapp/honeymoney_backend/internal/apperrors"
	portssvc "github.com/honeymoneyapp/honeymoney_backend/internal/core/ports/services"
	"github.com/honeymoneyapp/honeymoney_backend/internal/core/services"
	"github.com/honeymoneyapp/honeymoney_backend/internal/dto"
	"github.com/honeymoneyapp/honeymoney_backend/internal/middleware"
)

// tagHandler handles HTTP requests related to tags.
type tagHandler struct {
	tagService portssvc.TagSvcFacade
}

// registerTagRoutes registers routes related to tags.
func registerTagRoutes(rg *gin.RouterGroup, tagService portssvc.TagSvcFacade) {
	h := &tagHandler{tagService: tagService}

	tags := rg.Group("/tags")
	{
		tags.POST("", h.createTag)
		tags.GET("", h.listTags)
		tags.GET("/:tagID", h.getTag)
		tags.PUT("/:tagID", h.updateTag)
		tags.DELETE("/:tagID", h.deactivateTag)
	}
}

func (h *tagHandler) createTag(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tag, err := h.tagService.CreateTag(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create tag", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tag"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToTagResponse(tag))
}

func (h *tagHandler) listTags(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	tags, err := h.tagService.ListTags(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list tags", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list tags"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTagResponses(tags))
}

func (h *tagHandler) getTag(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	tagID := c.Param("tagID")

	tag, err := h.tagService.GetTagByID(c.Request.Context(), tagID, userID)
	if err != nil {
		if errors.Is(err, services.ErrTagNotFound) || errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
		} else {
			logger.Error("Failed to get tag", slog.String("error", err.Error()), slog.String("tagID", tagID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tag"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTagResponse(tag))
}

func (h *tagHandler) updateTag(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	tagID := c.Param("tagID")

	var req dto.UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tag, err := h.tagService.UpdateTag(c.Request.Context(), tagID, req, userID)
	if err != nil {
		if errors.Is(err, services.ErrTagNotFound) || errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update tag", slog.String("error", err.Error()), slog.String("tagID", tagID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tag"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTagResponse(tag))
}

func (h *tagHandler) deactivateTag(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	tagID := c.Param("tagID")

	if err := h.tagService.DeactivateTag(c.Request.Context(), tagID, userID); err != nil {
		if errors.Is(err, services.ErrTagNotFound) || errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
		} else {
			logger.Error("Failed to deactivate tag", slog.String("error", err.Error()), slog.String("tagID", tagID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate tag"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
