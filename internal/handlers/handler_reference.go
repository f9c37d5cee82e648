package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/honeymoneyapp/honeymoney_backend/internal/apperrors"
	portssvc "github.com/honeymoneyapp/honeymoney_backend/internal/core/ports/services"
	"github.com/honeymoneyapp/honeymoney_backend/internal/dto"
	"github.com/honeymoneyapp/honeymoney_backend/internal/middleware"
)

// referenceHandler serves the seeded movement-type and payment-type catalogs.
type referenceHandler struct {
	movementTypeService portssvc.MovementTypeSvc
	paymentTypeService  portssvc.PaymentTypeSvc
}

// registerReferenceRoutes registers routes for the reference catalogs.
func registerReferenceRoutes(rg *gin.RouterGroup, movementTypeService portssvc.MovementTypeSvc, paymentTypeService portssvc.PaymentTypeSvc) {
	h := &referenceHandler{movementTypeService: movementTypeService, paymentTypeService: paymentTypeService}

	rg.GET("/movement-types", h.listMovementTypes)
	rg.GET("/movement-types/:movementTypeID", h.getMovementType)
	rg.GET("/payment-types", h.listPaymentTypes)
	rg.GET("/payment-types/:paymentTypeID", h.getPaymentType)
}

func (h *referenceHandler) listMovementTypes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	mts, err := h.movementTypeService.ListMovementTypes(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list movement types", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list movement types"})
		return
	}

	c.JSON(http.StatusOK, dto.ToMovementTypeResponses(mts))
}

func (h *referenceHandler) getMovementType(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	movementTypeID := c.Param("movementTypeID")

	mt, err := h.movementTypeService.GetMovementTypeByID(c.Request.Context(), movementTypeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Movement type not found"})
		} else {
			logger.Error("Failed to get movement type", slog.String("error", err.Error()), slog.String("movementTypeID", movementTypeID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve movement type"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.MovementTypeResponse{
		MovementTypeID: mt.MovementTypeID,
		Name:           mt.Name,
		IsTransfer:     mt.IsTransfer,
	})
}

func (h *referenceHandler) listPaymentTypes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	pts, err := h.paymentTypeService.ListPaymentTypes(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list payment types", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list payment types"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentTypeResponses(pts))
}

func (h *referenceHandler) getPaymentType(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentTypeID := c.Param("paymentTypeID")

	pt, err := h.paymentTypeService.GetPaymentTypeByID(c.Request.Context(), paymentTypeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment type not found"})
		} else {
			logger.Error("Failed to get payment type", slog.String("error", err.Error()), slog.String("paymentTypeID", paymentTypeID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve payment type"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.PaymentTypeResponse{PaymentTypeID: pt.PaymentTypeID, Name: pt.Name})
}
