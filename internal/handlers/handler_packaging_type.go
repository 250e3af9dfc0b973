package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kemasku/packshop_backend/internal/apperrors"
	portssvc "github.com/kemasku/packshop_backend/internal/core/ports/services"
	"github.com/kemasku/packshop_backend/internal/dto"
	"github.com/kemasku/packshop_backend/internal/middleware"
)

// packagingTypeHandler handles packaging catalog requests.
type packagingTypeHandler struct {
	packagingTypeService portssvc.PackagingTypeSvcFacade
}

func newPackagingTypeHandler(packagingTypeService portssvc.PackagingTypeSvcFacade) *packagingTypeHandler {
	return &packagingTypeHandler{packagingTypeService: packagingTypeService}
}

// registerPackagingTypeRoutes registers catalog routes. Changing the catalog
// is an admin task; everyone reads it.
func registerPackagingTypeRoutes(rg *gin.RouterGroup, packagingTypeService portssvc.PackagingTypeSvcFacade) {
	h := newPackagingTypeHandler(packagingTypeService)

	packagingTypes := rg.Group("/packaging-types")
	{
		packagingTypes.GET("", h.listPackagingTypes)
		packagingTypes.GET("/:packagingTypeID", h.getPackagingType)
		packagingTypes.POST("", middleware.RequireRole(), h.createPackagingType)
		packagingTypes.PUT("/:packagingTypeID", middleware.RequireRole(), h.updatePackagingType)
		packagingTypes.DELETE("/:packagingTypeID", middleware.RequireRole(), h.deletePackagingType)
	}
}

// createPackagingType godoc
// @Summary Create a packaging type
// @Description Creates a catalog entry with its size/price list
// @Tags packaging-types
// @Accept  json
// @Produce  json
// @Param   packagingType body dto.CreatePackagingTypeRequest true "Packaging type details"
// @Success 201 {object} dto.PackagingTypeResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Name already in catalog"
// @Failure 500 {object} map[string]string "Failed to create packaging type"
// @Security BearerAuth
// @Router /packaging-types [post]
func (h *packagingTypeHandler) createPackagingType(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreatePackagingTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	packagingType, err := h.packagingTypeService.CreatePackagingType(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create packaging type", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create packaging type"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToPackagingTypeResponse(packagingType))
}

// getPackagingType godoc
// @Summary Get a packaging type by ID
// @Tags packaging-types
// @Produce  json
// @Param   packagingTypeID path string true "Packaging type ID (UUID)"
// @Success 200 {object} dto.PackagingTypeResponse
// @Failure 404 {object} map[string]string "Packaging type not found"
// @Failure 500 {object} map[string]string "Failed to retrieve packaging type"
// @Security BearerAuth
// @Router /packaging-types/{packagingTypeID} [get]
func (h *packagingTypeHandler) getPackagingType(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	packagingTypeID := c.Param("packagingTypeID")

	packagingType, err := h.packagingTypeService.GetPackagingTypeByID(c.Request.Context(), packagingTypeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Packaging type not found"})
		} else {
			logger.Error("Failed to get packaging type", slog.String("packaging_type_id", packagingTypeID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve packaging type"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPackagingTypeResponse(packagingType))
}

// listPackagingTypes godoc
// @Summary List all packaging types
// @Tags packaging-types
// @Produce  json
// @Success 200 {array} dto.PackagingTypeResponse
// @Failure 500 {object} map[string]string "Failed to list packaging types"
// @Security BearerAuth
// @Router /packaging-types [get]
func (h *packagingTypeHandler) listPackagingTypes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	packagingTypes, err := h.packagingTypeService.ListPackagingTypes(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list packaging types", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list packaging types"})
		return
	}

	resp := make([]dto.PackagingTypeResponse, 0, len(packagingTypes))
	for i := range packagingTypes {
		resp = append(resp, dto.ToPackagingTypeResponse(&packagingTypes[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// updatePackagingType godoc
// @Summary Update a packaging type
// @Description Replaces the size/price list. Existing orders keep their frozen prices
// @Tags packaging-types
// @Accept  json
// @Produce  json
// @Param   packagingTypeID path string true "Packaging type ID (UUID)"
// @Param   packagingType body dto.UpdatePackagingTypeRequest true "Fields to update"
// @Success 200 {object} dto.PackagingTypeResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Packaging type not found"
// @Failure 500 {object} map[string]string "Failed to update packaging type"
// @Security BearerAuth
// @Router /packaging-types/{packagingTypeID} [put]
func (h *packagingTypeHandler) updatePackagingType(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	packagingTypeID := c.Param("packagingTypeID")

	var req dto.UpdatePackagingTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	packagingType, err := h.packagingTypeService.UpdatePackagingType(c.Request.Context(), packagingTypeID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Packaging type not found"})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update packaging type", slog.String("packaging_type_id", packagingTypeID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update packaging type"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPackagingTypeResponse(packagingType))
}

// deletePackagingType godoc
// @Summary Delete a packaging type
// @Tags packaging-types
// @Produce  json
// @Param   packagingTypeID path string true "Packaging type ID (UUID)"
// @Success 204 "Packaging type deleted"
// @Failure 404 {object} map[string]string "Packaging type not found"
// @Failure 500 {object} map[string]string "Failed to delete packaging type"
// @Security BearerAuth
// @Router /packaging-types/{packagingTypeID} [delete]
func (h *packagingTypeHandler) deletePackagingType(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	packagingTypeID := c.Param("packagingTypeID")

	if err := h.packagingTypeService.DeletePackagingType(c.Request.Context(), packagingTypeID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Packaging type not found"})
		} else {
			logger.Error("Failed to delete packaging type", slog.String("packaging_type_id", packagingTypeID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete packaging type"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
