package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kemasku/packshop_backend/internal/apperrors"
	"github.com/kemasku/packshop_backend/internal/core/domain"
	portssvc "github.com/kemasku/packshop_backend/internal/core/ports/services"
	"github.com/kemasku/packshop_backend/internal/dto"
	"github.com/kemasku/packshop_backend/internal/middleware"
)

// inventoryHandler handles material master data and stock ledger requests.
type inventoryHandler struct {
	inventoryService portssvc.InventorySvcFacade
}

func newInventoryHandler(inventoryService portssvc.InventorySvcFacade) *inventoryHandler {
	return &inventoryHandler{inventoryService: inventoryService}
}

// registerInventoryRoutes registers inventory routes. Writes are restricted
// to the production operator.
func registerInventoryRoutes(rg *gin.RouterGroup, inventoryService portssvc.InventorySvcFacade) {
	h := newInventoryHandler(inventoryService)

	inventory := rg.Group("/inventory")
	{
		inventory.GET("", h.listItems)
		inventory.GET("/logs", h.listLogs)
		inventory.GET("/:itemID", h.getItem)
		inventory.POST("", middleware.RequireRole(domain.RoleOperator), h.createItem)
		inventory.PUT("/:itemID", middleware.RequireRole(domain.RoleOperator), h.updateItem)
		inventory.POST("/:itemID/adjust", middleware.RequireRole(domain.RoleOperator), h.adjustStock)
	}
}

// createItem godoc
// @Summary Register a new inventory item
// @Description Creates a material. A non-zero opening stock is recorded as the first ledger entry
// @Tags inventory
// @Accept  json
// @Produce  json
// @Param   item body dto.CreateInventoryItemRequest true "Item details"
// @Success 201 {object} dto.InventoryItemResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Item already exists"
// @Failure 500 {object} map[string]string "Failed to create item"
// @Security BearerAuth
// @Router /inventory [post]
func (h *inventoryHandler) createItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	item, err := h.inventoryService.CreateItem(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation), errors.Is(err, domain.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create inventory item", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToInventoryItemResponse(item))
}

// getItem godoc
// @Summary Get an inventory item by ID
// @Tags inventory
// @Produce  json
// @Param   itemID path string true "Item ID (UUID)"
// @Success 200 {object} dto.InventoryItemResponse
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 500 {object} map[string]string "Failed to retrieve item"
// @Security BearerAuth
// @Router /inventory/{itemID} [get]
func (h *inventoryHandler) getItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	itemID := c.Param("itemID")

	item, err := h.inventoryService.GetItemByID(c.Request.Context(), itemID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		} else {
			logger.Error("Failed to get inventory item", slog.String("item_id", itemID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve item"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToInventoryItemResponse(item))
}

// listItems godoc
// @Summary List all inventory items
// @Tags inventory
// @Produce  json
// @Success 200 {array} dto.InventoryItemResponse
// @Failure 500 {object} map[string]string "Failed to list items"
// @Security BearerAuth
// @Router /inventory [get]
func (h *inventoryHandler) listItems(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	items, err := h.inventoryService.ListItems(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list inventory items", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list items"})
		return
	}

	resp := make([]dto.InventoryItemResponse, 0, len(items))
	for i := range items {
		resp = append(resp, dto.ToInventoryItemResponse(&items[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// updateItem godoc
// @Summary Update an inventory item
// @Description Updates descriptive fields. Stock is mutated only through adjustments
// @Tags inventory
// @Accept  json
// @Produce  json
// @Param   itemID path string true "Item ID (UUID)"
// @Param   item body dto.UpdateInventoryItemRequest true "Fields to update"
// @Success 200 {object} dto.InventoryItemResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 500 {object} map[string]string "Failed to update item"
// @Security BearerAuth
// @Router /inventory/{itemID} [put]
func (h *inventoryHandler) updateItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	itemID := c.Param("itemID")

	var req dto.UpdateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	item, err := h.inventoryService.UpdateItem(c.Request.Context(), itemID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update inventory item", slog.String("item_id", itemID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToInventoryItemResponse(item))
}

// adjustStock godoc
// @Summary Adjust an item's stock
// @Description Applies one in/out stock mutation and appends an audit log entry
// @Tags inventory
// @Accept  json
// @Produce  json
// @Param   itemID path string true "Item ID (UUID)"
// @Param   adjustment body dto.AdjustStockRequest true "Adjustment details"
// @Success 200 {object} dto.InventoryItemResponse
// @Failure 400 {object} map[string]string "Invalid direction or amount"
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 409 {object} map[string]string "Insufficient stock"
// @Failure 500 {object} map[string]string "Failed to adjust stock"
// @Security BearerAuth
// @Router /inventory/{itemID}/adjust [post]
func (h *inventoryHandler) adjustStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	itemID := c.Param("itemID")

	var req dto.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AdjustStock", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	item, err := h.inventoryService.AdjustStock(c.Request.Context(), itemID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to adjust stock", slog.String("item_id", itemID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to adjust stock"})
		}
		return
	}

	logger.Info("Stock adjusted",
		slog.String("item_id", itemID),
		slog.String("direction", req.Direction),
		slog.String("amount", req.Amount.String()))
	c.JSON(http.StatusOK, dto.ToInventoryItemResponse(item))
}

// listLogs godoc
// @Summary List stock audit log entries
// @Description Retrieves the stock audit trail, newest first, optionally filtered by item
// @Tags inventory
// @Produce  json
// @Param   itemId query string false "Filter by item ID (UUID)"
// @Param   limit query int false "Page size (default 20, max 100)"
// @Param   nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} dto.ListInventoryLogsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list log entries"
// @Security BearerAuth
// @Router /inventory/logs [get]
func (h *inventoryHandler) listLogs(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListInventoryLogsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.inventoryService.ListLogEntries(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list inventory logs", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list log entries"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
