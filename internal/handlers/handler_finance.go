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

// financeHandler exposes the finance log to manager reporting.
type financeHandler struct {
	financeService portssvc.FinanceSvcFacade
}

func newFinanceHandler(financeService portssvc.FinanceSvcFacade) *financeHandler {
	return &financeHandler{financeService: financeService}
}

// registerFinanceRoutes registers finance reporting routes for managers.
func registerFinanceRoutes(rg *gin.RouterGroup, financeService portssvc.FinanceSvcFacade) {
	h := newFinanceHandler(financeService)

	finance := rg.Group("/finance", middleware.RequireRole(domain.RoleManajer))
	{
		finance.GET("/entries", h.listEntries)
		finance.GET("/summary", h.summarizeIncome)
	}
}

// listEntries godoc
// @Summary List finance log entries
// @Description Retrieves income entries for a date window, newest first
// @Tags finance
// @Produce  json
// @Param   from query string false "Window start (YYYY-MM-DD, inclusive)"
// @Param   to query string false "Window end (YYYY-MM-DD, exclusive)"
// @Param   limit query int false "Page size (default 20, max 100)"
// @Param   nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} dto.ListFinanceEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list finance entries"
// @Security BearerAuth
// @Router /finance/entries [get]
func (h *financeHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListFinanceEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.financeService.ListEntries(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list finance entries", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list finance entries"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// summarizeIncome godoc
// @Summary Summarize income
// @Description Aggregates income totals per payment method over a date window
// @Tags finance
// @Produce  json
// @Param   from query string false "Window start (YYYY-MM-DD, inclusive)"
// @Param   to query string false "Window end (YYYY-MM-DD, exclusive)"
// @Success 200 {object} dto.FinanceSummaryResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to summarize income"
// @Security BearerAuth
// @Router /finance/summary [get]
func (h *financeHandler) summarizeIncome(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.FinanceSummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.financeService.SummarizeIncome(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to summarize income", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to summarize income"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
