package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rkalra23/workshop_mgmt_app/internal/apperrors"
	portssvc "github.com/rkalra23/workshop_mgmt_app/internal/core/ports/services"
	"github.com/rkalra23/workshop_mgmt_app/internal/dto"
	"github.com/rkalra23/workshop_mgmt_app/internal/middleware"
)

// stockItemHandler handles HTTP requests related to the stock catalog.
type stockItemHandler struct {
	inventoryService portssvc.InventorySvcFacade
}

// newStockItemHandler creates a new stockItemHandler.
func newStockItemHandler(is portssvc.InventorySvcFacade) *stockItemHandler {
	return &stockItemHandler{
		inventoryService: is,
	}
}

// registerStockItemRoutes registers routes related to stock items.
func registerStockItemRoutes(rg *gin.RouterGroup, inventoryService portssvc.InventorySvcFacade) {
	h := newStockItemHandler(inventoryService)

	stockItems := rg.Group("/stock-items")
	{
		stockItems.POST("", h.createStockItem)
		stockItems.GET("", h.listStockItems)
		stockItems.GET("/:stockItemID", h.getStockItem)
		stockItems.PUT("/:stockItemID", h.updateStockItem)
		stockItems.POST("/:stockItemID/restock", h.restock)
		stockItems.DELETE("/:stockItemID", h.deactivateStockItem)
	}
}

// createStockItem godoc
// @Summary Create a stock item
// @Description Adds a goods or service entry to the catalog
// @Tags stock-items
// @Accept  json
// @Produce  json
// @Param   stockItem body dto.CreateStockItemRequest true "Stock item details"
// @Success 201 {object} dto.StockItemResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "SKU already exists"
// @Failure 500 {object} map[string]string "Failed to create stock item"
// @Router /stock-items [post]
func (h *stockItemHandler) createStockItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateStockItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateStockItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	operatorID := middleware.GetOperatorIDFromContext(c)

	createdItem, err := h.inventoryService.CreateStockItem(c.Request.Context(), req, operatorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "SKU already exists"})
		} else {
			logger.Error("Failed to create stock item in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create stock item"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToStockItemResponse(createdItem))
}

// getStockItem godoc
// @Summary Get a stock item by ID
// @Description Retrieves a catalog entry including on-hand, reserved and available quantities
// @Tags stock-items
// @Produce  json
// @Param   stockItemID path string true "Stock Item ID"
// @Success 200 {object} dto.StockItemResponse
// @Failure 404 {object} map[string]string "Stock item not found"
// @Failure 500 {object} map[string]string "Failed to retrieve stock item"
// @Router /stock-items/{stockItemID} [get]
func (h *stockItemHandler) getStockItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	stockItemID := c.Param("stockItemID")

	item, err := h.inventoryService.GetStockItemByID(c.Request.Context(), stockItemID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Stock item not found"})
		} else {
			logger.Error("Failed to get stock item from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve stock item"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToStockItemResponse(item))
}

// listStockItems godoc
// @Summary List stock items
// @Description Retrieves a paginated list of active catalog entries
// @Tags stock-items
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {array} dto.StockItemResponse
// @Failure 500 {object} map[string]string "Failed to list stock items"
// @Router /stock-items [get]
func (h *stockItemHandler) listStockItems(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, err := h.inventoryService.ListStockItems(c.Request.Context(), limit, offset)
	if err != nil {
		logger.Error("Failed to list stock items from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list stock items"})
		return
	}

	c.JSON(http.StatusOK, dto.ToStockItemResponses(items))
}

// updateStockItem godoc
// @Summary Update a stock item
// @Description Edits catalog fields of an entry; quantities are managed via restock and order transitions
// @Tags stock-items
// @Accept  json
// @Produce  json
// @Param   stockItemID path string true "Stock Item ID"
// @Param   stockItem body dto.UpdateStockItemRequest true "Fields to update"
// @Success 200 {object} dto.StockItemResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Stock item not found"
// @Failure 409 {object} map[string]string "SKU already exists"
// @Failure 500 {object} map[string]string "Failed to update stock item"
// @Router /stock-items/{stockItemID} [put]
func (h *stockItemHandler) updateStockItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	stockItemID := c.Param("stockItemID")

	var req dto.UpdateStockItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateStockItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	operatorID := middleware.GetOperatorIDFromContext(c)

	item, err := h.inventoryService.UpdateStockItem(c.Request.Context(), stockItemID, req, operatorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Stock item not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "SKU already exists"})
		} else {
			logger.Error("Failed to update stock item in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stock item"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToStockItemResponse(item))
}

// restock godoc
// @Summary Restock a goods item
// @Description Adds on-hand quantity to a goods catalog entry
// @Tags stock-items
// @Accept  json
// @Produce  json
// @Param   stockItemID path string true "Stock Item ID"
// @Param   restock body dto.RestockRequest true "Quantity to add"
// @Success 200 {object} dto.StockItemResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Stock item not found"
// @Failure 500 {object} map[string]string "Failed to restock"
// @Router /stock-items/{stockItemID}/restock [post]
func (h *stockItemHandler) restock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	stockItemID := c.Param("stockItemID")

	var req dto.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Restock", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	operatorID := middleware.GetOperatorIDFromContext(c)

	item, err := h.inventoryService.Restock(c.Request.Context(), stockItemID, req.Quantity, operatorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Stock item not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to restock in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to restock"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToStockItemResponse(item))
}

// deactivateStockItem godoc
// @Summary Deactivate a stock item
// @Description Removes a catalog entry from sale; existing order lines keep referencing it
// @Tags stock-items
// @Produce  json
// @Param   stockItemID path string true "Stock Item ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Stock item not found"
// @Failure 500 {object} map[string]string "Failed to deactivate stock item"
// @Router /stock-items/{stockItemID} [delete]
func (h *stockItemHandler) deactivateStockItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	stockItemID := c.Param("stockItemID")

	operatorID := middleware.GetOperatorIDFromContext(c)

	err := h.inventoryService.DeactivateStockItem(c.Request.Context(), stockItemID, operatorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Stock item not found"})
		} else {
			logger.Error("Failed to deactivate stock item in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate stock item"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
