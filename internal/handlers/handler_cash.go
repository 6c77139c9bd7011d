package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rkalra23/workshop_mgmt_app/internal/apperrors"
	portssvc "github.com/rkalra23/workshop_mgmt_app/internal/core/ports/services"
	"github.com/rkalra23/workshop_mgmt_app/internal/dto"
	"github.com/rkalra23/workshop_mgmt_app/internal/middleware"
)

// cashMovementHandler handles HTTP requests related to the cash ledger.
type cashMovementHandler struct {
	cashService portssvc.CashSvcFacade
}

// newCashMovementHandler creates a new cashMovementHandler.
func newCashMovementHandler(cs portssvc.CashSvcFacade) *cashMovementHandler {
	return &cashMovementHandler{
		cashService: cs,
	}
}

// registerCashMovementRoutes registers routes related to cash movements.
func registerCashMovementRoutes(rg *gin.RouterGroup, cashService portssvc.CashSvcFacade) {
	h := newCashMovementHandler(cashService)

	cashMovements := rg.Group("/cash-movements")
	{
		cashMovements.POST("", h.recordMovement)
		cashMovements.GET("", h.listMovements)
		cashMovements.GET("/by-reference", h.listMovementsByReference)
		cashMovements.GET("/balance", h.getBalance)
	}
}

// recordMovement godoc
// @Summary Record a cash movement
// @Description Appends a direct income or expense entry to the cash ledger
// @Tags cash-movements
// @Accept  json
// @Produce  json
// @Param   movement body dto.CreateCashMovementRequest true "Movement details"
// @Success 201 {object} dto.CashMovementResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to record movement"
// @Router /cash-movements [post]
func (h *cashMovementHandler) recordMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCashMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordMovement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	operatorID := middleware.GetOperatorIDFromContext(c)

	movement, err := h.cashService.RecordMovement(c.Request.Context(), req, operatorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to record cash movement in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record movement"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToCashMovementResponse(movement))
}

// listMovements godoc
// @Summary List cash movements
// @Description Retrieves a paginated list of ledger entries, newest first
// @Tags cash-movements
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {array} dto.CashMovementResponse
// @Failure 500 {object} map[string]string "Failed to list movements"
// @Router /cash-movements [get]
func (h *cashMovementHandler) listMovements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListCashMovementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	movements, err := h.cashService.ListMovements(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list cash movements from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list movements"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCashMovementResponses(movements))
}

// listMovementsByReference godoc
// @Summary List cash movements by reference
// @Description Retrieves the ledger entries posted against an order or obligation
// @Tags cash-movements
// @Produce  json
// @Param   kind query string true "Reference kind" Enums(ORDER, OBLIGATION, MANUAL)
// @Param   referenceID query string true "Referenced order or obligation ID"
// @Success 200 {array} dto.CashMovementResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list movements"
// @Router /cash-movements/by-reference [get]
func (h *cashMovementHandler) listMovementsByReference(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListMovementsByReferenceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	movements, err := h.cashService.ListMovementsByReference(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list cash movements by reference from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list movements"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCashMovementResponses(movements))
}

// getBalance godoc
// @Summary Get the cash balance
// @Description Computes income minus expense over all movements up to a point in time
// @Tags cash-movements
// @Produce  json
// @Param   asOf query string false "Balance as of this RFC3339 instant (default now)"
// @Success 200 {object} dto.BalanceResponse
// @Failure 400 {object} map[string]string "Invalid asOf"
// @Failure 500 {object} map[string]string "Failed to compute balance"
// @Router /cash-movements/balance [get]
func (h *cashMovementHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var asOf *time.Time
	if raw := c.Query("asOf"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "asOf must be RFC3339: " + err.Error()})
			return
		}
		asOf = &parsed
	}

	balance, at, err := h.cashService.Balance(c.Request.Context(), asOf)
	if err != nil {
		logger.Error("Failed to compute cash balance in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balance"})
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{Balance: balance, AsOf: at})
}
