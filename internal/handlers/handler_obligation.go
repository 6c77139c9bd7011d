package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rkalra23/workshop_mgmt_app/internal/apperrors"
	portssvc "github.com/rkalra23/workshop_mgmt_app/internal/core/ports/services"
	"github.com/rkalra23/workshop_mgmt_app/internal/dto"
	"github.com/rkalra23/workshop_mgmt_app/internal/middleware"
)

// obligationHandler handles HTTP requests related to payables and receivables.
type obligationHandler struct {
	accountsService portssvc.AccountsSvcFacade
}

// newObligationHandler creates a new obligationHandler.
func newObligationHandler(as portssvc.AccountsSvcFacade) *obligationHandler {
	return &obligationHandler{
		accountsService: as,
	}
}

// registerObligationRoutes registers routes related to obligations.
func registerObligationRoutes(rg *gin.RouterGroup, accountsService portssvc.AccountsSvcFacade) {
	h := newObligationHandler(accountsService)

	obligations := rg.Group("/obligations")
	{
		obligations.POST("", h.openObligation)
		obligations.GET("", h.listObligations)
		obligations.GET("/:obligationID", h.getObligation)
		obligations.POST("/:obligationID/settle", h.settleObligation)
		obligations.POST("/:obligationID/cancel", h.cancelObligation)
	}

	rg.GET("/orders/:orderID/obligations", h.listObligationsByOrder)
}

// openObligation godoc
// @Summary Open an obligation
// @Description Opens a standalone payable or receivable against a customer
// @Tags obligations
// @Accept  json
// @Produce  json
// @Param   obligation body dto.OpenObligationRequest true "Obligation details"
// @Success 201 {object} dto.ObligationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 500 {object} map[string]string "Failed to open obligation"
// @Router /obligations [post]
func (h *obligationHandler) openObligation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.OpenObligationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for OpenObligation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	operatorID := middleware.GetOperatorIDFromContext(c)

	obligation, err := h.accountsService.OpenObligation(c.Request.Context(), req, operatorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		} else {
			logger.Error("Failed to open obligation in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open obligation"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToObligationResponse(obligation))
}

// getObligation godoc
// @Summary Get an obligation by ID
// @Description Retrieves details for a specific obligation
// @Tags obligations
// @Produce  json
// @Param   obligationID path string true "Obligation ID"
// @Success 200 {object} dto.ObligationResponse
// @Failure 404 {object} map[string]string "Obligation not found"
// @Failure 500 {object} map[string]string "Failed to retrieve obligation"
// @Router /obligations/{obligationID} [get]
func (h *obligationHandler) getObligation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	obligationID := c.Param("obligationID")

	obligation, err := h.accountsService.GetObligationByID(c.Request.Context(), obligationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Obligation not found"})
		} else {
			logger.Error("Failed to get obligation from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve obligation"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToObligationResponse(obligation))
}

// listObligations godoc
// @Summary List obligations
// @Description Retrieves obligations filtered by optional status and direction
// @Tags obligations
// @Produce  json
// @Param   status query string false "Status" Enums(PENDING, SETTLED, CANCELLED)
// @Param   direction query string false "Direction" Enums(PAYABLE, RECEIVABLE)
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {array} dto.ObligationResponse
// @Failure 400 {object} map[string]string "Invalid filters"
// @Failure 500 {object} map[string]string "Failed to list obligations"
// @Router /obligations [get]
func (h *obligationHandler) listObligations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListObligationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	obligations, err := h.accountsService.ListObligations(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list obligations from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list obligations"})
		return
	}

	c.JSON(http.StatusOK, dto.ToObligationResponses(obligations))
}

// listObligationsByOrder godoc
// @Summary List obligations for an order
// @Description Retrieves the installment receivables opened when the order was completed
// @Tags obligations
// @Produce  json
// @Param   orderID path string true "Order ID"
// @Success 200 {array} dto.ObligationResponse
// @Failure 500 {object} map[string]string "Failed to list obligations"
// @Router /orders/{orderID}/obligations [get]
func (h *obligationHandler) listObligationsByOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("orderID")

	obligations, err := h.accountsService.ListObligationsByOrder(c.Request.Context(), orderID)
	if err != nil {
		logger.Error("Failed to list obligations by order from service", slog.String("error", err.Error()), slog.String("order_id", orderID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list obligations"})
		return
	}

	c.JSON(http.StatusOK, dto.ToObligationResponses(obligations))
}

// settleObligation godoc
// @Summary Settle an obligation
// @Description Marks a pending obligation settled and appends the matching cash movement atomically
// @Tags obligations
// @Accept  json
// @Produce  json
// @Param   obligationID path string true "Obligation ID"
// @Param   settlement body dto.SettleObligationRequest true "Settlement details"
// @Success 200 {object} dto.SettlementResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Obligation not found"
// @Failure 409 {object} map[string]string "Already settled or over-settlement"
// @Failure 500 {object} map[string]string "Failed to settle obligation"
// @Router /obligations/{obligationID}/settle [post]
func (h *obligationHandler) settleObligation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	obligationID := c.Param("obligationID")

	var req dto.SettleObligationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SettleObligation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	operatorID := middleware.GetOperatorIDFromContext(c)

	obligation, movement, err := h.accountsService.SettleObligation(c.Request.Context(), obligationID, req, operatorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Obligation not found"})
		} else if errors.Is(err, apperrors.ErrAlreadySettled) || errors.Is(err, apperrors.ErrOverSettlement) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to settle obligation in service", slog.String("error", err.Error()), slog.String("obligation_id", obligationID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to settle obligation"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.SettlementResponse{
		Obligation:   dto.ToObligationResponse(obligation),
		CashMovement: dto.ToCashMovementResponse(movement),
	})
}

// cancelObligation godoc
// @Summary Cancel an obligation
// @Description Cancels a pending obligation with no ledger effect
// @Tags obligations
// @Accept  json
// @Produce  json
// @Param   obligationID path string true "Obligation ID"
// @Param   cancellation body dto.CancelObligationRequest true "Cancellation reason"
// @Success 200 {object} dto.ObligationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Obligation not found"
// @Failure 409 {object} map[string]string "Obligation already left PENDING"
// @Failure 500 {object} map[string]string "Failed to cancel obligation"
// @Router /obligations/{obligationID}/cancel [post]
func (h *obligationHandler) cancelObligation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	obligationID := c.Param("obligationID")

	var req dto.CancelObligationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CancelObligation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	operatorID := middleware.GetOperatorIDFromContext(c)

	obligation, err := h.accountsService.CancelObligation(c.Request.Context(), obligationID, req.Reason, operatorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Obligation not found"})
		} else if errors.Is(err, apperrors.ErrAlreadySettled) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to cancel obligation in service", slog.String("error", err.Error()), slog.String("obligation_id", obligationID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel obligation"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToObligationResponse(obligation))
}
