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

// vehicleHandler handles HTTP requests related to vehicles.
type vehicleHandler struct {
	vehicleService portssvc.VehicleSvcFacade
}

// newVehicleHandler creates a new vehicleHandler.
func newVehicleHandler(vs portssvc.VehicleSvcFacade) *vehicleHandler {
	return &vehicleHandler{
		vehicleService: vs,
	}
}

// registerVehicleRoutes registers routes related to vehicles.
func registerVehicleRoutes(rg *gin.RouterGroup, vehicleService portssvc.VehicleSvcFacade) {
	h := newVehicleHandler(vehicleService)

	vehicles := rg.Group("/vehicles")
	{
		vehicles.POST("", h.createVehicle)
		vehicles.GET("/:vehicleID", h.getVehicle)
		vehicles.PUT("/:vehicleID", h.updateVehicle)
	}
}

// createVehicle godoc
// @Summary Register a vehicle
// @Description Registers a vehicle under an existing customer
// @Tags vehicles
// @Accept  json
// @Produce  json
// @Param   vehicle body dto.CreateVehicleRequest true "Vehicle details"
// @Success 201 {object} dto.VehicleResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 500 {object} map[string]string "Failed to register vehicle"
// @Router /vehicles [post]
func (h *vehicleHandler) createVehicle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateVehicle", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	operatorID := middleware.GetOperatorIDFromContext(c)

	createdVehicle, err := h.vehicleService.CreateVehicle(c.Request.Context(), req, operatorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "Vehicle already registered"})
		} else {
			logger.Error("Failed to register vehicle in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register vehicle"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToVehicleResponse(createdVehicle))
}

// getVehicle godoc
// @Summary Get a vehicle by ID
// @Description Retrieves details for a specific vehicle
// @Tags vehicles
// @Produce  json
// @Param   vehicleID path string true "Vehicle ID"
// @Success 200 {object} dto.VehicleResponse
// @Failure 404 {object} map[string]string "Vehicle not found"
// @Failure 500 {object} map[string]string "Failed to retrieve vehicle"
// @Router /vehicles/{vehicleID} [get]
func (h *vehicleHandler) getVehicle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	vehicleID := c.Param("vehicleID")

	vehicle, err := h.vehicleService.GetVehicleByID(c.Request.Context(), vehicleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		} else {
			logger.Error("Failed to get vehicle from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve vehicle"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToVehicleResponse(vehicle))
}

// updateVehicle godoc
// @Summary Update a vehicle
// @Description Updates a vehicle's details; absent fields are left unchanged
// @Tags vehicles
// @Accept  json
// @Produce  json
// @Param   vehicleID path string true "Vehicle ID"
// @Param   vehicle body dto.UpdateVehicleRequest true "Fields to update"
// @Success 200 {object} dto.VehicleResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Vehicle not found"
// @Failure 500 {object} map[string]string "Failed to update vehicle"
// @Router /vehicles/{vehicleID} [put]
func (h *vehicleHandler) updateVehicle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	vehicleID := c.Param("vehicleID")

	var req dto.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateVehicle", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	operatorID := middleware.GetOperatorIDFromContext(c)

	updatedVehicle, err := h.vehicleService.UpdateVehicle(c.Request.Context(), vehicleID, req, operatorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update vehicle in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update vehicle"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToVehicleResponse(updatedVehicle))
}
