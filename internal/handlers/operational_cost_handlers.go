package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"hotel_admin_backend/internal/services"
	"hotel_admin_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// OperationalCostHandler holds the operational cost service.
type OperationalCostHandler struct {
	costService services.OperationalCostService
}

// NewOperationalCostHandler creates a new OperationalCostHandler.
func NewOperationalCostHandler(ocs services.OperationalCostService) *OperationalCostHandler {
	return &OperationalCostHandler{costService: ocs}
}

func respondOperationalCostError(c *gin.Context, err error, action string) {
	utils.LogError(err, action+": Error from operationalCostService")
	switch {
	case errors.Is(err, services.ErrBookingNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Booking not found.", err.Error()))
	case errors.Is(err, services.ErrOperationalCostNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Operational cost not found.", err.Error()))
	case errors.Is(err, services.ErrOperationalCostValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to process operational cost.", "Internal error"))
	}
}

// AddOperationalCost records a new cost against a booking.
func (h *OperationalCostHandler) AddOperationalCost(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid booking ID format.", err.Error()))
		return
	}

	var req services.CreateOperationalCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "AddOperationalCost: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	cost, err := h.costService.AddOperationalCost(bookingID, req)
	if err != nil {
		respondOperationalCostError(c, err, "AddOperationalCost")
		return
	}
	c.JSON(http.StatusCreated, cost)
}

// GetOperationalCosts lists the costs of a booking.
func (h *OperationalCostHandler) GetOperationalCosts(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid booking ID format.", err.Error()))
		return
	}

	costs, err := h.costService.GetOperationalCosts(bookingID)
	if err != nil {
		respondOperationalCostError(c, err, "GetOperationalCosts")
		return
	}
	c.JSON(http.StatusOK, costs)
}

// DeleteOperationalCost removes one cost entry of a booking.
func (h *OperationalCostHandler) DeleteOperationalCost(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid booking ID format.", err.Error()))
		return
	}
	costID, err := strconv.ParseInt(c.Param("costId"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid cost ID format.", err.Error()))
		return
	}

	if err := h.costService.DeleteOperationalCost(bookingID, costID); err != nil {
		respondOperationalCostError(c, err, "DeleteOperationalCost")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Operational cost deleted successfully"})
}
