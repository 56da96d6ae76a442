package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"hotel_admin_backend/internal/services"
	"hotel_admin_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// GuestHandler holds the guest service.
type GuestHandler struct {
	guestService services.GuestService
}

// NewGuestHandler creates a new GuestHandler.
func NewGuestHandler(gs services.GuestService) *GuestHandler {
	return &GuestHandler{guestService: gs}
}

func respondGuestError(c *gin.Context, err error, action string) {
	utils.LogError(err, action+": Error from guestService")
	switch {
	case errors.Is(err, services.ErrGuestNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Guest not found.", err.Error()))
	case errors.Is(err, services.ErrPhoneNumberExists):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Phone number already exists.", err.Error()))
	case errors.Is(err, services.ErrEmailExists):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Email already exists.", err.Error()))
	case errors.Is(err, services.ErrGuestInUse):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Guest cannot be deleted as they are referenced by bookings.", err.Error()))
	case errors.Is(err, services.ErrGuestValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to process guest.", "Internal error"))
	}
}

// CreateGuest handles the creation of a new guest.
func (h *GuestHandler) CreateGuest(c *gin.Context) {
	var req services.CreateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateGuest: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	guest, err := h.guestService.CreateGuest(req)
	if err != nil {
		respondGuestError(c, err, "CreateGuest")
		return
	}
	c.JSON(http.StatusCreated, guest)
}

// GetGuests handles fetching guests with pagination and search.
func (h *GuestHandler) GetGuests(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	var searchTerm *string
	if search := c.Query("search"); search != "" {
		searchTerm = &search
	}

	guests, totalCount, err := h.guestService.GetGuests(page, pageSize, searchTerm)
	if err != nil {
		respondGuestError(c, err, "GetGuests")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      guests,
		"total":     totalCount,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetGuestByID handles fetching a single guest by ID.
func (h *GuestHandler) GetGuestByID(c *gin.Context) {
	guestID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid guest ID format.", err.Error()))
		return
	}

	guest, err := h.guestService.GetGuestByID(guestID)
	if err != nil {
		respondGuestError(c, err, "GetGuestByID")
		return
	}
	c.JSON(http.StatusOK, guest)
}

// UpdateGuest handles updating a guest.
func (h *GuestHandler) UpdateGuest(c *gin.Context) {
	guestID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid guest ID format.", err.Error()))
		return
	}

	var req services.UpdateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateGuest: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	guest, err := h.guestService.UpdateGuest(guestID, req)
	if err != nil {
		respondGuestError(c, err, "UpdateGuest")
		return
	}
	c.JSON(http.StatusOK, guest)
}

// DeleteGuest handles deleting a guest.
func (h *GuestHandler) DeleteGuest(c *gin.Context) {
	guestID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid guest ID format.", err.Error()))
		return
	}

	if err := h.guestService.DeleteGuest(guestID); err != nil {
		respondGuestError(c, err, "DeleteGuest")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Guest deleted successfully"})
}
