package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"hotel_admin_backend/internal/models"
	"hotel_admin_backend/internal/services"
	"hotel_admin_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const bookingDateLayout = "2006-01-02"

// BookingHandler holds the booking service.
type BookingHandler struct {
	bookingService services.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bs services.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bs}
}

func respondBookingError(c *gin.Context, err error, action string) {
	utils.LogError(err, action+": Error from bookingService")
	switch {
	case errors.Is(err, services.ErrBookingNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Booking not found.", err.Error()))
	case errors.Is(err, services.ErrGuestForBookingNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Guest specified for booking not found.", err.Error()))
	case errors.Is(err, services.ErrBookingValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
	case errors.Is(err, services.ErrBookingStatusUpdate):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Invalid booking status transition.", err.Error()))
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to process booking.", "Internal error"))
	}
}

// CreateBooking handles the creation of a new booking with its items.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req services.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateBooking: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	booking, err := h.bookingService.CreateBooking(req)
	if err != nil {
		respondBookingError(c, err, "CreateBooking")
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// GetBookings handles listing bookings with filters and pagination.
func (h *BookingHandler) GetBookings(c *gin.Context) {
	var filters models.BookingFilters

	filters.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filters.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "10"))

	if guestIDStr := c.Query("guest_id"); guestIDStr != "" {
		if id, err := strconv.ParseInt(guestIDStr, 10, 64); err == nil {
			filters.GuestID = &id
		}
	}
	if city := c.Query("city"); models.IsValidCity(city) {
		filters.City = &city
	}
	if status := c.Query("status"); models.IsValidBookingStatus(status) {
		filters.Status = &status
	}
	if dateFromStr := c.Query("date_from"); dateFromStr != "" {
		if t, err := time.Parse(bookingDateLayout, dateFromStr); err == nil {
			filters.DateFrom = &t
		}
	}
	if dateToStr := c.Query("date_to"); dateToStr != "" {
		if t, err := time.Parse(bookingDateLayout, dateToStr); err == nil {
			filters.DateTo = &t
		}
	}

	bookings, totalCount, err := h.bookingService.GetBookings(filters)
	if err != nil {
		respondBookingError(c, err, "GetBookings")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      bookings,
		"total":     totalCount,
		"page":      filters.Page,
		"page_size": filters.PageSize,
	})
}

// GetBookingByID handles fetching a single booking with items and costs.
func (h *BookingHandler) GetBookingByID(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid booking ID format.", err.Error()))
		return
	}

	booking, err := h.bookingService.GetBookingByID(bookingID)
	if err != nil {
		respondBookingError(c, err, "GetBookingByID")
		return
	}
	c.JSON(http.StatusOK, booking)
}

// UpdateBooking handles updating a booking.
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid booking ID format.", err.Error()))
		return
	}

	var req services.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateBooking: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	booking, err := h.bookingService.UpdateBooking(bookingID, req)
	if err != nil {
		respondBookingError(c, err, "UpdateBooking")
		return
	}
	c.JSON(http.StatusOK, booking)
}

// ConfirmBooking transitions a booking to the confirmed status.
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	h.updateStatus(c, h.bookingService.ConfirmBooking, "ConfirmBooking")
}

// CancelBooking transitions a booking to the cancelled status.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	h.updateStatus(c, h.bookingService.CancelBooking, "CancelBooking")
}

func (h *BookingHandler) updateStatus(c *gin.Context, transition func(int64) (*models.Booking, error), action string) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid booking ID format.", err.Error()))
		return
	}

	booking, err := transition(bookingID)
	if err != nil {
		respondBookingError(c, err, action)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// DeleteBooking handles deleting a booking.
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid booking ID format.", err.Error()))
		return
	}

	if err := h.bookingService.DeleteBooking(bookingID); err != nil {
		respondBookingError(c, err, "DeleteBooking")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}
