package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"hotel_admin_backend/internal/models"
	"hotel_admin_backend/internal/repositories"
)

// --- Custom Service Errors for Guest ---
var (
	ErrGuestNotFound     = errors.New("guest not found")
	ErrGuestValidation   = errors.New("guest data validation error")
	ErrPhoneNumberExists = errors.New("phone number already exists")
	ErrEmailExists       = errors.New("email already exists")
	ErrGuestInUse        = errors.New("guest is referenced by existing bookings")
)

// --- Guest DTOs ---

type CreateGuestRequest struct {
	FullName       string  `json:"full_name" binding:"required"`
	PhoneNumber    *string `json:"phone_number"`
	Email          *string `json:"email" binding:"omitempty,email"`
	Nationality    *string `json:"nationality"`
	PassportNumber *string `json:"passport_number"`
	Notes          *string `json:"notes"`
}

type UpdateGuestRequest struct {
	FullName       *string `json:"full_name"`
	PhoneNumber    *string `json:"phone_number"`
	Email          *string `json:"email" binding:"omitempty,email"`
	Nationality    *string `json:"nationality"`
	PassportNumber *string `json:"passport_number"`
	Notes          *string `json:"notes"`
}

// --- GuestService Interface ---
type GuestService interface {
	CreateGuest(req CreateGuestRequest) (*models.Guest, error)
	GetGuestByID(guestID int64) (*models.Guest, error)
	GetGuests(page, pageSize int, searchTerm *string) ([]models.Guest, int, error)
	UpdateGuest(guestID int64, req UpdateGuestRequest) (*models.Guest, error)
	DeleteGuest(guestID int64) error
}

type guestService struct {
	guestRepo repositories.GuestRepository
	db        *sql.DB
}

// NewGuestService creates a new instance of GuestService.
func NewGuestService(gr repositories.GuestRepository, db *sql.DB) GuestService {
	return &guestService{guestRepo: gr, db: db}
}

// mapGuestDuplicateError maps a repository duplicate-key error to the service
// sentinel matching the violated constraint.
func mapGuestDuplicateError(err error) error {
	if strings.Contains(err.Error(), "guests_phone_number_key") {
		return ErrPhoneNumberExists
	}
	if strings.Contains(err.Error(), "guests_email_key") {
		return ErrEmailExists
	}
	return fmt.Errorf("%w: phone number or email already taken", ErrGuestValidation)
}

func (s *guestService) CreateGuest(req CreateGuestRequest) (*models.Guest, error) {
	if strings.TrimSpace(req.FullName) == "" {
		return nil, fmt.Errorf("%w: full name is required", ErrGuestValidation)
	}

	guest := &models.Guest{
		FullName:       req.FullName,
		PhoneNumber:    req.PhoneNumber,
		Email:          req.Email,
		Nationality:    req.Nationality,
		PassportNumber: req.PassportNumber,
		Notes:          req.Notes,
	}

	if _, err := s.guestRepo.CreateGuest(s.db, guest); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, mapGuestDuplicateError(err)
		}
		return nil, fmt.Errorf("failed to create guest: %w", err)
	}
	return guest, nil
}

func (s *guestService) GetGuestByID(guestID int64) (*models.Guest, error) {
	guest, err := s.guestRepo.GetGuestByID(guestID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, fmt.Errorf("failed to get guest by ID: %w", err)
	}
	return guest, nil
}

func (s *guestService) GetGuests(page, pageSize int, searchTerm *string) ([]models.Guest, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	guests, totalCount, err := s.guestRepo.GetGuests(page, pageSize, searchTerm)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get guests: %w", err)
	}
	return guests, totalCount, nil
}

func (s *guestService) UpdateGuest(guestID int64, req UpdateGuestRequest) (*models.Guest, error) {
	guest, err := s.guestRepo.GetGuestByID(guestID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, fmt.Errorf("failed to find guest for update: %w", err)
	}

	if req.FullName != nil {
		if strings.TrimSpace(*req.FullName) == "" {
			return nil, fmt.Errorf("%w: full name cannot be empty", ErrGuestValidation)
		}
		guest.FullName = *req.FullName
	}
	if req.PhoneNumber != nil {
		guest.PhoneNumber = req.PhoneNumber
	}
	if req.Email != nil {
		guest.Email = req.Email
	}
	if req.Nationality != nil {
		guest.Nationality = req.Nationality
	}
	if req.PassportNumber != nil {
		guest.PassportNumber = req.PassportNumber
	}
	if req.Notes != nil {
		guest.Notes = req.Notes
	}

	if err := s.guestRepo.UpdateGuest(s.db, guest); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, mapGuestDuplicateError(err)
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, fmt.Errorf("failed to update guest: %w", err)
	}
	return guest, nil
}

func (s *guestService) DeleteGuest(guestID int64) error {
	if _, err := s.guestRepo.GetGuestByID(guestID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrGuestNotFound
		}
		return fmt.Errorf("failed to find guest for deletion: %w", err)
	}
	if err := s.guestRepo.DeleteGuest(s.db, guestID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrGuestNotFound
		}
		// Foreign key violations surface as generic database errors; bookings
		// keep their guest reference, so deletion is refused by the database.
		return fmt.Errorf("%w: %v", ErrGuestInUse, err)
	}
	return nil
}
