package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"hotel_admin_backend/internal/models"
	"hotel_admin_backend/internal/repositories"
)

// --- Custom Service Errors for OperationalCost ---
var (
	ErrOperationalCostNotFound   = errors.New("operational cost not found")
	ErrOperationalCostValidation = errors.New("operational cost data validation error")
)

// --- OperationalCost DTOs ---

type CreateOperationalCostRequest struct {
	CostCategory string  `json:"cost_category" binding:"required"`
	Amount       float64 `json:"amount" binding:"required"`
	Description  *string `json:"description"`
}

// --- OperationalCostService Interface ---
type OperationalCostService interface {
	AddOperationalCost(bookingID int64, req CreateOperationalCostRequest) (*models.OperationalCost, error)
	GetOperationalCosts(bookingID int64) ([]models.OperationalCost, error)
	DeleteOperationalCost(bookingID, costID int64) error
}

type operationalCostService struct {
	costRepo    repositories.OperationalCostRepository
	bookingRepo repositories.BookingRepository
	db          *sql.DB
}

// NewOperationalCostService creates a new instance of OperationalCostService.
func NewOperationalCostService(
	ocr repositories.OperationalCostRepository,
	br repositories.BookingRepository,
	db *sql.DB,
) OperationalCostService {
	return &operationalCostService{costRepo: ocr, bookingRepo: br, db: db}
}

// ensureBookingExists verifies the parent booking before touching its costs.
func (s *operationalCostService) ensureBookingExists(bookingID int64) error {
	if _, err := s.bookingRepo.GetBookingByID(bookingID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("failed to validate booking for operational cost: %w", err)
	}
	return nil
}

func (s *operationalCostService) AddOperationalCost(bookingID int64, req CreateOperationalCostRequest) (*models.OperationalCost, error) {
	if strings.TrimSpace(req.CostCategory) == "" {
		return nil, fmt.Errorf("%w: cost category is required", ErrOperationalCostValidation)
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrOperationalCostValidation)
	}
	if err := s.ensureBookingExists(bookingID); err != nil {
		return nil, err
	}

	cost := &models.OperationalCost{
		BookingID:    bookingID,
		CostCategory: strings.TrimSpace(req.CostCategory),
		Amount:       req.Amount,
		Description:  req.Description,
	}
	if _, err := s.costRepo.CreateOperationalCost(s.db, cost); err != nil {
		return nil, fmt.Errorf("failed to create operational cost: %w", err)
	}
	return cost, nil
}

func (s *operationalCostService) GetOperationalCosts(bookingID int64) ([]models.OperationalCost, error) {
	if err := s.ensureBookingExists(bookingID); err != nil {
		return nil, err
	}
	costs, err := s.costRepo.GetOperationalCostsByBookingID(bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get operational costs: %w", err)
	}
	return costs, nil
}

func (s *operationalCostService) DeleteOperationalCost(bookingID, costID int64) error {
	costs, err := s.GetOperationalCosts(bookingID)
	if err != nil {
		return err
	}

	// The cost must belong to the booking in the URL, not just exist.
	found := false
	for _, cost := range costs {
		if cost.ID == costID {
			found = true
			break
		}
	}
	if !found {
		return ErrOperationalCostNotFound
	}

	if err := s.costRepo.DeleteOperationalCost(s.db, costID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrOperationalCostNotFound
		}
		return fmt.Errorf("failed to delete operational cost: %w", err)
	}
	return nil
}
