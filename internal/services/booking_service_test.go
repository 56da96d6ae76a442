package services

import (
	"errors"
	"testing"
	"time"

	"hotel_admin_backend/internal/models"
	"hotel_admin_backend/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBookingRepo struct {
	bookings     map[int64]models.Booking
	nextID       int64
	created      *models.Booking
	createdItems []models.BookingItem
	updated      *models.Booking
	deletedID    int64
}

func (s *stubBookingRepo) CreateBooking(executor repositories.SQLExecutor, booking *models.Booking) (int64, error) {
	s.nextID++
	booking.ID = s.nextID
	s.created = booking
	if s.bookings == nil {
		s.bookings = map[int64]models.Booking{}
	}
	s.bookings[booking.ID] = *booking
	return booking.ID, nil
}

func (s *stubBookingRepo) CreateBookingItem(executor repositories.SQLExecutor, item *models.BookingItem) (int64, error) {
	s.createdItems = append(s.createdItems, *item)
	return int64(len(s.createdItems)), nil
}

func (s *stubBookingRepo) GetBookingByID(id int64) (*models.Booking, error) {
	booking, ok := s.bookings[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := booking
	return &copied, nil
}

func (s *stubBookingRepo) GetBookingItemsByBookingID(bookingID int64) ([]models.BookingItem, error) {
	return nil, nil
}

func (s *stubBookingRepo) GetBookings(filters models.BookingFilters) ([]models.Booking, int, error) {
	result := []models.Booking{}
	for _, booking := range s.bookings {
		result = append(result, booking)
	}
	return result, len(result), nil
}

func (s *stubBookingRepo) UpdateBooking(executor repositories.SQLExecutor, booking *models.Booking) error {
	if _, ok := s.bookings[booking.ID]; !ok {
		return repositories.ErrNotFound
	}
	s.updated = booking
	s.bookings[booking.ID] = *booking
	return nil
}

func (s *stubBookingRepo) UpdateBookingStatus(executor repositories.SQLExecutor, bookingID int64, newStatus string, updatedAt time.Time) error {
	booking, ok := s.bookings[bookingID]
	if !ok {
		return repositories.ErrNotFound
	}
	booking.Status = newStatus
	s.bookings[bookingID] = booking
	return nil
}

func (s *stubBookingRepo) DeleteBooking(executor repositories.SQLExecutor, id int64) error {
	if _, ok := s.bookings[id]; !ok {
		return repositories.ErrNotFound
	}
	s.deletedID = id
	delete(s.bookings, id)
	return nil
}

type stubGuestRepo struct {
	guests map[int64]models.Guest
}

func (s *stubGuestRepo) CreateGuest(executor repositories.SQLExecutor, guest *models.Guest) (int64, error) {
	return 0, nil
}

func (s *stubGuestRepo) GetGuestByID(id int64) (*models.Guest, error) {
	guest, ok := s.guests[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := guest
	return &copied, nil
}

func (s *stubGuestRepo) GetGuests(page, pageSize int, searchTerm *string) ([]models.Guest, int, error) {
	return nil, 0, nil
}

func (s *stubGuestRepo) UpdateGuest(executor repositories.SQLExecutor, guest *models.Guest) error {
	return nil
}

func (s *stubGuestRepo) DeleteGuest(executor repositories.SQLExecutor, id int64) error {
	return nil
}

type stubCostRepo struct {
	costs map[int64][]models.OperationalCost
}

func (s *stubCostRepo) CreateOperationalCost(executor repositories.SQLExecutor, cost *models.OperationalCost) (int64, error) {
	return 0, nil
}

func (s *stubCostRepo) GetOperationalCostsByBookingID(bookingID int64) ([]models.OperationalCost, error) {
	return s.costs[bookingID], nil
}

func (s *stubCostRepo) DeleteOperationalCost(executor repositories.SQLExecutor, id int64) error {
	return nil
}

func newBookingServiceForTest(t *testing.T, bookingRepo *stubBookingRepo, guestRepo *stubGuestRepo) (BookingService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	if guestRepo == nil {
		guestRepo = &stubGuestRepo{}
	}
	return NewBookingService(bookingRepo, guestRepo, &stubCostRepo{}, db), mock
}

func TestCreateBooking_DerivesTotalAndDefaults(t *testing.T) {
	bookingRepo := &stubBookingRepo{}
	svc, mock := newBookingServiceForTest(t, bookingRepo, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()

	booking, err := svc.CreateBooking(CreateBookingRequest{
		City: models.CityMakkah,
		Items: []BookingItemRequest{
			{RoomType: "double", RoomCount: 2, UnitPrice: 500, HotelCostPrice: 300},
			{RoomType: "suite", RoomCount: 1, UnitPrice: 1200, HotelCostPrice: 800},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, booking)

	assert.Equal(t, models.BookingStatusPending, booking.Status)
	assert.Equal(t, models.PaymentStatusUnpaid, booking.PaymentStatus)
	// 2*500 + 1*1200
	assert.Equal(t, 2200.0, booking.TotalAmount)
	require.Len(t, bookingRepo.createdItems, 2)
	assert.Equal(t, booking.ID, bookingRepo.createdItems[0].BookingID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBooking_RejectsUnknownCity(t *testing.T) {
	svc, _ := newBookingServiceForTest(t, &stubBookingRepo{}, nil)

	_, err := svc.CreateBooking(CreateBookingRequest{
		City:  "Jeddah",
		Items: []BookingItemRequest{{RoomType: "double", RoomCount: 1, UnitPrice: 100}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBookingValidation))
}

func TestCreateBooking_RejectsEmptyItems(t *testing.T) {
	svc, _ := newBookingServiceForTest(t, &stubBookingRepo{}, nil)

	_, err := svc.CreateBooking(CreateBookingRequest{City: models.CityMakkah})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBookingValidation))
}

func TestCreateBooking_RejectsNonPositiveRoomCount(t *testing.T) {
	svc, _ := newBookingServiceForTest(t, &stubBookingRepo{}, nil)

	_, err := svc.CreateBooking(CreateBookingRequest{
		City:  models.CityMadinah,
		Items: []BookingItemRequest{{RoomType: "double", RoomCount: 0, UnitPrice: 100}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBookingValidation))
}

func TestCreateBooking_UnknownGuest(t *testing.T) {
	guestID := int64(42)
	svc, _ := newBookingServiceForTest(t, &stubBookingRepo{}, &stubGuestRepo{})

	_, err := svc.CreateBooking(CreateBookingRequest{
		GuestID: &guestID,
		City:    models.CityMakkah,
		Items:   []BookingItemRequest{{RoomType: "double", RoomCount: 1, UnitPrice: 100}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGuestForBookingNotFound))
}

func TestGetBookingByID_NotFound(t *testing.T) {
	svc, _ := newBookingServiceForTest(t, &stubBookingRepo{}, nil)

	_, err := svc.GetBookingByID(99)
	assert.True(t, errors.Is(err, ErrBookingNotFound))
}

func TestGetBookingByID_AttachesOperationalCosts(t *testing.T) {
	bookingRepo := &stubBookingRepo{bookings: map[int64]models.Booking{
		7: {ID: 7, City: models.CityMakkah, Status: models.BookingStatusConfirmed},
	}}
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	costRepo := &stubCostRepo{costs: map[int64][]models.OperationalCost{
		7: {{ID: 1, BookingID: 7, CostCategory: "Transport", Amount: 150}},
	}}
	svc := NewBookingService(bookingRepo, &stubGuestRepo{}, costRepo, db)

	booking, err := svc.GetBookingByID(7)
	require.NoError(t, err)
	require.Len(t, booking.OperationalCosts, 1)
	assert.Equal(t, "Transport", booking.OperationalCosts[0].CostCategory)
}

func TestUpdateBooking_CancelledBookingIsFrozen(t *testing.T) {
	bookingRepo := &stubBookingRepo{bookings: map[int64]models.Booking{
		3: {ID: 3, City: models.CityMakkah, Status: models.BookingStatusCancelled},
	}}
	svc, _ := newBookingServiceForTest(t, bookingRepo, nil)

	notes := "late change"
	_, err := svc.UpdateBooking(3, UpdateBookingRequest{Notes: &notes})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBookingValidation))
}

func TestConfirmBooking_FromPending(t *testing.T) {
	bookingRepo := &stubBookingRepo{bookings: map[int64]models.Booking{
		5: {ID: 5, City: models.CityMadinah, Status: models.BookingStatusPending},
	}}
	svc, _ := newBookingServiceForTest(t, bookingRepo, nil)

	booking, err := svc.ConfirmBooking(5)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, booking.Status)
}

func TestConfirmBooking_CancelledCannotBeConfirmed(t *testing.T) {
	bookingRepo := &stubBookingRepo{bookings: map[int64]models.Booking{
		5: {ID: 5, City: models.CityMadinah, Status: models.BookingStatusCancelled},
	}}
	svc, _ := newBookingServiceForTest(t, bookingRepo, nil)

	_, err := svc.ConfirmBooking(5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBookingStatusUpdate))
}

func TestDeleteBooking_NotFound(t *testing.T) {
	svc, _ := newBookingServiceForTest(t, &stubBookingRepo{}, nil)

	err := svc.DeleteBooking(404)
	assert.True(t, errors.Is(err, ErrBookingNotFound))
}
