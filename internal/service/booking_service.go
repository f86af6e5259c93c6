package service

import (
	"context"
	"time"

	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type BookingService struct {
	bookings domain.BookingStore
	items    domain.ItemStore
	users    domain.UserStore
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewBookingService(bookings domain.BookingStore, items domain.ItemStore, users domain.UserStore, eventBus domain.EventPublisher, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		bookings: bookings,
		items:    items,
		users:    users,
		eventBus: eventBus,
		logger:   logger,
	}
}

func (s *BookingService) CreateBooking(ctx context.Context, booking *models.Booking, itemID, userID int64) (*models.Booking, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	item, err := s.items.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	// Owners asking for their own item look like a lookup miss, not a
	// validation failure.
	if item.OwnerID == userID {
		return nil, domain.NotFound("item with id %d not found", itemID)
	}
	if !item.Available {
		return nil, domain.NotAvailable("item with id %d is not available", itemID)
	}
	if !booking.End.After(booking.Start) {
		return nil, domain.NotAvailable("booking end must be after start")
	}

	booking.ItemID = itemID
	booking.BookerID = userID
	booking.Status = models.StatusWaiting

	if err := s.bookings.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	created, err := s.bookings.GetBooking(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	s.publishEvent(events.EventBookingCreated, created)
	s.logger.Info().
		Int64("booking_id", created.ID).
		Int64("item_id", itemID).
		Int64("booker_id", userID).
		Msg("booking created")
	return created, nil
}

func (s *BookingService) GetBookingByID(ctx context.Context, bookingID, userID int64) (*models.Booking, error) {
	booking, err := s.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	// Only the booker and the item owner may see a booking; everyone else
	// gets the same answer as for a missing id.
	if booking.BookerID != userID && booking.Item.OwnerID != userID {
		return nil, domain.NotFound("booking with id %d not found", bookingID)
	}
	return booking, nil
}

func (s *BookingService) DecideBooking(ctx context.Context, bookingID, userID int64, approved bool) (*models.Booking, error) {
	booking, err := s.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.Item.OwnerID != userID {
		return nil, domain.NotFound("booking with id %d not found", bookingID)
	}
	if approved && booking.Status == models.StatusApproved {
		return nil, domain.NotAvailable("booking with id %d is already confirmed", bookingID)
	}

	status := models.StatusRejected
	eventType := events.EventBookingRejected
	if approved {
		status = models.StatusApproved
		eventType = events.EventBookingApproved
	}

	if err := s.bookings.UpdateBookingStatus(ctx, bookingID, status); err != nil {
		return nil, err
	}

	booking.Status = status
	s.publishEvent(eventType, booking)
	s.logger.Info().
		Int64("booking_id", bookingID).
		Str("status", string(status)).
		Msg("booking decided")
	return booking, nil
}

func (s *BookingService) ListByBooker(ctx context.Context, state models.State, bookerID int64, from, size int) ([]*models.Booking, error) {
	if _, err := s.users.GetUserByID(ctx, bookerID); err != nil {
		return nil, err
	}

	offset := pageOffset(from, size)
	now := time.Now()

	switch state {
	case models.StateAll:
		return s.bookings.ListByBooker(ctx, bookerID, offset, size)
	case models.StateCurrent:
		return s.bookings.ListByBookerCurrent(ctx, bookerID, now, offset, size)
	case models.StatePast:
		return s.bookings.ListByBookerPast(ctx, bookerID, now, offset, size)
	case models.StateFuture:
		return s.bookings.ListByBookerFuture(ctx, bookerID, now, offset, size)
	case models.StateWaiting:
		return s.bookings.ListByBookerStatus(ctx, bookerID, models.StatusWaiting, offset, size)
	case models.StateRejected:
		return s.bookings.ListByBookerStatus(ctx, bookerID, models.StatusRejected, offset, size)
	default:
		return []*models.Booking{}, nil
	}
}

func (s *BookingService) ListByOwner(ctx context.Context, state models.State, ownerID int64, from, size int) ([]*models.Booking, error) {
	if _, err := s.users.GetUserByID(ctx, ownerID); err != nil {
		return nil, err
	}

	offset := pageOffset(from, size)
	now := time.Now()

	switch state {
	case models.StateAll:
		return s.bookings.ListByOwner(ctx, ownerID, offset, size)
	case models.StateCurrent:
		return s.bookings.ListByOwnerCurrent(ctx, ownerID, now, offset, size)
	case models.StatePast:
		return s.bookings.ListByOwnerPast(ctx, ownerID, now, offset, size)
	case models.StateFuture:
		return s.bookings.ListByOwnerFuture(ctx, ownerID, now, offset, size)
	case models.StateWaiting:
		return s.bookings.ListByOwnerStatus(ctx, ownerID, models.StatusWaiting, offset, size)
	case models.StateRejected:
		return s.bookings.ListByOwnerStatus(ctx, ownerID, models.StatusRejected, offset, size)
	default:
		return []*models.Booking{}, nil
	}
}

func (s *BookingService) publishEvent(eventType string, booking *models.Booking) {
	payload := events.BookingEventPayload{
		BookingID: booking.ID,
		BookerID:  booking.BookerID,
		ItemID:    booking.ItemID,
		Status:    string(booking.Status),
		Start:     booking.Start,
		End:       booking.End,
	}
	if booking.Item != nil {
		payload.ItemName = booking.Item.Name
	}
	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Warn().Err(err).Str("event", eventType).Msg("failed to publish event")
	}
}

// pageOffset snaps the raw offset to a whole page boundary.
func pageOffset(from, size int) int {
	if size <= 0 {
		return 0
	}
	return (from / size) * size
}
