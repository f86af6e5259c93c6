package service

import (
	"context"
	"time"

	"shareit/internal/models"

	"github.com/stretchr/testify/mock"
)

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) CreateUser(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *mockUserStore) UpdateUser(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *mockUserStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *mockUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *mockUserStore) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}
func (m *mockUserStore) DeleteUser(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockItemStore struct {
	mock.Mock
}

func (m *mockItemStore) CreateItem(ctx context.Context, item *models.Item) error {
	return m.Called(ctx, item).Error(0)
}
func (m *mockItemStore) UpdateItem(ctx context.Context, item *models.Item) error {
	return m.Called(ctx, item).Error(0)
}
func (m *mockItemStore) GetItemByID(ctx context.Context, id int64) (*models.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}
func (m *mockItemStore) GetItemsByOwner(ctx context.Context, ownerID int64, from, size int) ([]*models.Item, error) {
	args := m.Called(ctx, ownerID, from, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Item), args.Error(1)
}
func (m *mockItemStore) GetItemsByRequestIDs(ctx context.Context, requestIDs []int64) ([]*models.Item, error) {
	args := m.Called(ctx, requestIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Item), args.Error(1)
}
func (m *mockItemStore) SearchItems(ctx context.Context, text string, from, size int) ([]*models.Item, error) {
	args := m.Called(ctx, text, from, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Item), args.Error(1)
}

type mockBookingStore struct {
	mock.Mock
}

func (m *mockBookingStore) CreateBooking(ctx context.Context, booking *models.Booking) error {
	return m.Called(ctx, booking).Error(0)
}
func (m *mockBookingStore) UpdateBookingStatus(ctx context.Context, id int64, status models.Status) error {
	return m.Called(ctx, id, status).Error(0)
}
func (m *mockBookingStore) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *mockBookingStore) bookingsResult(args mock.Arguments) ([]*models.Booking, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Booking), args.Error(1)
}

func (m *mockBookingStore) ListByBooker(ctx context.Context, bookerID int64, from, size int) ([]*models.Booking, error) {
	return m.bookingsResult(m.Called(ctx, bookerID, from, size))
}
func (m *mockBookingStore) ListByBookerCurrent(ctx context.Context, bookerID int64, now time.Time, from, size int) ([]*models.Booking, error) {
	return m.bookingsResult(m.Called(ctx, bookerID, now, from, size))
}
func (m *mockBookingStore) ListByBookerPast(ctx context.Context, bookerID int64, now time.Time, from, size int) ([]*models.Booking, error) {
	return m.bookingsResult(m.Called(ctx, bookerID, now, from, size))
}
func (m *mockBookingStore) ListByBookerFuture(ctx context.Context, bookerID int64, now time.Time, from, size int) ([]*models.Booking, error) {
	return m.bookingsResult(m.Called(ctx, bookerID, now, from, size))
}
func (m *mockBookingStore) ListByBookerStatus(ctx context.Context, bookerID int64, status models.Status, from, size int) ([]*models.Booking, error) {
	return m.bookingsResult(m.Called(ctx, bookerID, status, from, size))
}
func (m *mockBookingStore) ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]*models.Booking, error) {
	return m.bookingsResult(m.Called(ctx, ownerID, from, size))
}
func (m *mockBookingStore) ListByOwnerCurrent(ctx context.Context, ownerID int64, now time.Time, from, size int) ([]*models.Booking, error) {
	return m.bookingsResult(m.Called(ctx, ownerID, now, from, size))
}
func (m *mockBookingStore) ListByOwnerPast(ctx context.Context, ownerID int64, now time.Time, from, size int) ([]*models.Booking, error) {
	return m.bookingsResult(m.Called(ctx, ownerID, now, from, size))
}
func (m *mockBookingStore) ListByOwnerFuture(ctx context.Context, ownerID int64, now time.Time, from, size int) ([]*models.Booking, error) {
	return m.bookingsResult(m.Called(ctx, ownerID, now, from, size))
}
func (m *mockBookingStore) ListByOwnerStatus(ctx context.Context, ownerID int64, status models.Status, from, size int) ([]*models.Booking, error) {
	return m.bookingsResult(m.Called(ctx, ownerID, status, from, size))
}
func (m *mockBookingStore) ListFinished(ctx context.Context, bookerID, itemID int64, now time.Time) ([]*models.Booking, error) {
	return m.bookingsResult(m.Called(ctx, bookerID, itemID, now))
}
func (m *mockBookingStore) GetLastBooking(ctx context.Context, itemID int64, now time.Time) (*models.BookingRef, error) {
	args := m.Called(ctx, itemID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingRef), args.Error(1)
}
func (m *mockBookingStore) GetNextBooking(ctx context.Context, itemID int64, now time.Time) (*models.BookingRef, error) {
	args := m.Called(ctx, itemID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingRef), args.Error(1)
}

type mockRequestStore struct {
	mock.Mock
}

func (m *mockRequestStore) CreateRequest(ctx context.Context, request *models.ItemRequest) error {
	return m.Called(ctx, request).Error(0)
}
func (m *mockRequestStore) GetRequestByID(ctx context.Context, id int64) (*models.ItemRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ItemRequest), args.Error(1)
}
func (m *mockRequestStore) GetRequestsByRequestor(ctx context.Context, requestorID int64) ([]*models.ItemRequest, error) {
	args := m.Called(ctx, requestorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ItemRequest), args.Error(1)
}
func (m *mockRequestStore) GetRequestsFromOthers(ctx context.Context, requestorID int64, from, size int) ([]*models.ItemRequest, error) {
	args := m.Called(ctx, requestorID, from, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ItemRequest), args.Error(1)
}
func (m *mockRequestStore) RequestExists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockCommentStore struct {
	mock.Mock
}

func (m *mockCommentStore) CreateComment(ctx context.Context, comment *models.Comment) error {
	return m.Called(ctx, comment).Error(0)
}
func (m *mockCommentStore) GetCommentsByItem(ctx context.Context, itemID int64) ([]*models.Comment, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Comment), args.Error(1)
}
func (m *mockCommentStore) GetCommentsByItems(ctx context.Context, itemIDs []int64) ([]*models.Comment, error) {
	args := m.Called(ctx, itemIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Comment), args.Error(1)
}

type mockEventBus struct {
	mock.Mock
}

func (m *mockEventBus) PublishJSON(eventType string, payload interface{}) error {
	return m.Called(eventType, payload).Error(0)
}
