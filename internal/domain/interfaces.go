package domain

import (
	"context"
	"time"

	"shareit/internal/models"
)

// UserStore is the user directory contract consumed by the services.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// ItemStore is the item catalog contract.
type ItemStore interface {
	CreateItem(ctx context.Context, item *models.Item) error
	UpdateItem(ctx context.Context, item *models.Item) error
	GetItemByID(ctx context.Context, id int64) (*models.Item, error)
	GetItemsByOwner(ctx context.Context, ownerID int64, from, size int) ([]*models.Item, error)
	GetItemsByRequestIDs(ctx context.Context, requestIDs []int64) ([]*models.Item, error)
	SearchItems(ctx context.Context, text string, from, size int) ([]*models.Item, error)
}

// BookingStore persists bookings and answers the state-scoped listing
// queries. Every listing is ordered by start descending and windowed by
// (from, size) the way the services expect.
type BookingStore interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	UpdateBookingStatus(ctx context.Context, id int64, status models.Status) error
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)

	ListByBooker(ctx context.Context, bookerID int64, from, size int) ([]*models.Booking, error)
	ListByBookerCurrent(ctx context.Context, bookerID int64, now time.Time, from, size int) ([]*models.Booking, error)
	ListByBookerPast(ctx context.Context, bookerID int64, now time.Time, from, size int) ([]*models.Booking, error)
	ListByBookerFuture(ctx context.Context, bookerID int64, now time.Time, from, size int) ([]*models.Booking, error)
	ListByBookerStatus(ctx context.Context, bookerID int64, status models.Status, from, size int) ([]*models.Booking, error)

	ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]*models.Booking, error)
	ListByOwnerCurrent(ctx context.Context, ownerID int64, now time.Time, from, size int) ([]*models.Booking, error)
	ListByOwnerPast(ctx context.Context, ownerID int64, now time.Time, from, size int) ([]*models.Booking, error)
	ListByOwnerFuture(ctx context.Context, ownerID int64, now time.Time, from, size int) ([]*models.Booking, error)
	ListByOwnerStatus(ctx context.Context, ownerID int64, status models.Status, from, size int) ([]*models.Booking, error)

	// ListFinished returns the booker's approved bookings of an item that
	// ended before now. Gate for leaving a comment.
	ListFinished(ctx context.Context, bookerID, itemID int64, now time.Time) ([]*models.Booking, error)
	// GetLastBooking / GetNextBooking resolve the closest non-rejected
	// booking around now for an item, or nil when there is none.
	GetLastBooking(ctx context.Context, itemID int64, now time.Time) (*models.BookingRef, error)
	GetNextBooking(ctx context.Context, itemID int64, now time.Time) (*models.BookingRef, error)
}

// RequestStore persists item requests.
type RequestStore interface {
	CreateRequest(ctx context.Context, request *models.ItemRequest) error
	GetRequestByID(ctx context.Context, id int64) (*models.ItemRequest, error)
	GetRequestsByRequestor(ctx context.Context, requestorID int64) ([]*models.ItemRequest, error)
	GetRequestsFromOthers(ctx context.Context, requestorID int64, from, size int) ([]*models.ItemRequest, error)
	RequestExists(ctx context.Context, id int64) (bool, error)
}

// CommentStore persists comments left after finished rentals.
type CommentStore interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentsByItem(ctx context.Context, itemID int64) ([]*models.Comment, error)
	GetCommentsByItems(ctx context.Context, itemIDs []int64) ([]*models.Comment, error)
}

// EventPublisher notifies in-process subscribers about lifecycle events.
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// RateLimiter is the fixed-window limiter contract used by the gateway.
type RateLimiter interface {
	CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error)
}

type BookingService interface {
	CreateBooking(ctx context.Context, booking *models.Booking, itemID, userID int64) (*models.Booking, error)
	GetBookingByID(ctx context.Context, bookingID, userID int64) (*models.Booking, error)
	DecideBooking(ctx context.Context, bookingID, userID int64, approved bool) (*models.Booking, error)
	ListByBooker(ctx context.Context, state models.State, bookerID int64, from, size int) ([]*models.Booking, error)
	ListByOwner(ctx context.Context, state models.State, ownerID int64, from, size int) ([]*models.Booking, error)
}

type ItemService interface {
	AddItem(ctx context.Context, item *models.Item, userID, requestID int64) (*models.Item, error)
	UpdateItem(ctx context.Context, update models.ItemUpdate, itemID, userID int64) (*models.Item, error)
	GetItemByID(ctx context.Context, itemID, userID int64) (*models.Item, error)
	GetItemsByOwner(ctx context.Context, ownerID int64, from, size int) ([]*models.Item, error)
	SearchItems(ctx context.Context, text string, from, size int) ([]*models.Item, error)
	AddComment(ctx context.Context, comment *models.Comment, itemID, userID int64) (*models.Comment, error)
}

type UserService interface {
	AddUser(ctx context.Context, user *models.User) (*models.User, error)
	UpdateUser(ctx context.Context, update models.UserUpdate, userID int64) (*models.User, error)
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	DeleteUser(ctx context.Context, userID int64) error
}

type RequestService interface {
	AddRequest(ctx context.Context, request *models.ItemRequest, userID int64) (*models.ItemRequest, error)
	GetRequestByID(ctx context.Context, requestID, userID int64) (*models.ItemRequest, error)
	GetOwnRequests(ctx context.Context, userID int64) ([]*models.ItemRequest, error)
	GetOtherRequests(ctx context.Context, userID int64, from, size int) ([]*models.ItemRequest, error)
}
