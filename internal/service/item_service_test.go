package service

import (
	"context"
	"testing"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type itemServiceMocks struct {
	items    *mockItemStore
	users    *mockUserStore
	bookings *mockBookingStore
	comments *mockCommentStore
	requests *mockRequestStore
}

func newItemService(t *testing.T) (*ItemService, *itemServiceMocks) {
	t.Helper()
	m := &itemServiceMocks{
		items:    &mockItemStore{},
		users:    &mockUserStore{},
		bookings: &mockBookingStore{},
		comments: &mockCommentStore{},
		requests: &mockRequestStore{},
	}
	logger := zerolog.Nop()
	return NewItemService(m.items, m.users, m.bookings, m.comments, m.requests, &logger), m
}

func TestItemService_AddItem(t *testing.T) {
	svc, m := newItemService(t)
	ctx := context.Background()

	m.users.On("GetUserByID", ctx, int64(1)).Return(&models.User{ID: 1}, nil)
	m.items.On("CreateItem", ctx, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Item).ID = 5
	}).Return(nil)

	item := &models.Item{Name: "Drill", Description: "d", Available: true}
	got, err := svc.AddItem(ctx, item, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.ID)
	assert.Equal(t, int64(1), got.OwnerID)
}

func TestItemService_AddItem_UnknownRequest(t *testing.T) {
	svc, m := newItemService(t)
	ctx := context.Background()

	m.users.On("GetUserByID", ctx, int64(1)).Return(&models.User{ID: 1}, nil)
	m.requests.On("RequestExists", ctx, int64(7)).Return(false, nil)

	_, err := svc.AddItem(ctx, &models.Item{Name: "Drill"}, 1, 7)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestItemService_UpdateItem_Partial(t *testing.T) {
	svc, m := newItemService(t)
	ctx := context.Background()

	item := &models.Item{ID: 5, Name: "Drill", Description: "old", Available: true, OwnerID: 1}
	m.items.On("GetItemByID", ctx, int64(5)).Return(item, nil)
	m.items.On("UpdateItem", ctx, item).Return(nil)

	desc := "new description"
	got, err := svc.UpdateItem(ctx, models.ItemUpdate{Description: &desc}, 5, 1)
	require.NoError(t, err)
	// Untouched fields survive
	assert.Equal(t, "Drill", got.Name)
	assert.Equal(t, "new description", got.Description)
	assert.True(t, got.Available)
}

func TestItemService_UpdateItem_NotOwner(t *testing.T) {
	svc, m := newItemService(t)
	ctx := context.Background()

	item := &models.Item{ID: 5, OwnerID: 1}
	m.items.On("GetItemByID", ctx, int64(5)).Return(item, nil)

	name := "stolen"
	_, err := svc.UpdateItem(ctx, models.ItemUpdate{Name: &name}, 5, 2)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestItemService_GetItemByID_OwnerSeesBookings(t *testing.T) {
	svc, m := newItemService(t)
	ctx := context.Background()

	item := &models.Item{ID: 5, OwnerID: 1}
	last := &models.BookingRef{ID: 3, BookerID: 2}
	next := &models.BookingRef{ID: 4, BookerID: 2}

	m.items.On("GetItemByID", ctx, int64(5)).Return(item, nil)
	m.comments.On("GetCommentsByItem", ctx, int64(5)).Return([]*models.Comment{{ID: 1, Text: "good"}}, nil)
	m.bookings.On("GetLastBooking", ctx, int64(5), mock.Anything).Return(last, nil)
	m.bookings.On("GetNextBooking", ctx, int64(5), mock.Anything).Return(next, nil)

	got, err := svc.GetItemByID(ctx, 5, 1)
	require.NoError(t, err)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, last, got.LastBooking)
	assert.Equal(t, next, got.NextBooking)
}

func TestItemService_GetItemByID_BookerSeesNoRefs(t *testing.T) {
	svc, m := newItemService(t)
	ctx := context.Background()

	item := &models.Item{ID: 5, OwnerID: 1}
	m.items.On("GetItemByID", ctx, int64(5)).Return(item, nil)
	m.comments.On("GetCommentsByItem", ctx, int64(5)).Return(nil, nil)

	got, err := svc.GetItemByID(ctx, 5, 2)
	require.NoError(t, err)
	assert.Nil(t, got.LastBooking)
	assert.Nil(t, got.NextBooking)
	m.bookings.AssertNotCalled(t, "GetLastBooking", mock.Anything, mock.Anything, mock.Anything)
}

func TestItemService_GetItemsByOwner(t *testing.T) {
	svc, m := newItemService(t)
	ctx := context.Background()

	first := &models.Item{ID: 5, OwnerID: 1}
	second := &models.Item{ID: 6, OwnerID: 1}

	m.users.On("GetUserByID", ctx, int64(1)).Return(&models.User{ID: 1}, nil)
	m.items.On("GetItemsByOwner", ctx, int64(1), 0, 5).Return([]*models.Item{first, second}, nil)
	m.comments.On("GetCommentsByItems", ctx, []int64{5, 6}).Return([]*models.Comment{
		{ID: 1, ItemID: 5, Text: "good"},
	}, nil)
	m.bookings.On("GetLastBooking", ctx, mock.Anything, mock.Anything).Return(nil, nil)
	m.bookings.On("GetNextBooking", ctx, mock.Anything, mock.Anything).Return(nil, nil)

	got, err := svc.GetItemsByOwner(ctx, 1, 0, 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Len(t, got[0].Comments, 1)
	assert.Empty(t, got[1].Comments)
}

func TestItemService_SearchItems_BlankText(t *testing.T) {
	svc, m := newItemService(t)

	got, err := svc.SearchItems(context.Background(), "   ", 0, 5)
	require.NoError(t, err)
	assert.Empty(t, got)
	m.items.AssertNotCalled(t, "SearchItems", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestItemService_AddComment(t *testing.T) {
	svc, m := newItemService(t)
	ctx := context.Background()

	m.users.On("GetUserByID", ctx, int64(2)).Return(&models.User{ID: 2, Name: "Booker"}, nil)
	m.items.On("GetItemByID", ctx, int64(5)).Return(&models.Item{ID: 5, OwnerID: 1}, nil)
	m.bookings.On("ListFinished", ctx, int64(2), int64(5), mock.Anything).
		Return([]*models.Booking{{ID: 3}}, nil)
	m.comments.On("CreateComment", ctx, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Comment).ID = 1
	}).Return(nil)

	comment := &models.Comment{Text: "worked great"}
	got, err := svc.AddComment(ctx, comment, 5, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "Booker", got.AuthorName)
	assert.Equal(t, int64(5), got.ItemID)
	assert.False(t, got.Created.IsZero())
}

func TestItemService_AddComment_NoFinishedBooking(t *testing.T) {
	svc, m := newItemService(t)
	ctx := context.Background()

	m.users.On("GetUserByID", ctx, int64(2)).Return(&models.User{ID: 2}, nil)
	m.items.On("GetItemByID", ctx, int64(5)).Return(&models.Item{ID: 5, OwnerID: 1}, nil)
	m.bookings.On("ListFinished", ctx, int64(2), int64(5), mock.Anything).Return(nil, nil)

	_, err := svc.AddComment(ctx, &models.Comment{Text: "never used it"}, 5, 2)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindNotAvailable))
}
