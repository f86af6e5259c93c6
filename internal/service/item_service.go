package service

import (
	"context"
	"strings"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type ItemService struct {
	items    domain.ItemStore
	users    domain.UserStore
	bookings domain.BookingStore
	comments domain.CommentStore
	requests domain.RequestStore
	logger   *zerolog.Logger
}

func NewItemService(items domain.ItemStore, users domain.UserStore, bookings domain.BookingStore, comments domain.CommentStore, requests domain.RequestStore, logger *zerolog.Logger) *ItemService {
	return &ItemService{
		items:    items,
		users:    users,
		bookings: bookings,
		comments: comments,
		requests: requests,
		logger:   logger,
	}
}

func (s *ItemService) AddItem(ctx context.Context, item *models.Item, userID, requestID int64) (*models.Item, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	if requestID != 0 {
		exists, err := s.requests.RequestExists(ctx, requestID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, domain.NotFound("request with id %d not found", requestID)
		}
	}

	item.OwnerID = userID
	item.RequestID = requestID
	if err := s.items.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("item_id", item.ID).
		Int64("owner_id", userID).
		Msg("item added")
	return item, nil
}

func (s *ItemService) UpdateItem(ctx context.Context, update models.ItemUpdate, itemID, userID int64) (*models.Item, error) {
	item, err := s.items.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != userID {
		return nil, domain.NotFound("item with id %d not found", itemID)
	}

	if update.Name != nil {
		item.Name = *update.Name
	}
	if update.Description != nil {
		item.Description = *update.Description
	}
	if update.Available != nil {
		item.Available = *update.Available
	}

	if err := s.items.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ItemService) GetItemByID(ctx context.Context, itemID, userID int64) (*models.Item, error) {
	item, err := s.items.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if err := s.attachComments(ctx, item); err != nil {
		return nil, err
	}

	// Booking refs are the owner's view only.
	if item.OwnerID == userID {
		if err := s.attachBookingRefs(ctx, item, time.Now()); err != nil {
			return nil, err
		}
	}
	return item, nil
}

func (s *ItemService) GetItemsByOwner(ctx context.Context, ownerID int64, from, size int) ([]*models.Item, error) {
	if _, err := s.users.GetUserByID(ctx, ownerID); err != nil {
		return nil, err
	}

	items, err := s.items.GetItemsByOwner(ctx, ownerID, pageOffset(from, size), size)
	if err != nil {
		return nil, err
	}

	itemIDs := make([]int64, len(items))
	byID := make(map[int64]*models.Item, len(items))
	for i, item := range items {
		itemIDs[i] = item.ID
		item.Comments = []models.Comment{}
		byID[item.ID] = item
	}

	comments, err := s.comments.GetCommentsByItems(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	for _, c := range comments {
		if item, ok := byID[c.ItemID]; ok {
			item.Comments = append(item.Comments, *c)
		}
	}

	now := time.Now()
	for _, item := range items {
		if err := s.attachBookingRefs(ctx, item, now); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (s *ItemService) SearchItems(ctx context.Context, text string, from, size int) ([]*models.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []*models.Item{}, nil
	}
	return s.items.SearchItems(ctx, text, pageOffset(from, size), size)
}

func (s *ItemService) AddComment(ctx context.Context, comment *models.Comment, itemID, userID int64) (*models.Comment, error) {
	author, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.items.GetItemByID(ctx, itemID); err != nil {
		return nil, err
	}

	now := time.Now()
	finished, err := s.bookings.ListFinished(ctx, userID, itemID, now)
	if err != nil {
		return nil, err
	}
	if len(finished) == 0 {
		return nil, domain.NotAvailable("user %d has no finished booking of item %d", userID, itemID)
	}

	comment.ItemID = itemID
	comment.AuthorID = userID
	comment.Created = now
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	comment.AuthorName = author.Name
	return comment, nil
}

func (s *ItemService) attachComments(ctx context.Context, item *models.Item) error {
	comments, err := s.comments.GetCommentsByItem(ctx, item.ID)
	if err != nil {
		return err
	}
	item.Comments = make([]models.Comment, 0, len(comments))
	for _, c := range comments {
		item.Comments = append(item.Comments, *c)
	}
	return nil
}

func (s *ItemService) attachBookingRefs(ctx context.Context, item *models.Item, now time.Time) error {
	last, err := s.bookings.GetLastBooking(ctx, item.ID, now)
	if err != nil {
		return err
	}
	next, err := s.bookings.GetNextBooking(ctx, item.ID, now)
	if err != nil {
		return err
	}
	item.LastBooking = last
	item.NextBooking = next
	return nil
}
