package service

import (
	"context"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type RequestService struct {
	requests domain.RequestStore
	items    domain.ItemStore
	users    domain.UserStore
	logger   *zerolog.Logger
}

func NewRequestService(requests domain.RequestStore, items domain.ItemStore, users domain.UserStore, logger *zerolog.Logger) *RequestService {
	return &RequestService{
		requests: requests,
		items:    items,
		users:    users,
		logger:   logger,
	}
}

func (s *RequestService) AddRequest(ctx context.Context, request *models.ItemRequest, userID int64) (*models.ItemRequest, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	request.RequestorID = userID
	request.Created = time.Now()
	if err := s.requests.CreateRequest(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("request_id", request.ID).
		Int64("requestor_id", userID).
		Msg("item request created")
	return request, nil
}

func (s *RequestService) GetRequestByID(ctx context.Context, requestID, userID int64) (*models.ItemRequest, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	request, err := s.requests.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if err := s.attachItems(ctx, []*models.ItemRequest{request}); err != nil {
		return nil, err
	}
	return request, nil
}

func (s *RequestService) GetOwnRequests(ctx context.Context, userID int64) ([]*models.ItemRequest, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	requests, err := s.requests.GetRequestsByRequestor(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.attachItems(ctx, requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (s *RequestService) GetOtherRequests(ctx context.Context, userID int64, from, size int) ([]*models.ItemRequest, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	requests, err := s.requests.GetRequestsFromOthers(ctx, userID, pageOffset(from, size), size)
	if err != nil {
		return nil, err
	}

	if err := s.attachItems(ctx, requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// attachItems resolves the items offered in response to each request with a
// single batched lookup.
func (s *RequestService) attachItems(ctx context.Context, requests []*models.ItemRequest) error {
	if len(requests) == 0 {
		return nil
	}

	ids := make([]int64, len(requests))
	byID := make(map[int64]*models.ItemRequest, len(requests))
	for i, req := range requests {
		ids[i] = req.ID
		req.Items = []models.Item{}
		byID[req.ID] = req
	}

	items, err := s.items.GetItemsByRequestIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, item := range items {
		if req, ok := byID[item.RequestID]; ok {
			req.Items = append(req.Items, *item)
		}
	}
	return nil
}
