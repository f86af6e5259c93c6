package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shareit/internal/domain"
	"shareit/internal/models"
)

func (db *DB) CreateRequest(ctx context.Context, request *models.ItemRequest) error {
	query := `INSERT INTO requests (description, requestor_id, created) VALUES (?, ?, ?)`

	result, err := db.ExecContext(ctx, query,
		request.Description, request.RequestorID, formatTime(request.Created))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	request.ID = id
	return nil
}

func (db *DB) GetRequestByID(ctx context.Context, id int64) (*models.ItemRequest, error) {
	query := `SELECT id, description, requestor_id, created FROM requests WHERE id = ?`

	var req models.ItemRequest
	var createdStr string
	err := db.QueryRowContext(ctx, query, id).Scan(
		&req.ID, &req.Description, &req.RequestorID, &createdStr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("request with id %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get request: %w", err)
	}

	if req.Created, err = parseTime(createdStr); err != nil {
		return nil, fmt.Errorf("failed to parse request created %q: %w", createdStr, err)
	}
	return &req, nil
}

func (db *DB) GetRequestsByRequestor(ctx context.Context, requestorID int64) ([]*models.ItemRequest, error) {
	query := `SELECT id, description, requestor_id, created FROM requests
              WHERE requestor_id = ? ORDER BY created DESC`

	rows, err := db.QueryContext(ctx, query, requestorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get requests by requestor: %w", err)
	}
	defer rows.Close()
	return scanRequests(rows)
}

func (db *DB) GetRequestsFromOthers(ctx context.Context, requestorID int64, from, size int) ([]*models.ItemRequest, error) {
	query := `SELECT id, description, requestor_id, created FROM requests
              WHERE requestor_id != ? ORDER BY created DESC LIMIT ? OFFSET ?`

	rows, err := db.QueryContext(ctx, query, requestorID, size, from)
	if err != nil {
		return nil, fmt.Errorf("failed to get requests from others: %w", err)
	}
	defer rows.Close()
	return scanRequests(rows)
}

func (db *DB) RequestExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM requests WHERE id = ?)`
	if err := db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check request existence: %w", err)
	}
	return exists, nil
}

func scanRequests(rows *sql.Rows) ([]*models.ItemRequest, error) {
	var requests []*models.ItemRequest
	for rows.Next() {
		req := &models.ItemRequest{}
		var createdStr string
		if err := rows.Scan(&req.ID, &req.Description, &req.RequestorID, &createdStr); err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		created, err := parseTime(createdStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse request created %q: %w", createdStr, err)
		}
		req.Created = created
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating request rows: %w", err)
	}
	return requests, nil
}
