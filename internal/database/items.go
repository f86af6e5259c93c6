package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"shareit/internal/domain"
	"shareit/internal/models"
)

func (db *DB) CreateItem(ctx context.Context, item *models.Item) error {
	query := `INSERT INTO items (name, description, available, owner_id, request_id)
              VALUES (?, ?, ?, ?, ?)`

	var requestID any
	if item.RequestID != 0 {
		requestID = item.RequestID
	}
	result, err := db.ExecContext(ctx, query,
		item.Name, item.Description, item.Available, item.OwnerID, requestID)
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	item.ID = id
	return nil
}

func (db *DB) UpdateItem(ctx context.Context, item *models.Item) error {
	query := `UPDATE items SET name = ?, description = ?, available = ? WHERE id = ?`
	result, err := db.ExecContext(ctx, query,
		item.Name, item.Description, item.Available, item.ID)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.NotFound("item with id %d not found", item.ID)
	}
	return nil
}

func (db *DB) GetItemByID(ctx context.Context, id int64) (*models.Item, error) {
	query := `SELECT id, name, description, available, owner_id, COALESCE(request_id, 0)
              FROM items WHERE id = ?`

	var item models.Item
	err := db.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.Name, &item.Description, &item.Available,
		&item.OwnerID, &item.RequestID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("item with id %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return &item, nil
}

func (db *DB) GetItemsByOwner(ctx context.Context, ownerID int64, from, size int) ([]*models.Item, error) {
	query := `SELECT id, name, description, available, owner_id, COALESCE(request_id, 0)
              FROM items WHERE owner_id = ? ORDER BY id LIMIT ? OFFSET ?`

	rows, err := db.QueryContext(ctx, query, ownerID, size, from)
	if err != nil {
		return nil, fmt.Errorf("failed to get items by owner: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

func (db *DB) GetItemsByRequestIDs(ctx context.Context, requestIDs []int64) ([]*models.Item, error) {
	if len(requestIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(requestIDs))
	placeholders = placeholders[:len(placeholders)-1]
	query := fmt.Sprintf(`SELECT id, name, description, available, owner_id, COALESCE(request_id, 0)
              FROM items WHERE request_id IN (%s) ORDER BY id`, placeholders)

	args := make([]any, len(requestIDs))
	for i, id := range requestIDs {
		args[i] = id
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get items by request ids: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

// SearchItems matches available items whose name or description contains the
// text, case-insensitively.
func (db *DB) SearchItems(ctx context.Context, text string, from, size int) ([]*models.Item, error) {
	query := `SELECT id, name, description, available, owner_id, COALESCE(request_id, 0)
              FROM items
              WHERE available = 1 AND (LOWER(name) LIKE ? OR LOWER(description) LIKE ?)
              ORDER BY id LIMIT ? OFFSET ?`

	pattern := "%" + strings.ToLower(text) + "%"
	rows, err := db.QueryContext(ctx, query, pattern, pattern, size, from)
	if err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

func scanItems(rows *sql.Rows) ([]*models.Item, error) {
	var items []*models.Item
	for rows.Next() {
		item := &models.Item{}
		err := rows.Scan(
			&item.ID, &item.Name, &item.Description, &item.Available,
			&item.OwnerID, &item.RequestID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item rows: %w", err)
	}
	return items, nil
}
