package database

import (
	"context"
	"testing"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetRequest(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	requestor := createTestUser(t, db, "Requestor", "requestor@example.com")

	created := time.Now().UTC().Truncate(time.Second)
	req := &models.ItemRequest{
		Description: "Need a ladder",
		RequestorID: requestor.ID,
		Created:     created,
	}
	require.NoError(t, db.CreateRequest(ctx, req))
	assert.Equal(t, int64(1), req.ID)

	got, err := db.GetRequestByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, "Need a ladder", got.Description)
	assert.Equal(t, requestor.ID, got.RequestorID)
	assert.True(t, got.Created.Equal(created))
}

func TestGetRequestByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	_, err := db.GetRequestByID(context.Background(), 12)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestGetRequestsByRequestor(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	mine := createTestUser(t, db, "Mine", "mine@example.com")
	other := createTestUser(t, db, "Other", "other@example.com")

	now := time.Now()
	older := &models.ItemRequest{Description: "older", RequestorID: mine.ID, Created: now.Add(-time.Hour)}
	newer := &models.ItemRequest{Description: "newer", RequestorID: mine.ID, Created: now}
	foreign := &models.ItemRequest{Description: "foreign", RequestorID: other.ID, Created: now}
	for _, r := range []*models.ItemRequest{older, newer, foreign} {
		require.NoError(t, db.CreateRequest(ctx, r))
	}

	got, err := db.GetRequestsByRequestor(ctx, mine.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Newest first
	assert.Equal(t, newer.ID, got[0].ID)
	assert.Equal(t, older.ID, got[1].ID)
}

func TestGetRequestsFromOthers(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	mine := createTestUser(t, db, "Mine", "mine@example.com")
	other := createTestUser(t, db, "Other", "other@example.com")

	now := time.Now()
	require.NoError(t, db.CreateRequest(ctx, &models.ItemRequest{Description: "own", RequestorID: mine.ID, Created: now}))
	for i := 0; i < 3; i++ {
		require.NoError(t, db.CreateRequest(ctx, &models.ItemRequest{
			Description: "foreign", RequestorID: other.ID, Created: now.Add(time.Duration(i) * time.Minute),
		}))
	}

	got, err := db.GetRequestsFromOthers(ctx, mine.ID, 0, 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = db.GetRequestsFromOthers(ctx, mine.ID, 2, 2)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestRequestExists(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	requestor := createTestUser(t, db, "Requestor", "requestor@example.com")

	exists, err := db.RequestExists(ctx, 1)
	require.NoError(t, err)
	assert.False(t, exists)

	req := &models.ItemRequest{Description: "d", RequestorID: requestor.ID, Created: time.Now()}
	require.NoError(t, db.CreateRequest(ctx, req))

	exists, err = db.RequestExists(ctx, req.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}
